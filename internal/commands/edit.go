package commands

import (
	"context"
	"flag"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields not given on the command line
// keep the task's current values.
type EditCmd struct {
	fields map[string]*string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "taskman edit [--title <text>] [--desc <text>] [--due <YYYY-MM-DD>] [--status <status>] <ref>"
}
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.fields = make(map[string]*string)
	for _, name := range []string{"title", "desc", "due", "status"} {
		c.fields[name] = nil
		fs.Func(name, "", func(v string) error {
			c.fields[name] = &v
			return nil
		})
	}
}

// Set sets a flag value (for testing). name is one of title, desc, due, status.
func (c *EditCmd) Set(name, value string) {
	if c.fields == nil {
		c.fields = make(map[string]*string)
	}
	c.fields[name] = &value
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if !env.requireLogin() {
		return exitcode.AuthError
	}

	store := env.Store()
	t, _, code, ok := lookupTask(ctx, store, args, errOut)
	if !ok {
		return code
	}

	// Tasks stored without a status are shown as pending; edit treats them the same.
	current := t.Status
	if current == "" {
		current = service.StatusPending
	}
	in := service.TaskInput{
		Title:       c.value("title", t.Title),
		Description: c.value("desc", t.Description),
		DueDate:     c.value("due", t.DueDate),
		Status:      service.Status(c.value("status", string(current))),
	}
	if _, err := store.Update(ctx, t.ID, in); err != nil {
		return reportError(errOut, err)
	}
	return env.ok(out)
}

func (c *EditCmd) value(name, current string) string {
	if v := c.fields[name]; v != nil {
		return *v
	}
	return current
}
