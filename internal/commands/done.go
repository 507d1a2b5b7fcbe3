package commands

import (
	"context"
	"flag"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskman done <ref>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if !env.requireLogin() {
		return exitcode.AuthError
	}

	store := env.Store()
	t, _, code, ok := lookupTask(ctx, store, args, errOut)
	if !ok {
		return code
	}

	in := service.TaskInput{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      service.StatusCompleted,
	}
	if _, err := store.Update(ctx, t.ID, in); err != nil {
		return reportError(errOut, err)
	}
	return env.ok(out)
}
