package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"taskman/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	dueDate     string
	status      string
}

// SetFields sets the flag values (for testing).
func (c *AddCmd) SetFields(description, dueDate, status string) {
	c.description = description
	c.dueDate = dueDate
	c.status = status
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskman add --desc|-d <text> --due <YYYY-MM-DD> [--status <status>] <title...>"
}
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.dueDate, "due", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	in := service.TaskInput{
		Title:       strings.Join(args, " "),
		Description: c.description,
		DueDate:     c.dueDate,
		Status:      service.Status(c.status),
	}

	if _, err := env.Store().Create(ctx, in); err != nil {
		return reportError(errOut, err)
	}
	return env.ok(out)
}
