package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskman` (no args) and `taskman list`.
type ListCmd struct {
	status string
	search string
}

// SetFilter sets the status filter and search query (for testing).
func (c *ListCmd) SetFilter(status, search string) {
	c.status = status
	c.search = search
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskman list [--status <status>] [--search|-q <text>]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", task.StatusAll, "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "q", "", "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	status := c.status
	if status == "" {
		status = task.StatusAll
	}
	if !task.ValidFilter(status) {
		fmt.Fprintf(errOut, "error: invalid status filter: %s\n", status)
		return exitcode.UserError
	}

	store := env.Store()
	if err := store.Refresh(ctx); err != nil {
		return reportError(errOut, err)
	}

	rows := store.Filtered(status, c.search)
	if len(rows) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, row := range rows {
		output.FormatTask(out, row.Num, row.Task)
	}
	return exitcode.Success
}
