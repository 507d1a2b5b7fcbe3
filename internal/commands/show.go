package commands

import (
	"context"
	"flag"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Show one task in full" }
func (c *ShowCmd) Usage() string      { return "taskman show <ref>" }
func (c *ShowCmd) NeedsBackend() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	store := env.Store()
	t, ref, code, ok := lookupTask(ctx, store, args, errOut)
	if !ok {
		return code
	}

	// Rows come from the list; the detail view reads the task itself.
	if ref.ID == "" {
		var err error
		if t, err = store.Get(ctx, t.ID); err != nil {
			return reportError(errOut, err)
		}
	}
	output.FormatTaskDetail(out, t)
	return exitcode.Success
}
