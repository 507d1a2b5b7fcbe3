package commands

import (
	"context"
	"flag"
	"io"

	"taskman/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskman rm <ref>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if !env.requireLogin() {
		return exitcode.AuthError
	}

	store := env.Store()
	t, _, code, ok := lookupTask(ctx, store, args, errOut)
	if !ok {
		return code
	}

	if err := store.Delete(ctx, t.ID); err != nil {
		return reportError(errOut, err)
	}
	return env.ok(out)
}
