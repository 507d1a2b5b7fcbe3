// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/session"
	"taskman/internal/tasklist"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the API.
	// help, version, logout and status return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional args and returns an exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// Env is what a command runs against.
type Env struct {
	Config  *config.Config
	Session *session.Session
	Logger  *zap.Logger

	// Service is nil when the command's NeedsBackend returns false.
	Service service.Service
}

// Store returns a task list store over the env's service and session.
func (e *Env) Store() *tasklist.Store {
	return tasklist.New(e.Service, e.Session, e.logger())
}

func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// requireLogin checks the session before a command starts resolving the
// task it is about to change.
func (e *Env) requireLogin() bool {
	return e.Session.RequireAuthOrPrompt(func() error { return nil }) == nil
}

// ok prints the success marker unless quiet.
func (e *Env) ok(out io.Writer) int {
	if !e.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// reportError prints err and maps it to an exit code.
// service.ErrAuthRequired prints nothing: the session prompt already did.
func reportError(errOut io.Writer, err error) int {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		output.FormatValidation(errOut, verr)
		return exitcode.UserError
	}

	if errors.Is(err, service.ErrAuthRequired) {
		return exitcode.AuthError
	}

	if errors.Is(err, service.ErrBusy) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var nerr *service.NetworkError
	if errors.As(err, &nerr) {
		switch {
		case nerr.Unauthorized():
			fmt.Fprintf(errOut, "error: auth error: %v\n", nerr)
			return exitcode.AuthError
		case nerr.Rejected():
			fmt.Fprintf(errOut, "error: %v\n", nerr)
			return exitcode.UserError
		}
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
