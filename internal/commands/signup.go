package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/account"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command.
type SignupCmd struct {
	name     string
	email    string
	password string
}

// SetAccount sets the flag values (for testing).
func (c *SignupCmd) SetAccount(name, email, password string) {
	c.name, c.email, c.password = name, email, password
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account" }
func (c *SignupCmd) Usage() string {
	return "taskman signup --name <name> --email <email> --password <password>"
}
func (c *SignupCmd) NeedsBackend() bool { return true }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	reg := service.Registration{
		Name:     strings.TrimSpace(c.name),
		Email:    account.NormalizeEmail(c.email),
		Password: c.password,
	}
	if err := account.ValidateRegistration(reg); err != nil {
		return reportError(errOut, err)
	}

	if err := env.Service.Register(ctx, reg); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "signed up (run: taskman login)")
	}
	return exitcode.Success
}
