package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"taskman/internal/exitcode"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd implements the status command. It reports whether a session
// token is stored and, when the token is a JWT, what it claims. Claims are
// decoded without verification and are informational only.
type StatusCmd struct {
	now func() time.Time
}

// SetClock sets the time source (for testing).
func (c *StatusCmd) SetClock(now func() time.Time) {
	c.now = now
}

func (c *StatusCmd) Name() string       { return "status" }
func (c *StatusCmd) Aliases() []string  { return []string{"whoami"} }
func (c *StatusCmd) Synopsis() string   { return "Show login state" }
func (c *StatusCmd) Usage() string      { return "taskman status" }
func (c *StatusCmd) NeedsBackend() bool { return false }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "api: %s\n", env.Config.APIURL)

	token, ok := env.Session.Token()
	if !ok {
		fmt.Fprintln(out, "not logged in")
		return exitcode.Success
	}
	fmt.Fprintln(out, "logged in")

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		env.logger().Debug("session token is not a JWT", zap.Error(err))
		return exitcode.Success
	}

	for _, key := range []string{"email", "name"} {
		if v, ok := claims[key].(string); ok && v != "" {
			fmt.Fprintf(out, "%s: %s\n", key, v)
		}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return exitcode.Success
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	state := "valid"
	if !exp.After(now()) {
		state = "expired"
	}
	fmt.Fprintf(out, "expires: %s (%s)\n", exp.UTC().Format(time.RFC3339), state)
	return exitcode.Success
}
