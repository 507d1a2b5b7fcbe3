package commands_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/testutil"
)

func TestLoginCommand_StoresToken(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("Ada", "ada@example.com", "secret1")
	te := newTestEnv(t, false)

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("ada@example.com", "secret1")
	stdout, stderr, code := runCommand(t, cmd, svc, te, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if !te.sess.IsAuthenticated() {
		t.Error("session should be authenticated after login")
	}
	if tok, _ := te.sess.Token(); tok != testutil.FakeToken {
		t.Errorf("expected stored token %q, got %q", testutil.FakeToken, tok)
	}

	info, err := os.Stat(filepath.Join(te.cfg.Dir, config.TokenFile))
	if err != nil {
		t.Fatalf("token file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected token mode 0600, got %o", perm)
	}
}

func TestLoginCommand_ValidationErrors(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("", "")
	_, stderr, code := runCommand(t, cmd, svc, newTestEnv(t, false), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: Email is required\nerror: Password is required\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestLoginCommand_WrongPassword(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("Ada", "ada@example.com", "secret1")
	te := newTestEnv(t, false)

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("ada@example.com", "secret2")
	_, stderr, code := runCommand(t, cmd, svc, te, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: auth error: Invalid credentials\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if te.sess.IsAuthenticated() {
		t.Error("failed login must not store a token")
	}
}

func TestLoginCommand_ServerDown(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LoginErr = &service.NetworkError{Op: "login", StatusCode: http.StatusBadGateway}

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("ada@example.com", "secret1")
	_, stderr, code := runCommand(t, cmd, svc, newTestEnv(t, false), nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: login failed (HTTP 502)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// TestLogoutCommand_OnlyRemovesToken verifies logout deletes token.json and
// leaves the rest of the config directory alone.
func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	te := newTestEnv(t, true)
	cfgPath := filepath.Join(te.cfg.Dir, config.ConfigFile)
	if err := os.WriteFile(cfgPath, []byte("api_url: http://localhost:3000\n"), 0600); err != nil {
		t.Fatalf("failed to write config.yaml: %v", err)
	}

	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, nil, te, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(te.cfg.Dir, config.TokenFile)); !os.IsNotExist(err) {
		t.Error("token.json should be deleted")
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Error("config.yaml should not be deleted")
	}
	if te.sess.IsAuthenticated() {
		t.Error("session should not be authenticated after logout")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, nil, newTestEnv(t, false), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", stdout)
	}
}

func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, nil, newTestEnv(t, false), nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestLogoutCommand_BlocksLaterChanges(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	te := newTestEnv(t, true)

	if _, _, code := runCommand(t, &commands.LogoutCmd{}, nil, te, nil, true); code != exitcode.Success {
		t.Fatalf("logout failed with %d", code)
	}
	_, _, code := runCommand(t, &commands.RmCmd{}, svc, te, []string{"1"}, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if svc.DeleteCalls != 0 {
		t.Errorf("expected no delete call, got %d", svc.DeleteCalls)
	}
}

func TestStatusCommand_NotLoggedIn(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.StatusCmd{}, nil, newTestEnv(t, false), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "api: " + config.DefaultAPIURL + "\nnot logged in\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestStatusCommand_OpaqueToken(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.StatusCmd{}, nil, newTestEnv(t, true), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "api: " + config.DefaultAPIURL + "\nlogged in\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestStatusCommand_JWTClaims(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ada@example.com",
		"exp":   exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	te := newTestEnv(t, false)
	if err := te.sess.Login(token); err != nil {
		t.Fatal(err)
	}

	cmd := &commands.StatusCmd{}
	cmd.SetClock(func() time.Time { return exp.Add(time.Hour) })
	stdout, _, code := runCommand(t, cmd, nil, te, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "api: " + config.DefaultAPIURL + "\nlogged in\nemail: ada@example.com\nexpires: 2030-01-01T00:00:00Z (expired)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}
