// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments, a validation failure or an
	// unknown task reference.
	UserError = 1

	// AuthError indicates a missing session or a token the server rejected.
	AuthError = 2

	// BackendError indicates an API or network failure.
	BackendError = 3
)
