// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task API.
// Commands never talk HTTP directly; everything goes through this interface.
type Service interface {
	// ListTasks returns every task in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a task and returns the server's copy.
	// Requires a session token.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask replaces the editable fields of a task.
	// Requires a session token.
	UpdateTask(ctx context.Context, id string, in TaskInput) (Task, error)

	// DeleteTask deletes a task. Requires a session token.
	DeleteTask(ctx context.Context, id string) error

	// Register creates a user account.
	Register(ctx context.Context, reg Registration) error

	// Login exchanges credentials for a session token.
	Login(ctx context.Context, creds Credentials) (string, error)
}
