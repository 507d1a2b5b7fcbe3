// Package service defines the backend-agnostic interface for task operations.
package service

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "inprogress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Task represents a single task record as stored by the server.
type Task struct {
	ID          string // assigned by the server, never generated locally
	Title       string
	Description string
	DueDate     string // ISO date string as transmitted
	Status      Status
}

// TaskInput carries the fields submitted when creating or updating a task.
// An empty Status means "not provided".
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
	Status      Status
}

// Registration is the signup form.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// Credentials is the login form.
type Credentials struct {
	Email    string
	Password string
}
