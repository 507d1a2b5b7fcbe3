// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"taskman/internal/service"
)

// FakeToken is the token FakeService and FakeAPI hand out on login.
const FakeToken = "fake-session-token"

// FakeService is an in-memory implementation of service.Service for testing.
// IDs are deterministic: task-1, task-2, ...
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	users  map[string]service.Registration
	nextID int

	// Call counters
	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int

	// Error injection for testing
	ListTasksErr  error
	GetTaskErr    error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
	RegisterErr   error
	LoginErr      error

	// BeforeMutation, when set, runs inside Create/Update/Delete before the
	// change is applied. Tests use it to hold a request in flight.
	BeforeMutation func()

	// BeforeList, when set, runs inside ListTasks before the tasks are read.
	BeforeList func()
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{users: make(map[string]service.Registration)}
}

// AddTask seeds a task and returns its generated ID.
func (f *FakeService) AddTask(title, description, dueDate string, status service.Status) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("task-%d", f.nextID)
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      status,
	})
	return id
}

// AddUser seeds an account.
func (f *FakeService) AddUser(name, email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = service.Registration{Name: name, Email: email, Password: password}
}

// Snapshot returns a copy of the stored tasks.
func (f *FakeService) Snapshot() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks...)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()
	if f.BeforeList != nil {
		f.BeforeList()
	}
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Snapshot(), nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, notFound("get task")
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	f.CreateCalls++
	f.mu.Unlock()
	if f.BeforeMutation != nil {
		f.BeforeMutation()
	}
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	status := in.Status
	if status == "" {
		status = service.StatusPending
	}
	id := f.AddTask(in.Title, in.Description, in.DueDate, status)
	return f.GetTask(ctx, id)
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	f.UpdateCalls++
	f.mu.Unlock()
	if f.BeforeMutation != nil {
		f.BeforeMutation()
	}
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = service.Task{
				ID:          id,
				Title:       in.Title,
				Description: in.Description,
				DueDate:     in.DueDate,
				Status:      in.Status,
			}
			return f.tasks[i], nil
		}
	}
	return service.Task{}, notFound("update task")
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	f.DeleteCalls++
	f.mu.Unlock()
	if f.BeforeMutation != nil {
		f.BeforeMutation()
	}
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return notFound("delete task")
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, reg service.Registration) error {
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[reg.Email]; exists {
		return &service.NetworkError{Op: "register", StatusCode: http.StatusBadRequest, Message: "User already exists"}
	}
	f.users[reg.Email] = reg
	return nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, creds service.Credentials) (string, error) {
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	u, ok := f.users[creds.Email]
	if !ok || u.Password != creds.Password {
		return "", &service.NetworkError{Op: "login", StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}
	return FakeToken, nil
}

func notFound(op string) error {
	return &service.NetworkError{Op: op, StatusCode: http.StatusNotFound, Message: "Task not found"}
}
