// Package tasklist keeps the client's copy of the server task list in sync.
//
// Every mutation is followed by a full re-fetch of the list, whether the
// mutation succeeded or not, so the local view never drifts from what the
// server holds.
package tasklist

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"taskman/internal/service"
	"taskman/internal/task"
)

// Gate runs an action only when the user is logged in.
type Gate interface {
	RequireAuthOrPrompt(action func() error) error
}

// Store holds the last task list fetched from the server.
type Store struct {
	svc    service.Service
	gate   Gate
	logger *zap.Logger

	mu      sync.RWMutex
	tasks   []service.Task
	fetched bool

	group singleflight.Group
	busy  atomic.Bool
}

// New creates an empty Store. Call Refresh to populate it.
func New(svc service.Service, gate Gate, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{svc: svc, gate: gate, logger: logger}
}

// Tasks returns a copy of the current list in server order.
func (s *Store) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]service.Task(nil), s.tasks...)
}

// Fetched reports whether at least one refresh has succeeded.
func (s *Store) Fetched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}

// Row is a task with its 1-based position in the unfiltered list.
type Row struct {
	Num  int
	Task service.Task
}

// Filtered returns the rows matching statusFilter and query, keeping each
// task's position in the full list so row numbers stay stable under filters.
func (s *Store) Filtered(statusFilter, query string) []Row {
	var rows []Row
	for i, t := range s.Tasks() {
		if task.Matches(t, statusFilter, query) {
			rows = append(rows, Row{Num: i + 1, Task: t})
		}
	}
	return rows
}

// Refresh replaces the list with the server's. On failure the previous
// list is kept. Concurrent calls share one request.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, shared := s.group.Do("refresh", func() (any, error) {
		tasks, err := s.svc.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.tasks = tasks
		s.fetched = true
		s.mu.Unlock()
		return nil, nil
	})
	if shared {
		s.logger.Debug("refresh coalesced")
	}
	if err != nil {
		s.logger.Debug("refresh failed", zap.Error(err))
	}
	return err
}

// Get fetches a single task from the server.
func (s *Store) Get(ctx context.Context, id string) (service.Task, error) {
	return s.svc.GetTask(ctx, id)
}

// Create validates in, applies defaults and creates the task.
func (s *Store) Create(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var created service.Task
	err := s.mutate("create", func() error {
		if err := task.Validate(in, false); err != nil {
			return err
		}
		return s.exclusive(ctx, func() (err error) {
			created, err = s.svc.CreateTask(ctx, task.WithDefaults(in))
			return err
		})
	})
	return created, err
}

// Update validates in as an edit and replaces the task with id.
func (s *Store) Update(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	var updated service.Task
	err := s.mutate("update", func() error {
		if err := task.Validate(in, true); err != nil {
			return err
		}
		return s.exclusive(ctx, func() (err error) {
			updated, err = s.svc.UpdateTask(ctx, id, in)
			return err
		})
	})
	return updated, err
}

// Delete removes the task with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.mutate("delete", func() error {
		return s.exclusive(ctx, func() error {
			return s.svc.DeleteTask(ctx, id)
		})
	})
}

// mutate runs action behind the auth gate.
func (s *Store) mutate(op string, action func() error) error {
	err := s.gate.RequireAuthOrPrompt(action)
	if err != nil {
		s.logger.Debug("mutation failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

// exclusive sends one mutation to the server and refreshes afterwards,
// whatever the outcome. A second mutation while one is in flight fails
// with service.ErrBusy.
func (s *Store) exclusive(ctx context.Context, call func() error) error {
	if !s.busy.CompareAndSwap(false, true) {
		return service.ErrBusy
	}
	defer s.busy.Store(false)

	err := call()
	if rerr := s.Refresh(ctx); rerr != nil {
		s.logger.Warn("refresh after change failed", zap.Error(rerr))
	}
	return err
}
