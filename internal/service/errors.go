package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrAuthRequired is returned when a mutating action is attempted without a
// stored session token. It never reaches the network.
var ErrAuthRequired = errors.New("please login first")

// ErrBusy is returned when a mutation is submitted while another one is
// still waiting for the server.
var ErrBusy = errors.New("another change is still in progress")

// ValidationError collects field-scoped validation failures.
// Fields keeps the insertion order so messages print deterministically.
type ValidationError struct {
	Fields map[string]string
	order  []string
}

// Add records msg for field. The first message for a field wins.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = msg
	e.order = append(e.order, field)
}

// Keys returns the failing field names in the order they were added.
func (e *ValidationError) Keys() []string {
	return append([]string(nil), e.order...)
}

// Messages returns the messages in field order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.order))
	for _, k := range e.order {
		msgs = append(msgs, e.Fields[k])
	}
	return msgs
}

// Err returns e as an error, or nil when nothing failed.
func (e *ValidationError) Err() error {
	if e == nil || len(e.order) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// NetworkError is a failed remote call: transport failure or a non-2xx status.
type NetworkError struct {
	Op         string // e.g. "create task"
	StatusCode int    // 0 when no response was received
	Message    string // server supplied message, if any
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.StatusCode != 0:
		return fmt.Sprintf("%s failed (HTTP %d)", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	default:
		return e.Op + " failed"
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Unauthorized reports whether the server rejected the session token.
func (e *NetworkError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Rejected reports whether the server refused the request itself (4xx),
// as opposed to failing to handle it.
func (e *NetworkError) Rejected() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// NotFound reports whether the server answered 404.
func (e *NetworkError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
