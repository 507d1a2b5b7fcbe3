// Package task holds the client-side rules for task records: the form
// validation schema and the list filter predicate.
package task

import (
	"strings"
	"unicode/utf8"

	"taskman/internal/service"
)

const (
	// MaxTitleLen is the maximum title length in characters.
	MaxTitleLen = 50

	// MinDescriptionLen is the minimum description length in characters.
	MinDescriptionLen = 10
)

// Field names used as keys in validation errors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "dueDate"
	FieldStatus      = "status"
)

// Validate checks a task form. Every rule runs; all failures are collected
// into a *service.ValidationError. Returns nil when the input is valid.
//
// Status is only required when isEdit is true. When creating, a missing
// status is fine and the caller defaults it to pending.
func Validate(in service.TaskInput, isEdit bool) error {
	verr := &service.ValidationError{}

	switch {
	case strings.TrimSpace(in.Title) == "":
		verr.Add(FieldTitle, "Title is required")
	case utf8.RuneCountInString(in.Title) > MaxTitleLen:
		verr.Add(FieldTitle, "Title cannot exceed 50 characters")
	}

	switch {
	case strings.TrimSpace(in.Description) == "":
		verr.Add(FieldDescription, "Description is required")
	case utf8.RuneCountInString(in.Description) < MinDescriptionLen:
		verr.Add(FieldDescription, "Description must be at least 10 characters")
	}

	switch {
	case strings.TrimSpace(in.DueDate) == "":
		verr.Add(FieldDueDate, "Due Date is required")
	default:
		if _, err := ParseDueDate(in.DueDate); err != nil {
			verr.Add(FieldDueDate, "Invalid date format")
		}
	}

	switch {
	case in.Status == "":
		if isEdit {
			verr.Add(FieldStatus, "Status is required")
		}
	case !in.Status.Valid():
		verr.Add(FieldStatus, "Invalid status")
	}

	return verr.Err()
}

// WithDefaults returns in with an unset status replaced by pending.
func WithDefaults(in service.TaskInput) service.TaskInput {
	if in.Status == "" {
		in.Status = service.StatusPending
	}
	return in
}
