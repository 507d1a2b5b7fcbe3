package task

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/service"
)

func validInput() service.TaskInput {
	return service.TaskInput{
		Title:       "Write report",
		Description: "Quarterly numbers for the board",
		DueDate:     "2025-01-01",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr), "expected *service.ValidationError, got %v", err)
	return verr.Fields
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validInput(), false))

	in := validInput()
	in.Status = service.StatusCompleted
	assert.NoError(t, Validate(in, true))
}

func TestValidate_MissingTitleKeepsOtherErrors(t *testing.T) {
	in := service.TaskInput{Description: "short", DueDate: "not-a-date", Status: "done"}

	fields := fieldErrors(t, Validate(in, false))

	assert.Equal(t, map[string]string{
		FieldTitle:       "Title is required",
		FieldDescription: "Description must be at least 10 characters",
		FieldDueDate:     "Invalid date format",
		FieldStatus:      "Invalid status",
	}, fields)
}

func TestValidate_EmptyInput(t *testing.T) {
	err := Validate(service.TaskInput{}, true)

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldTitle, FieldDescription, FieldDueDate, FieldStatus}, verr.Keys())
	assert.Equal(t, []string{
		"Title is required",
		"Description is required",
		"Due Date is required",
		"Status is required",
	}, verr.Messages())
}

func TestValidate_TitleLength(t *testing.T) {
	in := validInput()
	in.Title = strings.Repeat("a", MaxTitleLen)
	assert.NoError(t, Validate(in, false))

	in.Title = strings.Repeat("a", MaxTitleLen+1)
	fields := fieldErrors(t, Validate(in, false))
	assert.Equal(t, "Title cannot exceed 50 characters", fields[FieldTitle])
	assert.Len(t, fields, 1)
}

func TestValidate_TitleLengthCountsCharacters(t *testing.T) {
	in := validInput()
	in.Title = strings.Repeat("é", MaxTitleLen)
	assert.NoError(t, Validate(in, false))
}

func TestValidate_DescriptionLength(t *testing.T) {
	in := validInput()
	in.Description = "1234567890"
	assert.NoError(t, Validate(in, false))

	in.Description = "123456789"
	fields := fieldErrors(t, Validate(in, false))
	assert.Equal(t, "Description must be at least 10 characters", fields[FieldDescription])
}

func TestValidate_DueDate(t *testing.T) {
	tests := []struct {
		due   string
		valid bool
	}{
		{"2025-01-01", true},
		{"2025-01-01T00:00:00.000Z", true},
		{"2024-02-29", true},
		{"2025-02-30", false},
		{"01/02/2025", false},
		{"tomorrow", false},
	}
	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			in := validInput()
			in.DueDate = tt.due
			err := Validate(in, false)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, "Invalid date format", fieldErrors(t, err)[FieldDueDate])
		})
	}
}

func TestValidate_StatusRequiredOnlyWhenEditing(t *testing.T) {
	in := validInput()
	assert.NoError(t, Validate(in, false), "status is optional on create")

	fields := fieldErrors(t, Validate(in, true))
	assert.Equal(t, map[string]string{FieldStatus: "Status is required"}, fields)

	for _, s := range service.Statuses {
		in.Status = s
		assert.NoError(t, Validate(in, true), "status %q on edit", s)
		assert.NoError(t, Validate(in, false), "status %q on create", s)
	}
}

func TestValidate_StatusIsCaseSensitive(t *testing.T) {
	in := validInput()
	in.Status = "Pending"
	assert.Equal(t, "Invalid status", fieldErrors(t, Validate(in, false))[FieldStatus])
}

func TestWithDefaults(t *testing.T) {
	in := WithDefaults(validInput())
	assert.Equal(t, service.StatusPending, in.Status)

	in.Status = service.StatusInProgress
	assert.Equal(t, service.StatusInProgress, WithDefaults(in).Status)
}
