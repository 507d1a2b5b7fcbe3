package output_test

import (
	"bytes"
	"testing"

	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/testutil"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, 1, service.Task{Title: "Buy milk", DueDate: "2025-01-05T00:00:00.000Z"})
	output.FormatTask(&buf, 2, service.Task{Title: "Paint\nfence", DueDate: "2025-12-31", Status: service.StatusInProgress})
	output.FormatTask(&buf, 10, service.Task{Title: "  ", DueDate: "not a date", Status: service.StatusCompleted})

	testutil.Golden(t, "task_rows", buf.String())
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, service.Task{
		ID:          "abc123",
		Title:       "Buy milk",
		Description: "Two litres\nplease",
		DueDate:     "2025-01-05",
		Status:      service.StatusInProgress,
	})

	testutil.Golden(t, "task_detail", buf.String())
}

func TestFormatValidation(t *testing.T) {
	verr := &service.ValidationError{}
	verr.Add("title", "Title is required")
	verr.Add("dueDate", "Invalid date format")

	var buf bytes.Buffer
	output.FormatValidation(&buf, verr)

	want := "error: Title is required\nerror: Invalid date format\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		in   service.Status
		want string
	}{
		{"", "Pending"},
		{service.StatusPending, "Pending"},
		{service.StatusInProgress, "In Progress"},
		{service.StatusCompleted, "Completed"},
		{"archived", "archived"},
	}
	for _, tt := range tests {
		if got := output.StatusLabel(tt.in); got != tt.want {
			t.Errorf("StatusLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
