// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskman/internal/service"
	"taskman/internal/task"
)

// FormatTask formats a task row for the list command.
// Format: "{N:>4}  {DUE:<10}  {STATUS:<11} {TITLE}\n"
func FormatTask(w io.Writer, num int, t service.Task) {
	fmt.Fprintf(w, "%4d  %-10s  %-11s %s\n", num, task.FormatDueDate(t.DueDate), StatusLabel(t.Status), normalizeTitle(t.Title))
}

// FormatTaskDetail prints every field of a task, one per line.
func FormatTaskDetail(w io.Writer, t service.Task) {
	fmt.Fprintf(w, "Title:       %s\n", normalizeTitle(t.Title))
	fmt.Fprintf(w, "Description: %s\n", singleLine(t.Description))
	fmt.Fprintf(w, "Status:      %s\n", StatusLabel(t.Status))
	fmt.Fprintf(w, "Due Date:    %s\n", task.FormatDueDate(t.DueDate))
	fmt.Fprintf(w, "ID:          %s\n", t.ID)
}

// FormatValidation prints one "error: " line per failed field.
func FormatValidation(w io.Writer, verr *service.ValidationError) {
	for _, msg := range verr.Messages() {
		fmt.Fprintf(w, "error: %s\n", msg)
	}
}

// StatusLabel returns the display name of a status. Tasks without a status
// are shown as pending.
func StatusLabel(s service.Status) string {
	switch s {
	case "", service.StatusPending:
		return "Pending"
	case service.StatusInProgress:
		return "In Progress"
	case service.StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = singleLine(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
