package task

import (
	"fmt"
	"strings"
	"time"
)

// dueDateLayouts are tried in order. Forms submit a bare date; the server
// echoes full timestamps.
var dueDateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDueDate parses an ISO date or timestamp.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// FormatDueDate renders a due date as M/D/YYYY. Values that do not parse are
// returned unchanged.
func FormatDueDate(s string) string {
	t, err := ParseDueDate(s)
	if err != nil {
		return s
	}
	return t.UTC().Format("1/2/2006")
}
