package task

import (
	"strings"

	"taskman/internal/service"
)

// StatusAll is the status filter that matches every task.
const StatusAll = "All"

// Matches reports whether t passes both the status filter and the search
// query. The status comparison is exact; the search is a case-insensitive
// substring match against the title or the description. An empty query
// matches everything.
func Matches(t service.Task, statusFilter, query string) bool {
	if statusFilter != StatusAll && string(t.Status) != statusFilter {
		return false
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// ValidFilter reports whether s is StatusAll or a known status.
func ValidFilter(s string) bool {
	return s == StatusAll || service.Status(s).Valid()
}
