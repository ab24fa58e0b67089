package util //nolint:revive // package name util hosts shared formatting helpers used across HTTP templates

import (
	"strings"
	"time"
)

// TitleFromPath derives a human-readable page title from a request path.
// "/employees/42" becomes "Employees", "/" becomes "Home".
func TitleFromPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "Home"
	}
	segment := trimmed
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		segment = trimmed[:idx]
	}
	segment = strings.ReplaceAll(segment, "-", " ")
	return strings.ToUpper(segment[:1]) + segment[1:]
}

// FormatDate formats a timestamp for display, handling the zero value.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}
