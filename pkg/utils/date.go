package utils

import (
	"time"
)

// PrettyMonth formats t as a short month and year, e.g. "Mar 2024".
func PrettyMonth(t time.Time) string {
	return t.Format("Jan 2006")
}
