package utils

import (
	"strings"
	"time"

	pkgerrors "etherlink/pkg/errors"
)

// LocalMinuteLayout is the form used by datetime inputs, without a zone
const LocalMinuteLayout = "2006-01-02T15:04"

// ParseTimestamp parses an RFC3339 timestamp or a zoneless minute timestamp
// interpreted in loc. A nil loc means time.Local.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(LocalMinuteLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, pkgerrors.NewValidationError(pkgerrors.RuleInvalidTimestamp, "invalid dates").
		WithDetail("value", s)
}
