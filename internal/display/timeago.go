package display

import (
	"fmt"
	"strings"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// zonelessLayouts are server timestamp layouts without an offset. They are
// parsed as UTC.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// TimeAgo formats created relative to the current UTC time.
func TimeAgo(created time.Time) string {
	return FormatTimeAgo(created, time.Now().UTC())
}

// FormatTimeAgo renders the whole seconds between created and reference as a
// coarse age such as "5 minutes ago". Counts use floor division and the unit
// name is always plural. A created time after reference yields a negative
// seconds count.
func FormatTimeAgo(created, reference time.Time) string {
	seconds := elapsedSeconds(created, reference)

	switch {
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%d seconds ago", seconds)
	case seconds < secondsPerHour:
		return fmt.Sprintf("%d minutes ago", seconds/secondsPerMinute)
	case seconds < secondsPerDay:
		return fmt.Sprintf("%d hours ago", seconds/secondsPerHour)
	default:
		return fmt.Sprintf("%d days ago", seconds/secondsPerDay)
	}
}

// elapsedSeconds truncates reference-created toward zero. It works on Unix
// seconds so spans beyond time.Duration's range stay exact.
func elapsedSeconds(created, reference time.Time) int64 {
	seconds := reference.Unix() - created.Unix()
	nanos := reference.Nanosecond() - created.Nanosecond()
	switch {
	case seconds > 0 && nanos < 0:
		seconds--
	case seconds < 0 && nanos > 0:
		seconds++
	}
	return seconds
}

// ParseTimestamp parses an RFC 3339 timestamp. Timestamps without a zone
// designation are taken to be UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	for _, layout := range zonelessLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
