package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/pkg/validator"
)

// Accepted representations, tried after RFC3339. Zoned values keep their own
// offset; the rest are read in the caller's location.
var (
	localLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04"}
	clockLayouts = []string{"15:04:05", "15:04"}
)

// ParseTimestamp is the single conversion point from stored or submitted
// punch values to time.Time. A bare wall-clock value ("09:15") is anchored on
// date in loc.
func ParseTimestamp(value string, date string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.UTC
	}

	if t, ok := validator.IsValidDateTime(value); ok {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range clockLayouts {
		clock, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		day, err := time.ParseInLocation(DateLayout, date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		return time.Date(day.Year(), day.Month(), day.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// FormatTimestamp is the storage and wire form of a punch time.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
