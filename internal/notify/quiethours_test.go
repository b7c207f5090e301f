package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInRange(t *testing.T) {
	tests := []struct {
		name             string
		hour, start, end int
		want             bool
	}{
		{"wrapping window late evening", 23, 22, 7, true},
		{"wrapping window early morning", 3, 22, 7, true},
		{"wrapping window boundary start", 22, 22, 7, true},
		{"wrapping window boundary end", 7, 22, 7, false},
		{"wrapping window daytime", 12, 22, 7, false},
		{"same-day window inside", 10, 9, 17, true},
		{"same-day window before", 8, 9, 17, false},
		{"same-day window at end", 17, 9, 17, false},
		{"equal start and end disables", 12, 7, 7, false},
		{"equal start and end at boundary", 7, 7, 7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(tt.hour, tt.start, tt.end))
		})
	}
}

func TestIsSuppressedNilConfig(t *testing.T) {
	q := &QuietHours{}
	tz := "America/Chicago"
	start, end := 22, 7

	assert.False(t, q.IsSuppressed(nil, &start, &end))
	assert.False(t, q.IsSuppressed(&tz, nil, &end))
	assert.False(t, q.IsSuppressed(&tz, &start, nil))
}

func TestIsSuppressedInTimezone(t *testing.T) {
	// 03:00 UTC is 22:00 the previous evening in Chicago (CDT, UTC-5).
	q := &QuietHours{Now: func() time.Time {
		return time.Date(2026, 7, 15, 3, 0, 0, 0, time.UTC)
	}}
	tz := "America/Chicago"
	start, end := 22, 7

	assert.True(t, q.IsSuppressed(&tz, &start, &end))

	utc := "UTC"
	assert.True(t, q.IsSuppressed(&utc, &start, &end)) // 03:00 UTC wraps into 22→7
}

func TestIsSuppressedOutsideWindow(t *testing.T) {
	q := &QuietHours{Now: func() time.Time {
		return time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	}}
	tz := "UTC"
	start, end := 22, 7
	assert.False(t, q.IsSuppressed(&tz, &start, &end))
}

func TestCurrentHourInvalidTimezoneFallsBackToUTC(t *testing.T) {
	q := &QuietHours{Now: func() time.Time {
		return time.Date(2026, 7, 15, 14, 30, 0, 0, time.UTC)
	}}
	assert.Equal(t, 14, q.CurrentHour("Not/AZone"))
}
