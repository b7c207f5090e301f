package notify

import (
	"log/slog"
	"time"
)

// QuietHours evaluates a subscriber's suppression window. Now is injectable
// for tests; nil means time.Now.
type QuietHours struct {
	Now    func() time.Time
	Logger *slog.Logger
}

// CurrentHour resolves the current hour of day (0-23) in the given IANA
// timezone. Invalid timezones log a warning and fall back to UTC rather
// than failing.
func (q *QuietHours) CurrentHour(timezone string) int {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		q.logger().Warn("Invalid timezone, falling back to UTC", "timezone", timezone)
		loc = time.UTC
	}
	return q.now().In(loc).Hour()
}

// InRange reports whether hour falls inside [start, end). start == end means
// quiet hours are disabled. start > end wraps midnight: 22→7 covers
// hour >= 22 or hour < 7.
func InRange(hour, start, end int) bool {
	if start == end {
		return false
	}
	if start > end {
		return hour >= start || hour < end
	}
	return hour >= start && hour < end
}

// IsSuppressed reports whether "now" in the subscriber's timezone falls in
// their quiet window. Any nil input means quiet hours are not configured and
// nothing is suppressed.
func (q *QuietHours) IsSuppressed(timezone *string, start, end *int) bool {
	if timezone == nil || start == nil || end == nil {
		return false
	}
	return InRange(q.CurrentHour(*timezone), *start, *end)
}

func (q *QuietHours) now() time.Time {
	if q.Now != nil {
		return q.Now()
	}
	return time.Now()
}

func (q *QuietHours) logger() *slog.Logger {
	if q.Logger != nil {
		return q.Logger
	}
	return slog.Default()
}
