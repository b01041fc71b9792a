package catalog

import (
	"sync"
	"time"
)

// DateLayout is the serialised form of calendar dates.
const DateLayout = "2006-01-02"

var (
	clockMu sync.RWMutex
	clock   = time.Now
)

// SetClock replaces the time source used by Today and returns a function
// restoring the previous one. Intended for tests.
func SetClock(now func() time.Time) (restore func()) {
	clockMu.Lock()
	prev := clock
	clock = now
	clockMu.Unlock()
	return func() {
		clockMu.Lock()
		clock = prev
		clockMu.Unlock()
	}
}

// Now returns the current instant from the package clock.
func Now() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return clock()
}

// Today returns the current calendar date.
func Today() time.Time {
	return Day(Now())
}

// Day truncates t to a calendar date at midnight UTC, keeping t's local date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, newError(ErrValidation, "invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
