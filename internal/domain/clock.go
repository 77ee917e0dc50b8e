package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps generated_date on every report. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for report timestamps. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current report time in UTC.
func Now() time.Time {
	return clock.Now().UTC()
}
