package schedule

import (
	"context"
	"log"
	"time"
)

// RunDailyMaintenance invokes fn once per day at the given local wall-clock
// time ("HH:MM"), until ctx is cancelled. The schedule store re-imports
// daily outside this process; fn is where cached resolutions get dropped.
func RunDailyMaintenance(ctx context.Context, at string, loc *time.Location, fn func()) {
	for {
		next := NextOccurrence(time.Now().In(loc), at)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			log.Printf("schedule: daily maintenance tick at %s", at)
			fn()
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// NextOccurrence returns the next time the wall clock reads at ("HH:MM")
// strictly after now, in now's location. A malformed at falls back to
// 24 hours from now.
func NextOccurrence(now time.Time, at string) time.Time {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return now.Add(24 * time.Hour)
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
