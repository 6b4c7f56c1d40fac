// Package habits holds the pure computations behind streaks, badges,
// analytics, and the next-day completion predictor. Everything here is a
// function of the entry timestamps it is given; nothing touches storage.
package habits

import (
	"sort"
	"time"
)

// CurrentStreak returns the consecutive-day streak ending at the most
// recent entry. Timestamps are reduced to UTC calendar dates, sorted
// descending, and walked pairwise; the walk stops at the first adjacent
// pair whose dates are not exactly one day apart. A zero-day gap (two
// entries on the same date) also stops the walk, so a day logged twice in
// a row contributes a single step and ends counting there.
func CurrentStreak(times []time.Time) int {
	if len(times) == 0 {
		return 0
	}
	dates := make([]time.Time, len(times))
	for i, t := range times {
		dates[i] = dateOf(t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	streak := 1
	for i := 0; i < len(dates)-1; i++ {
		if daysApart(dates[i+1], dates[i]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysApart returns the whole days from earlier to later. Both arguments
// must already be date-truncated.
func daysApart(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}

// mondayWeekday maps a timestamp to a Monday=0..Sunday=6 weekday index.
func mondayWeekday(t time.Time) int {
	return (int(t.UTC().Weekday()) + 6) % 7
}
