package habits

import (
	"fmt"
	"time"
)

const (
	trailingDays  = 30
	trailingWeeks = 12
	dateLayout    = "2006-01-02"
)

// Report aggregates a habit's entries for the analytics view.
type Report struct {
	TotalEntries  int            `json:"totalEntries"`
	CurrentStreak int            `json:"currentStreak"`
	// CompletionRate is the trailing-30-day entry count over 30. It is
	// not capped: multiple entries on one day can push it past 1.0.
	CompletionRate float64        `json:"completionRate"`
	DailyCounts    map[string]int `json:"dailyCounts"`
	WeeklyCounts   map[string]int `json:"weeklyCounts"`
}

// ComputeReport buckets a habit's entries into daily and weekly counts and
// derives the headline metrics. now anchors the trailing windows so the
// computation stays deterministic under test.
//
// Weekly buckets are keyed by bare ISO week number ("Week 34"), not
// year-qualified, so a span crossing a year boundary aliases week numbers
// from different years into one bucket and the window near January can
// label nonpositive weeks. Charts and tests encode this behavior.
func ComputeReport(times []time.Time, now time.Time) Report {
	r := Report{
		TotalEntries:  len(times),
		CurrentStreak: CurrentStreak(times),
		DailyCounts:   make(map[string]int, trailingDays),
		WeeklyCounts:  make(map[string]int, trailingWeeks),
	}

	cutoff := now.Add(-trailingDays * 24 * time.Hour)
	recent := 0
	for _, t := range times {
		if !t.Before(cutoff) {
			recent++
		}
	}
	r.CompletionRate = float64(recent) / float64(trailingDays)

	perDate := make(map[string]int)
	for _, t := range times {
		perDate[dateOf(t).Format(dateLayout)]++
	}
	today := dateOf(now)
	for i := trailingDays - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(dateLayout)
		r.DailyCounts[key] = perDate[key]
	}

	perWeek := make(map[int]int)
	for _, t := range times {
		_, wk := t.UTC().ISOWeek()
		perWeek[wk]++
	}
	_, currentWeek := now.UTC().ISOWeek()
	for w := currentWeek - trailingWeeks + 1; w <= currentWeek; w++ {
		r.WeeklyCounts[fmt.Sprintf("Week %d", w)] = perWeek[w]
	}
	return r
}
