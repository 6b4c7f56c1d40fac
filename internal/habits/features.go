package habits

import "time"

// windowSize is the number of consecutive entries that make up one
// training example.
const windowSize = 7

// Sample is one training example derived from a window of entries.
type Sample struct {
	// Streak is the consecutive-day run length ending at the window's
	// last entry, computed with the CurrentStreak break rule over the
	// window only.
	Streak int
	// Weekday is the Monday=0 weekday index of the window's last entry.
	Weekday int
	// HoursSincePrev is the elapsed hours between the window's last two
	// entries.
	HoursSincePrev float64
	// Label is 1 when any entry in the full list falls on the calendar
	// date exactly one day after the window's last entry.
	Label int
}

// Features returns the sample as a numeric vector in training order.
func (s Sample) Features() []float64 {
	return []float64{float64(s.Streak), float64(s.Weekday), s.HoursSincePrev}
}

// ExtractSamples derives (feature, label) pairs from a habit's entry
// timestamps, which must be in chronological order. Windows of seven
// consecutive entries slide by one and stop while a full window plus its
// follow-up day remain, so fewer than eight entries yield no samples.
// The result is rebuilt from scratch on every call; nothing is cached.
func ExtractSamples(times []time.Time) []Sample {
	entryDates := make(map[time.Time]struct{}, len(times))
	for _, t := range times {
		entryDates[dateOf(t)] = struct{}{}
	}

	var samples []Sample
	for i := 0; i+windowSize < len(times); i++ {
		win := times[i : i+windowSize]
		last := win[windowSize-1]

		label := 0
		if _, ok := entryDates[dateOf(last).AddDate(0, 0, 1)]; ok {
			label = 1
		}
		samples = append(samples, Sample{
			Streak:         CurrentStreak(win),
			Weekday:        mondayWeekday(last),
			HoursSincePrev: last.Sub(win[windowSize-2]).Hours(),
			Label:          label,
		})
	}
	return samples
}
