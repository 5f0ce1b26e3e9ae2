package rewards

import (
	"slices"
	"time"
)

// BaseStreakThreshold is the first day streak that earns an achievement.
const BaseStreakThreshold = 5

// NextStreakThreshold returns the next streak milestone above current.
func NextStreakThreshold(current int) int {
	thresholds := []int{5, 10, 15, 20}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, every 5 days.
	return ((current / 5) + 1) * 5
}

// DayStreaks returns the current and longest runs of consecutive calendar
// days, in now's location, that have at least one entry in times. The
// current run only counts while its last day is today or yesterday.
func DayStreaks(times []time.Time, now time.Time) (current, longest int) {
	if len(times) == 0 {
		return 0, 0
	}
	loc := now.Location()
	days := make([]time.Time, 0, len(times))
	for _, t := range times {
		days = append(days, dayOf(t.In(loc)))
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	days = slices.Compact(days)

	run := 0
	for i, d := range days {
		if i > 0 && d.Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	today := dayOf(now)
	last := days[len(days)-1]
	if gap := today.Sub(last); gap >= 0 && gap <= 24*time.Hour {
		current = run
	}
	return current, longest
}

// dayOf maps t to midnight UTC of its calendar date, so day arithmetic is
// free of DST shifts.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
