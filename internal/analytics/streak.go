package analytics

import (
	"sort"
	"time"
)

// CurrentStreak returns the number of consecutive days with a weight record,
// counted backwards from today or yesterday. A user who logged yesterday but
// not yet today keeps their streak until a full day passes with no entry; a
// most-recent record older than yesterday means the streak is 0. The input
// order does not matter.
func CurrentStreak(points []WeightDataPoint, now time.Time) int {
	if len(points) == 0 {
		return 0
	}

	sorted := make([]WeightDataPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FullDate.After(sorted[j].FullDate)
	})

	today := StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)
	latest := StartOfDay(sorted[0].FullDate)

	var start time.Time
	switch {
	case latest.Equal(today):
		start = today
	case latest.Equal(yesterday):
		start = yesterday
	default:
		return 0
	}

	streak := 0
	expected := start
	for _, p := range sorted {
		if !SameDay(p.FullDate, expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// MaxWinStreak returns the longest run of consecutive wins over the ended
// battles, walked in chronological order. Ties break the streak the same as
// losses.
func MaxWinStreak(ended []BattleSummary) int {
	sorted := make([]BattleSummary, len(ended))
	copy(sorted, ended)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EndDate.Before(sorted[j].EndDate)
	})

	best, run := 0, 0
	for _, b := range sorted {
		if b.Winner == OutcomeMe {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}
