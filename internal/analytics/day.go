// Package analytics contains the pure derivation functions that turn raw
// weight records, goals and battles into the statistics the dashboard
// renders. Every function here is a deterministic, side-effect-free
// transformation: no I/O, no clocks (callers pass "now"), no mutation of
// inputs.
package analytics

import (
	"math"
	"time"
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the signed number of whole calendar days from a to b.
// Both inputs are truncated to their day boundary first, so two timestamps
// 23 hours apart that cross midnight count as one day. Rounding keeps DST
// transitions (23h/25h days) from producing off-by-one results.
func DaysBetween(a, b time.Time) int {
	diff := StartOfDay(b).Sub(StartOfDay(a))
	return int(math.Round(diff.Hours() / 24))
}
