package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// WeightRecord is one logged body-weight observation. At most one record is
// expected per calendar day; the service layer enforces that before records
// reach this package.
type WeightRecord struct {
	Date     time.Time
	WeightKg float64
}

// WeightDataPoint is a chart-ready view of one weight record: the weight
// itself plus the derived values the dashboard plots alongside it.
type WeightDataPoint struct {
	Date      string    `json:"date"`
	FullDate  time.Time `json:"fullDate"`
	Weight    float64   `json:"weight"`
	Target    float64   `json:"target"`
	BMI       float64   `json:"bmi"`
	Change    float64   `json:"change"`
	DayOfWeek int       `json:"dayOfWeek"`
}

// BuildDataPoints sorts records ascending by date and derives per-point BMI,
// day-over-day change (0 for the first point) and the weekday index
// (Sunday=0). targetWeight comes from the user's active goal; pass 0 when no
// goal is set. heightCm <= 0 falls back to DefaultHeightCm.
func BuildDataPoints(records []WeightRecord, targetWeight, heightCm float64) []WeightDataPoint {
	if len(records) == 0 {
		return nil
	}

	sorted := make([]WeightRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]WeightDataPoint, 0, len(sorted))
	for i, r := range sorted {
		var change float64
		if i > 0 {
			change = round1(r.WeightKg - sorted[i-1].WeightKg)
		}
		points = append(points, WeightDataPoint{
			Date:      fmt.Sprintf("%d.%d", int(r.Date.Month()), r.Date.Day()),
			FullDate:  r.Date,
			Weight:    r.WeightKg,
			Target:    targetWeight,
			BMI:       round1(ComputeBMI(r.WeightKg, heightCm)),
			Change:    change,
			DayOfWeek: int(r.Date.Weekday()),
		})
	}
	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
