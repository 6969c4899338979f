package analytics

import "math"

// distributionBins is the number of equal-width histogram bins used when the
// input spans more than one distinct value.
const distributionBins = 6

// DistributionBucket is one histogram bucket over a weight series.
type DistributionBucket struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Distribution buckets the weight series into a histogram. An empty input
// yields no buckets. A series with a single distinct value yields one bucket
// covering it at 100%. Otherwise [min, max] is split into six equal-width
// bins, lower-bound inclusive, with the maximum value landing in the last
// bin. Empty bins are omitted.
func Distribution(weights []float64) []DistributionBucket {
	if len(weights) == 0 {
		return nil
	}

	lo, hi := weights[0], weights[0]
	for _, w := range weights[1:] {
		if w < lo {
			lo = w
		}
		if w > hi {
			hi = w
		}
	}

	if lo == hi {
		return []DistributionBucket{{Min: lo, Max: hi, Count: len(weights), Percentage: 100}}
	}

	width := (hi - lo) / distributionBins
	var counts [distributionBins]int
	for _, w := range weights {
		idx := int((w - lo) / width)
		if idx >= distributionBins {
			idx = distributionBins - 1
		}
		counts[idx]++
	}

	total := float64(len(weights))
	buckets := make([]DistributionBucket, 0, distributionBins)
	for i, c := range counts {
		if c == 0 {
			continue
		}
		buckets = append(buckets, DistributionBucket{
			Min:        lo + width*float64(i),
			Max:        lo + width*float64(i+1),
			Count:      c,
			Percentage: 100 * float64(c) / total,
		})
	}
	return buckets
}

// Volatility returns the population standard deviation of the weight series,
// rounded to two decimal places. Fewer than two values yield 0.
func Volatility(weights []float64) float64 {
	if len(weights) < 2 {
		return 0
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	mean := sum / float64(len(weights))

	var sqDiff float64
	for _, w := range weights {
		d := w - mean
		sqDiff += d * d
	}
	stddev := math.Sqrt(sqDiff / float64(len(weights)))
	return math.Round(stddev*100) / 100
}
