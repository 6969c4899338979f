package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weightduel/internal/analytics"
)

func TestComputeBMI(t *testing.T) {
	// 70kg at 170cm -> 70 / 1.7^2 = 24.22...
	got := analytics.ComputeBMI(70, 170)
	assert.InDelta(t, 24.22, got, 0.01)
}

func TestComputeBMI_DefaultHeight(t *testing.T) {
	assert.Equal(t, analytics.ComputeBMI(70, analytics.DefaultHeightCm), analytics.ComputeBMI(70, 0))
	assert.Equal(t, analytics.ComputeBMI(70, analytics.DefaultHeightCm), analytics.ComputeBMI(70, -5))
}

func TestComputeBMI_MonotonicInWeight(t *testing.T) {
	prev := 0.0
	for w := 40.0; w <= 150; w += 0.5 {
		bmi := analytics.ComputeBMI(w, 175)
		assert.Greater(t, bmi, prev, "BMI must strictly increase with weight")
		prev = bmi
	}
}

func TestCategorizeBMI(t *testing.T) {
	tests := []struct {
		name string
		bmi  float64
		want analytics.BMICategory
	}{
		{"well under", 15.0, analytics.CategoryUnderweight},
		{"just under normal", 18.49, analytics.CategoryUnderweight},
		{"normal lower bound inclusive", 18.5, analytics.CategoryNormal},
		{"mid normal", 22.0, analytics.CategoryNormal},
		{"overweight lower bound inclusive", 25.0, analytics.CategoryOverweight},
		{"high overweight", 29.99, analytics.CategoryOverweight},
		{"obese lower bound inclusive", 30.0, analytics.CategoryObese},
		{"well over", 45.0, analytics.CategoryObese},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, analytics.CategorizeBMI(tc.bmi))
		})
	}
}

// Category boundaries must be exact: a weight chosen to hit BMI 18.5 at any
// height lands in normal, not underweight.
func TestCategorizeBMI_BoundaryExactAcrossHeights(t *testing.T) {
	for _, h := range []float64{125, 150, 175, 200} {
		m := h / 100
		w := 18.5 * m * m
		cat := analytics.CategorizeBMI(analytics.ComputeBMI(w, h))
		assert.Equal(t, analytics.CategoryNormal, cat, "height %v", h)
	}
}
