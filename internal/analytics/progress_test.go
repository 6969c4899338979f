package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weightduel/internal/analytics"
)

func float64Ptr(v float64) *float64 { return &v }

func TestGoalProgress(t *testing.T) {
	lossGoal := &analytics.GoalSnapshot{StartWeight: 80, TargetWeight: 70}
	gainGoal := &analytics.GoalSnapshot{StartWeight: 60, TargetWeight: 70}

	tests := []struct {
		name    string
		goal    *analytics.GoalSnapshot
		current *float64
		want    float64
	}{
		{"nil goal", nil, float64Ptr(75), 0},
		{"nil current weight", lossGoal, nil, 0},
		{"halfway down", lossGoal, float64Ptr(75), 50},
		{"target reached", lossGoal, float64Ptr(70), 100},
		{"overshoot clamps to 100", lossGoal, float64Ptr(60), 100},
		{"regression clamps to 0", lossGoal, float64Ptr(90), 0},
		{"gain goal halfway", gainGoal, float64Ptr(65), 50},
		{"gain goal overshoot clamps", gainGoal, float64Ptr(80), 100},
		{"gain goal regression clamps", gainGoal, float64Ptr(55), 0},
		{
			"degenerate goal is trivially met",
			&analytics.GoalSnapshot{StartWeight: 70, TargetWeight: 70},
			float64Ptr(72),
			100,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, analytics.GoalProgress(tc.goal, tc.current))
		})
	}
}
