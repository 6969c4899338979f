package analytics

// GoalSnapshot is the slice of a goal that progress computation needs.
type GoalSnapshot struct {
	StartWeight  float64
	TargetWeight float64
}

// GoalProgress returns how far the user has moved from the goal's start
// weight towards its target, as a percentage clamped to [0, 100]. A nil goal
// or unknown current weight yields 0. A goal whose target equals its start
// is trivially met, so it yields 100. The formula is direction-agnostic:
// numerator and denominator flip sign together for gain and loss goals.
func GoalProgress(goal *GoalSnapshot, currentWeight *float64) float64 {
	if goal == nil || currentWeight == nil {
		return 0
	}

	totalChange := goal.TargetWeight - goal.StartWeight
	if totalChange == 0 {
		return 100
	}

	progress := 100 * (*currentWeight - goal.StartWeight) / totalChange
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
