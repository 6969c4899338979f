package analytics

import (
	"math"
	"time"
)

// BattleOutcome is the outcome of a battle from the viewer's perspective.
type BattleOutcome string

// Battle outcomes.
const (
	OutcomeMe           BattleOutcome = "me"
	OutcomeOpponent     BattleOutcome = "opponent"
	OutcomeTie          BattleOutcome = "tie"
	OutcomeUndetermined BattleOutcome = "undetermined"
)

// BattleStatus is the lifecycle state of a battle.
type BattleStatus string

// Battle statuses.
const (
	StatusPending    BattleStatus = "PENDING"
	StatusInProgress BattleStatus = "IN_PROGRESS"
	StatusEnded      BattleStatus = "ENDED"
)

// BattleSummary is a two-party competitive weight challenge as seen by one
// of its participants. Ended battles carry a final Winner; active ones carry
// OutcomeUndetermined.
type BattleSummary struct {
	EntryCode             string        `json:"entryCode"`
	Opponent              string        `json:"opponent"`
	MyStartWeight         float64       `json:"myStartWeight"`
	OpponentStartWeight   float64       `json:"opponentStartWeight"`
	MyCurrentWeight       float64       `json:"myCurrentWeight"`
	OpponentCurrentWeight float64       `json:"opponentCurrentWeight"`
	TargetWeightLoss      float64       `json:"targetWeightLoss"`
	StartDate             time.Time     `json:"startDate"`
	EndDate               time.Time     `json:"endDate"`
	Status                BattleStatus  `json:"status"`
	Winner                BattleOutcome `json:"winner"`
}

// BattleStats aggregates battle outcomes for the dashboard.
type BattleStats struct {
	Won            int `json:"won"`
	Lost           int `json:"lost"`
	Tied           int `json:"tied"`
	InProgress     int `json:"inProgress"`
	WinRatePercent int `json:"winRatePercent"`
}

// AggregateBattles counts outcomes over ended battles and in-progress ones
// over active battles. The win rate only counts decisive outcomes: ties are
// excluded from the denominator. No battles yields all zeros.
func AggregateBattles(active, ended []BattleSummary) BattleStats {
	var stats BattleStats
	for _, b := range ended {
		switch b.Winner {
		case OutcomeMe:
			stats.Won++
		case OutcomeOpponent:
			stats.Lost++
		case OutcomeTie:
			stats.Tied++
		}
	}
	for _, b := range active {
		if b.Status == StatusInProgress {
			stats.InProgress++
		}
	}

	if decisive := stats.Won + stats.Lost; decisive > 0 {
		stats.WinRatePercent = int(math.Round(100 * float64(stats.Won) / float64(decisive)))
	}
	return stats
}
