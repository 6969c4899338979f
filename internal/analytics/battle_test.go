package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weightduel/internal/analytics"
)

func TestAggregateBattles_Empty(t *testing.T) {
	stats := analytics.AggregateBattles(nil, nil)
	assert.Equal(t, analytics.BattleStats{}, stats)
}

func TestAggregateBattles_Counts(t *testing.T) {
	ended := []analytics.BattleSummary{
		{Winner: analytics.OutcomeMe},
		{Winner: analytics.OutcomeMe},
		{Winner: analytics.OutcomeOpponent},
		{Winner: analytics.OutcomeTie},
	}
	active := []analytics.BattleSummary{
		{Status: analytics.StatusInProgress},
		{Status: analytics.StatusInProgress},
		{Status: analytics.StatusPending},
	}

	stats := analytics.AggregateBattles(active, ended)
	assert.Equal(t, 2, stats.Won)
	assert.Equal(t, 1, stats.Lost)
	assert.Equal(t, 1, stats.Tied)
	assert.Equal(t, 2, stats.InProgress, "pending battles are not in progress")
	// 2 wins out of 3 decisive outcomes -> 66.67 rounds to 67.
	assert.Equal(t, 67, stats.WinRatePercent)
}

// Ties count in the tied bucket but not in the win-rate denominator.
func TestAggregateBattles_WinRateExcludesTies(t *testing.T) {
	ended := []analytics.BattleSummary{
		{Winner: analytics.OutcomeMe},
		{Winner: analytics.OutcomeTie},
		{Winner: analytics.OutcomeOpponent},
	}
	stats := analytics.AggregateBattles(nil, ended)
	assert.Equal(t, 1, stats.Won)
	assert.Equal(t, 1, stats.Lost)
	assert.Equal(t, 1, stats.Tied)
	assert.Equal(t, 50, stats.WinRatePercent)
}

func TestAggregateBattles_NoDecisiveOutcomes(t *testing.T) {
	ended := []analytics.BattleSummary{
		{Winner: analytics.OutcomeTie},
		{Winner: analytics.OutcomeTie},
	}
	stats := analytics.AggregateBattles(nil, ended)
	assert.Equal(t, 0, stats.WinRatePercent)
	assert.Equal(t, 2, stats.Tied)
}
