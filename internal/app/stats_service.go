package app

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"weightduel/internal/analytics"
	"weightduel/internal/domain"
)

// DashboardStats is everything the analytics dashboard renders, derived in
// one pass from the user's records, goal and battles.
type DashboardStats struct {
	Points        []analytics.WeightDataPoint    `json:"points"`
	CurrentStreak int                            `json:"currentStreak"`
	BMI           float64                        `json:"bmi"`
	BMICategory   analytics.BMICategory          `json:"bmiCategory"`
	Volatility    float64                        `json:"volatility"`
	Distribution  []analytics.DistributionBucket `json:"distribution"`
	GoalProgress  float64                        `json:"goalProgress"`
	Battles       analytics.BattleStats          `json:"battles"`
	MaxWinStreak  int                            `json:"maxWinStreak"`
}

// StatsService composes the pure derivation functions over repository data.
// The derivations are deterministic, so the last computed dashboard is
// memoized by an input fingerprint and reused until the inputs change.
type StatsService struct {
	weights domain.WeightRepository
	users   domain.UserRepository
	goals   *GoalService
	battles *BattleService

	dashboardMemo analytics.Memo[DashboardStats]
}

// NewStatsService creates a StatsService over the given dependencies.
func NewStatsService(weights domain.WeightRepository, users domain.UserRepository, goals *GoalService, battles *BattleService) *StatsService {
	return &StatsService{
		weights: weights,
		users:   users,
		goals:   goals,
		battles: battles,
	}
}

// Dashboard derives the full dashboard for a user.
func (s *StatsService) Dashboard(ctx context.Context, userID int64, now time.Time) (DashboardStats, error) {
	records, err := s.weights.ListWeightRecords(ctx, userID)
	if err != nil {
		return DashboardStats{}, err
	}

	goal, err := s.goals.Active(ctx, userID, now)
	if err != nil {
		return DashboardStats{}, err
	}

	active, err := s.battles.ListActive(ctx, userID)
	if err != nil {
		return DashboardStats{}, err
	}
	ended, err := s.battles.ListEnded(ctx, userID)
	if err != nil {
		return DashboardStats{}, err
	}

	heightCm := analytics.DefaultHeightCm
	if u, err := s.users.GetByID(ctx, userID); err == nil && u != nil && u.HeightCm > 0 {
		heightCm = u.HeightCm
	}

	key := dashboardFingerprint(userID, now, records, goal, active, ended, heightCm)
	stats := s.dashboardMemo.Get(key, func() DashboardStats {
		return deriveDashboard(records, goal, active, ended, heightCm, now)
	})
	return stats, nil
}

// BattleOverview derives only the battle aggregate and max win streak.
func (s *StatsService) BattleOverview(ctx context.Context, userID int64) (analytics.BattleStats, int, error) {
	active, err := s.battles.ListActive(ctx, userID)
	if err != nil {
		return analytics.BattleStats{}, 0, err
	}
	ended, err := s.battles.ListEnded(ctx, userID)
	if err != nil {
		return analytics.BattleStats{}, 0, err
	}
	return analytics.AggregateBattles(active, ended), analytics.MaxWinStreak(ended), nil
}

func deriveDashboard(
	records []domain.WeightRecord,
	goal *domain.Goal,
	active, ended []analytics.BattleSummary,
	heightCm float64,
	now time.Time,
) DashboardStats {
	series := make([]analytics.WeightRecord, 0, len(records))
	weights := make([]float64, 0, len(records))
	for _, r := range records {
		date, err := r.Date(time.Local)
		if err != nil {
			continue
		}
		series = append(series, analytics.WeightRecord{Date: date, WeightKg: r.WeightKg})
		weights = append(weights, r.WeightKg)
	}

	var targetWeight float64
	var snapshot *analytics.GoalSnapshot
	if goal != nil {
		targetWeight = goal.TargetWeight
		snapshot = &analytics.GoalSnapshot{
			StartWeight:  goal.StartWeight,
			TargetWeight: goal.TargetWeight,
		}
	}

	points := analytics.BuildDataPoints(series, targetWeight, heightCm)

	var current *float64
	var bmi float64
	var category analytics.BMICategory
	if len(points) > 0 {
		last := points[len(points)-1]
		current = &last.Weight
		bmi = last.BMI // rounded like the series points
		category = analytics.CategorizeBMI(bmi)
	}

	return DashboardStats{
		Points:        points,
		CurrentStreak: analytics.CurrentStreak(points, now),
		BMI:           bmi,
		BMICategory:   category,
		Volatility:    analytics.Volatility(weights),
		Distribution:  analytics.Distribution(weights),
		GoalProgress:  analytics.GoalProgress(snapshot, current),
		Battles:       analytics.AggregateBattles(active, ended),
		MaxWinStreak:  analytics.MaxWinStreak(ended),
	}
}

// dashboardFingerprint hashes every input the derivation reads: the day (the
// streak anchor moves at midnight), each record's day and weight, the goal
// weights and each battle's status and state. Any input change produces a new
// key and forces recomputation.
func dashboardFingerprint(
	userID int64,
	now time.Time,
	records []domain.WeightRecord,
	goal *domain.Goal,
	active, ended []analytics.BattleSummary,
	heightCm float64,
) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%.1f", userID, now.Format("2006-01-02"), heightCm)
	for _, r := range records {
		fmt.Fprintf(h, "|r:%s=%g@%d", r.Day, r.WeightKg, r.CreatedAt.UnixNano())
	}
	if goal != nil {
		fmt.Fprintf(h, "|g:%d:%g>%g@%d", goal.ID, goal.StartWeight, goal.TargetWeight, goal.EndDate.Unix())
	}
	for _, b := range active {
		fmt.Fprintf(h, "|a:%s:%s:%g:%g", b.EntryCode, b.Status, b.MyCurrentWeight, b.OpponentCurrentWeight)
	}
	for _, b := range ended {
		fmt.Fprintf(h, "|e:%s:%s@%d", b.EntryCode, b.Winner, b.EndDate.Unix())
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
