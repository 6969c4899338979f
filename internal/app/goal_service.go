package app

import (
	"context"
	"errors"
	"time"

	"weightduel/internal/domain"
)

// GoalView is a goal plus its derived expiry state.
type GoalView struct {
	domain.Goal
	IsExpired bool `json:"isExpired"`
}

// GoalService encapsulates goal management use cases.
type GoalService struct {
	repo domain.GoalRepository
}

// NewGoalService creates a GoalService backed by the given repository.
func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// Create validates and stores a new goal.
func (s *GoalService) Create(ctx context.Context, g domain.Goal) (*domain.Goal, error) {
	if g.Title == "" {
		return nil, errors.New("title is required")
	}
	if g.StartWeight <= 0 || g.TargetWeight <= 0 {
		return nil, errors.New("weights must be > 0")
	}
	if !g.EndDate.After(g.StartDate) {
		return nil, errors.New("endDate must be after startDate")
	}

	g.CreatedAt = time.Now()
	id, err := s.repo.CreateGoal(ctx, &g)
	if err != nil {
		return nil, err
	}
	return s.repo.GetGoal(ctx, g.UserID, id)
}

// List returns the user's goals with expiry derived against now.
func (s *GoalService) List(ctx context.Context, userID int64, now time.Time) ([]GoalView, error) {
	goals, err := s.repo.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, GoalView{Goal: g, IsExpired: g.Expired(now)})
	}
	return views, nil
}

// Delete removes a goal, reporting whether it existed.
func (s *GoalService) Delete(ctx context.Context, userID, id int64) (bool, error) {
	return s.repo.DeleteGoal(ctx, userID, id)
}

// Active returns the most recently created goal that has not expired, nil
// when the user has none.
func (s *GoalService) Active(ctx context.Context, userID int64, now time.Time) (*domain.Goal, error) {
	goals, err := s.repo.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	var active *domain.Goal
	for i := range goals {
		g := &goals[i]
		if g.Expired(now) {
			continue
		}
		if active == nil || g.CreatedAt.After(active.CreatedAt) {
			active = g
		}
	}
	return active, nil
}
