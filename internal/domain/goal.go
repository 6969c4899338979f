package domain

import (
	"context"
	"time"
)

// Goal is a user-declared weight target over a time window. Goals are
// created once and read thereafter; expiry is derived from the end date,
// never stored.
type Goal struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	StartWeight  float64   `json:"startWeight"`
	TargetWeight float64   `json:"targetWeight"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Expired reports whether the goal's end date has passed.
func (g Goal) Expired(now time.Time) bool {
	return now.After(g.EndDate)
}

// GoalRepository is the port for goal persistence.
type GoalRepository interface {
	CreateGoal(ctx context.Context, g *Goal) (int64, error)
	GetGoal(ctx context.Context, userID, id int64) (*Goal, error)
	DeleteGoal(ctx context.Context, userID, id int64) (bool, error)
	ListGoals(ctx context.Context, userID int64) ([]Goal, error)
}
