package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weightduel/internal/domain"
)

// CreateGoal inserts a new goal and returns its ID.
func (d *DB) CreateGoal(ctx context.Context, g *domain.Goal) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO goals(user_id, title, start_date, end_date, start_weight, target_weight, created_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
		g.UserID, g.Title, g.StartDate.UTC(), g.EndDate.UTC(), g.StartWeight, g.TargetWeight, g.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// GetGoal returns the user's goal with the given ID, nil if none.
func (d *DB) GetGoal(ctx context.Context, userID, id int64) (*domain.Goal, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT id, user_id, title, start_date, end_date, start_weight, target_weight, created_at
		 FROM goals WHERE user_id = $1 AND id = $2;`, userID, id)

	var g domain.Goal
	if err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.StartDate, &g.EndDate, &g.StartWeight, &g.TargetWeight, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// DeleteGoal removes a goal, reporting whether it existed.
func (d *DB) DeleteGoal(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM goals WHERE user_id = $1 AND id = $2;", userID, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListGoals returns the user's goals, newest first.
func (d *DB) ListGoals(ctx context.Context, userID int64) ([]domain.Goal, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, title, start_date, end_date, start_weight, target_weight, created_at
		 FROM goals WHERE user_id = $1 ORDER BY created_at DESC;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Goal
	for rows.Next() {
		var g domain.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.StartDate, &g.EndDate, &g.StartWeight, &g.TargetWeight, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
