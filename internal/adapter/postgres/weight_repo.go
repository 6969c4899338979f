package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weightduel/internal/domain"
)

// UpsertWeightRecord stores the weight for one (user, day), replacing any
// existing record for that day.
func (d *DB) UpsertWeightRecord(ctx context.Context, userID int64, day string, weightKg float64, createdAt time.Time) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO weight_records(user_id, day, weight_kg, created_at) VALUES($1, $2, $3, $4)
		 ON CONFLICT (user_id, day) DO UPDATE SET weight_kg = EXCLUDED.weight_kg, created_at = EXCLUDED.created_at
		 RETURNING id;`,
		userID, day, weightKg, createdAt.UTC(),
	).Scan(&id)
	return id, err
}

// GetWeightRecord returns the record for a local calendar day, nil if none.
func (d *DB) GetWeightRecord(ctx context.Context, userID int64, day string) (*domain.WeightRecord, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, day, weight_kg, created_at FROM weight_records WHERE user_id = $1 AND day = $2;",
		userID, day,
	)

	var r domain.WeightRecord
	if err := row.Scan(&r.ID, &r.UserID, &r.Day, &r.WeightKg, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// DeleteWeightRecord removes a day's record, reporting whether it existed.
func (d *DB) DeleteWeightRecord(ctx context.Context, userID int64, day string) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM weight_records WHERE user_id = $1 AND day = $2;", userID, day)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListWeightRecords returns all of a user's records in ascending day order.
func (d *DB) ListWeightRecords(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, day, weight_kg, created_at FROM weight_records WHERE user_id = $1 ORDER BY day ASC;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightRecord
	for rows.Next() {
		var r domain.WeightRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Day, &r.WeightKg, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListRecentWeightRecords returns the most recent records up to limit, newest
// first.
func (d *DB) ListRecentWeightRecords(ctx context.Context, userID int64, limit int) ([]domain.WeightRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, day, weight_kg, created_at FROM weight_records WHERE user_id = $1 ORDER BY day DESC LIMIT $2;",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WeightRecord, 0, limit)
	for rows.Next() {
		var r domain.WeightRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Day, &r.WeightKg, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
