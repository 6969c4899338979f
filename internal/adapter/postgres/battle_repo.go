package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weightduel/internal/domain"
)

const battleColumns = `id, entry_code, creator_id, opponent_id,
	creator_start_weight, opponent_start_weight, creator_current_weight, opponent_current_weight,
	target_weight_loss, start_date, end_date, status, winner_id, created_at`

// CreateBattle inserts a new battle and returns its ID. The entry code must
// be unique.
func (d *DB) CreateBattle(ctx context.Context, b *domain.Battle) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO battles(entry_code, creator_id, opponent_id,
			creator_start_weight, opponent_start_weight, creator_current_weight, opponent_current_weight,
			target_weight_loss, start_date, end_date, status, winner_id, created_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id;`,
		b.EntryCode, b.CreatorID, b.OpponentID,
		b.CreatorStartWeight, b.OpponentStartWeight, b.CreatorCurrentWeight, b.OpponentCurrentWeight,
		b.TargetWeightLoss, b.StartDate.UTC(), b.EndDate.UTC(), string(b.Status), b.WinnerID, b.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// GetBattle returns the battle with the given ID, nil if none.
func (d *DB) GetBattle(ctx context.Context, id int64) (*domain.Battle, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+battleColumns+" FROM battles WHERE id = $1;", id)
	return scanBattle(row)
}

// GetBattleByEntryCode returns the battle with the given entry code, nil if
// none.
func (d *DB) GetBattleByEntryCode(ctx context.Context, entryCode string) (*domain.Battle, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+battleColumns+" FROM battles WHERE entry_code = $1;", entryCode)
	return scanBattle(row)
}

// UpdateBattle persists the battle's mutable state.
func (d *DB) UpdateBattle(ctx context.Context, b *domain.Battle) error {
	_, err := d.sql.ExecContext(ctx,
		`UPDATE battles SET opponent_id = $1,
			opponent_start_weight = $2, creator_current_weight = $3, opponent_current_weight = $4,
			end_date = $5, status = $6, winner_id = $7
		 WHERE id = $8;`,
		b.OpponentID, b.OpponentStartWeight, b.CreatorCurrentWeight, b.OpponentCurrentWeight,
		b.EndDate.UTC(), string(b.Status), b.WinnerID, b.ID,
	)
	return err
}

// ListActiveBattles returns the user's pending and in-progress battles,
// newest first.
func (d *DB) ListActiveBattles(ctx context.Context, userID int64) ([]domain.Battle, error) {
	return d.listBattles(ctx, userID, false)
}

// ListEndedBattles returns the user's ended battles, newest first.
func (d *DB) ListEndedBattles(ctx context.Context, userID int64) ([]domain.Battle, error) {
	return d.listBattles(ctx, userID, true)
}

func (d *DB) listBattles(ctx context.Context, userID int64, ended bool) ([]domain.Battle, error) {
	op := "!="
	if ended {
		op = "="
	}
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+battleColumns+" FROM battles WHERE (creator_id = $1 OR opponent_id = $1) AND status "+op+" 'ENDED' ORDER BY created_at DESC;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Battle
	for rows.Next() {
		var b domain.Battle
		if err := rows.Scan(&b.ID, &b.EntryCode, &b.CreatorID, &b.OpponentID,
			&b.CreatorStartWeight, &b.OpponentStartWeight, &b.CreatorCurrentWeight, &b.OpponentCurrentWeight,
			&b.TargetWeightLoss, &b.StartDate, &b.EndDate, &b.Status, &b.WinnerID, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBattle(row *sql.Row) (*domain.Battle, error) {
	var b domain.Battle
	err := row.Scan(&b.ID, &b.EntryCode, &b.CreatorID, &b.OpponentID,
		&b.CreatorStartWeight, &b.OpponentStartWeight, &b.CreatorCurrentWeight, &b.OpponentCurrentWeight,
		&b.TargetWeightLoss, &b.StartDate, &b.EndDate, &b.Status, &b.WinnerID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
