package domain

import (
	"context"
	"time"
)

// BattleStatus is the lifecycle state of a battle.
type BattleStatus string

// Battle lifecycle states. A battle is created pending, becomes in-progress
// once an opponent joins, and is ended once a winner is decided.
const (
	BattlePending    BattleStatus = "PENDING"
	BattleInProgress BattleStatus = "IN_PROGRESS"
	BattleEnded      BattleStatus = "ENDED"
)

// Winner sentinel for tied battles. WinnerID 0 means undecided.
const WinnerTie int64 = -1

// Battle is a two-party competitive weight-loss challenge. The creator
// opens the battle and shares the entry code; the opponent joins with it.
// Current weights track the participants' latest weigh-ins during the
// battle window.
type Battle struct {
	ID                    int64        `json:"id"`
	EntryCode             string       `json:"entryCode"`
	CreatorID             int64        `json:"creatorId"`
	OpponentID            int64        `json:"opponentId"`
	CreatorStartWeight    float64      `json:"creatorStartWeight"`
	OpponentStartWeight   float64      `json:"opponentStartWeight"`
	CreatorCurrentWeight  float64      `json:"creatorCurrentWeight"`
	OpponentCurrentWeight float64      `json:"opponentCurrentWeight"`
	TargetWeightLoss      float64      `json:"targetWeightLoss"`
	StartDate             time.Time    `json:"startDate"`
	EndDate               time.Time    `json:"endDate"`
	Status                BattleStatus `json:"status"`
	WinnerID              int64        `json:"winnerId"`
	CreatedAt             time.Time    `json:"createdAt"`
}

// HasParticipant reports whether the given user takes part in the battle.
func (b Battle) HasParticipant(userID int64) bool {
	return b.CreatorID == userID || (b.OpponentID != 0 && b.OpponentID == userID)
}

// BattleRepository is the port for battle persistence.
type BattleRepository interface {
	CreateBattle(ctx context.Context, b *Battle) (int64, error)
	GetBattle(ctx context.Context, id int64) (*Battle, error)
	GetBattleByEntryCode(ctx context.Context, entryCode string) (*Battle, error)
	UpdateBattle(ctx context.Context, b *Battle) error
	ListActiveBattles(ctx context.Context, userID int64) ([]Battle, error)
	ListEndedBattles(ctx context.Context, userID int64) ([]Battle, error)
}
