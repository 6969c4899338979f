package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"weightduel/internal/adapter/memory"
	"weightduel/internal/analytics"
)

func newBattleFixture(t *testing.T) (*BattleService, *memory.DB, int64, int64) {
	t.Helper()
	db := memory.New()
	ctx := context.Background()

	creator, err := db.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	opponent, err := db.Create(ctx, "bob", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewBattleService(db, db), db, creator.ID, opponent.ID
}

func TestBattleCreate(t *testing.T) {
	svc, _, creatorID, _ := newBattleFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, creatorID, 80, 3, time.Now().AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Status != "PENDING" {
		t.Errorf("expected PENDING, got %s", b.Status)
	}
	if len(b.EntryCode) != 6 {
		t.Errorf("expected 6-char entry code, got %q", b.EntryCode)
	}
	if b.CreatorCurrentWeight != 80 {
		t.Errorf("current weight must start at start weight, got %f", b.CreatorCurrentWeight)
	}
}

func TestBattleCreateValidation(t *testing.T) {
	svc, _, creatorID, _ := newBattleFixture(t)
	ctx := context.Background()
	future := time.Now().AddDate(0, 1, 0)

	cases := []struct {
		name        string
		startWeight float64
		targetLoss  float64
		endDate     time.Time
	}{
		{"zero start weight", 0, 3, future},
		{"zero target loss", 80, 0, future},
		{"end date in the past", 80, 3, time.Now().Add(-time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, creatorID, tc.startWeight, tc.targetLoss, tc.endDate); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBattleJoin(t *testing.T) {
	svc, _, creatorID, opponentID := newBattleFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, creatorID, 80, 3, time.Now().AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The creator cannot join their own battle.
	if _, err := svc.Join(ctx, creatorID, b.EntryCode, 90); !errors.Is(err, ErrBattleNotJoinable) {
		t.Errorf("expected ErrBattleNotJoinable, got %v", err)
	}

	joined, err := svc.Join(ctx, opponentID, b.EntryCode, 90)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if joined.Status != "IN_PROGRESS" {
		t.Errorf("expected IN_PROGRESS, got %s", joined.Status)
	}
	if joined.OpponentID != opponentID || joined.OpponentStartWeight != 90 {
		t.Errorf("unexpected opponent state: %+v", joined)
	}

	// A battle already in progress cannot be joined again.
	if _, err := svc.Join(ctx, opponentID, b.EntryCode, 90); !errors.Is(err, ErrBattleNotJoinable) {
		t.Errorf("expected ErrBattleNotJoinable, got %v", err)
	}

	if _, err := svc.Join(ctx, opponentID, "NOSUCH", 90); !errors.Is(err, ErrBattleNotFound) {
		t.Errorf("expected ErrBattleNotFound, got %v", err)
	}
}

func TestBattleWeighIn(t *testing.T) {
	svc, _, creatorID, opponentID := newBattleFixture(t)
	ctx := context.Background()

	b, _ := svc.Create(ctx, creatorID, 80, 3, time.Now().AddDate(0, 1, 0))

	// Weigh-ins only count once the battle is in progress.
	if _, err := svc.WeighIn(ctx, creatorID, b.ID, 79); err == nil {
		t.Error("expected error on pending battle")
	}

	_, _ = svc.Join(ctx, opponentID, b.EntryCode, 90)

	updated, err := svc.WeighIn(ctx, creatorID, b.ID, 78.5)
	if err != nil {
		t.Fatalf("WeighIn: %v", err)
	}
	if updated.CreatorCurrentWeight != 78.5 {
		t.Errorf("expected 78.5, got %f", updated.CreatorCurrentWeight)
	}

	updated, err = svc.WeighIn(ctx, opponentID, b.ID, 89)
	if err != nil {
		t.Fatalf("WeighIn: %v", err)
	}
	if updated.OpponentCurrentWeight != 89 {
		t.Errorf("expected 89, got %f", updated.OpponentCurrentWeight)
	}

	if _, err := svc.WeighIn(ctx, int64(999), b.ID, 70); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("expected ErrNotParticipant, got %v", err)
	}
}

func TestBattleFinish(t *testing.T) {
	cases := []struct {
		name           string
		creatorFinal   float64
		opponentFinal  float64
		wantCreatorWin bool
		wantTie        bool
	}{
		{"creator loses more", 77, 89, true, false},
		{"opponent loses more", 79.5, 85, false, false},
		{"equal loss ties", 78, 88, false, true}, // both lost 2kg
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, creatorID, opponentID := newBattleFixture(t)
			ctx := context.Background()

			b, _ := svc.Create(ctx, creatorID, 80, 3, time.Now().AddDate(0, 1, 0))
			_, _ = svc.Join(ctx, opponentID, b.EntryCode, 90)
			_, _ = svc.WeighIn(ctx, creatorID, b.ID, tc.creatorFinal)
			_, _ = svc.WeighIn(ctx, opponentID, b.ID, tc.opponentFinal)

			done, err := svc.Finish(ctx, creatorID, b.ID)
			if err != nil {
				t.Fatalf("Finish: %v", err)
			}
			if done.Status != "ENDED" {
				t.Errorf("expected ENDED, got %s", done.Status)
			}
			switch {
			case tc.wantTie:
				if done.WinnerID != -1 {
					t.Errorf("expected tie, got winner %d", done.WinnerID)
				}
			case tc.wantCreatorWin:
				if done.WinnerID != creatorID {
					t.Errorf("expected creator win, got winner %d", done.WinnerID)
				}
			default:
				if done.WinnerID != opponentID {
					t.Errorf("expected opponent win, got winner %d", done.WinnerID)
				}
			}

			// Finishing twice is rejected.
			if _, err := svc.Finish(ctx, creatorID, b.ID); err == nil {
				t.Error("expected error on ended battle")
			}
		})
	}
}

func TestBattleSummariesViewerPerspective(t *testing.T) {
	svc, _, creatorID, opponentID := newBattleFixture(t)
	ctx := context.Background()

	b, _ := svc.Create(ctx, creatorID, 80, 3, time.Now().AddDate(0, 1, 0))
	_, _ = svc.Join(ctx, opponentID, b.EntryCode, 90)
	_, _ = svc.WeighIn(ctx, creatorID, b.ID, 77)
	_, _ = svc.Finish(ctx, creatorID, b.ID)

	creatorView, err := svc.ListEnded(ctx, creatorID)
	if err != nil {
		t.Fatalf("ListEnded: %v", err)
	}
	if len(creatorView) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(creatorView))
	}
	cv := creatorView[0]
	if cv.Winner != analytics.OutcomeMe {
		t.Errorf("creator should see a win, got %s", cv.Winner)
	}
	if cv.MyStartWeight != 80 || cv.OpponentStartWeight != 90 {
		t.Errorf("creator perspective wrong: %+v", cv)
	}
	if cv.Opponent != "bob" {
		t.Errorf("expected opponent name bob, got %q", cv.Opponent)
	}

	opponentView, _ := svc.ListEnded(ctx, opponentID)
	ov := opponentView[0]
	if ov.Winner != analytics.OutcomeOpponent {
		t.Errorf("opponent should see a loss, got %s", ov.Winner)
	}
	if ov.MyStartWeight != 90 || ov.OpponentStartWeight != 80 {
		t.Errorf("opponent perspective wrong: %+v", ov)
	}
	if ov.Opponent != "alice" {
		t.Errorf("expected opponent name alice, got %q", ov.Opponent)
	}
}
