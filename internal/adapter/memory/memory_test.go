package memory

import (
	"context"
	"testing"
	"time"

	"weightduel/internal/domain"
)

func TestWeightRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := int64(1)

	now := time.Now()
	id, err := db.UpsertWeightRecord(ctx, userID, "2026-08-31", 70.0, now)
	if err != nil {
		t.Fatalf("UpsertWeightRecord: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero ID")
	}

	// Upserting the same day replaces, not duplicates.
	id2, err := db.UpsertWeightRecord(ctx, userID, "2026-08-31", 69.5, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("UpsertWeightRecord: %v", err)
	}
	if id2 != id {
		t.Errorf("expected same ID on upsert, got %d and %d", id, id2)
	}

	records, err := db.ListWeightRecords(ctx, userID)
	if err != nil {
		t.Fatalf("ListWeightRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].WeightKg != 69.5 {
		t.Errorf("expected 69.5, got %f", records[0].WeightKg)
	}

	// Other user sees nothing.
	others, _ := db.ListWeightRecords(ctx, 999)
	if len(others) != 0 {
		t.Error("expected 0 records for other user")
	}

	// Recent ordering is descending by day.
	_, _ = db.UpsertWeightRecord(ctx, userID, "2026-08-29", 71.0, now)
	_, _ = db.UpsertWeightRecord(ctx, userID, "2026-08-30", 70.5, now)
	recent, err := db.ListRecentWeightRecords(ctx, userID, 2)
	if err != nil {
		t.Fatalf("ListRecentWeightRecords: %v", err)
	}
	if len(recent) != 2 || recent[0].Day != "2026-08-31" || recent[1].Day != "2026-08-30" {
		t.Errorf("unexpected recent records: %+v", recent)
	}

	got, err := db.GetWeightRecord(ctx, userID, "2026-08-30")
	if err != nil {
		t.Fatalf("GetWeightRecord: %v", err)
	}
	if got == nil || got.WeightKg != 70.5 {
		t.Errorf("unexpected record: %+v", got)
	}

	ok, err := db.DeleteWeightRecord(ctx, userID, "2026-08-30")
	if err != nil || !ok {
		t.Fatalf("DeleteWeightRecord: ok=%v err=%v", ok, err)
	}
	if got, _ := db.GetWeightRecord(ctx, userID, "2026-08-30"); got != nil {
		t.Error("expected record deleted")
	}
}

func TestGoalRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	g := &domain.Goal{
		UserID:       1,
		Title:        "summer cut",
		StartDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		StartWeight:  80,
		TargetWeight: 74,
		CreatedAt:    time.Now(),
	}
	id, err := db.CreateGoal(ctx, g)
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	got, err := db.GetGoal(ctx, 1, id)
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if got == nil || got.Title != "summer cut" {
		t.Fatalf("unexpected goal: %+v", got)
	}

	// Goals are scoped per user.
	if stranger, _ := db.GetGoal(ctx, 2, id); stranger != nil {
		t.Error("expected nil for other user's goal")
	}

	goals, _ := db.ListGoals(ctx, 1)
	if len(goals) != 1 {
		t.Errorf("expected 1 goal, got %d", len(goals))
	}

	ok, err := db.DeleteGoal(ctx, 1, id)
	if err != nil || !ok {
		t.Fatalf("DeleteGoal: ok=%v err=%v", ok, err)
	}
}

func TestBattleRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	b := &domain.Battle{
		EntryCode:          "ABC234",
		CreatorID:          1,
		CreatorStartWeight: 80,
		TargetWeightLoss:   3,
		Status:             domain.BattlePending,
		CreatedAt:          time.Now(),
	}
	id, err := db.CreateBattle(ctx, b)
	if err != nil {
		t.Fatalf("CreateBattle: %v", err)
	}

	// Entry codes are unique.
	if _, err := db.CreateBattle(ctx, &domain.Battle{EntryCode: "ABC234", CreatorID: 2}); err == nil {
		t.Error("expected duplicate entry code error")
	}

	got, err := db.GetBattleByEntryCode(ctx, "ABC234")
	if err != nil {
		t.Fatalf("GetBattleByEntryCode: %v", err)
	}
	if got == nil || got.ID != id {
		t.Fatalf("unexpected battle: %+v", got)
	}

	got.OpponentID = 2
	got.Status = domain.BattleInProgress
	if err := db.UpdateBattle(ctx, got); err != nil {
		t.Fatalf("UpdateBattle: %v", err)
	}

	active, _ := db.ListActiveBattles(ctx, 2)
	if len(active) != 1 {
		t.Fatalf("expected 1 active battle for opponent, got %d", len(active))
	}

	got.Status = domain.BattleEnded
	got.WinnerID = 2
	_ = db.UpdateBattle(ctx, got)

	active, _ = db.ListActiveBattles(ctx, 1)
	if len(active) != 0 {
		t.Error("ended battle must not be listed active")
	}
	ended, _ := db.ListEndedBattles(ctx, 1)
	if len(ended) != 1 {
		t.Errorf("expected 1 ended battle, got %d", len(ended))
	}
}

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "bob", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Username != "bob" {
		t.Errorf("expected bob, got %s", u.Username)
	}

	u2, err := db.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u2 == nil || u2.ID != u.ID {
		t.Error("failed to retrieve user")
	}

	if err := db.UpdateHeight(ctx, u.ID, 178); err != nil {
		t.Fatalf("UpdateHeight: %v", err)
	}
	u3, _ := db.GetByID(ctx, u.ID)
	if u3 == nil || u3.HeightCm != 178 {
		t.Error("height not stored")
	}

	count, _ := db.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	err := repo.Create(ctx, 1, "token123", "agent", "127.0.0.1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	sess, err := repo.GetByToken(ctx, "token123")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if sess == nil || sess.UserAgent != "agent" {
		t.Errorf("unexpected session: %+v", sess)
	}

	// Expired sessions disappear on read.
	_ = repo.Create(ctx, 1, "stale", "agent", "127.0.0.1", time.Now().Add(-time.Minute))
	if s, _ := repo.GetByToken(ctx, "stale"); s != nil {
		t.Error("expected expired session to be dropped")
	}

	_ = repo.Delete(ctx, "token123")
	sess, _ = repo.GetByToken(ctx, "token123")
	if sess != nil {
		t.Error("expected nil (deleted)")
	}
}
