package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"weightduel/internal/app"
	"weightduel/internal/domain"
)

type mockWeightRepo struct {
	upsertFn func(ctx context.Context, userID int64, day string, weightKg float64, createdAt time.Time) (int64, error)
	getFn    func(ctx context.Context, userID int64, day string) (*domain.WeightRecord, error)
	deleteFn func(ctx context.Context, userID int64, day string) (bool, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.WeightRecord, error)
	recentFn func(ctx context.Context, userID int64, limit int) ([]domain.WeightRecord, error)
}

func (m *mockWeightRepo) UpsertWeightRecord(ctx context.Context, userID int64, day string, weightKg float64, createdAt time.Time) (int64, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, day, weightKg, createdAt)
	}
	return 1, nil
}

func (m *mockWeightRepo) GetWeightRecord(ctx context.Context, userID int64, day string) (*domain.WeightRecord, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockWeightRepo) DeleteWeightRecord(ctx context.Context, userID int64, day string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, day)
	}
	return false, nil
}

func (m *mockWeightRepo) ListWeightRecords(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListRecentWeightRecords(ctx context.Context, userID int64, limit int) ([]domain.WeightRecord, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

func TestRecord_Validation(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{})

	tests := []struct {
		name  string
		value float64
		unit  string
		day   string
	}{
		{"zero value", 0, "kg", ""},
		{"negative value", -5, "kg", ""},
		{"bad unit", 80, "stones", ""},
		{"bad day format", 80, "kg", "31-08-2026"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), 1, tc.value, tc.unit, tc.day, false)
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRecord_Success(t *testing.T) {
	var storedKg float64
	repo := &mockWeightRepo{
		upsertFn: func(_ context.Context, _ int64, _ string, weightKg float64, _ time.Time) (int64, error) {
			storedKg = weightKg
			return 1, nil
		},
		getFn: func(_ context.Context, _ int64, day string) (*domain.WeightRecord, error) {
			if storedKg == 0 {
				return nil, nil
			}
			return &domain.WeightRecord{ID: 1, Day: day, WeightKg: storedKg}, nil
		},
	}
	svc := app.NewWeightService(repo)

	got, err := svc.Record(context.Background(), 1, 80, "kg", "2026-08-31", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.WeightKg != 80 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestRecord_NormalizesPounds(t *testing.T) {
	var storedKg float64
	repo := &mockWeightRepo{
		upsertFn: func(_ context.Context, _ int64, _ string, weightKg float64, _ time.Time) (int64, error) {
			storedKg = weightKg
			return 1, nil
		},
		getFn: func(_ context.Context, _ int64, day string) (*domain.WeightRecord, error) {
			if storedKg == 0 {
				return nil, nil
			}
			return &domain.WeightRecord{ID: 1, Day: day, WeightKg: storedKg}, nil
		},
	}
	svc := app.NewWeightService(repo)

	_, err := svc.Record(context.Background(), 1, 220.46226218, "lb", "2026-08-31", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storedKg < 99.99 || storedKg > 100.01 {
		t.Fatalf("expected ~100kg stored, got %f", storedKg)
	}
}

func TestRecord_DuplicateDay(t *testing.T) {
	existing := &domain.WeightRecord{ID: 1, Day: "2026-08-31", WeightKg: 80}
	upserts := 0
	repo := &mockWeightRepo{
		getFn: func(_ context.Context, _ int64, _ string) (*domain.WeightRecord, error) {
			return existing, nil
		},
		upsertFn: func(_ context.Context, _ int64, _ string, _ float64, _ time.Time) (int64, error) {
			upserts++
			return 1, nil
		},
	}
	svc := app.NewWeightService(repo)

	_, err := svc.Record(context.Background(), 1, 79, "kg", "2026-08-31", false)
	if !errors.Is(err, app.ErrDuplicateDay) {
		t.Fatalf("expected ErrDuplicateDay, got %v", err)
	}
	if upserts != 0 {
		t.Fatal("duplicate day must not reach the repository")
	}

	// With overwrite the record is replaced.
	if _, err := svc.Record(context.Background(), 1, 79, "kg", "2026-08-31", true); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if upserts != 1 {
		t.Fatalf("expected 1 upsert, got %d", upserts)
	}
}

func TestRecord_RepoError(t *testing.T) {
	repo := &mockWeightRepo{
		upsertFn: func(_ context.Context, _ int64, _ string, _ float64, _ time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	svc := app.NewWeightService(repo)
	if _, err := svc.Record(context.Background(), 1, 80, "kg", "", true); err == nil {
		t.Fatal("expected error from repo")
	}
}

func TestLatest(t *testing.T) {
	repo := &mockWeightRepo{
		recentFn: func(_ context.Context, _ int64, limit int) ([]domain.WeightRecord, error) {
			if limit != 1 {
				t.Errorf("expected limit 1, got %d", limit)
			}
			return []domain.WeightRecord{{ID: 7, Day: "2026-08-31", WeightKg: 78.5}}, nil
		},
	}
	svc := app.NewWeightService(repo)

	got, err := svc.Latest(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != 7 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestLatest_Empty(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{})
	got, err := svc.Latest(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
