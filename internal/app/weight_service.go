package app

import (
	"context"
	"errors"
	"time"

	"weightduel/internal/domain"
)

// ErrDuplicateDay indicates a record already exists for the requested day
// and the caller did not ask to overwrite it.
var ErrDuplicateDay = errors.New("a weight record already exists for this day")

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo domain.WeightRepository
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{repo: repo}
}

// Record validates and stores a weight measurement for the given local day
// (today when day is empty). Only one record exists per day: recording a
// second time on the same day fails with ErrDuplicateDay unless overwrite is
// set, which replaces the existing record.
func (s *WeightService) Record(ctx context.Context, userID int64, value float64, unit, day string, overwrite bool) (*domain.WeightRecord, error) {
	if value <= 0 {
		return nil, errors.New("value must be > 0")
	}
	if unit != "kg" && unit != "lb" {
		return nil, errors.New("unit must be \"kg\" or \"lb\"")
	}

	now := time.Now()
	if day == "" {
		day = now.In(time.Local).Format("2006-01-02")
	} else if _, err := time.ParseInLocation("2006-01-02", day, time.Local); err != nil {
		return nil, errors.New("day must use the 2006-01-02 format")
	}

	if !overwrite {
		existing, err := s.repo.GetWeightRecord(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateDay
		}
	}

	weightKg := domain.ConvertWeight(value, unit, "kg")
	if _, err := s.repo.UpsertWeightRecord(ctx, userID, day, weightKg, now); err != nil {
		return nil, err
	}
	return s.repo.GetWeightRecord(ctx, userID, day)
}

// GetDay returns the record for the given local day, nil when none exists.
func (s *WeightService) GetDay(ctx context.Context, userID int64, day string) (*domain.WeightRecord, error) {
	return s.repo.GetWeightRecord(ctx, userID, day)
}

// ListAll returns every weight record for the user.
func (s *WeightService) ListAll(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	return s.repo.ListWeightRecords(ctx, userID)
}

// ListRecent returns the most recent weight records up to limit.
func (s *WeightService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WeightRecord, error) {
	return s.repo.ListRecentWeightRecords(ctx, userID, limit)
}

// Delete removes the record for the given day, reporting whether one existed.
func (s *WeightService) Delete(ctx context.Context, userID int64, day string) (bool, error) {
	return s.repo.DeleteWeightRecord(ctx, userID, day)
}

// Latest returns the most recent weight record, nil when the user has none.
func (s *WeightService) Latest(ctx context.Context, userID int64) (*domain.WeightRecord, error) {
	records, err := s.repo.ListRecentWeightRecords(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}
