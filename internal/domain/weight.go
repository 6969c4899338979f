package domain

import (
	"context"
	"time"
)

const kgToLb = 2.2046226218

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "kg" && to == "lb" {
		return v * kgToLb
	}
	if from == "lb" && to == "kg" {
		return v / kgToLb
	}
	return v
}

// WeightRecord is the authoritative weight observation for one user on one
// calendar day. Day uses the "2006-01-02" local-day format. Weights are
// stored in kg; unit conversion happens at the edges.
type WeightRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Day       string    `json:"day"`
	WeightKg  float64   `json:"weightKg"`
	CreatedAt time.Time `json:"createdAt"`
}

// Date parses the record's day in the given location.
func (r WeightRecord) Date(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", r.Day, loc)
}

// WeightRepository is the port for weight persistence. At most one record
// exists per (user, day); Upsert replaces any existing record for that day.
type WeightRepository interface {
	UpsertWeightRecord(ctx context.Context, userID int64, day string, weightKg float64, createdAt time.Time) (int64, error)
	GetWeightRecord(ctx context.Context, userID int64, day string) (*WeightRecord, error)
	DeleteWeightRecord(ctx context.Context, userID int64, day string) (bool, error)
	ListWeightRecords(ctx context.Context, userID int64) ([]WeightRecord, error)
	ListRecentWeightRecords(ctx context.Context, userID int64, limit int) ([]WeightRecord, error)
}
