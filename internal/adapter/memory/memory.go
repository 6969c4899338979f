// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"weightduel/internal/domain"
)

// DB implements every domain repository in memory, guarded by one mutex.
type DB struct {
	mu       sync.Mutex
	weights  []domain.WeightRecord
	goals    []domain.Goal
	battles  []domain.Battle
	users    []*domain.User
	sessions map[string]*domain.Session

	weightIDCounter int64
	goalIDCounter   int64
	battleIDCounter int64
	userIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.BattleRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- WeightRepository ---

// UpsertWeightRecord inserts or replaces the record for (user, day).
func (db *DB) UpsertWeightRecord(ctx context.Context, userID int64, day string, weightKg float64, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weights {
		r := &db.weights[i]
		if r.UserID == userID && r.Day == day {
			r.WeightKg = weightKg
			r.CreatedAt = createdAt.UTC()
			return r.ID, nil
		}
	}

	db.weightIDCounter++
	db.weights = append(db.weights, domain.WeightRecord{
		ID:        db.weightIDCounter,
		UserID:    userID,
		Day:       day,
		WeightKg:  weightKg,
		CreatedAt: createdAt.UTC(),
	})
	return db.weightIDCounter, nil
}

// GetWeightRecord returns the record for (user, day), nil when absent.
func (db *DB) GetWeightRecord(ctx context.Context, userID int64, day string) (*domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weights {
		if db.weights[i].UserID == userID && db.weights[i].Day == day {
			r := db.weights[i]
			return &r, nil
		}
	}
	return nil, nil
}

// DeleteWeightRecord removes the record for (user, day).
func (db *DB) DeleteWeightRecord(ctx context.Context, userID int64, day string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weights {
		if db.weights[i].UserID == userID && db.weights[i].Day == day {
			db.weights = append(db.weights[:i], db.weights[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListWeightRecords returns all of a user's records, ascending by day.
func (db *DB) ListWeightRecords(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.WeightRecord, 0)
	for _, r := range db.weights {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// ListRecentWeightRecords returns the most recent records up to limit,
// descending by day.
func (db *DB) ListRecentWeightRecords(ctx context.Context, userID int64, limit int) ([]domain.WeightRecord, error) {
	records, err := db.ListWeightRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	// reverse to descending
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// --- GoalRepository ---

// CreateGoal stores a new goal.
func (db *DB) CreateGoal(ctx context.Context, g *domain.Goal) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.goalIDCounter++
	stored := *g
	stored.ID = db.goalIDCounter
	db.goals = append(db.goals, stored)
	return stored.ID, nil
}

// GetGoal returns a user's goal by ID, nil when absent.
func (db *DB) GetGoal(ctx context.Context, userID, id int64) (*domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, g := range db.goals {
		if g.ID == id && g.UserID == userID {
			out := g
			return &out, nil
		}
	}
	return nil, nil
}

// DeleteGoal removes a user's goal by ID.
func (db *DB) DeleteGoal(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, g := range db.goals {
		if g.ID == id && g.UserID == userID {
			db.goals = append(db.goals[:i], db.goals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListGoals returns all of a user's goals, most recently created first.
func (db *DB) ListGoals(ctx context.Context, userID int64) ([]domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Goal, 0)
	for _, g := range db.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- BattleRepository ---

// CreateBattle stores a new battle.
func (db *DB) CreateBattle(ctx context.Context, b *domain.Battle) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.battles {
		if existing.EntryCode == b.EntryCode {
			return 0, errors.New("entry code already in use")
		}
	}

	db.battleIDCounter++
	stored := *b
	stored.ID = db.battleIDCounter
	db.battles = append(db.battles, stored)
	return stored.ID, nil
}

// GetBattle returns a battle by ID, nil when absent.
func (db *DB) GetBattle(ctx context.Context, id int64) (*domain.Battle, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, b := range db.battles {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

// GetBattleByEntryCode returns a battle by entry code, nil when absent.
func (db *DB) GetBattleByEntryCode(ctx context.Context, entryCode string) (*domain.Battle, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, b := range db.battles {
		if b.EntryCode == entryCode {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

// UpdateBattle replaces a stored battle.
func (db *DB) UpdateBattle(ctx context.Context, b *domain.Battle) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.battles {
		if db.battles[i].ID == b.ID {
			db.battles[i] = *b
			return nil
		}
	}
	return errors.New("battle not found")
}

// ListActiveBattles returns a user's pending and in-progress battles.
func (db *DB) ListActiveBattles(ctx context.Context, userID int64) ([]domain.Battle, error) {
	return db.listBattles(userID, false), nil
}

// ListEndedBattles returns a user's ended battles.
func (db *DB) ListEndedBattles(ctx context.Context, userID int64) ([]domain.Battle, error) {
	return db.listBattles(userID, true), nil
}

func (db *DB) listBattles(userID int64, ended bool) []domain.Battle {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Battle, 0)
	for _, b := range db.battles {
		if !b.HasParticipant(userID) {
			continue
		}
		if (b.Status == domain.BattleEnded) == ended {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// UpdateHeight stores the user's height.
func (db *DB) UpdateHeight(ctx context.Context, id int64, heightCm float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			u.HeightCm = heightCm
			return nil
		}
	}
	return errors.New("user not found")
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
