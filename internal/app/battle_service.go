package app

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"weightduel/internal/analytics"
	"weightduel/internal/domain"
)

var (
	// ErrBattleNotFound indicates that the battle does not exist.
	ErrBattleNotFound = errors.New("battle not found")
	// ErrNotParticipant indicates the user takes no part in the battle.
	ErrNotParticipant = errors.New("user is not a participant of this battle")
	// ErrBattleNotJoinable indicates the battle already has an opponent or ended.
	ErrBattleNotJoinable = errors.New("battle cannot be joined")
)

// entryCodeAlphabet avoids ambiguous characters in shareable codes.
const entryCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// BattleService encapsulates the competitive-challenge use cases.
type BattleService struct {
	battles domain.BattleRepository
	users   domain.UserRepository
}

// NewBattleService creates a BattleService backed by the given repositories.
func NewBattleService(battles domain.BattleRepository, users domain.UserRepository) *BattleService {
	return &BattleService{battles: battles, users: users}
}

// Create opens a new battle. The creator shares the returned entry code with
// the opponent; the battle stays pending until someone joins.
func (s *BattleService) Create(ctx context.Context, creatorID int64, startWeight, targetWeightLoss float64, endDate time.Time) (*domain.Battle, error) {
	if startWeight <= 0 {
		return nil, errors.New("startWeight must be > 0")
	}
	if targetWeightLoss <= 0 {
		return nil, errors.New("targetWeightLoss must be > 0")
	}
	now := time.Now()
	if !endDate.After(now) {
		return nil, errors.New("endDate must be in the future")
	}

	code, err := generateEntryCode()
	if err != nil {
		return nil, err
	}

	b := &domain.Battle{
		EntryCode:            code,
		CreatorID:            creatorID,
		CreatorStartWeight:   startWeight,
		CreatorCurrentWeight: startWeight,
		TargetWeightLoss:     targetWeightLoss,
		StartDate:            now,
		EndDate:              endDate,
		Status:               domain.BattlePending,
		CreatedAt:            now,
	}
	id, err := s.battles.CreateBattle(ctx, b)
	if err != nil {
		return nil, err
	}
	return s.battles.GetBattle(ctx, id)
}

// Join enrolls the user as the opponent of the battle with the given entry
// code and moves the battle in progress.
func (s *BattleService) Join(ctx context.Context, userID int64, entryCode string, startWeight float64) (*domain.Battle, error) {
	if startWeight <= 0 {
		return nil, errors.New("startWeight must be > 0")
	}

	b, err := s.battles.GetBattleByEntryCode(ctx, entryCode)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != domain.BattlePending || b.CreatorID == userID {
		return nil, ErrBattleNotJoinable
	}

	b.OpponentID = userID
	b.OpponentStartWeight = startWeight
	b.OpponentCurrentWeight = startWeight
	b.Status = domain.BattleInProgress
	if err := s.battles.UpdateBattle(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WeighIn records a participant's current weight in an ongoing battle.
func (s *BattleService) WeighIn(ctx context.Context, userID, battleID int64, weightKg float64) (*domain.Battle, error) {
	if weightKg <= 0 {
		return nil, errors.New("weightKg must be > 0")
	}

	b, err := s.battles.GetBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBattleNotFound
	}
	if !b.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	if b.Status != domain.BattleInProgress {
		return nil, errors.New("battle is not in progress")
	}

	if b.CreatorID == userID {
		b.CreatorCurrentWeight = weightKg
	} else {
		b.OpponentCurrentWeight = weightKg
	}
	if err := s.battles.UpdateBattle(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Finish ends an in-progress battle and decides the winner: the participant
// with the greater absolute weight loss wins, equal losses tie.
func (s *BattleService) Finish(ctx context.Context, userID, battleID int64) (*domain.Battle, error) {
	b, err := s.battles.GetBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBattleNotFound
	}
	if !b.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	if b.Status != domain.BattleInProgress {
		return nil, errors.New("battle is not in progress")
	}

	creatorLoss := b.CreatorStartWeight - b.CreatorCurrentWeight
	opponentLoss := b.OpponentStartWeight - b.OpponentCurrentWeight
	switch {
	case creatorLoss > opponentLoss:
		b.WinnerID = b.CreatorID
	case opponentLoss > creatorLoss:
		b.WinnerID = b.OpponentID
	default:
		b.WinnerID = domain.WinnerTie
	}
	b.Status = domain.BattleEnded
	b.EndDate = time.Now()

	if err := s.battles.UpdateBattle(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListActive returns the user's pending and in-progress battles as viewer
// summaries.
func (s *BattleService) ListActive(ctx context.Context, userID int64) ([]analytics.BattleSummary, error) {
	battles, err := s.battles.ListActiveBattles(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, battles, userID)
}

// ListEnded returns the user's finished battles as viewer summaries.
func (s *BattleService) ListEnded(ctx context.Context, userID int64) ([]analytics.BattleSummary, error) {
	battles, err := s.battles.ListEndedBattles(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, battles, userID)
}

func (s *BattleService) summaries(ctx context.Context, battles []domain.Battle, viewerID int64) ([]analytics.BattleSummary, error) {
	out := make([]analytics.BattleSummary, 0, len(battles))
	for _, b := range battles {
		out = append(out, s.summarize(ctx, b, viewerID))
	}
	return out, nil
}

// summarize maps a battle onto the viewer's perspective. The opponent's
// username is resolved best-effort; an unknown or pending opponent shows
// empty.
func (s *BattleService) summarize(ctx context.Context, b domain.Battle, viewerID int64) analytics.BattleSummary {
	summary := analytics.BattleSummary{
		EntryCode:        b.EntryCode,
		TargetWeightLoss: b.TargetWeightLoss,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		Status:           analytics.BattleStatus(b.Status),
		Winner:           analytics.OutcomeUndetermined,
	}

	otherID := b.OpponentID
	if b.CreatorID == viewerID {
		summary.MyStartWeight = b.CreatorStartWeight
		summary.MyCurrentWeight = b.CreatorCurrentWeight
		summary.OpponentStartWeight = b.OpponentStartWeight
		summary.OpponentCurrentWeight = b.OpponentCurrentWeight
	} else {
		otherID = b.CreatorID
		summary.MyStartWeight = b.OpponentStartWeight
		summary.MyCurrentWeight = b.OpponentCurrentWeight
		summary.OpponentStartWeight = b.CreatorStartWeight
		summary.OpponentCurrentWeight = b.CreatorCurrentWeight
	}

	if otherID != 0 {
		if u, err := s.users.GetByID(ctx, otherID); err == nil && u != nil {
			summary.Opponent = u.Username
		}
	}

	if b.Status == domain.BattleEnded {
		switch b.WinnerID {
		case viewerID:
			summary.Winner = analytics.OutcomeMe
		case domain.WinnerTie:
			summary.Winner = analytics.OutcomeTie
		case 0:
			// Ended without a recorded winner stays undetermined.
		default:
			summary.Winner = analytics.OutcomeOpponent
		}
	}
	return summary
}

func generateEntryCode() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = entryCodeAlphabet[int(b[i])%len(entryCodeAlphabet)]
	}
	return string(b), nil
}
