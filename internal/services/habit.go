package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DivyanshuSingh0/HabitSphere/internal/habits"
	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

// HabitService orchestrates habit use cases. The streak, prediction, and
// analytics computations live in internal/habits; this layer loads entry
// sets, enforces ownership, and persists side effects. Each request loads
// its own entry set and computes in isolation; nothing is cached across
// calls.
type HabitService struct {
	store  store.Store
	badges *BadgeService
	now    func() time.Time
}

func NewHabitService(s store.Store, badges *BadgeService) *HabitService {
	return &HabitService{store: s, badges: badges, now: func() time.Time { return time.Now().UTC() }}
}

// CreateHabitRequest carries the typed inputs for CreateHabit.
type CreateHabitRequest struct {
	UserID      string
	Name        string
	Description *string
}

func (s *HabitService) CreateHabit(ctx context.Context, req CreateHabitRequest) (*model.Habit, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: habit name is required", model.ErrValidation)
	}
	if _, err := s.store.Users().Get(ctx, req.UserID); err != nil {
		return nil, err
	}
	h, err := s.store.Habits().Create(ctx, &model.Habit{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("userID", req.UserID).Str("habitID", h.HabitID).Msg("Habit created")
	return h, nil
}

func (s *HabitService) ListHabits(ctx context.Context, userID string) ([]*model.Habit, error) {
	return s.store.Habits().List(ctx, userID)
}

// GetHabit loads a habit and enforces that userID owns it.
func (s *HabitService) GetHabit(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	h, err := s.store.Habits().GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if h.UserID != userID {
		return nil, fmt.Errorf("%w: habit belongs to another user", model.ErrUnauthorized)
	}
	return h, nil
}

// DeleteHabit removes a habit and all of its entries.
func (s *HabitService) DeleteHabit(ctx context.Context, userID, habitID string) error {
	if _, err := s.GetHabit(ctx, userID, habitID); err != nil {
		return err
	}
	if err := s.store.Habits().Delete(ctx, habitID); err != nil {
		return err
	}
	log.Info().Str("userID", userID).Str("habitID", habitID).Msg("Habit deleted")
	return nil
}

// LogEntryRequest carries the typed inputs for LogEntry. LoggedAt defaults
// to the current time when nil.
type LogEntryRequest struct {
	UserID   string
	HabitID  string
	Note     *string
	LoggedAt *time.Time
}

// LogEntryResult reports the recorded entry plus the side effects of
// recording it.
type LogEntryResult struct {
	Entry         *model.Entry   `json:"entry"`
	CurrentStreak int            `json:"currentStreak"`
	NewBadges     []*model.Badge `json:"newBadges"`
}

// LogEntry records a completion, recomputes the habit's streak over all
// entries including the new one, and evaluates streak badges.
func (s *HabitService) LogEntry(ctx context.Context, req LogEntryRequest) (*LogEntryResult, error) {
	h, err := s.GetHabit(ctx, req.UserID, req.HabitID)
	if err != nil {
		return nil, err
	}

	loggedAt := s.now()
	if req.LoggedAt != nil {
		loggedAt = req.LoggedAt.UTC()
	}
	entry, err := s.store.Entries().Create(ctx, &model.Entry{
		HabitID:  h.HabitID,
		Note:     req.Note,
		LoggedAt: loggedAt,
	})
	if err != nil {
		return nil, err
	}

	times, err := s.entryTimes(ctx, h.HabitID)
	if err != nil {
		return nil, err
	}
	streak := habits.CurrentStreak(times)

	granted, err := s.badges.EvaluateStreak(ctx, h.UserID, streak)
	if err != nil {
		return nil, err
	}
	return &LogEntryResult{Entry: entry, CurrentStreak: streak, NewBadges: granted}, nil
}

func (s *HabitService) ListEntries(ctx context.Context, userID, habitID string) ([]*model.Entry, error) {
	if _, err := s.GetHabit(ctx, userID, habitID); err != nil {
		return nil, err
	}
	return s.store.Entries().List(ctx, habitID)
}

// Predict scores the probability that the habit is completed tomorrow.
// A fresh model is trained per call; degenerate entry sets come back as
// sentinel statuses, not errors.
func (s *HabitService) Predict(ctx context.Context, userID, habitID string) (habits.Prediction, error) {
	if _, err := s.GetHabit(ctx, userID, habitID); err != nil {
		return habits.Prediction{}, err
	}
	times, err := s.entryTimes(ctx, habitID)
	if err != nil {
		return habits.Prediction{}, err
	}
	return habits.Predict(times), nil
}

// Analytics computes the habit's aggregate report as of now.
func (s *HabitService) Analytics(ctx context.Context, userID, habitID string) (habits.Report, error) {
	if _, err := s.GetHabit(ctx, userID, habitID); err != nil {
		return habits.Report{}, err
	}
	times, err := s.entryTimes(ctx, habitID)
	if err != nil {
		return habits.Report{}, err
	}
	return habits.ComputeReport(times, s.now()), nil
}

// entryTimes loads a habit's entry timestamps in chronological order.
func (s *HabitService) entryTimes(ctx context.Context, habitID string) ([]time.Time, error) {
	entries, err := s.store.Entries().List(ctx, habitID)
	if err != nil {
		return nil, err
	}
	times := make([]time.Time, len(entries))
	for i, e := range entries {
		times[i] = e.LoggedAt
	}
	return times, nil
}
