package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

// Badge names and descriptions. WelcomeName ends with "!" in the stored
// record; the streak badges do not.
const (
	WelcomeName        = "Welcome!"
	WelcomeDescription = "Joined HabitSphere and started their journey to better habits"

	WeekWarriorName        = "Week Warrior"
	WeekWarriorDescription = "7 day streak!"

	MonthlyMasterName        = "Monthly Master"
	MonthlyMasterDescription = "30 day streak!"
)

const (
	weekStreak  = 7
	monthStreak = 30
)

// BadgeService grants and lists achievement badges.
type BadgeService struct {
	store store.Store
}

func NewBadgeService(s store.Store) *BadgeService { return &BadgeService{store: s} }

// EvaluateStreak grants the streak milestone badge matching the given
// streak, if any, and returns the newly granted badges. Grants are not
// deduplicated: every time a streak passes through 7 or 30 the badge is
// awarded again.
func (s *BadgeService) EvaluateStreak(ctx context.Context, userID string, streak int) ([]*model.Badge, error) {
	var grant *model.Badge
	switch streak {
	case weekStreak:
		grant = &model.Badge{UserID: userID, Name: WeekWarriorName, Description: WeekWarriorDescription}
	case monthStreak:
		grant = &model.Badge{UserID: userID, Name: MonthlyMasterName, Description: MonthlyMasterDescription}
	default:
		return nil, nil
	}

	b, err := s.store.Badges().Create(ctx, grant)
	if err != nil {
		return nil, err
	}
	log.Info().Str("userID", userID).Str("badge", b.Name).Int("streak", streak).Msg("Streak badge granted")
	return []*model.Badge{b}, nil
}

// AwardWelcome grants the welcome badge unless the user already has it.
// Returns the badge when a grant happened, nil otherwise.
func (s *BadgeService) AwardWelcome(ctx context.Context, userID string) (*model.Badge, error) {
	exists, err := s.store.Badges().ExistsByName(ctx, userID, WelcomeName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}
	b, err := s.store.Badges().Create(ctx, &model.Badge{
		UserID:      userID,
		Name:        WelcomeName,
		Description: WelcomeDescription,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("userID", userID).Msg("Welcome badge granted")
	return b, nil
}

// ListBadges returns the user's badges, most recently earned first.
func (s *BadgeService) ListBadges(ctx context.Context, userID string) ([]*model.Badge, error) {
	return s.store.Badges().List(ctx, userID)
}
