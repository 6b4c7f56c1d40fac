package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

// UserService handles registration, credential checks, and profile stats.
type UserService struct {
	store  store.Store
	badges *BadgeService
}

func NewUserService(s store.Store, badges *BadgeService) *UserService {
	return &UserService{store: s, badges: badges}
}

// Register creates a user with a bcrypt-hashed password and grants the
// welcome badge.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", model.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", model.ErrValidation)
	}

	if _, err := s.store.Users().GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username already exists", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.store.Users().Create(ctx, &model.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return nil, err
	}
	log.Info().Str("userID", u.UserID).Str("username", username).Msg("User registered")

	if _, err := s.badges.AwardWelcome(ctx, u.UserID); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns the user. Wrong username and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", model.ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", model.ErrUnauthorized)
	}
	return u, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}

// Profile aggregates a user's headline stats and badge list.
type Profile struct {
	User         *model.User    `json:"user"`
	TotalHabits  int            `json:"totalHabits"`
	TotalEntries int            `json:"totalEntries"`
	TotalBadges  int            `json:"totalBadges"`
	Badges       []*model.Badge `json:"badges"`
}

// GetProfile builds the profile view. Viewing a profile also backfills the
// welcome badge for accounts that predate it; the grant is guarded by an
// existence check so it happens at most once.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.badges.AwardWelcome(ctx, userID); err != nil {
		return nil, err
	}

	habitCount, err := s.store.Habits().CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entryCount, err := s.store.Entries().CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	badges, err := s.store.Badges().List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:         u,
		TotalHabits:  habitCount,
		TotalEntries: entryCount,
		TotalBadges:  len(badges),
		Badges:       badges,
	}, nil
}
