package store

import (
	"context"

	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Users() Users
	Habits() Habits
	Entries() Entries
	Badges() Badges
}

// Pinger is implemented by stores that can report backend liveness.
type Pinger interface {
	HealthPing(ctx context.Context) error
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type Habits interface {
	Create(ctx context.Context, h *model.Habit) (*model.Habit, error)
	GetByID(ctx context.Context, habitID string) (*model.Habit, error)
	List(ctx context.Context, userID string) ([]*model.Habit, error)
	// Delete removes the habit and cascades to its entries in one
	// transaction.
	Delete(ctx context.Context, habitID string) error
	CountForUser(ctx context.Context, userID string) (int, error)
}

type Entries interface {
	Create(ctx context.Context, e *model.Entry) (*model.Entry, error)
	// List returns a habit's entries ordered by logged time ascending.
	List(ctx context.Context, habitID string) ([]*model.Entry, error)
	CountForUser(ctx context.Context, userID string) (int, error)
}

type Badges interface {
	Create(ctx context.Context, b *model.Badge) (*model.Badge, error)
	// List returns a user's badges ordered by earned time descending.
	List(ctx context.Context, userID string) ([]*model.Badge, error)
	ExistsByName(ctx context.Context, userID, name string) (bool, error)
}
