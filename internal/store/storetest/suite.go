// Package storetest holds a compliance suite run against every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. makeStore must provide a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	username := "u_" + uuid.New().String()[:8]

	// Users
	u, err := s.Users().Create(ctx, &model.User{Username: username, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.UserID == "" || u.CreationTime.IsZero() {
		t.Fatalf("CreateUser: incomplete user %+v", u)
	}
	if got, err := s.Users().Get(ctx, u.UserID); err != nil || got.Username != username {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByUsername(ctx, username); err != nil || got.UserID != u.UserID {
		t.Fatalf("GetUserByUsername: got=%v err=%v", got, err)
	}
	if _, err := s.Users().Get(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUser missing: want ErrNotFound, got %v", err)
	}

	// Habits
	desc := "evening pages"
	h, err := s.Habits().Create(ctx, &model.Habit{UserID: u.UserID, Name: "journal", Description: &desc})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	if h.HabitID == "" {
		t.Fatal("CreateHabit: empty habit id")
	}
	if got, err := s.Habits().GetByID(ctx, h.HabitID); err != nil || got.Name != "journal" || got.UserID != u.UserID {
		t.Fatalf("GetHabit: got=%v err=%v", got, err)
	}
	if lst, err := s.Habits().List(ctx, u.UserID); err != nil || len(lst) != 1 {
		t.Fatalf("ListHabits: n=%d err=%v", len(lst), err)
	}
	if n, err := s.Habits().CountForUser(ctx, u.UserID); err != nil || n != 1 {
		t.Fatalf("CountHabits: n=%d err=%v", n, err)
	}

	// Entries, logged out of insertion order to verify the sort contract
	note := "late log"
	base := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	if _, err := s.Entries().Create(ctx, &model.Entry{HabitID: h.HabitID, LoggedAt: base.AddDate(0, 0, 1)}); err != nil {
		t.Fatalf("CreateEntry e1: %v", err)
	}
	if _, err := s.Entries().Create(ctx, &model.Entry{HabitID: h.HabitID, Note: &note, LoggedAt: base}); err != nil {
		t.Fatalf("CreateEntry e2: %v", err)
	}
	lst, err := s.Entries().List(ctx, h.HabitID)
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListEntries: n=%d err=%v", len(lst), err)
	}
	if !lst[0].LoggedAt.Equal(base) || !lst[1].LoggedAt.Equal(base.AddDate(0, 0, 1)) {
		t.Fatalf("ListEntries: not ordered by logged time ascending: %v, %v", lst[0].LoggedAt, lst[1].LoggedAt)
	}
	if lst[0].Note == nil || *lst[0].Note != note {
		t.Fatalf("ListEntries: note not preserved: %+v", lst[0])
	}
	if n, err := s.Entries().CountForUser(ctx, u.UserID); err != nil || n != 2 {
		t.Fatalf("CountEntries: n=%d err=%v", n, err)
	}

	// Badges
	if _, err := s.Badges().Create(ctx, &model.Badge{UserID: u.UserID, Name: "Week Warrior", Description: "7 day streak!"}); err != nil {
		t.Fatalf("CreateBadge: %v", err)
	}
	if ok, err := s.Badges().ExistsByName(ctx, u.UserID, "Week Warrior"); err != nil || !ok {
		t.Fatalf("ExistsByName: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Badges().ExistsByName(ctx, u.UserID, "Monthly Master"); err != nil || ok {
		t.Fatalf("ExistsByName missing: ok=%v err=%v", ok, err)
	}
	// Duplicate grants are a storage-level no-op concern: allowed.
	if _, err := s.Badges().Create(ctx, &model.Badge{UserID: u.UserID, Name: "Week Warrior", Description: "7 day streak!"}); err != nil {
		t.Fatalf("CreateBadge duplicate: %v", err)
	}
	if bl, err := s.Badges().List(ctx, u.UserID); err != nil || len(bl) != 2 {
		t.Fatalf("ListBadges: n=%d err=%v", len(bl), err)
	}

	// Cascade delete
	if err := s.Habits().Delete(ctx, h.HabitID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if _, err := s.Habits().GetByID(ctx, h.HabitID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetHabit after delete: want ErrNotFound, got %v", err)
	}
	if n, err := s.Entries().CountForUser(ctx, u.UserID); err != nil || n != 0 {
		t.Fatalf("entries survived habit delete: n=%d err=%v", n, err)
	}
	if err := s.Habits().Delete(ctx, h.HabitID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteHabit twice: want ErrNotFound, got %v", err)
	}
}
