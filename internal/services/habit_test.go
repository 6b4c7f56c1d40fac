package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DivyanshuSingh0/HabitSphere/internal/habits"
	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	users   map[string]*model.User
	habits  map[string]*model.Habit
	entries map[string][]*model.Entry
	badges  map[string][]*model.Badge
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]*model.User{},
		habits:  map[string]*model.Habit{},
		entries: map[string][]*model.Entry{},
		badges:  map[string][]*model.Badge{},
	}
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) Users() store.Users     { return &fakeUsers{f} }
func (f *fakeStore) Habits() store.Habits   { return &fakeHabits{f} }
func (f *fakeStore) Entries() store.Entries { return &fakeEntries{f} }
func (f *fakeStore) Badges() store.Badges   { return &fakeBadges{f} }

type fakeUsers struct{ p *fakeStore }

func (u *fakeUsers) Create(_ context.Context, m *model.User) (*model.User, error) {
	out := *m
	if out.UserID == "" {
		out.UserID = u.p.id("user")
	}
	out.CreationTime = time.Now().UTC()
	u.p.users[out.UserID] = &out
	return &out, nil
}

func (u *fakeUsers) Get(_ context.Context, userID string) (*model.User, error) {
	if m, ok := u.p.users[userID]; ok {
		return m, nil
	}
	return nil, model.ErrNotFound
}

func (u *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, m := range u.p.users {
		if m.Username == username {
			return m, nil
		}
	}
	return nil, model.ErrNotFound
}

type fakeHabits struct{ p *fakeStore }

func (h *fakeHabits) Create(_ context.Context, m *model.Habit) (*model.Habit, error) {
	out := *m
	out.HabitID = h.p.id("habit")
	out.CreationTime = time.Now().UTC()
	h.p.habits[out.HabitID] = &out
	return &out, nil
}

func (h *fakeHabits) GetByID(_ context.Context, habitID string) (*model.Habit, error) {
	if m, ok := h.p.habits[habitID]; ok {
		return m, nil
	}
	return nil, model.ErrNotFound
}

func (h *fakeHabits) List(_ context.Context, userID string) ([]*model.Habit, error) {
	var out []*model.Habit
	for _, m := range h.p.habits {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (h *fakeHabits) Delete(_ context.Context, habitID string) error {
	if _, ok := h.p.habits[habitID]; !ok {
		return model.ErrNotFound
	}
	delete(h.p.habits, habitID)
	delete(h.p.entries, habitID)
	return nil
}

func (h *fakeHabits) CountForUser(_ context.Context, userID string) (int, error) {
	n := 0
	for _, m := range h.p.habits {
		if m.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeEntries struct{ p *fakeStore }

func (e *fakeEntries) Create(_ context.Context, m *model.Entry) (*model.Entry, error) {
	out := *m
	out.EntryID = e.p.id("entry")
	out.CreationTime = time.Now().UTC()
	// keep chronological order on insert
	lst := e.p.entries[out.HabitID]
	i := len(lst)
	for i > 0 && lst[i-1].LoggedAt.After(out.LoggedAt) {
		i--
	}
	lst = append(lst[:i:i], append([]*model.Entry{&out}, lst[i:]...)...)
	e.p.entries[out.HabitID] = lst
	return &out, nil
}

func (e *fakeEntries) List(_ context.Context, habitID string) ([]*model.Entry, error) {
	return e.p.entries[habitID], nil
}

func (e *fakeEntries) CountForUser(_ context.Context, userID string) (int, error) {
	n := 0
	for habitID, lst := range e.p.entries {
		if h, ok := e.p.habits[habitID]; ok && h.UserID == userID {
			n += len(lst)
		}
	}
	return n, nil
}

type fakeBadges struct{ p *fakeStore }

func (b *fakeBadges) Create(_ context.Context, m *model.Badge) (*model.Badge, error) {
	out := *m
	out.BadgeID = b.p.id("badge")
	out.EarnedAt = time.Now().UTC()
	b.p.badges[out.UserID] = append(b.p.badges[out.UserID], &out)
	return &out, nil
}

func (b *fakeBadges) List(_ context.Context, userID string) ([]*model.Badge, error) {
	return b.p.badges[userID], nil
}

func (b *fakeBadges) ExistsByName(_ context.Context, userID, name string) (bool, error) {
	for _, m := range b.p.badges[userID] {
		if m.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// --- Helpers ---

func newHabitFixture(t *testing.T) (*fakeStore, *HabitService, *model.User, *model.Habit) {
	t.Helper()
	fs := newFakeStore()
	svc := NewHabitService(fs, NewBadgeService(fs))
	ctx := context.Background()

	u, err := fs.Users().Create(ctx, &model.User{Username: "divya", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	h, err := svc.CreateHabit(ctx, CreateHabitRequest{UserID: u.UserID, Name: "meditate"})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	return fs, svc, u, h
}

func backdated(n int) *time.Time {
	t := time.Now().UTC().AddDate(0, 0, -n)
	return &t
}

func logDays(t *testing.T, svc *HabitService, userID, habitID string, days []int) *LogEntryResult {
	t.Helper()
	var last *LogEntryResult
	for _, d := range days {
		res, err := svc.LogEntry(context.Background(), LogEntryRequest{
			UserID: userID, HabitID: habitID, LoggedAt: backdated(d),
		})
		if err != nil {
			t.Fatalf("log entry day -%d: %v", d, err)
		}
		last = res
	}
	return last
}

// --- Tests ---

func TestLogEntryComputesStreak(t *testing.T) {
	_, svc, u, h := newHabitFixture(t)
	res := logDays(t, svc, u.UserID, h.HabitID, []int{2, 1, 0})
	if res.CurrentStreak != 3 {
		t.Fatalf("streak = %d, want 3", res.CurrentStreak)
	}
	if len(res.NewBadges) != 0 {
		t.Fatalf("unexpected badges at streak 3: %v", res.NewBadges)
	}
}

func TestLogEntryGrantsWeekWarriorAtSeven(t *testing.T) {
	_, svc, u, h := newHabitFixture(t)
	res := logDays(t, svc, u.UserID, h.HabitID, []int{6, 5, 4, 3, 2, 1, 0})
	if res.CurrentStreak != 7 {
		t.Fatalf("streak = %d, want 7", res.CurrentStreak)
	}
	if len(res.NewBadges) != 1 || res.NewBadges[0].Name != WeekWarriorName {
		t.Fatalf("want Week Warrior grant, got %+v", res.NewBadges)
	}
}

func TestLogEntryGrantsNothingAtEight(t *testing.T) {
	fs, svc, u, h := newHabitFixture(t)
	res := logDays(t, svc, u.UserID, h.HabitID, []int{7, 6, 5, 4, 3, 2, 1, 0})
	if res.CurrentStreak != 8 {
		t.Fatalf("streak = %d, want 8", res.CurrentStreak)
	}
	if len(res.NewBadges) != 0 {
		t.Fatalf("streak 8 must grant nothing, got %+v", res.NewBadges)
	}
	// only the single grant from passing through 7 persists
	badges, _ := fs.Badges().List(context.Background(), u.UserID)
	if len(badges) != 1 {
		t.Fatalf("badges = %d, want 1", len(badges))
	}
}

func TestLogEntryGrantsMonthlyMasterAtThirty(t *testing.T) {
	_, svc, u, h := newHabitFixture(t)
	days := make([]int, 30)
	for i := range days {
		days[i] = 29 - i
	}
	res := logDays(t, svc, u.UserID, h.HabitID, days)
	if res.CurrentStreak != 30 {
		t.Fatalf("streak = %d, want 30", res.CurrentStreak)
	}
	if len(res.NewBadges) != 1 || res.NewBadges[0].Name != MonthlyMasterName {
		t.Fatalf("want Monthly Master grant, got %+v", res.NewBadges)
	}
}

func TestEvaluateStreakHasNoIdempotenceGuard(t *testing.T) {
	fs := newFakeStore()
	badges := NewBadgeService(fs)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		granted, err := badges.EvaluateStreak(ctx, "user-1", 7)
		if err != nil {
			t.Fatalf("evaluate #%d: %v", i+1, err)
		}
		if len(granted) != 1 || granted[0].Name != WeekWarriorName {
			t.Fatalf("evaluate #%d: got %+v", i+1, granted)
		}
	}
	lst, _ := fs.Badges().List(ctx, "user-1")
	if len(lst) != 2 {
		t.Fatalf("want the badge granted twice, got %d", len(lst))
	}
}

func TestLogEntryRejectsForeignHabit(t *testing.T) {
	fs, svc, _, h := newHabitFixture(t)
	other, _ := fs.Users().Create(context.Background(), &model.User{Username: "mallory", PasswordHash: "x"})
	_, err := svc.LogEntry(context.Background(), LogEntryRequest{UserID: other.UserID, HabitID: h.HabitID})
	if !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	fs, svc, u, h := newHabitFixture(t)
	logDays(t, svc, u.UserID, h.HabitID, []int{1, 0})
	if err := svc.DeleteHabit(context.Background(), u.UserID, h.HabitID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := fs.Entries().CountForUser(context.Background(), u.UserID); n != 0 {
		t.Fatalf("entries survived delete: %d", n)
	}
	if _, err := svc.GetHabit(context.Background(), u.UserID, h.HabitID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPredictThroughService(t *testing.T) {
	_, svc, u, h := newHabitFixture(t)

	p, err := svc.Predict(context.Background(), u.UserID, h.HabitID)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if p.Status != habits.StatusInsufficientData {
		t.Fatalf("status = %q, want %q", p.Status, habits.StatusInsufficientData)
	}

	days := make([]int, 10)
	for i := range days {
		days[i] = 9 - i
	}
	logDays(t, svc, u.UserID, h.HabitID, days)
	p, err = svc.Predict(context.Background(), u.UserID, h.HabitID)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if p.Status != habits.StatusOK {
		t.Fatalf("status = %q, want %q", p.Status, habits.StatusOK)
	}
	if p.Probability < 0 || p.Probability > 1 {
		t.Fatalf("probability %v outside [0,1]", p.Probability)
	}
}

func TestAnalyticsThroughService(t *testing.T) {
	_, svc, u, h := newHabitFixture(t)
	logDays(t, svc, u.UserID, h.HabitID, []int{2, 1, 0})
	r, err := svc.Analytics(context.Background(), u.UserID, h.HabitID)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if r.TotalEntries != 3 || r.CurrentStreak != 3 {
		t.Fatalf("unexpected report: %+v", r)
	}
	if r.CompletionRate != 3.0/30.0 {
		t.Fatalf("completion rate = %v, want 0.1", r.CompletionRate)
	}
}
