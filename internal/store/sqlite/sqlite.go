package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is the canonical text encoding for timestamps: RFC 3339 with
// fixed-width nanoseconds, so the text sorts chronologically. The ORDER BY
// clauses below rely on that.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// New wraps an open connection in a store.Store and applies the embedded
// schema.
func New(db *sql.DB) (store.Store, error) {
	for _, part := range strings.Split(schemaSQL, ";") {
		stmt := strings.TrimSpace(part)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return nil, err
		}
	}
	return &sqliteStore{db: db}, nil
}

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Users() store.Users     { return &users{db: s.db} }
func (s *sqliteStore) Habits() store.Habits   { return &habits{db: s.db} }
func (s *sqliteStore) Entries() store.Entries { return &entries{db: s.db} }
func (s *sqliteStore) Badges() store.Badges   { return &badges{db: s.db} }

// HealthPing implements store.Pinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func encodeTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	id := m.UserID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := u.db.ExecContext(ctx, `INSERT INTO users (user_id, username, password_hash, creation_time) VALUES (?,?,?,?)`,
		id, m.Username, m.PasswordHash, encodeTime(now))
	if err != nil {
		return nil, err
	}
	out := *m
	out.UserID = id
	out.CreationTime = now
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT user_id, username, password_hash, creation_time FROM users WHERE user_id=?`, userID)
	return scanUser(row)
}

func (u *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT user_id, username, password_hash, creation_time FROM users WHERE username=?`, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var out model.User
	var created string
	if err := row.Scan(&out.UserID, &out.Username, &out.PasswordHash, &created); err != nil {
		return nil, notFound(err)
	}
	t, err := decodeTime(created)
	if err != nil {
		return nil, err
	}
	out.CreationTime = t
	return &out, nil
}

// --- Habits ---

type habits struct{ db *sql.DB }

func (h *habits) Create(ctx context.Context, m *model.Habit) (*model.Habit, error) {
	id := m.HabitID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := h.db.ExecContext(ctx, `INSERT INTO habits (habit_id, user_id, name, description, creation_time) VALUES (?,?,?,?,?)`,
		id, m.UserID, m.Name, m.Description, encodeTime(now))
	if err != nil {
		return nil, err
	}
	out := *m
	out.HabitID = id
	out.CreationTime = now
	return &out, nil
}

func (h *habits) GetByID(ctx context.Context, habitID string) (*model.Habit, error) {
	var out model.Habit
	var created string
	row := h.db.QueryRowContext(ctx, `SELECT habit_id, user_id, name, description, creation_time FROM habits WHERE habit_id=?`, habitID)
	if err := row.Scan(&out.HabitID, &out.UserID, &out.Name, &out.Description, &created); err != nil {
		return nil, notFound(err)
	}
	t, err := decodeTime(created)
	if err != nil {
		return nil, err
	}
	out.CreationTime = t
	return &out, nil
}

func (h *habits) List(ctx context.Context, userID string) ([]*model.Habit, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT habit_id, name, description, creation_time FROM habits WHERE user_id=? ORDER BY creation_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Habit
	for rows.Next() {
		out := model.Habit{UserID: userID}
		var created string
		if err := rows.Scan(&out.HabitID, &out.Name, &out.Description, &created); err != nil {
			return nil, err
		}
		t, err := decodeTime(created)
		if err != nil {
			return nil, err
		}
		out.CreationTime = t
		res = append(res, &out)
	}
	return res, rows.Err()
}

func (h *habits) Delete(ctx context.Context, habitID string) error {
	tx, err := h.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE habit_id=?`, habitID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM habits WHERE habit_id=?`, habitID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.ErrNotFound
	}
	return tx.Commit()
}

func (h *habits) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	row := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habits WHERE user_id=?`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// --- Entries ---

type entries struct{ db *sql.DB }

func (e *entries) Create(ctx context.Context, m *model.Entry) (*model.Entry, error) {
	id := m.EntryID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	loggedAt := m.LoggedAt.UTC()
	_, err := e.db.ExecContext(ctx, `INSERT INTO entries (entry_id, habit_id, note, logged_at, creation_time) VALUES (?,?,?,?,?)`,
		id, m.HabitID, m.Note, encodeTime(loggedAt), encodeTime(now))
	if err != nil {
		return nil, err
	}
	out := *m
	out.EntryID = id
	out.LoggedAt = loggedAt
	out.CreationTime = now
	return &out, nil
}

func (e *entries) List(ctx context.Context, habitID string) ([]*model.Entry, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT entry_id, note, logged_at, creation_time FROM entries WHERE habit_id=? ORDER BY logged_at ASC`, habitID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Entry
	for rows.Next() {
		out := model.Entry{HabitID: habitID}
		var logged, created string
		if err := rows.Scan(&out.EntryID, &out.Note, &logged, &created); err != nil {
			return nil, err
		}
		if out.LoggedAt, err = decodeTime(logged); err != nil {
			return nil, err
		}
		if out.CreationTime, err = decodeTime(created); err != nil {
			return nil, err
		}
		res = append(res, &out)
	}
	return res, rows.Err()
}

func (e *entries) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	row := e.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM entries
        JOIN habits ON habits.habit_id = entries.habit_id
        WHERE habits.user_id=?`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// --- Badges ---

type badges struct{ db *sql.DB }

func (b *badges) Create(ctx context.Context, m *model.Badge) (*model.Badge, error) {
	id := m.BadgeID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := b.db.ExecContext(ctx, `INSERT INTO badges (badge_id, user_id, name, description, earned_at) VALUES (?,?,?,?,?)`,
		id, m.UserID, m.Name, m.Description, encodeTime(now))
	if err != nil {
		return nil, err
	}
	out := *m
	out.BadgeID = id
	out.EarnedAt = now
	return &out, nil
}

func (b *badges) List(ctx context.Context, userID string) ([]*model.Badge, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT badge_id, name, description, earned_at FROM badges WHERE user_id=? ORDER BY earned_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Badge
	for rows.Next() {
		out := model.Badge{UserID: userID}
		var earned string
		if err := rows.Scan(&out.BadgeID, &out.Name, &out.Description, &earned); err != nil {
			return nil, err
		}
		if out.EarnedAt, err = decodeTime(earned); err != nil {
			return nil, err
		}
		res = append(res, &out)
	}
	return res, rows.Err()
}

func (b *badges) ExistsByName(ctx context.Context, userID, name string) (bool, error) {
	var n int
	row := b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM badges WHERE user_id=? AND name=?`, userID, name)
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
