package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users     { return &users{db: s.db} }
func (s *pgStore) Habits() store.Habits   { return &habits{db: s.db} }
func (s *pgStore) Entries() store.Entries { return &entries{db: s.db} }
func (s *pgStore) Badges() store.Badges   { return &badges{db: s.db} }

// HealthPing implements store.Pinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
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
	var created time.Time
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO users (user_id, username, password_hash)
        VALUES ($1,$2,$3)
        RETURNING creation_time
    `, id, m.Username, m.PasswordHash)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.UserID = id
	out.CreationTime = created
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, username, password_hash, creation_time
        FROM users WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.UserID, &out.Username, &out.PasswordHash, &out.CreationTime); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (u *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, username, password_hash, creation_time
        FROM users WHERE username=$1
    `, username)
	if err := row.Scan(&out.UserID, &out.Username, &out.PasswordHash, &out.CreationTime); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

// --- Habits ---

type habits struct{ db *sql.DB }

func (h *habits) Create(ctx context.Context, m *model.Habit) (*model.Habit, error) {
	id := m.HabitID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := h.db.QueryRowContext(ctx, `
        INSERT INTO habits (habit_id, user_id, name, description)
        VALUES ($1,$2,$3,$4)
        RETURNING creation_time
    `, id, m.UserID, m.Name, m.Description)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.HabitID = id
	out.CreationTime = created
	return &out, nil
}

func (h *habits) GetByID(ctx context.Context, habitID string) (*model.Habit, error) {
	var out model.Habit
	row := h.db.QueryRowContext(ctx, `
        SELECT habit_id, user_id, name, description, creation_time
        FROM habits WHERE habit_id=$1
    `, habitID)
	if err := row.Scan(&out.HabitID, &out.UserID, &out.Name, &out.Description, &out.CreationTime); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (h *habits) List(ctx context.Context, userID string) ([]*model.Habit, error) {
	rows, err := h.db.QueryContext(ctx, `
        SELECT habit_id, name, description, creation_time
        FROM habits WHERE user_id=$1 ORDER BY creation_time DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Habit
	for rows.Next() {
		out := model.Habit{UserID: userID}
		if err := rows.Scan(&out.HabitID, &out.Name, &out.Description, &out.CreationTime); err != nil {
			return nil, err
		}
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE habit_id=$1`, habitID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM habits WHERE habit_id=$1`, habitID)
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
	row := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habits WHERE user_id=$1`, userID)
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
	loggedAt := m.LoggedAt.UTC()
	var created time.Time
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO entries (entry_id, habit_id, note, logged_at)
        VALUES ($1,$2,$3,$4)
        RETURNING creation_time
    `, id, m.HabitID, m.Note, loggedAt)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.EntryID = id
	out.LoggedAt = loggedAt
	out.CreationTime = created
	return &out, nil
}

func (e *entries) List(ctx context.Context, habitID string) ([]*model.Entry, error) {
	rows, err := e.db.QueryContext(ctx, `
        SELECT entry_id, note, logged_at, creation_time
        FROM entries WHERE habit_id=$1 ORDER BY logged_at ASC
    `, habitID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Entry
	for rows.Next() {
		out := model.Entry{HabitID: habitID}
		if err := rows.Scan(&out.EntryID, &out.Note, &out.LoggedAt, &out.CreationTime); err != nil {
			return nil, err
		}
		out.LoggedAt = out.LoggedAt.UTC()
		res = append(res, &out)
	}
	return res, rows.Err()
}

func (e *entries) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	row := e.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM entries
        JOIN habits ON habits.habit_id = entries.habit_id
        WHERE habits.user_id=$1
    `, userID)
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
	var earned time.Time
	row := b.db.QueryRowContext(ctx, `
        INSERT INTO badges (badge_id, user_id, name, description)
        VALUES ($1,$2,$3,$4)
        RETURNING earned_at
    `, id, m.UserID, m.Name, m.Description)
	if err := row.Scan(&earned); err != nil {
		return nil, err
	}
	out := *m
	out.BadgeID = id
	out.EarnedAt = earned
	return &out, nil
}

func (b *badges) List(ctx context.Context, userID string) ([]*model.Badge, error) {
	rows, err := b.db.QueryContext(ctx, `
        SELECT badge_id, name, description, earned_at
        FROM badges WHERE user_id=$1 ORDER BY earned_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Badge
	for rows.Next() {
		out := model.Badge{UserID: userID}
		if err := rows.Scan(&out.BadgeID, &out.Name, &out.Description, &out.EarnedAt); err != nil {
			return nil, err
		}
		res = append(res, &out)
	}
	return res, rows.Err()
}

func (b *badges) ExistsByName(ctx context.Context, userID, name string) (bool, error) {
	var n int
	row := b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM badges WHERE user_id=$1 AND name=$2`, userID, name)
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
