package model

import "time"

// User represents an account in the system. PasswordHash never leaves the
// process boundary.
type User struct {
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreationTime time.Time `json:"creationTime"`
}

// Habit is a user-owned tracked behavior. It owns an ordered set of entries.
type Habit struct {
	HabitID      string    `json:"habitId"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Entry is an immutable completion record for a habit. LoggedAt is the
// moment the completion happened; entries are removed only by cascading
// habit deletion.
type Entry struct {
	EntryID      string    `json:"entryId"`
	HabitID      string    `json:"habitId"`
	Note         *string   `json:"note,omitempty"`
	LoggedAt     time.Time `json:"loggedAt"`
	CreationTime time.Time `json:"creationTime"`
}

// Badge is a named achievement permanently associated with a user.
type Badge struct {
	BadgeID     string    `json:"badgeId"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}
