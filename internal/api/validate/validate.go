package validate

import (
	"fmt"
	"regexp"
	"time"
)

// usernameRx allows lowercase letters, digits and underscore, 3-30 chars.
var usernameRx = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

const (
	maxHabitName   = 100
	maxDescription = 500
	maxNote        = 1000
	minPassword    = 6
)

// Username validates a login name: lowercase letters, digits, underscore,
// 3-30 characters.
func Username(v string) error {
	if v == "" {
		return fmt.Errorf("username is required")
	}
	if !usernameRx.MatchString(v) {
		return fmt.Errorf("username must match %s", usernameRx.String())
	}
	return nil
}

func Password(v string) error {
	if v == "" {
		return fmt.Errorf("password is required")
	}
	if len(v) < minPassword {
		return fmt.Errorf("password must be at least %d characters", minPassword)
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// -------- Request specific helpers ----------

// Register validates input for creating a new account.
func Register(username, password string) error {
	if err := Username(username); err != nil {
		return err
	}
	return Password(password)
}

// CreateHabit validates input for creating a habit.
func CreateHabit(name string, description *string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if len(name) > maxHabitName {
		return fmt.Errorf("name exceeds %d characters", maxHabitName)
	}
	return MaxLen("description", description, maxDescription)
}

// LogEntry validates input for logging a completion. loggedAt is the raw
// request string; empty means "now" and is accepted.
func LogEntry(note *string, loggedAt string) error {
	if err := MaxLen("note", note, maxNote); err != nil {
		return err
	}
	if loggedAt != "" {
		if _, err := time.Parse(time.RFC3339, loggedAt); err != nil {
			return fmt.Errorf("loggedAt must be RFC 3339")
		}
	}
	return nil
}
