package validate

import (
	"strings"
	"testing"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid username",
			username:    "divya_01",
			expectError: false,
		},
		{
			name:        "empty username",
			username:    "",
			expectError: true,
			errorMsg:    "username is required",
		},
		{
			name:        "too short",
			username:    "ab",
			expectError: true,
		},
		{
			name:        "uppercase rejected",
			username:    "Divya",
			expectError: true,
		},
		{
			name:        "spaces rejected",
			username:    "di vya",
			expectError: true,
		},
		{
			name:        "at max length",
			username:    strings.Repeat("a", 30),
			expectError: false,
		},
		{
			name:        "over max length",
			username:    strings.Repeat("a", 31),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for username '%s'", tt.username)
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Fatalf("expected error message '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Fatalf("unexpected error for valid username '%s': %v", tt.username, err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	if err := Password(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
	if err := Password("short"); err == nil {
		t.Fatalf("expected error for 5-char password")
	}
	if err := Password("longenough"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateHabit(t *testing.T) {
	tests := []struct {
		name        string
		habitName   string
		description *string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid habit",
			habitName:   "Morning run",
			description: stringPtr("5k before breakfast"),
			expectError: false,
		},
		{
			name:        "empty name",
			habitName:   "",
			expectError: true,
			errorMsg:    "name is required",
		},
		{
			name:        "name too long",
			habitName:   strings.Repeat("a", 101),
			expectError: true,
			errorMsg:    "name exceeds 100 characters",
		},
		{
			name:        "description too long",
			habitName:   "Read",
			description: stringPtr(strings.Repeat("a", 501)),
			expectError: true,
			errorMsg:    "description exceeds 500 characters",
		},
		{
			name:        "nil description",
			habitName:   "Read",
			description: nil,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CreateHabit(tt.habitName, tt.description)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for test case '%s'", tt.name)
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Fatalf("expected error message '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Fatalf("unexpected error for test case '%s': %v", tt.name, err)
			}
		})
	}
}

func TestLogEntry(t *testing.T) {
	if err := LogEntry(nil, ""); err != nil {
		t.Fatalf("empty request should pass: %v", err)
	}
	if err := LogEntry(nil, "2024-05-20T09:00:00Z"); err != nil {
		t.Fatalf("RFC 3339 timestamp should pass: %v", err)
	}
	if err := LogEntry(nil, "yesterday"); err == nil {
		t.Fatalf("expected error for non-timestamp loggedAt")
	}
	long := strings.Repeat("a", 1001)
	if err := LogEntry(&long, ""); err == nil {
		t.Fatalf("expected error for oversized note")
	}
}

// Helper function to create string pointers
func stringPtr(s string) *string {
	return &s
}
