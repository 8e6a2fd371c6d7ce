package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Ada  ", "+1 (555) 010-2000", "password123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Name != "Ada" {
		t.Errorf("Expected trimmed name Ada, got %q", user.Name)
	}

	if user.Phone != "+15550102000" {
		t.Errorf("Expected normalized phone +15550102000, got %q", user.Phone)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if user.HashedPassword != "" {
		t.Error("Expected no hash before the store hashes the password")
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		phone    string
		password string
		wantErr  error
	}{
		{"empty name", "   ", "5550102000", "password123", ErrEmptyName},
		{"phone too short", "Ada", "12345", "password123", ErrInvalidPhone},
		{"phone too long", "Ada", "+1234567890123456", "password123", ErrInvalidPhone},
		{"phone with letters", "Ada", "555-CALL-NOW", "password123", ErrInvalidPhone},
		{"plus in the middle", "Ada", "555+0102000", "password123", ErrInvalidPhone},
		{"password too short", "Ada", "5550102000", "short", ErrPasswordTooShort},
		{"password too long", "Ada", "5550102000", strings.Repeat("x", 73), ErrPasswordTooLong},
		{"no password at all", "Ada", "5550102000", "", ErrEmptyHashedPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.userName, tt.phone, tt.password)
			if err != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to match ErrValidation, got %v", err)
			}
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	stored := User{
		ID:             uuid.New(),
		Name:           "Ada",
		Phone:          "5550102000",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}

	if err := stored.Validate(); err != nil {
		t.Errorf("Expected stored user with hash to be valid, got %v", err)
	}

	stored.ID = uuid.Nil
	if err := stored.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"+1 555 010 2000": "+15550102000",
		"(555) 010-2000":  "5550102000",
		" 555.010.2000 ":  "5550102000",
		"+441234567890":   "+441234567890",
		"":                "",
	}

	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}
