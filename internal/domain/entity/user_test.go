package entity

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/aryawidjaya/user-accounts/internal/domain/errs"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("testuser", "test@example.com", "Password123")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}

	if _, err := uuid.Parse(u.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", u.ID, err)
	}
	if u.Username != "testuser" {
		t.Errorf("Username = %q", u.Username)
	}
	if u.Email.String() != "test@example.com" {
		t.Errorf("Email = %q", u.Email.String())
	}
	if u.IsActive {
		t.Error("new users start inactive")
	}
	if u.Credential.Digest() == "Password123" {
		t.Error("credential stored as plaintext")
	}
	if !u.VerifyPassword("Password123") {
		t.Error("VerifyPassword rejects the original password")
	}
}

func TestNewUserDistinctIDs(t *testing.T) {
	a, _ := NewUser("usera", "a@example.com", "Password123")
	b, _ := NewUser("userb", "b@example.com", "Password123")
	if a.ID == b.ID {
		t.Error("two users share an ID")
	}
}

func TestNewUserInvalidInput(t *testing.T) {
	if _, err := NewUser("testuser", "not-an-email", "Password123"); err == nil {
		t.Error("expected error for invalid email")
	}
	_, err := NewUser("testuser", "test@example.com", "short")
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for weak password, got %v", err)
	}
}

func TestWithProfile(t *testing.T) {
	u, _ := NewUser("testuser", "test@example.com", "Password123")

	next, err := u.WithProfile("renamed", "")
	if err != nil {
		t.Fatalf("WithProfile: %v", err)
	}
	if next.Username != "renamed" {
		t.Errorf("Username = %q", next.Username)
	}
	if next.Email.String() != "test@example.com" {
		t.Error("email changed on username-only update")
	}
	if next.Credential.Digest() != u.Credential.Digest() {
		t.Error("credential changed on profile update")
	}
	if next.ID != u.ID {
		t.Error("identity changed on profile update")
	}
	if u.Username != "testuser" {
		t.Error("WithProfile mutated the receiver")
	}

	if _, err := u.WithProfile("", "bad-email"); err == nil {
		t.Error("expected error for invalid replacement email")
	}
}
