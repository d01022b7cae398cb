package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/aryawidjaya/user-accounts/internal/domain/valueobject"
)

// User is the aggregate root for the user domain. Email and Credential are
// value objects, so a User cannot be built around an invalid address or a
// plaintext password.
type User struct {
	ID         string
	Username   string
	Email      valueobject.Email
	Credential valueobject.Credential
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewUser is the creation factory: it validates email and password through
// the value objects, assigns a fresh UUID and starts the account inactive
// until an activation flow flips it.
func NewUser(username, email, password string) (*User, error) {
	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	cred, err := valueobject.NewCredential(password)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:         uuid.NewString(),
		Username:   username,
		Email:      addr,
		Credential: cred,
		IsActive:   false,
	}, nil
}

// Restore rehydrates a user from storage without re-running construction
// checks; stored values were validated on the write path.
func Restore(id, username, email, credentialDigest string, isActive bool, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:         id,
		Username:   username,
		Email:      valueobject.RestoreEmail(email),
		Credential: valueobject.RestoreCredential(credentialDigest),
		IsActive:   isActive,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// WithProfile returns a copy with username and email replaced where
// supplied (empty string keeps the current value). Identity, credential and
// active flag carry over unchanged.
func (u *User) WithProfile(username, email string) (*User, error) {
	next := *u
	if username != "" {
		next.Username = username
	}
	if email != "" {
		addr, err := valueobject.NewEmail(email)
		if err != nil {
			return nil, err
		}
		next.Email = addr
	}
	return &next, nil
}

// VerifyPassword reports whether plain digests to the stored credential.
func (u *User) VerifyPassword(plain string) bool {
	return u.Credential.Verify(plain)
}
