package repository

import (
	"context"

	"github.com/aryawidjaya/user-accounts/internal/domain/entity"
)

// UserRepository is the persistence boundary for users. Implementations own
// all storage concerns, including the unique constraints on email and
// username that settle duplicate races.
//
// GetByID and GetByEmail return (nil, nil) when no user matches: absence is
// a valid outcome, not an error. Delete returns errs.ErrNotFound for a
// missing id.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]*entity.User, error)
	// Save inserts or updates keyed by user ID and returns the persisted
	// representation, including server-assigned timestamps.
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
	// Delete removes the user and returns the deleted record.
	Delete(ctx context.Context, id string) (*entity.User, error)
}
