package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aryawidjaya/user-accounts/internal/domain/entity"
	"github.com/aryawidjaya/user-accounts/internal/domain/errs"
	"github.com/aryawidjaya/user-accounts/internal/domain/repository"
)

// UserRepository is a map-backed repository for tests and local runs
// without Postgres. It upholds the same contracts as the pgx
// implementation, including the unique email/username constraints.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email.String() == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, other := range r.users {
		if id == u.ID {
			continue
		}
		if other.Email.String() == u.Email.String() || other.Username == u.Username {
			return nil, errs.ErrConflict
		}
	}

	now := time.Now().UTC()
	stored := copyUser(u)
	if prev, ok := r.users[u.ID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.users[u.ID] = stored
	return copyUser(stored), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	delete(r.users, id)
	return copyUser(u), nil
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

var _ repository.UserRepository = (*UserRepository)(nil)
