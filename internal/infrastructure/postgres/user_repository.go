package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aryawidjaya/user-accounts/internal/domain/entity"
	"github.com/aryawidjaya/user-accounts/internal/domain/errs"
	"github.com/aryawidjaya/user-accounts/internal/domain/repository"
)

// Postgres unique_violation; raised by the unique indexes on email and
// username, which are the authoritative tie-breaker for duplicate races.
const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, username, email, credential, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id, username, email, credential string
		isActive                        bool
		createdAt, updatedAt            time.Time
	)
	if err := row.Scan(&id, &username, &email, &credential, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return entity.Restore(id, username, email, credential, isActive, createdAt, updatedAt), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Save upserts keyed by id. A unique violation on email or username maps to
// errs.ErrConflict so concurrent duplicate registrations fail cleanly even
// when both passed the use-case pre-check.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, email, credential, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
		    email = EXCLUDED.email,
		    credential = EXCLUDED.credential,
		    is_active = EXCLUDED.is_active,
		    updated_at = now()
		RETURNING `+userColumns+`
	`, u.ID, u.Username, u.Email.String(), u.Credential.Digest(), u.IsActive)

	saved, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, errs.ErrConflict
		}
		return nil, err
	}
	return saved, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM users
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
