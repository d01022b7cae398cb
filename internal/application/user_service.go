package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/aryawidjaya/user-accounts/internal/domain/entity"
	"github.com/aryawidjaya/user-accounts/internal/domain/errs"
	repo "github.com/aryawidjaya/user-accounts/internal/domain/repository"
	"github.com/aryawidjaya/user-accounts/pkg/helpers"
)

// Service orchestrates the user lifecycle use cases. It holds no mutable
// state of its own; concurrent calls are safe and all serialization happens
// at the repository. Redis, ES and Notifier are optional collaborators and
// may be nil.
type Service struct {
	Repo         repo.UserRepository
	Validator    *UserValidator
	Notifier     Notifier
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	CacheTTL     time.Duration
}

func NewService(repo repo.UserRepository, v *UserValidator, notifier Notifier, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *Service {
	return &Service{
		Repo:         repo,
		Validator:    v,
		Notifier:     notifier,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		CacheTTL:     5 * time.Minute,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateInput carries a partial update; nil means "leave unchanged".
type UpdateInput struct {
	Username *string
	Email    *string
}

// RegisterUser validates input, rejects duplicate emails, persists the new
// account and fires a best-effort welcome notification. The duplicate probe
// is only a fast path: the storage unique constraint is the authoritative
// tie-breaker when two registrations race.
func (s *Service) RegisterUser(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := s.Validator.Validate(map[string]string{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
	}); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrConflict
	}

	user, err := entity.NewUser(in.Username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	saved, err := s.Repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(ctx, saved)
	_ = s.indexUser(ctx, saved)
	s.cachePut(ctx, saved)
	return saved, nil
}

// GetUser looks a user up by id. Absence is a valid outcome and is returned
// as (nil, nil); only infrastructure failures are errors.
func (s *Service) GetUser(ctx context.Context, id string) (*entity.User, error) {
	if u := s.cacheGet(ctx, id); u != nil {
		return u, nil
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		if s.Logger != nil {
			s.Logger.WithField("user_id", id).Warn("user not found")
		}
		return nil, nil
	}
	s.cachePut(ctx, u)
	return u, nil
}

// ListUsers returns the full current set of users. No pagination or
// ordering beyond what the repository provides.
func (s *Service) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.GetAll(ctx)
}

// UpdateUser applies a partial update: supplied fields are validated and
// replaced, omitted fields are kept, credential and identity carry over.
func (s *Service) UpdateUser(ctx context.Context, id string, in UpdateInput) (*entity.User, error) {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.ErrNotFound
	}

	fields := map[string]string{}
	username, email := "", ""
	if in.Username != nil {
		fields["username"] = *in.Username
		username = *in.Username
	}
	if in.Email != nil {
		fields["email"] = *in.Email
		email = *in.Email
	}
	if err := s.Validator.Validate(fields); err != nil {
		return nil, err
	}

	next, err := existing.WithProfile(username, email)
	if err != nil {
		return nil, err
	}

	saved, err := s.Repo.Save(ctx, next)
	if err != nil {
		return nil, err
	}

	s.cachePut(ctx, saved)
	_ = s.indexUser(ctx, saved)
	if s.Logger != nil {
		s.Logger.WithField("user_id", id).Info("user updated")
	}
	return saved, nil
}

// DeleteUser removes the user and returns the deleted record; a missing id
// surfaces as errs.ErrNotFound from the repository.
func (s *Service) DeleteUser(ctx context.Context, id string) (*entity.User, error) {
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheDrop(ctx, id)
	s.removeIndex(ctx, id)
	if s.Logger != nil {
		s.Logger.WithField("user_id", id).Info("user deleted")
	}
	return deleted, nil
}

// sendWelcomeEmail is fire-and-forget: a notifier failure is logged and
// never rolls back the registration.
func (s *Service) sendWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Notifier == nil {
		return
	}
	subject := "Welcome to our platform"
	body := fmt.Sprintf("Hi %s,\n\nThank you for registering with us!", u.Username)
	if err := s.Notifier.Send(ctx, u.Email.String(), subject, body); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email failed")
	}
}

// --- Redis read-through cache ---

type cachedUser struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Credential string    `json:"credential"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func cacheKey(id string) string {
	return "user:profile:" + id
}

func (s *Service) cacheGet(ctx context.Context, id string) *entity.User {
	if s.Redis == nil {
		return nil
	}
	var cu cachedUser
	found, err := helpers.RedisGetJSON(ctx, s.Redis, cacheKey(id), &cu)
	if err != nil || !found {
		return nil
	}
	return entity.Restore(cu.ID, cu.Username, cu.Email, cu.Credential, cu.IsActive, cu.CreatedAt, cu.UpdatedAt)
}

func (s *Service) cachePut(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	cu := cachedUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email.String(),
		Credential: u.Credential.Digest(),
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, cacheKey(u.ID), cu, ttl); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("cache write failed")
	}
}

func (s *Service) cacheDrop(ctx context.Context, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, cacheKey(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("cache invalidate failed")
	}
}

// --- Elasticsearch indexing (best-effort, same contract as notification) ---

func (s *Service) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email.String(),
		"is_active": u.IsActive,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *Service) removeIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchUsers performs a multi_match query on username and email.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "username"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
