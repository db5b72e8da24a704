package repository

import (
	"context"
	"sync"
	"time"

	"github.com/fathima-sithara/account-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepo is an in-memory UserRepository used by tests and
// local development. It mirrors the Mongo repo's semantics, including
// the unique email constraint.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // hex id -> document
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*models.User)}
}

func (r *MemoryUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Tokens == nil {
		u.Tokens = []string{}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	cp.Tokens = append([]string(nil), u.Tokens...)
	r.users[u.ID.Hex()] = &cp
	return nil
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID.Hex()]
	if !ok {
		return ErrUserNotFound
	}
	for id, other := range r.users {
		if id != u.ID.Hex() && other.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	u.UpdatedAt = time.Now().UTC()
	u.CreatedAt = stored.CreatedAt
	r.users[u.ID.Hex()] = copyUser(u)
	return nil
}

func (r *MemoryUserRepo) PushToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Tokens = append(u.Tokens, token)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryUserRepo) PullToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryUserRepo) ClearTokens(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Tokens = []string{}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Tokens = append([]string(nil), u.Tokens...)
	if u.Age != nil {
		age := *u.Age
		cp.Age = &age
	}
	return &cp
}
