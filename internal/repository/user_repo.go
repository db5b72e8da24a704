package repository

import (
	"context"
	"errors"

	"github.com/fathima-sithara/account-service/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Update overwrites the stored document with u.
	Update(ctx context.Context, u *models.User) error
	// PushToken appends one session token to the user's token list.
	PushToken(ctx context.Context, id, token string) error
	// PullToken removes one session token by exact string match.
	PullToken(ctx context.Context, id, token string) error
	ClearTokens(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
