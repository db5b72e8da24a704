package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidCredentials is deliberately the only login failure the
	// client ever sees; it never reveals whether the email or the
	// password was wrong.
	ErrInvalidCredentials = errors.New("unable to login")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUnauthenticated    = errors.New("please authenticate")
	ErrInvalidUpdate      = errors.New("invalid update fields")
	ErrValidation         = errors.New("validation failed")
)

// Session pairs a freshly issued token with its user.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=7,excludes=password"`
	Age      *int   `json:"age" validate:"omitempty,gte=0"`
}

// AccountService defines the account management operations.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Authenticate resolves a bearer token to its user; the token must
	// verify and still be present in the user's token list.
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, user *models.User, token string) error
	LogoutAll(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User, body []byte) (*models.User, error)
	DeleteAccount(ctx context.Context, user *models.User) (*models.User, error)
	UploadAvatar(ctx context.Context, data []byte) (string, error)
}

func validationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, fieldMessage(ve[0]))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "excludes":
		return fmt.Sprintf("%s must not contain %q", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation on %s", field, fe.Tag())
	}
}
