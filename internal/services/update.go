package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/fathima-sithara/account-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// updatePayload stages every requested field so that validation of
// the whole request completes before any field is applied. A request
// that fails validation must leave the stored user untouched.
type updatePayload struct {
	Name     *string `validate:"omitempty,min=1"`
	Email    *string `validate:"omitempty,email"`
	Password *string `validate:"omitempty,min=7,excludes=password"`
	Age      *int    `validate:"omitempty,gte=0"`
}

var allowedUpdateFields = map[string]struct{}{
	"name":     {},
	"email":    {},
	"password": {},
	"age":      {},
}

func (s *accountService) UpdateProfile(ctx context.Context, user *models.User, body []byte) (*models.User, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrValidation)
	}

	// reject the whole request before staging anything
	for key := range fields {
		if _, ok := allowedUpdateFields[key]; !ok {
			return nil, ErrInvalidUpdate
		}
	}

	var upd updatePayload
	for key, raw := range fields {
		var dst interface{}
		switch key {
		case "name":
			dst = &upd.Name
		case "email":
			dst = &upd.Email
		case "password":
			dst = &upd.Password
		case "age":
			dst = &upd.Age
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, fmt.Errorf("%w: %s has the wrong type", ErrValidation, key)
		}
	}
	if err := s.validate.Struct(upd); err != nil {
		return nil, validationError(err)
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), s.hashCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if _, ok := fields["age"]; ok {
		// "age": null clears the stored age
		user.Age = upd.Age
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
