package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fathima-sithara/account-service/internal/auth"
	"github.com/fathima-sithara/account-service/internal/avatars"
	"github.com/fathima-sithara/account-service/internal/events"
	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/fathima-sithara/account-service/internal/repository"
	"github.com/fathima-sithara/account-service/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type accountService struct {
	repo      repository.UserRepository
	tokens    *auth.TokenManager
	store     storage.Store
	processor *avatars.Processor
	publisher *events.Publisher
	validate  *validator.Validate
	hashCost  int
}

func NewAccountService(
	repo repository.UserRepository,
	tokens *auth.TokenManager,
	store storage.Store,
	processor *avatars.Processor,
	publisher *events.Publisher,
	hashCost int,
) AccountService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &accountService{
		repo:      repo,
		tokens:    tokens,
		store:     store,
		processor: processor,
		publisher: publisher,
		validate:  validator.New(),
		hashCost:  hashCost,
	}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Age:          in.Age,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	s.publisher.UserRegistered(ctx, user.ID.Hex(), user.Email)
	return session, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, user)
}

func (s *accountService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	// a structurally valid token that has been logged out is stale
	if !user.HasToken(token) {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *accountService) Logout(ctx context.Context, user *models.User, token string) error {
	if err := s.repo.PullToken(ctx, user.ID.Hex(), token); err != nil {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	kept := make([]string, 0, len(user.Tokens))
	for _, t := range user.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	user.Tokens = kept
	return nil
}

func (s *accountService) LogoutAll(ctx context.Context, user *models.User) error {
	if err := s.repo.ClearTokens(ctx, user.ID.Hex()); err != nil {
		return fmt.Errorf("failed to clear session tokens: %w", err)
	}
	user.Tokens = []string{}
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.repo.Delete(ctx, user.ID.Hex()); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	s.publisher.UserDeleted(ctx, user.ID.Hex(), user.Email)
	return user, nil
}

func (s *accountService) UploadAvatar(ctx context.Context, data []byte) (string, error) {
	processed, contentType, err := s.processor.Process(data)
	if err != nil {
		return "", err
	}
	key := "avatars/" + uuid.NewString() + ".png"
	if err := s.store.Save(ctx, key, contentType, processed); err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}
	return key, nil
}

func (s *accountService) issueSession(ctx context.Context, user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	if err := s.repo.PushToken(ctx, user.ID.Hex(), token); err != nil {
		return nil, fmt.Errorf("failed to persist session token: %w", err)
	}
	user.Tokens = append(user.Tokens, token)
	return &Session{Token: token, User: user}, nil
}
