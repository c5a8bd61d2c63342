package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"minitweet/internal/model"
	"minitweet/internal/repository"
)

// TokenIssuer issues session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64) (string, time.Time, error)
}

// UserService handles business logic for user operations
type UserService struct {
	repo   repository.UserRepository
	hasher *PasswordHasher
	tokens TokenIssuer
}

func NewUserService(repo repository.UserRepository, hasher *PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// SignUp creates a new account. A taken email surfaces as
// model.ErrEmailExists straight from the storage constraint.
func (s *UserService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	switch {
	case name == "":
		return nil, model.ErrNameRequired
	case email == "":
		return nil, model.ErrEmailRequired
	case req.Password == "":
		return nil, model.ErrPasswordRequired
	case len(req.Password) > model.MaxPasswordBytes:
		return nil, model.ErrPasswordTooLong
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:           name,
		Email:          email,
		Profile:        req.Profile,
		PasswordHashed: hashedPassword,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			return nil, model.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up", slog.String("component", "UserService"), slog.Int64("user", user.ID))
	return user, nil
}

// FindByEmail retrieves a user by email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.GetByEmail(ctx, strings.TrimSpace(email))
}

// Exists reports whether an account with id exists.
func (s *UserService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Authenticate checks credentials and issues a session token.
// Unknown email, wrong password and lookup failures all return
// model.ErrInvalidCredentials so callers cannot tell which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, req *model.LoginRequest) (*model.LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			slog.Error("login lookup failed", slog.String("component", "UserService"), slog.Any("err", err))
		}
		return nil, model.ErrInvalidCredentials
	}

	if !s.hasher.Verify(req.Password, user.PasswordHashed) {
		return nil, model.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.LoginResult{
		UserID:      user.ID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
