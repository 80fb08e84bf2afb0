package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/s-urunov-dev/bookstore/internal/accounts/domain"
	"github.com/s-urunov-dev/bookstore/internal/accounts/ports"
	"github.com/s-urunov-dev/bookstore/internal/apperrors"
	"github.com/s-urunov-dev/bookstore/internal/auth"
)

// Service bundles identity use cases: registration, login, token refresh
// and administrative block/unblock.
type Service struct {
	repo   ports.UserRepository
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

// NewService wires required dependencies.
func NewService(repo ports.UserRepository, tokens *auth.TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterInput captures payload for creating an account.
type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(input.Password) == "" {
		return nil, apperrors.Validation("password", "password is required")
	}
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.Validation("confirm_password", "Passwords do not match")
	}

	if existing, err := s.repo.GetByUsername(ctx, input.Username); err == nil && existing.IsActive {
		return nil, apperrors.Conflict("username", "User with this username already exists")
	} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         auth.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ports.ErrDuplicateUsername) {
			return nil, apperrors.Conflict("username", "User with this username already exists")
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)

	return &user, nil
}

// LoginInput captures credentials for obtaining a token pair.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the token pair plus user details returned on login.
type LoginResult struct {
	auth.TokenPair
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Login verifies credentials and issues a token pair. Blocked users fail
// authentication regardless of credentials.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid username or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.Unauthorized("account is blocked")
	}

	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	pair, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID, "username", user.Username)

	return &LoginResult{
		TokenPair: pair,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token,
// re-checking that the account is still active.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", apperrors.Unauthorized("invalid or expired refresh token")
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", apperrors.Unauthorized("invalid or expired refresh token")
		}
		return "", err
	}

	if !user.IsActive {
		return "", apperrors.Unauthorized("account is blocked")
	}

	return s.tokens.IssueAccess(user.ID, user.Username, user.Role)
}

// Block deactivates an account. Blocking an already-blocked user is a no-op.
func (s *Service) Block(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", apperrors.NotFound("User not found")
		}
		return "", err
	}

	if !user.IsActive {
		return fmt.Sprintf("User %s is already blocked", user.Username), nil
	}

	if err := s.repo.SetActive(ctx, userID, false); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "user blocked", "user_id", userID, "username", user.Username)

	return fmt.Sprintf("User %s has been blocked", user.Username), nil
}

// Unblock reactivates an account. Unblocking an active user is a no-op.
func (s *Service) Unblock(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", apperrors.NotFound("User not found")
		}
		return "", err
	}

	if user.IsActive {
		return fmt.Sprintf("User %s is already active", user.Username), nil
	}

	if err := s.repo.SetActive(ctx, userID, true); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "user unblocked", "user_id", userID, "username", user.Username)

	return fmt.Sprintf("User %s has been unblocked", user.Username), nil
}

// IsActive reports whether the account exists and is not blocked. It backs
// the auth middleware's per-request account check.
func (s *Service) IsActive(ctx context.Context, userID string) (bool, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsActive, nil
}
