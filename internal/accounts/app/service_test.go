package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/s-urunov-dev/bookstore/internal/accounts/adapters/memory"
	"github.com/s-urunov-dev/bookstore/internal/accounts/app"
	"github.com/s-urunov-dev/bookstore/internal/apperrors"
	"github.com/s-urunov-dev/bookstore/internal/auth"
)

func newTestService() (*app.Service, *memory.Repository) {
	repo := memory.NewRepository()
	tokens := auth.NewTokenIssuer("test-secret", 15*time.Minute, 24*time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return app.NewService(repo, tokens, logger), repo
}

func TestRegister(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		service, repo := newTestService()

		user, err := service.Register(context.Background(), app.RegisterInput{
			Username:        "alice",
			Email:           "alice@example.com",
			Password:        "pass1234",
			ConfirmPassword: "pass1234",
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		if !user.IsActive {
			t.Error("expected new user to be active")
		}
		if user.Role != auth.RoleUser {
			t.Errorf("expected role user, got %s", user.Role)
		}
		if user.PasswordHash == "pass1234" {
			t.Error("password must not be stored in plaintext")
		}

		stored, err := repo.GetByUsername(context.Background(), "alice")
		if err != nil {
			t.Fatalf("expected user to be persisted: %v", err)
		}
		if !auth.VerifyPassword("pass1234", stored.PasswordHash) {
			t.Error("stored hash must verify against the original password")
		}
	})

	t.Run("mismatched passwords return validation error and create no user", func(t *testing.T) {
		service, repo := newTestService()

		_, err := service.Register(context.Background(), app.RegisterInput{
			Username:        "bob",
			Password:        "pass1234",
			ConfirmPassword: "different",
		})

		if kind, _ := apperrors.KindOf(err); kind != apperrors.KindValidation {
			t.Fatalf("expected validation error, got: %v", err)
		}
		if _, err := repo.GetByUsername(context.Background(), "bob"); err == nil {
			t.Error("expected no user to be created")
		}
	})

	t.Run("duplicate active username returns conflict", func(t *testing.T) {
		service, _ := newTestService()

		input := app.RegisterInput{
			Username:        "carol",
			Password:        "pass1234",
			ConfirmPassword: "pass1234",
		}

		if _, err := service.Register(context.Background(), input); err != nil {
			t.Fatalf("first registration failed: %v", err)
		}

		_, err := service.Register(context.Background(), input)
		if kind, _ := apperrors.KindOf(err); kind != apperrors.KindConflict {
			t.Fatalf("expected conflict error, got: %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials return token pair and user details", func(t *testing.T) {
		service, _ := newTestService()

		if _, err := service.Register(context.Background(), app.RegisterInput{
			Username:        "alice",
			Email:           "alice@example.com",
			Password:        "pass1234",
			ConfirmPassword: "pass1234",
		}); err != nil {
			t.Fatalf("registration failed: %v", err)
		}

		result, err := service.Login(context.Background(), app.LoginInput{
			Username: "alice",
			Password: "pass1234",
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		if result.Access == "" || result.Refresh == "" {
			t.Error("expected both access and refresh tokens")
		}
		if result.Username != "alice" || result.Email != "alice@example.com" {
			t.Errorf("unexpected user details: %+v", result)
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		service, _ := newTestService()

		if _, err := service.Register(context.Background(), app.RegisterInput{
			Username:        "alice",
			Password:        "pass1234",
			ConfirmPassword: "pass1234",
		}); err != nil {
			t.Fatalf("registration failed: %v", err)
		}

		_, err := service.Login(context.Background(), app.LoginInput{Username: "alice", Password: "nope"})
		if kind, _ := apperrors.KindOf(err); kind != apperrors.KindUnauthorized {
			t.Fatalf("expected unauthorized error, got: %v", err)
		}
	})

	t.Run("blocked user cannot log in", func(t *testing.T) {
		service, _ := newTestService()

		user, err := service.Register(context.Background(), app.RegisterInput{
			Username:        "mallory",
			Password:        "pass1234",
			ConfirmPassword: "pass1234",
		})
		if err != nil {
			t.Fatalf("registration failed: %v", err)
		}

		if _, err := service.Block(context.Background(), user.ID); err != nil {
			t.Fatalf("block failed: %v", err)
		}

		_, err = service.Login(context.Background(), app.LoginInput{Username: "mallory", Password: "pass1234"})
		if kind, _ := apperrors.KindOf(err); kind != apperrors.KindUnauthorized {
			t.Fatalf("expected unauthorized error, got: %v", err)
		}
	})

	t.Run("unknown user is unauthorized", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Login(context.Background(), app.LoginInput{Username: "ghost", Password: "pass1234"})
		if kind, _ := apperrors.KindOf(err); kind != apperrors.KindUnauthorized {
			t.Fatalf("expected unauthorized error, got: %v", err)
		}
	})
}

func TestRefresh(t *testing.T) {
	t.Run("valid refresh token yields new access token", func(t *testing.T) {
		service, _ := newTestService()

		if _, err := service.Register(context.Background(), app.RegisterInput{
			Username:        "alice",
			Password:        "pass1234",
			ConfirmPassword: "pass1234",
		}); err != nil {
			t.Fatalf("registration failed: %v", err)
		}

		result, err := service.Login(context.Background(), app.LoginInput{Username: "alice", Password: "pass1234"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		access, err := service.Refresh(context.Background(), result.Refresh)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if access == "" {
			t.Error("expected access token")
		}
	})

	t.Run("blocked user cannot refresh", func(t *testing.T) {
		service, _ := newTestService()

		user, err := service.Register(context.Background(), app.RegisterInput{
			Username:        "mallory",
			Password:        "pass1234",
			ConfirmPassword: "pass1234",
		})
		if err != nil {
			t.Fatalf("registration failed: %v", err)
		}

		result, err := service.Login(context.Background(), app.LoginInput{Username: "mallory", Password: "pass1234"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if _, err := service.Block(context.Background(), user.ID); err != nil {
			t.Fatalf("block failed: %v", err)
		}

		_, err = service.Refresh(context.Background(), result.Refresh)
		if kind, _ := apperrors.KindOf(err); kind != apperrors.KindUnauthorized {
			t.Fatalf("expected unauthorized error, got: %v", err)
		}
	})

	t.Run("garbage refresh token is unauthorized", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Refresh(context.Background(), "not.a.token")
		if kind, _ := apperrors.KindOf(err); kind != apperrors.KindUnauthorized {
			t.Fatalf("expected unauthorized error, got: %v", err)
		}
	})
}

func TestBlockUnblock(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(context.Background(), app.RegisterInput{
		Username:        "dave",
		Password:        "pass1234",
		ConfirmPassword: "pass1234",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	t.Run("block deactivates the account", func(t *testing.T) {
		message, err := service.Block(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if message != "User dave has been blocked" {
			t.Errorf("unexpected message: %q", message)
		}

		active, err := service.IsActive(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("IsActive failed: %v", err)
		}
		if active {
			t.Error("expected user to be inactive")
		}
	})

	t.Run("blocking a blocked user is a no-op", func(t *testing.T) {
		message, err := service.Block(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if message != "User dave is already blocked" {
			t.Errorf("unexpected message: %q", message)
		}
	})

	t.Run("unblock reactivates the account", func(t *testing.T) {
		message, err := service.Unblock(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if message != "User dave has been unblocked" {
			t.Errorf("unexpected message: %q", message)
		}

		active, err := service.IsActive(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("IsActive failed: %v", err)
		}
		if !active {
			t.Error("expected user to be active")
		}
	})

	t.Run("unblocking an active user is a no-op", func(t *testing.T) {
		message, err := service.Unblock(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if message != "User dave is already active" {
			t.Errorf("unexpected message: %q", message)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := service.Block(context.Background(), "missing-id")
		if kind, _ := apperrors.KindOf(err); kind != apperrors.KindNotFound {
			t.Fatalf("expected not found error, got: %v", err)
		}
	})
}
