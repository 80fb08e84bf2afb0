package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	accountshttp "github.com/s-urunov-dev/bookstore/internal/accounts/adapters/http"
	"github.com/s-urunov-dev/bookstore/internal/accounts/adapters/memory"
	"github.com/s-urunov-dev/bookstore/internal/accounts/app"
	"github.com/s-urunov-dev/bookstore/internal/accounts/domain"
	"github.com/s-urunov-dev/bookstore/internal/auth"
)

type testServer struct {
	mux    *http.ServeMux
	issuer *auth.TokenIssuer
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	repo := memory.NewRepository()
	if err := repo.Create(context.Background(), domain.User{
		ID:        "admin-1",
		Username:  "root",
		Email:     "root@example.com",
		Role:      auth.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	issuer := auth.NewTokenIssuer("test-secret", 15*time.Minute, 24*time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := app.NewService(repo, issuer, logger)

	mw := auth.NewMiddleware(issuer, service)

	mux := http.NewServeMux()
	accountshttp.NewHandler(service).Register(mux, mw)

	return &testServer{mux: mux, issuer: issuer}
}

func (s *testServer) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()

	pair, err := s.issuer.Issue("admin-1", "root", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return pair.Access
}

func registerUser(t *testing.T, s *testServer, username string) {
	t.Helper()

	rec := s.request(t, "POST", "/v1/auth/register", "",
		`{"username":"`+username+`","email":"`+username+`@example.com","password":"s3cret-pass","confirm_password":"s3cret-pass"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on register, got %d: %s", rec.Code, rec.Body.String())
	}
}

func login(t *testing.T, s *testServer, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	return s.request(t, "POST", "/v1/auth/token", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
}

func TestRegisterAndLogin(t *testing.T) {
	server := setupServer(t)

	t.Run("register returns created message", func(t *testing.T) {
		rec := server.request(t, "POST", "/v1/auth/register", "",
			`{"username":"alice","email":"alice@example.com","password":"s3cret-pass","confirm_password":"s3cret-pass"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Message != "Created user successfully." {
			t.Errorf("unexpected message %q", body.Message)
		}
	})

	t.Run("mismatched passwords are rejected with a field error", func(t *testing.T) {
		rec := server.request(t, "POST", "/v1/auth/register", "",
			`{"username":"bob","email":"bob@example.com","password":"one","confirm_password":"two"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Error map[string]string `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Error["confirm_password"] == "" {
			t.Errorf("expected confirm_password field error, got %v", body.Error)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		rec := server.request(t, "POST", "/v1/auth/register", "",
			`{"username":"alice","email":"other@example.com","password":"s3cret-pass","confirm_password":"s3cret-pass"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("login returns a token pair", func(t *testing.T) {
		rec := login(t, server, "alice", "s3cret-pass")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Access   string `json:"access"`
			Refresh  string `json:"refresh"`
			Username string `json:"username"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Access == "" || body.Refresh == "" {
			t.Error("expected both tokens in the response")
		}
		if body.Username != "alice" {
			t.Errorf("expected username alice, got %q", body.Username)
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		rec := login(t, server, "alice", "wrong")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("refresh issues a new access token", func(t *testing.T) {
		loginRec := login(t, server, "alice", "s3cret-pass")

		var pair struct {
			Refresh string `json:"refresh"`
		}
		if err := json.Unmarshal(loginRec.Body.Bytes(), &pair); err != nil {
			t.Fatalf("failed to decode login response: %v", err)
		}

		rec := server.request(t, "POST", "/v1/auth/token/refresh", "",
			`{"refresh":"`+pair.Refresh+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Access string `json:"access"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Access == "" {
			t.Error("expected a fresh access token")
		}
	})

	t.Run("garbage refresh token is unauthorized", func(t *testing.T) {
		rec := server.request(t, "POST", "/v1/auth/token/refresh", "", `{"refresh":"not-a-token"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestBlockAndUnblock(t *testing.T) {
	server := setupServer(t)
	registerUser(t, server, "carol")

	userID := func() string {
		rec := login(t, server, "carol", "s3cret-pass")
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode login response: %v", err)
		}
		return body.UserID
	}()

	admin := server.adminToken(t)

	t.Run("block requires admin role", func(t *testing.T) {
		pair, err := server.issuer.Issue(userID, "carol", auth.RoleUser)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}

		rec := server.request(t, "POST", "/v1/users/block", pair.Access, `{"user_id":"`+userID+`"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("block deactivates the account", func(t *testing.T) {
		rec := server.request(t, "POST", "/v1/users/block", admin, `{"user_id":"`+userID+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "User carol has been blocked") {
			t.Errorf("unexpected body %s", rec.Body.String())
		}

		loginRec := login(t, server, "carol", "s3cret-pass")
		if loginRec.Code != http.StatusUnauthorized {
			t.Errorf("expected blocked user login to fail with 401, got %d", loginRec.Code)
		}
	})

	t.Run("blocking again is a no-op with a distinct message", func(t *testing.T) {
		rec := server.request(t, "POST", "/v1/users/block", admin, `{"user_id":"`+userID+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "User carol is already blocked") {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("unblock restores access", func(t *testing.T) {
		rec := server.request(t, "POST", "/v1/users/unblock", admin, `{"user_id":"`+userID+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "User carol has been unblocked") {
			t.Errorf("unexpected body %s", rec.Body.String())
		}

		loginRec := login(t, server, "carol", "s3cret-pass")
		if loginRec.Code != http.StatusOK {
			t.Errorf("expected unblocked user login to succeed, got %d", loginRec.Code)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		rec := server.request(t, "POST", "/v1/users/block", admin, `{"user_id":"nonexistent-id"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing user_id is a validation error", func(t *testing.T) {
		rec := server.request(t, "POST", "/v1/users/block", admin, `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
