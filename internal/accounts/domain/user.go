package domain

import (
	"strings"
	"time"

	"github.com/s-urunov-dev/bookstore/internal/apperrors"
	"github.com/s-urunov-dev/bookstore/internal/auth"
)

// User represents a registered account. IsActive=false means blocked: the
// account cannot authenticate until an admin unblocks it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate ensures the user adheres to business constraints.
func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return apperrors.Validation("username", "username is required")
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return apperrors.Validation("email", "email must be valid")
	}
	if u.Role != auth.RoleUser && u.Role != auth.RoleAdmin {
		return apperrors.Validation("role", "role must be user or admin")
	}
	if u.PasswordHash == "" {
		return apperrors.Validation("password", "password is required")
	}
	return nil
}
