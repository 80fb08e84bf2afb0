package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	// ErrTokenInvalid signals a malformed, mis-signed or wrong-type token.
	ErrTokenInvalid = errors.New("auth: token invalid")
	// ErrTokenExpired signals that the token is past its expiry.
	ErrTokenExpired = errors.New("auth: token expired")
)

// Claims is the JWT payload carried by both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
}

// TokenPair is the access and refresh token bundle returned on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenIssuer mints and verifies HMAC-signed JWTs.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer with the given signing secret and TTLs.
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue mints an access and refresh token pair for the given user.
func (t *TokenIssuer) Issue(userID, username, role string) (TokenPair, error) {
	access, err := t.sign(userID, username, role, tokenTypeAccess, t.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := t.sign(userID, username, role, tokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess mints a fresh access token, used by the refresh flow.
func (t *TokenIssuer) IssueAccess(userID, username, role string) (string, error) {
	return t.sign(userID, username, role, tokenTypeAccess, t.accessTTL)
}

// VerifyAccess validates an access token and returns its claims.
func (t *TokenIssuer) VerifyAccess(token string) (*Claims, error) {
	return t.verify(token, tokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (t *TokenIssuer) VerifyRefresh(token string) (*Claims, error) {
	return t.verify(token, tokenTypeRefresh)
}

func (t *TokenIssuer) sign(userID, username, role, tokenType string, ttl time.Duration) (string, error) {
	now := t.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username:  username,
		Role:      role,
		TokenType: tokenType,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenIssuer) verify(token, wantType string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !parsed.Valid || claims.TokenType != wantType || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
