// Package auth issues and verifies the signed access tokens carried in the
// Authorization header.
package auth

import (
	"errors"
	"fmt"
	"time"

	"elfatih/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	Issuer   = "elfatih-api"
	Audience = "elfatih-client"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

// Subject is the identity embedded in a token.
type Subject struct {
	UserID   uint
	Username string
	Role     models.Role
	Active   bool
}

// SubjectFromUser copies the claim-relevant fields of u.
func SubjectFromUser(u *models.User) Subject {
	return Subject{UserID: u.ID, Username: u.Username, Role: u.UserType, Active: u.IsActive}
}

// Claims is the decoded token payload. Role and Active reflect the user at
// issue time and may be stale until the token is refreshed.
type Claims struct {
	UserID   uint        `json:"user_id"`
	UserType models.Role `json:"user_type"`
	IsActive bool        `json:"is_active"`
	jwt.RegisteredClaims
}

// Username is the token subject.
func (c *Claims) Username() string {
	return c.Subject
}

// IsAdmin reports whether the token carries the ADMIN role.
func (c *Claims) IsAdmin() bool {
	return c.UserType == models.RoleAdmin
}

// TTL is the remaining lifetime of the token.
func (c *Claims) TTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// TokenManager signs and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a manager issuing tokens valid for ttl.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL is the default lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for sub using the default TTL.
func (m *TokenManager) Issue(sub Subject) (string, *Claims, error) {
	return m.IssueWithTTL(sub, m.ttl)
}

// IssueWithTTL signs a token for sub valid for ttl.
func (m *TokenManager) IssueWithTTL(sub Subject, ttl time.Duration) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID:   sub.UserID,
		UserType: sub.Role,
		IsActive: sub.Active,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.Username,
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify parses tokenString and returns its claims. Any failure, including
// expiry, a foreign signing method or a missing user id, yields ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == 0 || claims.Subject == "" || !claims.UserType.Valid() {
		return nil, fmt.Errorf("%w: incomplete claims", ErrInvalidToken)
	}
	return claims, nil
}
