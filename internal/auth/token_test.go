package auth

import (
	"context"
	"testing"
	"time"

	"elfatih/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-characters"

func newManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	return m
}

func TestIssueThenVerifyRoundTripsIdentity(t *testing.T) {
	m := newManager(t)
	sub := Subject{UserID: 7, Username: "alice", Role: models.RoleAdmin, Active: true}

	token, issued, err := m.Issue(sub)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, models.RoleAdmin, claims.UserType)
	assert.True(t, claims.IsActive)
	assert.True(t, claims.IsAdmin())
	assert.Equal(t, issued.ID, claims.ID)
}

func TestVerifyCarriesInactiveFlag(t *testing.T) {
	m := newManager(t)
	token, _, err := m.Issue(Subject{UserID: 3, Username: "bob", Role: models.RoleUser, Active: false})
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.False(t, claims.IsActive)
	assert.False(t, claims.IsAdmin())
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := newManager(t)
	token, _, err := m.IssueWithTTL(Subject{UserID: 1, Username: "a", Role: models.RoleUser, Active: true}, -time.Minute)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSecretAndGarbage(t *testing.T) {
	m := newManager(t)
	other, err := NewTokenManager("another-secret-key-at-least-32-chars", time.Hour)
	require.NoError(t, err)

	token, _, err := other.Issue(Subject{UserID: 1, Username: "a", Role: models.RoleUser, Active: true})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongAudienceAndNoneAlg(t *testing.T) {
	m := newManager(t)
	claims := &Claims{
		UserID:   1,
		UserType: models.RoleUser,
		IsActive: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a",
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{"someone-else"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims.Audience = jwt.ClaimStrings{Audience}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestRedisRevocationStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisRevocationStore(rdb)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "abc", time.Minute))
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}
