package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agung037/cv-processor/internal/domain/users"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	assert.NoError(t, ComparePassword(hash, "admin123"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)
	assert.Error(t, ComparePassword("not-a-hash", "admin123"))
}

func TestHashPasswordLengthLimit(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes+8))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	// the limit is in bytes, not characters
	_, err = HashPassword(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", 0)
	assert.Equal(t, DefaultTokenTTL, issuer.TTL())

	tok, err := issuer.Issue(&users.User{ID: 4, Username: "user1", Email: "user1@example.com", Role: users.RoleUser})
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	assert.EqualValues(t, 4, claims.ID)
	assert.Equal(t, "user1", claims.Username)
	assert.Equal(t, "user1@example.com", claims.Email)
	assert.Equal(t, users.RoleUser, claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("a", time.Hour).Issue(&users.User{ID: 1, Role: users.RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokenIssuer("b", time.Hour).Parse(tok)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("k", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := issuer.Issue(&users.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenIssuer("k", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("k", time.Hour).Parse("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
