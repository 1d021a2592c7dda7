package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pizzeria/internal/models"
	"pizzeria/internal/storage"
)

const (
	testEmail    = "alice@example.com"
	testPassword = "thin-crust-4ever"
)

func newTestAuthority(t *testing.T, now time.Time) (*Authority, *storage.Store) {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FirstName:      "Alice",
		LastName:       "Smith",
		Email:          testEmail,
		HashedPassword: string(hash),
		StreetAddress:  "1 Main St",
	}
	require.NoError(t, store.Create("users", testEmail, user))

	authority := New(store, time.Hour).WithClock(func() time.Time { return now })
	return authority, store
}

func TestIssue(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	authority, _ := newTestAuthority(t, now)

	tok, err := authority.Issue(testEmail, testPassword)
	require.NoError(t, err)

	assert.Len(t, tok.ID, IDLength)
	for _, r := range tok.ID {
		assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'), "unexpected token id character %q", r)
	}
	assert.Equal(t, testEmail, tok.Email)
	assert.Equal(t, now.Add(time.Hour), tok.Expires)

	// Token is durable, not just returned.
	stored, err := authority.Get(tok.ID)
	require.NoError(t, err)
	assert.Equal(t, tok.ID, stored.ID)
}

func TestIssueWrongPassword(t *testing.T) {
	authority, _ := newTestAuthority(t, time.Now())

	_, err := authority.Issue(testEmail, "deep-dish")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueUnknownUser(t *testing.T) {
	authority, _ := newTestAuthority(t, time.Now())

	_, err := authority.Issue("nobody@example.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	authority, _ := newTestAuthority(t, now)

	tok, err := authority.Issue(testEmail, testPassword)
	require.NoError(t, err)

	assert.True(t, authority.Verify(tok.ID, testEmail))
	assert.False(t, authority.Verify(tok.ID, "bob@example.com"), "token must not authorize another owner")
	assert.False(t, authority.Verify("aaaaaaaaaaaaaaaaaaaa", testEmail), "unknown token id")
}

func TestVerifyExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	authority, _ := newTestAuthority(t, now)

	tok, err := authority.Issue(testEmail, testPassword)
	require.NoError(t, err)

	authority.WithClock(func() time.Time { return now.Add(time.Hour) })
	assert.False(t, authority.Verify(tok.ID, testEmail), "expiry boundary is exclusive: expires <= now is invalid")
}

func TestRenewResetsExpiry(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	authority, _ := newTestAuthority(t, now)

	tok, err := authority.Issue(testEmail, testPassword)
	require.NoError(t, err)

	later := now.Add(30 * time.Minute)
	authority.WithClock(func() time.Time { return later })
	require.NoError(t, authority.Renew(tok.ID))

	renewed, err := authority.Get(tok.ID)
	require.NoError(t, err)
	assert.Equal(t, later.Add(time.Hour), renewed.Expires, "renewal is an absolute reset, not additive")
}

func TestRenewExpiredToken(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	authority, _ := newTestAuthority(t, now)

	tok, err := authority.Issue(testEmail, testPassword)
	require.NoError(t, err)

	authority.WithClock(func() time.Time { return now.Add(2 * time.Hour) })
	assert.ErrorIs(t, authority.Renew(tok.ID), ErrExpired)

	stored, err := authority.Get(tok.ID)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), stored.Expires, "failed renewal must not change the expiry")
}

func TestRenewMissingToken(t *testing.T) {
	authority, _ := newTestAuthority(t, time.Now())
	assert.ErrorIs(t, authority.Renew("aaaaaaaaaaaaaaaaaaaa"), ErrNotFound)
}

func TestRevoke(t *testing.T) {
	authority, _ := newTestAuthority(t, time.Now())

	tok, err := authority.Issue(testEmail, testPassword)
	require.NoError(t, err)

	require.NoError(t, authority.Revoke(tok.ID))
	assert.False(t, authority.Verify(tok.ID, testEmail))
	assert.ErrorIs(t, authority.Revoke(tok.ID), ErrNotFound)
}
