package services

import (
	"testing"
	"time"

	"health_record_ms/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIssueAndValidate(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	user, err := repo.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)
	require.NoError(t, repo.Activate(nil, user.Id))

	svc := NewSessionService(nil, repo, cache)

	token, expiresAt, err := svc.Issue(user.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	userID, ok := svc.Validate(token)
	assert.True(t, ok)
	assert.Equal(t, user.Id, userID)

	current, err := svc.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, current.Id)
}

func TestSessionTokensAreUnique(t *testing.T) {
	svc := NewSessionService(nil, newFakeUserRepo(), newFakeCache())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, _, err := svc.Issue(1)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestValidateRejectsUnknownAndEmptyTokens(t *testing.T) {
	svc := NewSessionService(nil, newFakeUserRepo(), newFakeCache())

	_, ok := svc.Validate("")
	assert.False(t, ok)

	_, ok = svc.Validate("no-such-token")
	assert.False(t, ok)
}

func TestValidateExpiredSessionIsDeleted(t *testing.T) {
	cache := newFakeCache()
	svc := NewSessionService(nil, newFakeUserRepo(), cache)

	require.NoError(t, cache.StoreAuthSession("stale", &AuthSession{
		UserId:    1,
		IssuedAt:  time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}, time.Hour))

	_, ok := svc.Validate("stale")
	assert.False(t, ok)
	assert.NotContains(t, cache.sessions, "stale")
}

// A cache read failure must read as a missing session, not as a valid one.
func TestValidateCacheErrorIsAMiss(t *testing.T) {
	cache := newFakeCache()
	svc := NewSessionService(nil, newFakeUserRepo(), cache)

	token, _, err := svc.Issue(1)
	require.NoError(t, err)

	cache.failNext = errFakeCache
	_, ok := svc.Validate(token)
	assert.False(t, ok)
}

func TestCurrentUserRequiresActiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	user, err := repo.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)

	svc := NewSessionService(nil, repo, cache)
	token, _, err := svc.Issue(user.Id)
	require.NoError(t, err)

	_, err = svc.CurrentUser(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	require.NoError(t, repo.Activate(nil, user.Id))
	current, err := svc.CurrentUser(token)
	require.NoError(t, err)
	assert.True(t, current.IsActive)
}

func TestRevokeIsIdempotent(t *testing.T) {
	cache := newFakeCache()
	svc := NewSessionService(nil, newFakeUserRepo(), cache)

	token, _, err := svc.Issue(1)
	require.NoError(t, err)

	svc.Revoke(token)
	_, ok := svc.Validate(token)
	assert.False(t, ok)

	// revoking again or revoking garbage is a no-op
	svc.Revoke(token)
	svc.Revoke("")
	svc.Revoke("never-issued")
}
