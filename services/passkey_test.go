package services

import (
	"encoding/base64"
	"net/http/httptest"
	"strings"
	"testing"

	"health_record_ms/domain"
	"health_record_ms/dtos/request"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWebAuthn(t *testing.T) *webauthn.WebAuthn {
	t.Helper()
	wa, err := webauthn.New(&webauthn.Config{
		RPDisplayName: "Health Record",
		RPID:          "localhost",
		RPOrigins:     []string{"http://localhost"},
	})
	require.NoError(t, err)
	return wa
}

func TestRegisterStartCreatesInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	svc := NewPasskeyService(newTestWebAuthn(t), nil, repo, cache)

	opts, err := svc.RegisterStart(&request.StartPasskeyRegistration{
		Phone: "1234567890",
		Name:  "Ada",
	})

	require.NoError(t, err)
	require.NotNil(t, opts)
	assert.NotNil(t, opts.Options)
	assert.Equal(t, base64.RawURLEncoding.EncodeToString([]byte("1")), opts.UserHandle)

	user, err := repo.GetByPhone(nil, "1234567890")
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	_, err = cache.TakeSignupChallenge(user.Id)
	assert.NoError(t, err)
}

func TestRegisterStartReusesInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	_, err := repo.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)

	svc := NewPasskeyService(newTestWebAuthn(t), nil, repo, cache)
	opts, err := svc.RegisterStart(&request.StartPasskeyRegistration{
		Phone: "1234567890",
		Name:  "Ada",
	})

	require.NoError(t, err)
	assert.Equal(t, base64.RawURLEncoding.EncodeToString([]byte("1")), opts.UserHandle)
	assert.Len(t, repo.users, 1)
}

func TestRegisterStartRejectsActiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	user, err := repo.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)
	require.NoError(t, repo.Activate(nil, user.Id))

	svc := NewPasskeyService(newTestWebAuthn(t), nil, repo, cache)
	opts, err := svc.RegisterStart(&request.StartPasskeyRegistration{
		Phone: "1234567890",
		Name:  "Ada",
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	assert.Nil(t, opts)
	assert.Empty(t, cache.signup)
}

// A finish attempt consumes the challenge even when attestation parsing
// fails, so the same challenge can never be retried.
func TestRegisterFinishConsumesChallengeOnce(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	user, err := repo.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)
	require.NoError(t, cache.StoreSignupChallenge(user.Id, &webauthn.SessionData{
		Challenge: "dGVzdC1jaGFsbGVuZ2U",
		UserID:    user.WebAuthnID(),
	}))

	svc := NewPasskeyService(newTestWebAuthn(t), nil, repo, cache)

	req := httptest.NewRequest("POST", "/finish", strings.NewReader("not json"))
	_, err = svc.RegisterFinish("1234567890", req)
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)

	req = httptest.NewRequest("POST", "/finish", strings.NewReader("not json"))
	_, err = svc.RegisterFinish("1234567890", req)
	assert.ErrorIs(t, err, domain.ErrChallengeExpired)
}

func TestRegisterFinishUnknownPhone(t *testing.T) {
	svc := NewPasskeyService(newTestWebAuthn(t), nil, newFakeUserRepo(), newFakeCache())

	req := httptest.NewRequest("POST", "/finish", strings.NewReader("{}"))
	_, err := svc.RegisterFinish("0000000000", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoginStartUnknownCredential(t *testing.T) {
	cache := newFakeCache()
	svc := NewPasskeyService(newTestWebAuthn(t), nil, newFakeUserRepo(), cache)

	credentialID := base64.RawURLEncoding.EncodeToString([]byte("no-such-credential"))
	assertion, err := svc.LoginStart(credentialID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, assertion)
	assert.Empty(t, cache.login)
}

func TestLoginStartStoresChallenge(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	user, err := repo.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)
	require.NoError(t, repo.Activate(nil, user.Id))

	credID := []byte("credential-one")
	require.NoError(t, repo.SavePasskey(nil, []byte("{}"), user.Id, &webauthn.Credential{
		ID:        credID,
		PublicKey: []byte("public-key"),
	}))

	svc := NewPasskeyService(newTestWebAuthn(t), nil, repo, cache)
	assertion, err := svc.LoginStart(base64.RawURLEncoding.EncodeToString(credID))

	require.NoError(t, err)
	require.NotNil(t, assertion)
	require.Len(t, assertion.Response.AllowedCredentials, 1)
	assert.Equal(t, credID, []byte(assertion.Response.AllowedCredentials[0].CredentialID))

	_, err = cache.TakeLoginChallenge(user.Id)
	assert.NoError(t, err)
}

func TestLoginFinishWithoutChallenge(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := repo.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)

	credID := []byte("credential-one")
	require.NoError(t, repo.SavePasskey(nil, []byte("{}"), user.Id, &webauthn.Credential{
		ID:        credID,
		PublicKey: []byte("public-key"),
	}))

	svc := NewPasskeyService(newTestWebAuthn(t), nil, repo, newFakeCache())
	req := httptest.NewRequest("POST", "/finish", strings.NewReader("{}"))
	_, err = svc.LoginFinish(base64.RawURLEncoding.EncodeToString(credID), req)

	assert.ErrorIs(t, err, domain.ErrChallengeExpired)
}

func TestCounterAdvanced(t *testing.T) {
	// counterless authenticators report 0 forever
	assert.True(t, counterAdvanced(0, 0, false))

	assert.True(t, counterAdvanced(0, 1, false))
	assert.True(t, counterAdvanced(5, 6, false))
	assert.True(t, counterAdvanced(5, 100, false))

	// replayed or stale assertions
	assert.False(t, counterAdvanced(5, 5, false))
	assert.False(t, counterAdvanced(5, 4, false))
	assert.False(t, counterAdvanced(5, 0, false))

	// the library's clone detection always wins
	assert.False(t, counterAdvanced(5, 6, true))
	assert.False(t, counterAdvanced(0, 0, true))
}

func TestRevokeCredential(t *testing.T) {
	repo := newFakeUserRepo()
	userA, _ := repo.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	userB, _ := repo.Create(nil, &domain.User{Name: "Bel", Phone: "1234567891"})

	credID := []byte("credential-one")
	encoded := base64.RawURLEncoding.EncodeToString(credID)
	_ = repo.SavePasskey(nil, []byte("{}"), userA.Id, &webauthn.Credential{ID: credID})

	svc := NewPasskeyService(newTestWebAuthn(t), nil, repo, newFakeCache())

	// another user cannot revoke a credential they do not own
	assert.ErrorIs(t, svc.RevokeCredential(userB.Id, encoded), domain.ErrNotFound)
	assert.Len(t, repo.passkeys, 1)

	assert.NoError(t, svc.RevokeCredential(userA.Id, encoded))
	assert.Empty(t, repo.passkeys)

	assert.ErrorIs(t, svc.RevokeCredential(userA.Id, encoded), domain.ErrNotFound)
}
