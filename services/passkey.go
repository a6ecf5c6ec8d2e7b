package services

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"health_record_ms/domain"
	"health_record_ms/dtos/request"
	"health_record_ms/dtos/response"
	"health_record_ms/repository"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"gorm.io/gorm"
)

type IPasskeyService interface {
	RegisterStart(req *request.StartPasskeyRegistration) (*response.RegistrationOptions, error)
	RegisterFinish(phone string, r *http.Request) (*response.VerifiedCredential, error)
	LoginStart(credentialID string) (*protocol.CredentialAssertion, error)
	LoginFinish(credentialID string, r *http.Request) (*domain.User, error)
	RevokeCredential(userID uint, credentialID string) error
}

type PasskeyService struct {
	db       *gorm.DB
	userRepo repository.IUserRepository
	wa       *webauthn.WebAuthn
	cache    ICacheService
}

func NewPasskeyService(wa *webauthn.WebAuthn, db *gorm.DB, userRepo repository.IUserRepository, cache ICacheService) IPasskeyService {
	return &PasskeyService{wa: wa, db: db, userRepo: userRepo, cache: cache}
}

// RegisterStart issues a registration challenge bound to the phone's user.
// An unknown phone gets a fresh inactive user row; an inactive one is reused
// so an abandoned registration can be retried.
func (ps *PasskeyService) RegisterStart(req *request.StartPasskeyRegistration) (*response.RegistrationOptions, error) {
	user, err := ps.userRepo.GetByPhone(ps.db, req.Phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = ps.userRepo.Create(ps.db, &domain.User{
			Name:      req.Name,
			Phone:     req.Phone,
			BirthDate: req.BirthDate,
			Gender:    req.Gender,
		})
	}
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		return nil, domain.ErrAlreadyRegistered
	}

	options, sessionData, err := ps.wa.BeginRegistration(user,
		webauthn.WithAuthenticatorSelection(protocol.AuthenticatorSelection{
			ResidentKey:      protocol.ResidentKeyRequirementDiscouraged,
			UserVerification: protocol.VerificationPreferred,
		}))
	if err != nil {
		return nil, err
	}

	if err := ps.cache.StoreSignupChallenge(user.Id, sessionData); err != nil {
		return nil, err
	}

	return &response.RegistrationOptions{
		UserHandle: base64.RawURLEncoding.EncodeToString(user.WebAuthnID()),
		Options:    options,
	}, nil
}

// RegisterFinish consumes the cached challenge before anything is validated,
// so a given challenge can succeed at most once even for racing submissions.
func (ps *PasskeyService) RegisterFinish(phone string, r *http.Request) (*response.VerifiedCredential, error) {
	user, err := ps.userRepo.GetByPhone(ps.db, phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sessionData, err := ps.cache.TakeSignupChallenge(user.Id)
	if err != nil {
		return nil, err
	}

	cred, err := ps.wa.FinishRegistration(user, *sessionData, r)
	if err != nil {
		return nil, domain.ErrAuthenticationFailed
	}

	if _, err := ps.userRepo.GetPasskeyByCredentialID(ps.db, cred.ID); err == nil {
		return nil, domain.ErrCredentialExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	authBytes, err := json.Marshal(cred.Authenticator)
	if err != nil {
		return nil, err
	}

	// credential insert and activation land together or not at all
	err = ps.db.Transaction(func(tx *gorm.DB) error {
		if err := ps.userRepo.SavePasskey(tx, authBytes, user.Id, cred); err != nil {
			return err
		}
		return ps.userRepo.Activate(tx, user.Id)
	})
	if err != nil {
		return nil, err
	}

	return &response.VerifiedCredential{
		UserId:       user.Id,
		CredentialId: base64.RawURLEncoding.EncodeToString(cred.ID),
	}, nil
}

// LoginStart issues a login challenge allow-listed to exactly the credential
// the client named.
func (ps *PasskeyService) LoginStart(credentialID string) (*protocol.CredentialAssertion, error) {
	credID, err := base64.RawURLEncoding.DecodeString(credentialID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	passkey, err := ps.userRepo.GetPasskeyByCredentialID(ps.db, credID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user, err := ps.userRepo.GetWithPasskeys(ps.db, passkey.UserID)
	if err != nil {
		return nil, err
	}

	assertion, sessionData, err := ps.wa.BeginLogin(user, webauthn.WithAllowedCredentials([]protocol.CredentialDescriptor{
		{
			Type:         protocol.PublicKeyCredentialType,
			CredentialID: passkey.CredentialID,
		},
	}))
	if err != nil {
		return nil, err
	}

	if err := ps.cache.StoreLoginChallenge(user.Id, sessionData); err != nil {
		return nil, err
	}

	return assertion, nil
}

// LoginFinish validates the assertion against the consumed challenge and the
// stored public key. The authenticator counter must move strictly forward; a
// stale or repeated counter reads as a cloned credential and is rejected.
func (ps *PasskeyService) LoginFinish(credentialID string, r *http.Request) (*domain.User, error) {
	credID, err := base64.RawURLEncoding.DecodeString(credentialID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	passkey, err := ps.userRepo.GetPasskeyByCredentialID(ps.db, credID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user, err := ps.userRepo.GetWithPasskeys(ps.db, passkey.UserID)
	if err != nil {
		return nil, err
	}

	sessionData, err := ps.cache.TakeLoginChallenge(user.Id)
	if err != nil {
		return nil, err
	}

	cred, err := ps.wa.FinishLogin(user, *sessionData, r)
	if err != nil {
		return nil, domain.ErrAuthenticationFailed
	}

	newCount := cred.Authenticator.SignCount
	if !counterAdvanced(passkey.SignCount, newCount, cred.Authenticator.CloneWarning) {
		return nil, domain.ErrAuthenticationFailed
	}

	authBytes, err := json.Marshal(cred.Authenticator)
	if err != nil {
		return nil, err
	}
	if err := ps.userRepo.UpdatePasskeyAfterLogin(ps.db, cred.ID, authBytes, newCount); err != nil {
		return nil, err
	}

	return user, nil
}

// counterAdvanced is the replay check. Authenticators that implement a usage
// counter must move it strictly forward on every assertion; a stale or
// repeated value means the assertion was replayed or the key was cloned.
// Authenticators reporting 0 on both sides do not implement counters.
func counterAdvanced(stored, reported uint32, cloneWarning bool) bool {
	if cloneWarning {
		return false
	}
	if stored == 0 && reported == 0 {
		return true
	}
	return reported > stored
}

// RevokeCredential removes one of the caller's own credentials.
func (ps *PasskeyService) RevokeCredential(userID uint, credentialID string) error {
	credID, err := base64.RawURLEncoding.DecodeString(credentialID)
	if err != nil {
		return domain.ErrNotFound
	}
	err = ps.userRepo.DeletePasskeyByOwner(ps.db, credID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
