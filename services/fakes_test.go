package services

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"health_record_ms/domain"
	"health_record_ms/dtos/request"

	"github.com/go-webauthn/webauthn/webauthn"
	"gorm.io/gorm"
)

// fakeCache keeps challenges and sessions in maps with the same consume
// semantics as the redis-backed implementation.
type fakeCache struct {
	mu       sync.Mutex
	signup   map[uint]*webauthn.SessionData
	login    map[uint]*webauthn.SessionData
	sessions map[string]*AuthSession
	failNext error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		signup:   make(map[uint]*webauthn.SessionData),
		login:    make(map[uint]*webauthn.SessionData),
		sessions: make(map[string]*AuthSession),
	}
}

func (f *fakeCache) StoreSignupChallenge(userID uint, sessionData *webauthn.SessionData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signup[userID] = sessionData
	return nil
}

func (f *fakeCache) TakeSignupChallenge(userID uint) (*webauthn.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sd, ok := f.signup[userID]
	if !ok {
		return nil, domain.ErrChallengeExpired
	}
	delete(f.signup, userID)
	return sd, nil
}

func (f *fakeCache) StoreLoginChallenge(userID uint, sessionData *webauthn.SessionData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.login[userID] = sessionData
	return nil
}

func (f *fakeCache) TakeLoginChallenge(userID uint) (*webauthn.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sd, ok := f.login[userID]
	if !ok {
		return nil, domain.ErrChallengeExpired
	}
	delete(f.login, userID)
	return sd, nil
}

func (f *fakeCache) StoreAuthSession(token string, session *AuthSession, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[token] = session
	return nil
}

func (f *fakeCache) GetAuthSession(token string) (*AuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	session, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	return session, nil
}

func (f *fakeCache) DeleteAuthSession(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

// fakeUserRepo is an in-memory IUserRepository. The *gorm.DB argument is
// ignored everywhere.
type fakeUserRepo struct {
	mu       sync.Mutex
	nextID   uint
	users    map[uint]*domain.User
	passkeys []domain.Passkey
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]*domain.User)}
}

func (f *fakeUserRepo) GetByID(_ *gorm.DB, id uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByPhone(_ *gorm.DB, phone string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(_ *gorm.DB, entity *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entity.Id = f.nextID
	f.nextID++
	copied := *entity
	f.users[entity.Id] = &copied
	return entity, nil
}

func (f *fakeUserRepo) Update(_ *gorm.DB, entity *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *entity
	f.users[entity.Id] = &copied
	return nil
}

func (f *fakeUserRepo) Activate(_ *gorm.DB, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.IsActive = true
	return nil
}

func (f *fakeUserRepo) GetWithPasskeys(_ *gorm.DB, userId uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	copied.Passkeys = nil
	for _, p := range f.passkeys {
		if p.UserID == userId {
			copied.Passkeys = append(copied.Passkeys, p)
		}
	}
	return &copied, nil
}

func (f *fakeUserRepo) GetPasskeyByCredentialID(_ *gorm.DB, credID []byte) (*domain.Passkey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.passkeys {
		if bytes.Equal(p.CredentialID, credID) {
			copied := p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SavePasskey(_ *gorm.DB, authBytes []byte, userID uint, cred *webauthn.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passkeys = append(f.passkeys, domain.Passkey{
		ID:            uint(len(f.passkeys) + 1),
		UserID:        userID,
		CredentialID:  cred.ID,
		PublicKey:     cred.PublicKey,
		SignCount:     cred.Authenticator.SignCount,
		Authenticator: authBytes,
	})
	return nil
}

func (f *fakeUserRepo) UpdatePasskeyAfterLogin(_ *gorm.DB, credID []byte, auth []byte, signCount uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.passkeys {
		if bytes.Equal(f.passkeys[i].CredentialID, credID) {
			f.passkeys[i].Authenticator = auth
			f.passkeys[i].SignCount = signCount
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindUserByCredentialID(db *gorm.DB, credID []byte) (*domain.User, error) {
	passkey, err := f.GetPasskeyByCredentialID(db, credID)
	if err != nil {
		return nil, err
	}
	return f.GetWithPasskeys(db, passkey.UserID)
}

func (f *fakeUserRepo) DeletePasskeyByOwner(_ *gorm.DB, credID []byte, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.passkeys {
		if bytes.Equal(p.CredentialID, credID) && p.UserID == userID {
			f.passkeys = append(f.passkeys[:i], f.passkeys[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakePublisher records events instead of talking to Kafka.
type fakePublisher struct {
	mu     sync.Mutex
	events []*request.ReminderDueEvent
	err    error
}

func (f *fakePublisher) PublishReminderDue(event *request.ReminderDueEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

var errFakeCache = errors.New("cache unavailable")
