package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"health_record_ms/config"
	"health_record_ms/domain"
	"health_record_ms/repository"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type ISessionService interface {
	Issue(userID uint) (string, time.Time, error)
	Validate(token string) (uint, bool)
	CurrentUser(token string) (*domain.User, error)
	Revoke(token string)
}

type SessionService struct {
	db       *gorm.DB
	userRepo repository.IUserRepository
	cache    ICacheService
}

func NewSessionService(db *gorm.DB, userRepo repository.IUserRepository, cache ICacheService) ISessionService {
	return &SessionService{db: db, userRepo: userRepo, cache: cache}
}

func sessionTTL() time.Duration {
	hours := config.Conf.Application.Security.SessionValidityInHours
	if hours <= 0 {
		hours = 7 * 24
	}
	return time.Duration(hours) * time.Hour
}

// newToken returns 32 bytes of crypto/rand output, base64url encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *SessionService) Issue(userID uint) (string, time.Time, error) {
	token, err := newToken()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now()
	expiresAt := now.Add(sessionTTL())
	session := &AuthSession{
		UserId:    userID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}
	if err := s.cache.StoreAuthSession(token, session, sessionTTL()); err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Validate resolves a token to a user id. A cache read error is treated as a
// miss so a cache outage degrades to denied sessions, never a crash.
func (s *SessionService) Validate(token string) (uint, bool) {
	if token == "" {
		return 0, false
	}
	session, err := s.cache.GetAuthSession(token)
	if err != nil {
		log.Warn("session lookup failed, treating as miss: ", err)
		return 0, false
	}
	if session == nil {
		return 0, false
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.cache.DeleteAuthSession(token)
		return 0, false
	}
	return session.UserId, true
}

// CurrentUser additionally requires the account to still be active; a
// deactivated account has to authenticate again.
func (s *SessionService) CurrentUser(token string) (*domain.User, error) {
	userID, ok := s.Validate(token)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(s.db, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// Revoke never fails observably; deleting an absent token is a no-op.
func (s *SessionService) Revoke(token string) {
	if token == "" {
		return
	}
	if err := s.cache.DeleteAuthSession(token); err != nil {
		log.Warn("session revoke failed: ", err)
	}
}
