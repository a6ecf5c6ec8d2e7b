package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"health_record_ms/config"
	"health_record_ms/domain"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// AuthSession is the cache-resident value behind a bearer token.
type AuthSession struct {
	UserId    uint      `json:"userId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ICacheService interface {
	StoreSignupChallenge(userID uint, sessionData *webauthn.SessionData) error
	TakeSignupChallenge(userID uint) (*webauthn.SessionData, error)
	StoreLoginChallenge(userID uint, sessionData *webauthn.SessionData) error
	TakeLoginChallenge(userID uint) (*webauthn.SessionData, error)
	StoreAuthSession(token string, session *AuthSession, ttl time.Duration) error
	GetAuthSession(token string) (*AuthSession, error)
	DeleteAuthSession(token string) error
}

type CacheService struct {
	rdb *redis.Client
}

func NewCacheService(rdb *redis.Client) *CacheService {
	return &CacheService{rdb: rdb}
}

func challengeTTL() time.Duration {
	mins := config.Conf.Application.WebAuthn.ChallengeCacheTTLInMins
	if mins <= 0 {
		mins = 10
	}
	return time.Duration(mins) * time.Minute
}

func (s *CacheService) StoreSignupChallenge(userID uint, sessionData *webauthn.SessionData) error {
	data, err := json.Marshal(sessionData)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, fmt.Sprintf("signup:%d", userID), data, challengeTTL()).Err()
}

// TakeSignupChallenge consumes the challenge: GETDEL makes a second take
// for the same subject fail no matter how the first verification went.
func (s *CacheService) TakeSignupChallenge(userID uint) (*webauthn.SessionData, error) {
	return s.takeChallenge(fmt.Sprintf("signup:%d", userID))
}

func (s *CacheService) StoreLoginChallenge(userID uint, sessionData *webauthn.SessionData) error {
	data, err := json.Marshal(sessionData)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, fmt.Sprintf("login:%d", userID), data, challengeTTL()).Err()
}

func (s *CacheService) TakeLoginChallenge(userID uint) (*webauthn.SessionData, error) {
	return s.takeChallenge(fmt.Sprintf("login:%d", userID))
}

func (s *CacheService) takeChallenge(key string) (*webauthn.SessionData, error) {
	val, err := s.rdb.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrChallengeExpired
	}
	if err != nil {
		return nil, err
	}
	var sessionData webauthn.SessionData
	if err := json.Unmarshal([]byte(val), &sessionData); err != nil {
		return nil, err
	}
	return &sessionData, nil
}

func (s *CacheService) StoreAuthSession(token string, session *AuthSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, fmt.Sprintf("session:%s", token), data, ttl).Err()
}

// GetAuthSession reports a plain miss as (nil, nil). Transient read errors are
// returned so the caller can decide, but a missing key never is one.
func (s *CacheService) GetAuthSession(token string) (*AuthSession, error) {
	val, err := s.rdb.Get(ctx, fmt.Sprintf("session:%s", token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *CacheService) DeleteAuthSession(token string) error {
	return s.rdb.Del(ctx, fmt.Sprintf("session:%s", token)).Err()
}
