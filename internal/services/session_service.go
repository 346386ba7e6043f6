package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/family-graph-api/internal/constants"
	"github.com/yukikurage/family-graph-api/internal/logger"
	"github.com/yukikurage/family-graph-api/internal/models"
	"github.com/yukikurage/family-graph-api/internal/repository"
	"github.com/yukikurage/family-graph-api/internal/utils"
	"gorm.io/gorm"
)

var errTokenCollision = errors.New("session token collided repeatedly")

// SessionService issues, resolves and revokes opaque session tokens.
type SessionService struct {
	clock
	store         repository.Store
	ttl           time.Duration
	generateToken func() (string, error)
}

// NewSessionService creates a new SessionService. A non-positive ttl falls
// back to constants.DefaultSessionTTL.
func NewSessionService(store repository.Store, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	return &SessionService{
		store:         store,
		ttl:           ttl,
		generateToken: utils.GenerateSessionToken,
	}
}

// Create persists a new session for userID and returns its token and expiry.
func (s *SessionService) Create(ctx context.Context, userID uint64) (string, time.Time, error) {
	now := s.timeNow()
	expiresAt := now.Add(s.ttl)

	for attempt := 0; attempt < constants.MaxTokenGenerateTries; attempt++ {
		token, err := s.generateToken()
		if err != nil {
			return "", time.Time{}, fmt.Errorf("failed to generate session token: %w", err)
		}

		session := &models.Session{
			UserID:       userID,
			SessionToken: token,
			CreatedAt:    now,
			ExpiresAt:    expiresAt,
		}
		err = s.store.Sessions().Create(ctx, session)
		if err == nil {
			return token, expiresAt, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", time.Time{}, storageError("failed to create session", err)
		}
		logger.Log.Warnw("session token collision, regenerating", "attempt", attempt+1)
	}

	return "", time.Time{}, storageError("failed to create session", errTokenCollision)
}

// Resolve maps a bearer credential to the owner of a live session.
// Every failure yields nil: a missing prefix, a malformed or unknown token,
// an expired session, an inactive user, or a storage error.
func (s *SessionService) Resolve(ctx context.Context, credential string) *models.UserProfile {
	if !strings.HasPrefix(credential, constants.BearerPrefix) {
		return nil
	}
	token := strings.TrimSpace(strings.TrimPrefix(credential, constants.BearerPrefix))
	if !utils.IsWellFormedToken(token) {
		return nil
	}

	user, err := s.store.Sessions().FindActiveUser(ctx, token, s.timeNow())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Errorw("failed to resolve session", "err", err)
		}
		return nil
	}

	profile := user.Profile()
	return &profile
}

// Revoke deletes the session with the given token. Unknown tokens are a no-op.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if err := s.store.Sessions().DeleteByToken(ctx, token); err != nil {
		return storageError("failed to revoke session", err)
	}
	return nil
}

// RevokeAll deletes every session of userID.
func (s *SessionService) RevokeAll(ctx context.Context, userID uint64) error {
	if err := s.store.Sessions().DeleteByUserID(ctx, userID); err != nil {
		return storageError("failed to revoke sessions", err)
	}
	return nil
}

// WithStore returns a copy of the service bound to store, typically a
// transaction handed out by Store.Transaction.
func (s *SessionService) WithStore(store repository.Store) *SessionService {
	bound := *s
	bound.store = store
	return &bound
}
