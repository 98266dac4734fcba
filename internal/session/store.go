package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edusekai/platform-api/internal/domain"
)

const (
	activeRolePrefix = "active_role:"
	sessionPrefix    = "session:"

	activeRoleTTL = 30 * 24 * time.Hour
	sessionTTL    = 5 * time.Minute
)

// Store keeps the two pieces of cross-request session state in Redis: the
// persisted active-role slot and a short-lived cache of the resolved session
// payload. Both degrade gracefully when Redis is unreachable.
type Store struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewStore constructs a session store.
func NewStore(rdb *redis.Client, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, logger: logger}
}

// ActiveRole reads the persisted role marker for a user.
func (s *Store) ActiveRole(ctx context.Context, userID string) (string, error) {
	if s.rdb == nil {
		return "", nil
	}
	val, err := s.rdb.Get(ctx, activeRolePrefix+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// SetActiveRole persists the role marker.
func (s *Store) SetActiveRole(ctx context.Context, userID, slug string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, activeRolePrefix+userID, slug, activeRoleTTL).Err()
}

// ClearActiveRole removes the role marker; called on login and logout.
func (s *Store) ClearActiveRole(ctx context.Context, userID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, activeRolePrefix+userID).Err()
}

// CachedSession returns the cached session payload for a user within an
// organization, when present. The caller re-attaches the live user record.
func (s *Store) CachedSession(ctx context.Context, orgID, userID string) (*domain.SessionUser, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, sessionKey(orgID, userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var sess domain.SessionUser
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, false
	}
	return &sess, true
}

// CacheSession stores the session payload. Failures only log; the cache is
// an optimization, never a source of truth.
func (s *Store) CacheSession(ctx context.Context, orgID, userID string, sess *domain.SessionUser) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, sessionKey(orgID, userID), raw, sessionTTL).Err(); err != nil {
		s.logger.Warn("session cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached session; called on login, logout and password
// change, the three mutations that touch the shared session entry.
func (s *Store) Invalidate(ctx context.Context, orgID, userID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, sessionKey(orgID, userID)).Err(); err != nil {
		s.logger.Warn("session cache invalidation failed", zap.Error(err))
	}
}

func sessionKey(orgID, userID string) string {
	return sessionPrefix + orgID + ":" + userID
}
