package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hefica/hefica-backend/pkg/database"
)

// SessionDenylist tracks revoked session tokens in Redis. Sessions are
// stateless JWTs, so sign-out works by denylisting the token until its
// natural expiry. Keys store a hash of the token, never the token itself.
type SessionDenylist struct {
	redis *database.Redis
}

// NewSessionDenylist creates a new session denylist backed by Redis.
func NewSessionDenylist(redis *database.Redis) *SessionDenylist {
	return &SessionDenylist{redis: redis}
}

// Revoke adds a session token to the denylist for the given duration.
func (s *SessionDenylist) Revoke(ctx context.Context, token string, expiry time.Duration) error {
	err := s.redis.Client.Set(ctx, denylistKey(token), "1", expiry).Err()
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// IsRevoked checks whether a session token has been denylisted.
func (s *SessionDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := s.redis.Client.Exists(ctx, denylistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session denylist: %w", err)
	}
	return exists > 0, nil
}

func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("denylist:session:%s", hex.EncodeToString(sum[:]))
}
