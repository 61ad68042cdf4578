package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocations stores logged-out token ids until they would have expired anyway.
type TokenRevocations struct {
	rdb *redis.Client
}

// NewTokenRevocations returns a store backed by rdb.
func NewTokenRevocations(rdb *redis.Client) *TokenRevocations {
	return &TokenRevocations{rdb: rdb}
}

// Revoke marks jti as revoked for ttl. Non-positive ttls are ignored since the
// token has already expired.
func (r *TokenRevocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, RevokedTokenKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether jti was revoked.
func (r *TokenRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, RevokedTokenKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
