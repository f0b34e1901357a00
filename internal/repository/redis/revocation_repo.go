package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const RevokedTokenPrefix = "auth:revoked:"

var ErrRedisUnavailable = errors.New("redis unavailable")

// RevocationRepository remembers revoked tokens until they would have
// expired anyway; the key TTL is the token's remaining lifetime.
type RevocationRepository struct {
	Client *redis.Client
	Now    func() time.Time
}

func (r *RevocationRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return RevokedTokenPrefix + hex.EncodeToString(sum[:])
}

func (r *RevocationRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		// already unusable, nothing to remember
		return nil
	}
	if err := r.Client.Set(ctx, revokedKey(token), 1, ttl).Err(); err != nil {
		return errors.Join(ErrRedisUnavailable, err)
	}
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.Client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, errors.Join(ErrRedisUnavailable, err)
	}
	return n > 0, nil
}
