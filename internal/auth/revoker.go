package auth

import (
	"context"
	"time"

	"github.com/smart-exhibitor/backend/pkg/redis"
)

const revokedKeyPrefix = "auth:revoked:"

// Revoker records logged-out token IDs in Redis until their natural expiry.
type Revoker struct {
	rdb *redis.Client
}

// NewRevoker creates a token revoker.
func NewRevoker(rdb *redis.Client) *Revoker {
	return &Revoker{rdb: rdb}
}

// Revoke marks the token ID as logged out for the remaining token lifetime.
func (r *Revoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been logged out.
func (r *Revoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
