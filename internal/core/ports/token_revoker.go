package ports

import (
	"context"
	"time"
)

// TokenRevoker records signed-out tokens until their natural expiry.
// JWTs are stateless, so sign-out is a denylist entry keyed by token id.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
