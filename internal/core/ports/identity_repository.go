package ports

import (
	"context"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
)

// IdentityRepository persists authentication accounts. Email uniqueness is
// enforced by the backing store (unique index), not by callers.
type IdentityRepository interface {
	// Create inserts a new identity and returns it with its assigned id.
	// Fails with domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	// Delete removes an identity. Used as the compensating step when the
	// dependent profile insert fails after the identity was created.
	Delete(ctx context.Context, id string) error
}
