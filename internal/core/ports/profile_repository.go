package ports

import (
	"context"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
)

// ProfileRepository persists application profiles. The login_id unique
// index in the store is the authoritative uniqueness guarantee; the
// service-level FindByLoginID pre-check is only a fast-fail shortcut.
type ProfileRepository interface {
	// Create inserts a profile. Fails with domain.ErrLoginIDTaken when the
	// login id unique constraint is violated.
	Create(ctx context.Context, profile *domain.Profile) error
	FindByLoginID(ctx context.Context, loginID string) (*domain.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}
