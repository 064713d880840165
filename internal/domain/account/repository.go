package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract the identity core consumes.
//
// UpdatePasswordAndClearReset is the serialization point for redemption: it
// must atomically replace the password hash and clear both reset fields only
// while the stored reset token still equals the presented one, so that of two
// concurrent redemptions exactly one succeeds. Implementations return
// ErrStaleResetToken when the guard does not match.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByResetToken(ctx context.Context, token string) (*Account, error)

	// Save upserts the account, assigning ID/CreatedAt on first save.
	Save(ctx context.Context, a *Account) error

	UpdatePasswordAndClearReset(ctx context.Context, id uuid.UUID, resetToken, passwordHash string) error

	// ClearResetToken removes the pending reset iff the stored token still
	// equals resetToken. Used to roll back an undeliverable reset email
	// without clobbering a newer pending reset.
	ClearResetToken(ctx context.Context, id uuid.UUID, resetToken string) error
}
