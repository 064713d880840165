package account

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Account is one registered identity. ResetToken and ResetTokenExpiry are
// set and cleared together; both nil means no reset is pending.
type Account struct {
	ID               uuid.UUID
	Email            string
	PasswordHash     string
	Role             string
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPendingReset reports whether a password reset is currently pending.
func (a *Account) HasPendingReset() bool {
	return a.ResetToken != nil && a.ResetTokenExpiry != nil
}

// SetResetToken stores a new pending reset, replacing any previous one.
func (a *Account) SetResetToken(token string, expiry time.Time) {
	a.ResetToken = &token
	a.ResetTokenExpiry = &expiry
}

// ClearResetToken removes the pending reset.
func (a *Account) ClearResetToken() {
	a.ResetToken = nil
	a.ResetTokenExpiry = nil
}
