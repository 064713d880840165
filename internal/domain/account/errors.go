package account

import "errors"

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrStaleResetToken means the conditional redemption matched no row:
	// the token was already redeemed or replaced by a newer reset request.
	ErrStaleResetToken = errors.New("reset token no longer matches")
)
