package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const resetTokenBytes = 32

// ResetTokenManager produces and bounds single-use password-reset tokens.
type ResetTokenManager struct {
	window time.Duration
}

func NewResetTokenManager(window time.Duration) *ResetTokenManager {
	return &ResetTokenManager{window: window}
}

// Generate returns an unguessable opaque token (256 bits of randomness,
// hex-encoded).
func (m *ResetTokenManager) Generate() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ExpiryFrom computes the redemption deadline for a token issued at now.
func (m *ResetTokenManager) ExpiryFrom(now time.Time) time.Time {
	return now.Add(m.window)
}

// IsExpired is a strict comparison: at the exact boundary instant the token
// is still valid.
func (m *ResetTokenManager) IsExpired(expiry, now time.Time) bool {
	return expiry.Before(now)
}
