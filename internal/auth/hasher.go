package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt credential hashing. Each Hash call salts
// independently, so equal passwords produce different stored values.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Verify reports whether password reproduces hashedPassword. Malformed
// hashes verify as false rather than erroring.
func (h *PasswordHasher) Verify(password, hashedPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
