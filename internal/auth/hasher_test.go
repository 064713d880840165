package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("S3cret-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "S3cret-password" {
		t.Fatal("hash equals plaintext")
	}

	if !h.Verify("S3cret-password", hash) {
		t.Fatal("Verify failed for correct password")
	}
	if h.Verify("wrong-password", hash) {
		t.Fatal("Verify succeeded for wrong password")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password are identical")
	}
	if !h.Verify("same-password", first) || !h.Verify("same-password", second) {
		t.Fatal("salted hashes do not both verify")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatal("Verify succeeded for malformed hash")
	}
	if h.Verify("anything", "") {
		t.Fatal("Verify succeeded for empty hash")
	}
}

func TestNewPasswordHasher_CostClamped(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(-1)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("cost not clamped: got %d want %d", h.cost, bcrypt.DefaultCost)
	}
}
