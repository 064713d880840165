package auth

import (
	"errors"
	"testing"
	"time"

	appErrors "identity-service/pkg/errors"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Now()}
	s := NewTokenService([]byte("super-secret"), time.Hour, clock)

	token, expiresAt, err := s.Issue("u@e.com", "client")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if want := clock.now.Add(time.Hour); !expiresAt.Equal(want) {
		t.Fatalf("expiresAt mismatch: got %v want %v", expiresAt, want)
	}

	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "u@e.com" {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, "u@e.com")
	}
	if claims.Role != "client" {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, "client")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewTokenService([]byte("secret"), time.Hour, clock)

	token, _, err := s.Issue("u@e.com", "client")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	clock.now = clock.now.Add(time.Hour + time.Second)

	_, err = s.Verify(token)
	if !errors.Is(err, appErrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_UsesInjectedClock(t *testing.T) {
	t.Parallel()

	// A pinned clock far from wall time: verification must judge expiry
	// against the injected clock, not time.Now().
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewTokenService([]byte("secret"), time.Hour, clock)

	token, _, err := s.Issue("u@e.com", "client")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := s.Verify(token); err != nil {
		t.Fatalf("token unexpired under the injected clock was rejected: %v", err)
	}

	clock.now = clock.now.Add(59 * time.Minute)
	if _, err := s.Verify(token); err != nil {
		t.Fatalf("token still inside its validity window was rejected: %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Now()}
	issuer := NewTokenService([]byte("right-secret"), time.Hour, clock)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour, clock)

	token, _, err := issuer.Issue("u@e.com", "client")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, appErrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("k"), time.Hour, SystemClock{})

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := s.Verify(token); !errors.Is(err, appErrors.ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", token, err)
		}
	}
}
