package auth

import (
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"), time.Hour)
	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	sub, err := svc.Validate(tok)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if sub != "alice" {
		t.Fatalf("subject mismatch: got %q want %q", sub, "alice")
	}
}

func TestValidateExpired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("secret"), -1*time.Second)
	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Validate(tok)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService([]byte("right-secret"), time.Hour).Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokenService([]byte("wrong-secret"), time.Hour).Validate(tok)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestValidateMalformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService([]byte("k"), time.Hour).Validate("not.a.jwt")
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestValidateMissingSubject(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), time.Hour)
	tok, err := svc.Issue("")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Validate(tok)
	if err != ErrMissingSubject {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}
}
