package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword("pw1", hash) {
		t.Fatal("expected password to verify against its own hash")
	}
	if CheckPassword("pw2", hash) {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (fresh salt per call)")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("pw", "not-a-bcrypt-hash") {
		t.Fatal("malformed stored hash must fail verification")
	}
}
