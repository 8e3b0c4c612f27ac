package auth

import (
	"strconv"
	"testing"
)

func TestHashPasswordAndVerify(t *testing.T) {
	password := "offside-trap!"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("expected an opaque hash, got %q", hash)
	}

	if !VerifyPassword(hash, password) {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected password mismatch to fail")
	}
}

func TestVerifyPasswordWithInvalidHash(t *testing.T) {
	if VerifyPassword("not-a-valid-hash", "password") {
		t.Fatal("expected invalid hash to fail verification")
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateVerificationCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != verificationCodeDigits {
			t.Fatalf("expected %d digits, got %q", verificationCodeDigits, code)
		}
		if _, err := strconv.Atoi(code); err != nil {
			t.Fatalf("expected numeric code, got %q", code)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := validatePassword("short"); err == nil {
		t.Fatal("expected short password to be rejected")
	}
	if err := validatePassword("long enough"); err != nil {
		t.Fatalf("expected password to pass, got %v", err)
	}
}
