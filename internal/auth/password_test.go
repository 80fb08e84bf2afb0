package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if digest == "s3cret-pass" {
		t.Fatal("digest must not equal the plaintext password")
	}

	if !VerifyPassword("s3cret-pass", digest) {
		t.Error("expected matching password to verify")
	}
	if VerifyPassword("wrong-pass", digest) {
		t.Error("expected mismatched password to fail verification")
	}
}

func TestVerifyPasswordWithBogusDigest(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-digest") {
		t.Error("expected verification against garbage digest to fail")
	}
}
