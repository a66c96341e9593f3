package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plain password")
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordOutOfRangeCostFallsBack(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 99)
	if err != nil {
		t.Fatalf("hash with out-of-range cost: %v", err)
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Fatal("fallback-cost hash does not verify")
	}
}
