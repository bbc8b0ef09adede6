package auth

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatalf("hash must not equal the plaintext password")
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Fatalf("correct password rejected")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Fatalf("wrong password accepted")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestCheckPasswordHashGarbage(t *testing.T) {
	if CheckPasswordHash("anything", "not-a-bcrypt-hash") {
		t.Fatalf("garbage hash accepted")
	}
}
