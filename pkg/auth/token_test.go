package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	manager, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}

	token, err := manager.Generate("user-123", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "user-123" || claims.Role != "admin" {
		t.Fatalf("claims round-trip mismatch: %+v", claims)
	}
	if claims.Issuer != "movie-review" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
}

func TestTokenExpired(t *testing.T) {
	manager, err := NewTokenManager(testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}

	token, err := manager.Generate("user-123", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := manager.Validate(token); err == nil {
		t.Fatalf("expected validation failure for expired token")
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	verifier, err := NewTokenManager(strings.Repeat("x", 32), time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}

	token, err := issuer.Generate("user-123", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.Validate(token); err == nil {
		t.Fatalf("expected validation failure for token signed with another secret")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	manager, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	if _, err := manager.Validate("not.a.token"); err == nil {
		t.Fatalf("expected validation failure for malformed token")
	}
}

func TestNewTokenManagerSecretRules(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenManager("short", time.Hour); err == nil {
		t.Fatalf("expected error for short secret")
	}
}
