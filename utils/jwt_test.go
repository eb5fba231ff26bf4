package utils

import (
	"os"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-for-unit-tests")
	defer os.Unsetenv("JWT_SECRET")

	tok, err := GenerateAccessToken(42, "trader@example.com", "trader", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}

	id, ok := ClaimUserID(claims)
	if !ok || id != 42 {
		t.Fatalf("expected user id 42, got %d (ok=%v)", id, ok)
	}
	if claims["email"] != "trader@example.com" {
		t.Errorf("unexpected email claim: %v", claims["email"])
	}
	if claims["username"] != "trader" {
		t.Errorf("unexpected username claim: %v", claims["username"])
	}
	if admin, _ := claims["admin"].(bool); admin {
		t.Error("expected admin claim false")
	}
	if jti, _ := claims["jti"].(string); len(jti) != 32 {
		t.Errorf("expected 32-char jti, got %q", claims["jti"])
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-for-unit-tests")
	defer os.Unsetenv("JWT_SECRET")

	if _, err := ValidateAccessToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

// A token with a missing or already-past exp claim must still produce a
// bounded blacklist entry, never a key that lives forever.
func TestBlacklistTTLNeverZero(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, minBlacklistTTL},
		{-5 * time.Second, minBlacklistTTL},
		{30 * time.Second, minBlacklistTTL},
		{2 * time.Hour, 2 * time.Hour},
	}
	for _, c := range cases {
		if got := blacklistTTL(c.in); got != c.want {
			t.Errorf("blacklistTTL(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInitRedisWithoutAddrLeavesClientNil(t *testing.T) {
	os.Unsetenv("REDIS_ADDR")
	InitRedis()
	if RedisClient != nil {
		t.Fatal("expected RedisClient to stay nil without REDIS_ADDR")
	}
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "first-secret")
	tok, err := GenerateAccessToken(7, "a@b.co", "a", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	os.Setenv("JWT_SECRET", "second-secret")
	defer os.Unsetenv("JWT_SECRET")

	if _, err := ValidateAccessToken(tok); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}
