package jwt

import (
	"strings"
	"testing"
)

func TestGenerateAndParse(t *testing.T) {
	token, expireAt, err := GenerateToken("secret", 42, "alice", 24)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expireAt.IsZero() {
		t.Fatal("expected non-zero expiry")
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("claims = %d/%s, want 42/alice", claims.UserID, claims.Username)
	}
	if claims.ID == "" {
		t.Error("expected a token ID for the logout denylist")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken("secret", 1, "alice", 1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, _, err := GenerateToken("secret", 1, "alice", -1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	_, err = ParseToken("secret", token)
	if err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expired error, got %v", err)
	}
}
