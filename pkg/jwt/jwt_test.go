package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndValidateServiceToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateServiceToken("meetbot", "reports:write")
	if err != nil {
		t.Fatalf("GenerateServiceToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Client != "meetbot" {
		t.Fatalf("unexpected client: %q", claims.Client)
	}
	if !claims.HasScope("reports:write") {
		t.Fatal("expected reports:write scope")
	}
	if claims.HasScope("emails:send") {
		t.Fatal("token must not grant emails:send")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	token, err := m.GenerateServiceToken("meetbot")
	if err != nil {
		t.Fatalf("GenerateServiceToken failed: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.GenerateServiceToken("meetbot")
	if err != nil {
		t.Fatalf("GenerateServiceToken failed: %v", err)
	}

	if _, err := m.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for expired token")
	}
}

func TestTokenWithNoScopesGrantsEverything(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateServiceToken("dev-console")
	if err != nil {
		t.Fatalf("GenerateServiceToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if !claims.HasScope("reports:write") || !claims.HasScope("emails:send") {
		t.Fatal("scopeless token must grant all scopes")
	}
}

func TestHashToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	h1, err := m.HashToken("abc")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	h2, err := m.HashToken("abc")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	if h1 != h2 {
		t.Fatal("hash must be deterministic")
	}
	if _, err := m.HashToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}
