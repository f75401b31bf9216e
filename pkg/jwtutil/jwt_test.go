package jwtutil

import (
	"strings"
	"testing"

	"github.com/maynoewai/ABC-car-sale-BE/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateToken("alice@example.com", 42, "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", claims.Email)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role admin, got %q", claims.Role)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateToken("bob@example.com", 7, "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("x", len(parts[2]))
	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("tampered token should not validate")
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "first-key", ExpirationHours: 1})
	token, err := GenerateToken("bob@example.com", 7, "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	Initialize(&config.JWTConfig{SigningKey: "second-key", ExpirationHours: 1})
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with a different key should not validate")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: -1})
	token, err := GenerateToken("carol@example.com", 9, "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expired token should not validate")
	}
}
