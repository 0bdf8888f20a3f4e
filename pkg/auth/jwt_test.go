package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Configure("test-secret", time.Hour)

	token, err := GenerateToken(42, "fern", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "fern" {
		t.Errorf("Username = %q, want fern", claims.Username)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	Configure("test-secret", time.Hour)

	token, err := GenerateToken(7, "moss", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"tampered", token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken(%q) error = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	Configure("secret-a", time.Hour)
	token, err := GenerateToken(1, "ivy", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	Configure("secret-b", time.Hour)
	defer Configure("test-secret", time.Hour)

	if _, err := ValidateToken(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}
