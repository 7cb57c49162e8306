package auth_test

import (
	"testing"
	"time"

	"github.com/phoo-bakery/api/internal/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := auth.GenerateToken(secret, "  Ma Hla  ", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := auth.ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	if claims.StaffName != "Ma Hla" {
		t.Errorf("staff name: got %q, want %q", claims.StaffName, "Ma Hla")
	}
	if claims.Subject != "Ma Hla" {
		t.Errorf("subject: got %q, want %q", claims.Subject, "Ma Hla")
	}
}

func TestGenerateTokenRequiresName(t *testing.T) {
	if _, err := auth.GenerateToken("secret", "   ", time.Hour); err == nil {
		t.Fatal("expected error for blank staff name")
	}
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("secret-a", "Ko Aung", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = auth.ValidateToken("secret-b", token)
	if err == nil {
		t.Fatal("expected error validating with wrong secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := auth.GenerateToken("secret", "Ko Aung", -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := auth.ValidateToken("secret", token); err == nil {
		t.Fatal("expected error validating expired token")
	}
}

func TestValidateTokenWithInvalidString(t *testing.T) {
	_, err := auth.ValidateToken("secret", "not-a-jwt")
	if err == nil {
		t.Fatal("expected error validating invalid token string")
	}
}
