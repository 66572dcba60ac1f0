package jwt

import (
	"testing"
	"time"

	"go-clinic-api/config"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService("test-secret")

	token, tokenID, err := svc.GenerateAccessToken(42, "jane@example.com", "patient")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected a token id")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "jane@example.com" || claims.Role != "patient" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("expected access token type, got %s", claims.TokenType)
	}
	if claims.TokenID != tokenID {
		t.Errorf("token id mismatch: %s vs %s", claims.TokenID, tokenID)
	}
}

func TestTokenTypesAreDistinct(t *testing.T) {
	svc := newTestService("test-secret")

	access, accessID, err := svc.GenerateAccessToken(1, "a@example.com", "admin")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	refresh, refreshID, err := svc.GenerateRefreshToken(1, "a@example.com", "admin")
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}
	if accessID == refreshID {
		t.Error("expected distinct token ids")
	}

	accessClaims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	refreshClaims, err := svc.ValidateToken(refresh)
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if accessClaims.TokenType != AccessToken || refreshClaims.TokenType != RefreshToken {
		t.Errorf("token types not preserved: %s, %s", accessClaims.TokenType, refreshClaims.TokenType)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService("secret-one").GenerateAccessToken(1, "a@example.com", "patient")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := newTestService("secret-two").ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := newTestService("test-secret").ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail")
	}
}
