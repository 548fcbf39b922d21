package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	userID := "0b8f8a52-6a3f-4e0c-9d2c-1c4f7b9d1a00"
	data, err := svc.GenerateToken(userID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if data.SignedToken == "" || data.JTI == "" {
		t.Fatalf("expected token and jti, got %+v", data)
	}

	claims, err := svc.Validate(data.SignedToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.JTI != data.JTI {
		t.Fatalf("expected jti %s, got %s", data.JTI, claims.JTI)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	data, err := svc.GenerateToken("user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := svc.Validate(data.SignedToken); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	data, err := NewJWTService("secret-a", time.Hour).GenerateToken("user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := NewJWTService("secret-b", time.Hour).Validate(data.SignedToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	if _, err := svc.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
