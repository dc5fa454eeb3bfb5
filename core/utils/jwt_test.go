package utils

import (
	"testing"
	"time"

	"tutortrack/core/errors"

	"github.com/google/uuid"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()

	signed, err := GenerateToken(userID, "access", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, appErr := ParseToken(signed, testSecret)
	if appErr != nil {
		t.Fatalf("parse token: %v", appErr)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Scope != "access" {
		t.Fatalf("expected scope access, got %s", claims.Scope)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed, err := GenerateToken(uuid.New(), "access", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, appErr := ParseToken(signed, "other-secret")
	if appErr == nil {
		t.Fatal("expected error for wrong secret")
	}
	if appErr.Code != errors.ErrInvalidTokenFormat {
		t.Fatalf("expected code %s, got %s", errors.ErrInvalidTokenFormat, appErr.Code)
	}
}

func TestParseTokenExpired(t *testing.T) {
	signed, err := GenerateToken(uuid.New(), "access", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, appErr := ParseToken(signed, testSecret)
	if appErr == nil {
		t.Fatal("expected error for expired token")
	}
	if appErr.Code != errors.ErrTokenExpired {
		t.Fatalf("expected code %s, got %s", errors.ErrTokenExpired, appErr.Code)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	_, appErr := ParseToken("not-a-jwt", testSecret)
	if appErr == nil {
		t.Fatal("expected error for malformed token")
	}
}
