package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	issuer := "woodline-test"
	ttl := 15 * time.Minute

	manager := NewJWTManager(testSecret, issuer, ttl)
	userID := uuid.New()

	// Generate token
	token, err := manager.GenerateAccessToken(userID, domain.RoleAttendant)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	// Validate token
	validatedID, role, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if validatedID != userID {
		t.Errorf("expected userID %s, got %s", userID, validatedID)
	}
	if role != domain.RoleAttendant {
		t.Errorf("expected role 'attendant', got %q", role)
	}
}

func TestJWTManager_GenerateAndValidate_ManagerRole(t *testing.T) {
	issuer := "woodline-test"
	ttl := 15 * time.Minute

	manager := NewJWTManager(testSecret, issuer, ttl)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, domain.RoleManager)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, role, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if role != domain.RoleManager {
		t.Errorf("expected role 'manager', got %q", role)
	}
}

func TestJWTManager_ValidateAccessToken_Expired(t *testing.T) {
	issuer := "woodline-test"
	ttl := -1 * time.Hour // Already expired

	manager := NewJWTManager(testSecret, issuer, ttl)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, domain.RoleAttendant)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	// Should fail validation due to expiry
	_, _, err = manager.ValidateAccessToken(token)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	if !strings.Contains(err.Error(), "expired") && !strings.Contains(err.Error(), "parse token") {
		t.Errorf("expected expiry-related error, got: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_InvalidSignature(t *testing.T) {
	secret2 := "different-secret-32-chars-long-for-security!!"
	issuer := "woodline-test"
	ttl := 15 * time.Minute

	manager1 := NewJWTManager(testSecret, issuer, ttl)
	manager2 := NewJWTManager(secret2, issuer, ttl)
	userID := uuid.New()

	// Generate with manager1
	token, err := manager1.GenerateAccessToken(userID, domain.RoleAttendant)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	// Validate with manager2 (different secret)
	_, _, err = manager2.ValidateAccessToken(token)
	if err == nil {
		t.Fatal("expected error for invalid signature, got nil")
	}
}

func TestJWTManager_ValidateAccessToken_Malformed(t *testing.T) {
	issuer := "woodline-test"
	ttl := 15 * time.Minute

	manager := NewJWTManager(testSecret, issuer, ttl)

	malformedTokens := []string{
		"not.a.jwt",
		"invalid-token",
		"header.payload", // Missing signature
	}

	for _, token := range malformedTokens {
		_, _, err := manager.ValidateAccessToken(token)
		if err == nil {
			t.Errorf("expected error for malformed token %q, got nil", token)
		}
	}
}

func TestJWTManager_ValidateAccessToken_WrongIssuer(t *testing.T) {
	issuer1 := "woodline-test"
	issuer2 := "wrong-issuer"
	ttl := 15 * time.Minute

	manager1 := NewJWTManager(testSecret, issuer1, ttl)
	manager2 := NewJWTManager(testSecret, issuer2, ttl)
	userID := uuid.New()

	// Generate with manager1 (issuer1)
	token, err := manager1.GenerateAccessToken(userID, domain.RoleAttendant)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	// Validate with manager2 (issuer2)
	_, _, err = manager2.ValidateAccessToken(token)
	if err == nil {
		t.Fatal("expected error for wrong issuer, got nil")
	}
	if !strings.Contains(err.Error(), "invalid issuer") {
		t.Errorf("expected 'invalid issuer' error, got: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_EmptyString(t *testing.T) {
	issuer := "woodline-test"
	ttl := 15 * time.Minute

	manager := NewJWTManager(testSecret, issuer, ttl)

	_, _, err := manager.ValidateAccessToken("")
	if err == nil {
		t.Fatal("expected error for empty token, got nil")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected 'empty' error, got: %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_UnknownRoleClaim(t *testing.T) {
	issuer := "woodline-test"
	ttl := 15 * time.Minute

	manager := NewJWTManager(testSecret, issuer, ttl)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, domain.Role("superuser"))
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, _, err = manager.ValidateAccessToken(token)
	if err == nil {
		t.Fatal("expected error for unknown role claim, got nil")
	}
	if !strings.Contains(err.Error(), "invalid role claim") {
		t.Errorf("expected 'invalid role claim' error, got: %v", err)
	}
}
