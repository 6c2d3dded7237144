package auth

import (
	"testing"
	"time"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: time.Hour,
		Issuer:        "test-issuer",
	}
}

func TestNewJWTManager_MissingSecret(t *testing.T) {
	_, err := NewJWTManager(JWTConfig{Issuer: "test-issuer"})
	if err == nil {
		t.Fatal("NewJWTManager() should fail without a secret")
	}
	if err != ErrMissingSecret {
		t.Errorf("expected ErrMissingSecret, got %v", err)
	}
}

func TestNewJWTManager_DefaultDuration(t *testing.T) {
	manager, err := NewJWTManager(JWTConfig{SecretKey: "test-secret-key"})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	token, err := manager.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != DefaultTokenDuration {
		t.Errorf("token lifetime = %v, want %v", lifetime, DefaultTokenDuration)
	}
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	userID := "user-123"

	token, err := manager.Generate(userID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Error("Generate() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, "test-issuer")
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "random string",
			token: "not.a.valid.token",
		},
		{
			name:  "malformed jwt",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token)
			if err == nil {
				t.Error("Validate() should return error for invalid token")
			}
		})
	}
}

func TestJWTManager_TamperedSignature(t *testing.T) {
	manager1, err := NewJWTManager(JWTConfig{SecretKey: "secret-key-1", TokenDuration: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	manager2, err := NewJWTManager(JWTConfig{SecretKey: "secret-key-2", TokenDuration: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	token, err := manager1.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// A token signed under one secret must not validate under another.
	if _, err := manager2.Validate(token); err == nil {
		t.Error("Validate() should fail with different secret key")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager, err := NewJWTManager(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 1 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	token, err := manager.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err = manager.Validate(token)
	if err == nil {
		t.Error("Validate() should fail for expired token")
	}
	if err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}
