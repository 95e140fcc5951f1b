package service

import (
	"testing"
	"time"

	"github.com/quizlive/quizlive-backend/internal/config"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		AdminPassword: "hunter2",
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		BcryptCost:    4,
	}
}

func TestCheckAdminPasswordPlaintextFallback(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	if err := svc.CheckAdminPassword("hunter2"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := svc.CheckAdminPassword("wrong"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password = %v, want ErrInvalidCredentials", err)
	}
}

func TestCheckAdminPasswordPrefersHash(t *testing.T) {
	cfg := testAuthConfig()
	svc := NewAuthService(cfg)

	hash, err := svc.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg.AdminPasswordHash = hash

	if err := svc.CheckAdminPassword("s3cret"); err != nil {
		t.Fatalf("hashed password rejected: %v", err)
	}
	// The plaintext fallback must be dead once a hash is configured.
	if err := svc.CheckAdminPassword("hunter2"); err != ErrInvalidCredentials {
		t.Fatalf("plaintext fallback still active: %v", err)
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	token, err := svc.GenerateAdminToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.TokenType != TokenTypeAdmin || claims.Subject != TokenTypeAdmin {
		t.Fatalf("claims = %+v, want admin token type", claims)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewAuthService(testAuthConfig()).GenerateAdminToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := testAuthConfig()
	other.JWTSecret = "different-secret"
	if _, err := NewAuthService(other).ValidateToken(token); err != ErrInvalidCredentials {
		t.Fatalf("foreign token = %v, want ErrInvalidCredentials", err)
	}

	if _, err := NewAuthService(testAuthConfig()).ValidateToken("not.a.token"); err != ErrInvalidCredentials {
		t.Fatalf("garbage token = %v, want ErrInvalidCredentials", err)
	}
}
