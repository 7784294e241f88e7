package httpapi

import (
	"context"
	"testing"
	"time"

	"chaifi/backend/internal/domain"
	"chaifi/backend/internal/store/memory"
)

func TestLoginAndParseTokenRoundTrip(t *testing.T) {
	repo := memory.NewSeeded()
	manager := NewAuthManager(repo, "test-secret-key-0123456789abcdef", time.Hour)

	resp, err := manager.Login(context.Background(), domain.LoginRequest{
		Username: "admin",
		Password: "admin@2020",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a signed token")
	}
	if resp.User.Username != "admin" {
		t.Fatalf("expected admin user in response, got %q", resp.User.Username)
	}

	username, err := manager.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if username != "admin" {
		t.Fatalf("expected username admin from token, got %q", username)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := memory.NewSeeded()
	manager := NewAuthManager(repo, "test-secret-key-0123456789abcdef", time.Hour)

	_, err := manager.Login(context.Background(), domain.LoginRequest{
		Username: "admin",
		Password: "not-the-password",
	})
	if err == nil {
		t.Fatalf("expected login with wrong password to fail")
	}
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	repo := memory.NewSeeded()
	manager := NewAuthManager(repo, "test-secret-key-0123456789abcdef", time.Hour)

	_, err := manager.Login(context.Background(), domain.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	if err == nil {
		t.Fatalf("expected login with unknown user to fail")
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	repo := memory.NewSeeded()
	signer := NewAuthManager(repo, "secret-one-0123456789abcdef-----", time.Hour)
	verifier := NewAuthManager(repo, "secret-two-0123456789abcdef-----", time.Hour)

	resp, err := signer.Login(context.Background(), domain.LoginRequest{
		Username: "admin",
		Password: "admin@2020",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := verifier.ParseToken(resp.Token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	repo := memory.NewSeeded()
	manager := NewAuthManager(repo, "test-secret-key-0123456789abcdef", -time.Minute)

	// NewAuthManager clamps non-positive TTLs to a sane default, so sign
	// an already expired token directly.
	user, err := repo.GetUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	token, err := manager.sign(user, time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := manager.ParseToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}
