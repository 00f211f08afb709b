package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/blossomhq/blossom/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       "user-1",
		Email:    "hanami@example.com",
		Username: "hanami",
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 2*time.Hour)

	token, err := svc.Issue(testUser(), TokenTypeAccess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Email != "hanami@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Type != TokenTypeAccess {
		t.Errorf("Type = %q", claims.Type)
	}
	if claims.Issuer != "blossom" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestIssuePair(t *testing.T) {
	svc := NewTokenService("test-secret", 0, 0)

	pair, err := svc.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens are identical")
	}

	access, err := svc.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if access.Type != TokenTypeAccess {
		t.Errorf("access Type = %q", access.Type)
	}

	refresh, err := svc.Verify(pair.RefreshToken)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if refresh.Type != TokenTypeRefresh {
		t.Errorf("refresh Type = %q", refresh.Type)
	}
	if !refresh.ExpiresAt.After(access.ExpiresAt.Time) {
		t.Error("refresh token does not outlive access token")
	}
}

func TestVerifyExpired(t *testing.T) {
	// NewTokenService replaces non-positive TTLs with defaults, so build
	// the service directly to sign an already expired token.
	svc := &TokenService{secret: []byte("test-secret"), accessTTL: -time.Minute, refreshTTL: -time.Minute}

	token, err := svc.Issue(testUser(), TokenTypeAccess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, model.ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	signer := NewTokenService("secret-a", time.Hour, time.Hour)
	verifier := NewTokenService("secret-b", time.Hour, time.Hour)

	token, err := signer.Issue(testUser(), TokenTypeAccess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, model.ErrTokenMalformed) {
		t.Fatalf("want ErrTokenMalformed, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, time.Hour)
	if _, err := svc.Verify("not.a.token"); !errors.Is(err, model.ErrTokenMalformed) {
		t.Fatalf("want ErrTokenMalformed, got %v", err)
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"", ""},
		{"abc123", ""},
		{"Basic abc123", ""},
		{"Bearer ", ""},
		{"Bearer two parts here", "two parts here"},
	}
	for _, tt := range tests {
		if got := ExtractBearer(tt.header); got != tt.want {
			t.Errorf("ExtractBearer(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
