package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/blossomhq/blossom/internal/model"
)

func TestHashAndCheck(t *testing.T) {
	h := NewHasher(4) // low cost keeps the test fast

	hash, err := h.Hash("Secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "Secret1" {
		t.Fatal("hash equals the plaintext")
	}
	if !h.Check("Secret1", hash) {
		t.Error("correct password rejected")
	}
	if h.Check("Secret2", hash) {
		t.Error("wrong password accepted")
	}
	if h.Check("", hash) {
		t.Error("empty password accepted")
	}
	if h.Check("Secret1", "") {
		t.Error("empty hash accepted")
	}
}

func TestHashRejectsShortPassword(t *testing.T) {
	h := NewHasher(4)
	if _, err := h.Hash("ab1"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestHasherCostFallback(t *testing.T) {
	h := NewHasher(999)
	if h.cost != DefaultBcryptCost {
		t.Errorf("cost = %d, want %d", h.cost, DefaultBcryptCost)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
		errCount int
	}{
		{"valid", "Blossom1", true, 0},
		{"empty", "", false, 1},
		{"short and weak", "abc", false, 3},
		{"no uppercase", "blossom1", false, 1},
		{"no digit", "Blossom", false, 1},
		{"too long", strings.Repeat("A", 51) + "1", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidatePassword(tt.password)
			if v.IsValid != tt.valid {
				t.Errorf("IsValid = %v, want %v (errors: %v)", v.IsValid, tt.valid, v.Errors)
			}
			if len(v.Errors) != tt.errCount {
				t.Errorf("got %d errors %v, want %d", len(v.Errors), v.Errors, tt.errCount)
			}
		})
	}
}

func TestValidatePasswordCollectsAllViolations(t *testing.T) {
	v := ValidatePassword("abc")
	if len(v.Errors) < 2 {
		t.Fatalf("want every violation listed, got %v", v.Errors)
	}
}

func TestPasswordTips(t *testing.T) {
	if len(PasswordTips()) == 0 {
		t.Fatal("no tips returned")
	}
}
