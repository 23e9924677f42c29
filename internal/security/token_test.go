package security

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	secret := "test-secret"

	token, err := IssueToken(secret, 42, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	userID, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("ParseToken() userID = %d, want 42", userID)
	}
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	secret := "test-secret"
	valid, err := IssueToken(secret, 42, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	expired, err := IssueToken(secret, 42, -time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "other-secret", valid},
		{"expired token", secret, expired},
		{"garbage token", secret, "not.a.token"},
		{"empty token", secret, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.secret, tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ParseToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestTokensCarryUniqueIDs(t *testing.T) {
	secret := "test-secret"
	a, err := IssueToken(secret, 1, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	b, err := IssueToken(secret, 1, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if a == b {
		t.Error("expected distinct tokens for separate issues")
	}
}
