package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func TestIssueAndParse(t *testing.T) {
	raw, err := IssueToken(secret, 42, "a@example.com", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	claims, err := ParseToken(secret, raw)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Errorf("UserID = %d, %v", id, err)
	}
	if claims.Email != "a@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	expired, _ := IssueToken(secret, 1, "a@example.com", time.Minute, time.Now().Add(-time.Hour))
	wrongKey, _ := IssueToken([]byte("another-secret-another-secret-xx"), 1, "a@example.com", time.Hour, time.Now())
	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := map[string]string{
		"expired":   expired,
		"wrong key": wrongKey,
		"none alg":  noneAlg,
		"garbage":   "not.a.token",
		"empty":     "",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseToken(secret, raw); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ParseToken = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestClaims_BadSubject(t *testing.T) {
	c := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	if _, err := c.UserID(); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("UserID = %v", err)
	}
}
