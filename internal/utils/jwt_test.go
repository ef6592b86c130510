package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtTestNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	userID := int64(123)
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, userID, duration, key, jwtTestNow)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, token.Issuer)
	}
	if token.Subject != "123" {
		t.Errorf("expected subject '123', got %s", token.Subject)
	}
	if token.UserID != userID {
		t.Errorf("expected UserID %d, got %d", userID, token.UserID)
	}
	if !token.ExpiresAt.Time.Equal(jwtTestNow.Add(duration)) {
		t.Errorf("expected exp %v, got %v", jwtTestNow.Add(duration), token.ExpiresAt.Time)
	}
	if got := token.Lifetime(); got != duration {
		t.Errorf("expected lifetime %v, got %v", duration, got)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   int64
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", 1, time.Hour, "key"},
		{"zero user id", "iss", 0, time.Hour, "key"},
		{"negative user id", "iss", -5, time.Hour, "key"},
		{"zero duration", "iss", 1, 0, "key"},
		{"empty key", "iss", 1, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tt.duration, tt.key, jwtTestNow)
			if !errors.Is(err, ErrInvalidTokenParams) {
				t.Errorf("expected ErrInvalidTokenParams, got %v", err)
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issued, err := GenerateJWTToken("iss", 42, time.Hour, "key", jwtTestNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ValidateAndParseJWTToken(issued.SignedString, "key", "iss", jwtTestNow.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if parsed.UserID != 42 {
		t.Errorf("expected UserID=42, got %d", parsed.UserID)
	}
	if parsed.SignedString != issued.SignedString {
		t.Error("expected SignedString to be preserved")
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	issued, _ := GenerateJWTToken("iss", 1, time.Hour, "correct-key", jwtTestNow)

	_, err := ValidateAndParseJWTToken(issued.SignedString, "wrong-key", "iss", jwtTestNow)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	issued, _ := GenerateJWTToken("iss", 1, time.Hour, "key", jwtTestNow.Add(-2*time.Hour))

	_, err := ValidateAndParseJWTToken(issued.SignedString, "key", "iss", jwtTestNow)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if errors.Is(err, ErrTokenInvalid) {
		t.Error("expired token must not be reported as invalid")
	}
}

func TestValidateAndParseJWTToken_ExpiredAndForeignKey(t *testing.T) {
	issued, _ := GenerateJWTToken("iss", 1, time.Hour, "other-key", jwtTestNow.Add(-2*time.Hour))

	_, err := ValidateAndParseJWTToken(issued.SignedString, "key", "iss", jwtTestNow)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	issued, _ := GenerateJWTToken("issuer-a", 1, time.Hour, "key", jwtTestNow)

	_, err := ValidateAndParseJWTToken(issued.SignedString, "key", "issuer-b", jwtTestNow)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not.a.jwt", "garbage"} {
		_, err := ValidateAndParseJWTToken(raw, "key", "iss", jwtTestNow)
		if !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid for %q, got %v", raw, err)
		}
	}
}

func TestValidateAndParseJWTToken_TamperedSignature(t *testing.T) {
	issued, _ := GenerateJWTToken("iss", 1, time.Hour, "key", jwtTestNow)
	foreign, _ := GenerateJWTToken("iss", 1, time.Hour, "another-key", jwtTestNow)

	parts := strings.Split(issued.SignedString, ".")
	foreignParts := strings.Split(foreign.SignedString, ".")
	tampered := parts[0] + "." + parts[1] + "." + foreignParts[2]

	_, err := ValidateAndParseJWTToken(tampered, "key", "iss", jwtTestNow)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered signature, got %v", err)
	}
}

func TestValidateAndParseJWTToken_TamperedPayload(t *testing.T) {
	issued, _ := GenerateJWTToken("iss", 1, time.Hour, "key", jwtTestNow)
	other, _ := GenerateJWTToken("iss", 2, time.Hour, "key", jwtTestNow)

	parts := strings.Split(issued.SignedString, ".")
	otherParts := strings.Split(other.SignedString, ".")
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err := ValidateAndParseJWTToken(tampered, "key", "iss", jwtTestNow)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for swapped payload, got %v", err)
	}
}

func TestValidateAndParseJWTToken_WrongAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(jwtTestNow.Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("key"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ValidateAndParseJWTToken(raw, "key", "iss", jwtTestNow)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for HS512 token, got %v", err)
	}
}

func TestValidateAndParseJWTToken_MissingExpiry(t *testing.T) {
	claims := jwt.RegisteredClaims{Issuer: "iss", Subject: "1"}
	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))

	_, err := ValidateAndParseJWTToken(raw, "key", "iss", jwtTestNow)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for token without exp, got %v", err)
	}
}

func TestValidateAndParseJWTToken_BadSubject(t *testing.T) {
	for _, sub := range []string{"", "abc", "0", "-3"} {
		claims := jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(jwtTestNow.Add(time.Hour)),
		}
		raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))

		_, err := ValidateAndParseJWTToken(raw, "key", "iss", jwtTestNow)
		if !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid for subject %q, got %v", sub, err)
		}
	}
}
