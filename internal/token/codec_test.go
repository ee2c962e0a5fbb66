package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	tok, err := c.Issue("user-1", "alice@school.test")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Email != "alice@school.test" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
}

func TestCodec_Expired(t *testing.T) {
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"email":   "alice@school.test",
		"iat":     now.Add(-2 * time.Hour).Unix(),
		"exp":     now.Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c := NewCodec("secret", time.Hour)
	if _, err := c.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	c := NewCodec("secret", time.Hour)
	tok, err := c.Issue("user-1", "alice@school.test")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// flip a byte in the signature segment
	i := strings.LastIndex(tok, ".") + 1
	b := []byte(tok)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	if _, err := c.Verify(string(b)); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour)
	tok, err := issuer.Issue("user-1", "alice@school.test")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	verifier := NewCodec("secret-b", time.Hour)
	if _, err := verifier.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_WrongAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-1",
		"email":   "alice@school.test",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c := NewCodec("secret", time.Hour)
	if _, err := c.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_MissingIdentityClaims(t *testing.T) {
	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tok, err := bare.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c := NewCodec("secret", time.Hour)
	if _, err := c.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
