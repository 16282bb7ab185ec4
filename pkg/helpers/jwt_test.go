package helpers

import (
	"errors"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "ledger-admin", time.Hour)
	tok, exp, err := m.Generate("a1", "root@x.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}
	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.AdminID != "a1" || claims.Email != "root@x.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestJWTExpiredIsDistinct(t *testing.T) {
	m := NewJWTManager("secret", "ledger-admin", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err := m.Generate("a1", "root@x.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	m.now = time.Now
	if _, err := m.Parse(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want expired", err)
	}
}

func TestJWTInvalid(t *testing.T) {
	m := NewJWTManager("secret", "ledger-admin", time.Hour)
	other := NewJWTManager("other", "ledger-admin", time.Hour)
	tok, _, _ := other.Generate("a1", "root@x.com")
	if _, err := m.Parse(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("wrong secret err = %v", err)
	}
	foreign := NewJWTManager("secret", "someone-else", time.Hour)
	tok, _, _ = foreign.Generate("a1", "root@x.com")
	if _, err := m.Parse(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("wrong issuer err = %v", err)
	}
	if _, err := m.Parse("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("garbage err = %v", err)
	}
}
