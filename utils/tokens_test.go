package utils

import (
	"testing"
	"time"
)

func TestNewManagerRejectsEmptyKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatal(err)
	}
	token, err := m.NewJWT(42, "user", time.Hour)
	if err != nil {
		t.Fatalf("NewJWT: %v", err)
	}
	userID, role, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if userID != 42 || role != "user" {
		t.Fatalf("got userID=%d role=%q, want 42/user", userID, role)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m, _ := NewManager("test-signing-key")
	token, err := m.NewJWT(42, "user", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Parse(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseRejectsForeignKey(t *testing.T) {
	m1, _ := NewManager("key-one")
	m2, _ := NewManager("key-two")
	token, err := m1.NewJWT(42, "user", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m2.Parse(token); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestNewRefreshTokenUnique(t *testing.T) {
	m, _ := NewManager("test-signing-key")
	a, err := m.NewRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.NewRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("refresh tokens must not repeat")
	}
	if len(a) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(a))
	}
}
