package token

import (
	"errors"
	"testing"
	"time"
)

func testIssuer() *Issuer {
	return New([]byte("test-token-secret-must-be-long-enough"), DefaultTTL)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	iss := testIssuer()

	tok, err := iss.Issue("user_abc123def456")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != "user_abc123def456" {
		t.Errorf("subject: got %q, want %q", userID, "user_abc123def456")
	}
}

func TestVerify_Expired(t *testing.T) {
	iss := testIssuer()

	tok, err := iss.IssueWithTTL("user_abc123def456", -time.Minute)
	if err != nil {
		t.Fatalf("IssueWithTTL failed: %v", err)
	}

	_, err = iss.Verify(tok)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := testIssuer().Issue("user_abc123def456")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other := New([]byte("a-completely-different-secret-value"), DefaultTTL)
	if _, err := other.Verify(tok); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for wrong secret, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	iss := testIssuer()
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := iss.Verify(tok); !errors.Is(err, ErrInvalid) {
			t.Errorf("Verify(%q): expected ErrInvalid, got %v", tok, err)
		}
	}
}

func TestNew_DefaultTTL(t *testing.T) {
	iss := New([]byte("secret"), 0)
	if iss.TTL() != DefaultTTL {
		t.Errorf("expected DefaultTTL fallback, got %v", iss.TTL())
	}
}
