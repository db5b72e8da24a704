package auth

import (
	"testing"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret")
	userID := "64f1c0ffee0000000000aaaa"

	tok, err := m.Issue(userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != userID {
		t.Fatalf("user id mismatch: got %q want %q", got, userID)
	}
}

func TestIssue_DistinctTokens(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret")
	a, err := m.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	b, err := m.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if a == b {
		t.Fatalf("two sessions produced the same token")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("right-secret").Issue("u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := NewTokenManager("wrong-secret").Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret")
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); err != ErrInvalidToken {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
