package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService("unit-test-secret")

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" || strings.Count(token, ".") != 2 {
		t.Fatalf("expected a compact JWT, got %q", token)
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Username != "alice" {
		t.Fatalf("username=%q, want alice", id.Username)
	}
}

func TestIssue_EmptyUsernameStillSigns(t *testing.T) {
	// The service performs no validation on the claim; an empty name is
	// signed like any other.
	svc := NewTokenService("unit-test-secret")
	token, err := svc.Issue("")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Username != "" {
		t.Fatalf("username=%q, want empty", id.Username)
	}
}

func TestVerify_Rejections(t *testing.T) {
	svc := NewTokenService("unit-test-secret")
	other := NewTokenService("a-different-secret")

	good, err := other.Issue("mallory")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "not-a-token"},
		{name: "empty", raw: ""},
		{name: "wrong secret", raw: good},
		{name: "tampered payload", raw: tamper(t, svc)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Verify(tc.raw); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

// tamper issues a valid token and flips a character in its payload segment.
func tamper(t *testing.T, svc *TokenService) string {
	t.Helper()
	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}
