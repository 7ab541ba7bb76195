package share_test

import (
	"context"
	"testing"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/share"
)

func TestGenerateUniqueToken(t *testing.T) {
	gen := share.NewTokenGenerator(newMockLinkRepo())

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := gen.GenerateUniqueToken(context.Background())
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(token) != 32 {
			t.Fatalf("expected 32 hex chars, got %d", len(token))
		}
		if !share.ValidateToken(token) {
			t.Fatalf("generated token %q fails validation", token)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}

func TestGenerateUniqueToken_RetriesOnCollision(t *testing.T) {
	links := newMockLinkRepo(&share.SharedLink{ID: 1, Token: "00112233445566778899aabbccddeeff", ConversationID: 1})
	gen := share.NewTokenGenerator(links)

	token, err := gen.GenerateUniqueToken(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "00112233445566778899aabbccddeeff" {
		t.Fatalf("generator returned a taken token")
	}
}

func TestValidateToken(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{"00112233445566778899aabbccddeeff", true},
		{"deadbeefdeadbeef", true},
		{"", false},
		{"abc", false},
		{"deadbeefdeadbee", false},
		{"zzzzzzzzzzzzzzzz", false},
		{"DEADBEEFDEADBEEF", true},
	}
	for _, tc := range cases {
		if got := share.ValidateToken(tc.token); got != tc.want {
			t.Errorf("ValidateToken(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}
