package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
)

type fakeRedis struct {
	entries map[string]string
	ttls    map[string]time.Duration
	getErr  error
	deleted []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		entries: make(map[string]string),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return value, nil
}

func (f *fakeRedis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.entries[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func TestReplyRoundTrip(t *testing.T) {
	redis := newFakeRedis()
	store := newStoreWithRedis(redis, zerolog.Nop())
	ctx := context.Background()

	raw := []byte(`{"session_id":"s1","response":"cached"}`)
	store.StoreReply(ctx, "what is consideration", conversation.ModeAgentic, conversation.ClassifyReply(raw))

	reply, ok := store.GetReply(ctx, "what is consideration", conversation.ModeAgentic)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if reply.Variant() != conversation.VariantAgentChat {
		t.Fatalf("re-classification lost the variant, got %s", reply.Variant())
	}
	if string(reply.Raw()) != string(raw) {
		t.Fatalf("raw payload not preserved: %s", reply.Raw())
	}

	for key, ttl := range redis.ttls {
		if ttl != aiReplyTTL {
			t.Fatalf("reply key %s stored with ttl %s", key, ttl)
		}
	}
}

func TestReplyKeyDependsOnMode(t *testing.T) {
	redis := newFakeRedis()
	store := newStoreWithRedis(redis, zerolog.Nop())
	ctx := context.Background()

	store.StoreReply(ctx, "same question", conversation.ModeNormal, conversation.ClassifyReply([]byte(`{"response":"plain"}`)))

	if _, ok := store.GetReply(ctx, "same question", conversation.ModeAgentic); ok {
		t.Fatal("a NORMAL entry must not answer an AGENTIC lookup")
	}
	if _, ok := store.GetReply(ctx, "same question", conversation.ModeNormal); !ok {
		t.Fatal("expected hit for the stored mode")
	}
}

func TestCorruptEntryIsQuarantined(t *testing.T) {
	redis := newFakeRedis()
	store := newStoreWithRedis(redis, zerolog.Nop())
	ctx := context.Background()

	store.StoreReply(ctx, "q", conversation.ModeNormal, conversation.ClassifyReply([]byte(`{"response":"x"}`)))
	var key string
	for k := range redis.entries {
		key = k
	}
	redis.entries[key] = "[object Object]"

	if _, ok := store.GetReply(ctx, "q", conversation.ModeNormal); ok {
		t.Fatal("corrupt entry must read as a miss")
	}
	if len(redis.deleted) != 1 || redis.deleted[0] != key {
		t.Fatalf("corrupt entry must be deleted, deleted=%v", redis.deleted)
	}
}

func TestReadErrorDegradesToMiss(t *testing.T) {
	redis := newFakeRedis()
	redis.getErr = errors.New("connection refused")
	store := newStoreWithRedis(redis, zerolog.Nop())

	if _, ok := store.GetReply(context.Background(), "q", conversation.ModeNormal); ok {
		t.Fatal("transport errors must degrade to a miss")
	}
}

func TestConversationListingRoundTrip(t *testing.T) {
	redis := newFakeRedis()
	store := newStoreWithRedis(redis, zerolog.Nop())
	ctx := context.Background()

	entries := []*conversation.ListEntry{
		{
			Conversation: &conversation.Conversation{ID: 1, PublicID: "conv_a", Title: "First"},
			LastMessage:  &conversation.Message{ConversationID: 1, PublicID: "msg_9", Role: conversation.RoleAssistant, Content: "latest"},
		},
		{
			Conversation: &conversation.Conversation{ID: 2, PublicID: "conv_b", Title: "Second"},
		},
	}
	store.StoreConversationList(ctx, 7, entries)

	got, ok := store.GetConversationList(ctx, 7)
	if !ok {
		t.Fatal("expected listing hit")
	}
	if len(got) != 2 || got[0].Conversation.PublicID != "conv_a" {
		t.Fatalf("unexpected listing %+v", got)
	}
	if got[0].LastMessage == nil || got[0].LastMessage.PublicID != "msg_9" {
		t.Fatalf("last-message annotation must survive the cache, got %+v", got[0].LastMessage)
	}
	if got[1].LastMessage != nil {
		t.Fatalf("empty conversation must stay unannotated, got %+v", got[1].LastMessage)
	}
	if redis.ttls["user:7"] != listingTTL {
		t.Fatalf("listing stored with ttl %s", redis.ttls["user:7"])
	}

	store.InvalidateUser(ctx, 7)
	if _, ok := store.GetConversationList(ctx, 7); ok {
		t.Fatal("expected miss after invalidation")
	}
}

func TestUndecodableListingIsDropped(t *testing.T) {
	redis := newFakeRedis()
	store := newStoreWithRedis(redis, zerolog.Nop())
	ctx := context.Background()

	redis.entries["user:9"] = `{"not":"a list"}`

	if _, ok := store.GetConversationList(ctx, 9); ok {
		t.Fatal("expected miss for undecodable entry")
	}
	if _, exists := redis.entries["user:9"]; exists {
		t.Fatal("undecodable entry must be dropped")
	}
}

func TestTranslationRoundTrip(t *testing.T) {
	redis := newFakeRedis()
	store := newStoreWithRedis(redis, zerolog.Nop())
	ctx := context.Background()

	store.StoreTranslation(ctx, "hello", "en", "hi", "नमस्ते")

	got, ok := store.GetTranslation(ctx, "hello", "en", "hi")
	if !ok || got != "नमस्ते" {
		t.Fatalf("expected cached translation, got %q ok=%v", got, ok)
	}
	if _, ok := store.GetTranslation(ctx, "hello", "en", "ta"); ok {
		t.Fatal("different target language must be a distinct key")
	}

	for key, ttl := range redis.ttls {
		if ttl != translationTTL {
			t.Fatalf("translation key %s stored with ttl %s", key, ttl)
		}
	}
}
