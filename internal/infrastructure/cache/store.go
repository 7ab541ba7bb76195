package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/metrics"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/cryptoutil"
)

const (
	aiReplyTTL     = 2 * time.Hour
	listingTTL     = 30 * time.Minute
	translationTTL = 24 * time.Hour
)

// corruptPrefix marks entries written by a buggy older serializer. Such
// entries are quarantined on read: deleted and treated as a miss.
const corruptPrefix = "[object"

// Redis is the subset of the redis client the store depends on.
type Redis interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Store is the cache gate for AI replies, conversation listings and
// translations. Every failure is logged and swallowed: a broken cache
// degrades to a miss, it never fails a request.
type Store struct {
	redis  Redis
	logger zerolog.Logger
}

var (
	_ conversation.ReplyCache = (*Store)(nil)
	_ translation.Cache       = (*Store)(nil)
	_ user.Cache              = (*Store)(nil)
)

func NewStore(client *Client, logger zerolog.Logger) *Store {
	return &Store{
		redis:  client,
		logger: logger.With().Str("component", "cache-store").Logger(),
	}
}

// newStoreWithRedis exists for tests.
func newStoreWithRedis(r Redis, logger zerolog.Logger) *Store {
	return &Store{redis: r, logger: logger}
}

func (s *Store) GetReply(ctx context.Context, query string, mode conversation.Mode) (conversation.BackendReply, bool) {
	key, ok := s.replyKey(query, mode)
	if !ok {
		return nil, false
	}

	value, ok := s.fetch(ctx, key)
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues("ai_reply").Inc()
		return nil, false
	}
	metrics.CacheHitsTotal.WithLabelValues("ai_reply").Inc()
	return conversation.ClassifyReply([]byte(value)), true
}

func (s *Store) StoreReply(ctx context.Context, query string, mode conversation.Mode, reply conversation.BackendReply) {
	key, ok := s.replyKey(query, mode)
	if !ok {
		return
	}
	s.put(ctx, key, string(reply.Raw()), aiReplyTTL)
}

func (s *Store) GetConversationList(ctx context.Context, userID uint) ([]*conversation.ListEntry, bool) {
	key := userKey(userID)
	value, ok := s.fetch(ctx, key)
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues("listing").Inc()
		return nil, false
	}

	var entries []*conversation.ListEntry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("dropping undecodable cache entry")
		s.drop(ctx, key)
		metrics.CacheMissesTotal.WithLabelValues("listing").Inc()
		return nil, false
	}
	metrics.CacheHitsTotal.WithLabelValues("listing").Inc()
	return entries, true
}

func (s *Store) StoreConversationList(ctx context.Context, userID uint, entries []*conversation.ListEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode conversation listing for cache")
		return
	}
	s.put(ctx, userKey(userID), string(data), listingTTL)
}

func (s *Store) InvalidateUser(ctx context.Context, userID uint) {
	s.drop(ctx, userKey(userID))
}

func (s *Store) InvalidateConversation(ctx context.Context, conversationPublicID string) {
	s.drop(ctx, "conversation:"+conversationPublicID)
}

func (s *Store) GetTranslation(ctx context.Context, text, sourceLang, targetLang string) (string, bool) {
	key, ok := s.translationKey(text, sourceLang, targetLang)
	if !ok {
		return "", false
	}
	value, ok := s.fetch(ctx, key)
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues("translation").Inc()
		return "", false
	}
	metrics.CacheHitsTotal.WithLabelValues("translation").Inc()
	return value, true
}

func (s *Store) StoreTranslation(ctx context.Context, text, sourceLang, targetLang, translated string) {
	key, ok := s.translationKey(text, sourceLang, targetLang)
	if !ok {
		return
	}
	s.put(ctx, key, translated, translationTTL)
}

// fetch reads a key, quarantining corrupt entries. A missing key, a read
// error and a corrupt entry all look the same to callers: a miss.
func (s *Store) fetch(ctx context.Context, key string) (string, bool) {
	value, err := s.redis.Get(ctx, key)
	if err == ErrCacheMiss {
		return "", false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return "", false
	}
	if strings.HasPrefix(value, corruptPrefix) {
		s.logger.Warn().Str("key", key).Msg("quarantining corrupt cache entry")
		s.drop(ctx, key)
		return "", false
	}
	return value, true
}

func (s *Store) put(ctx context.Context, key, value string, ttl time.Duration) {
	if err := s.redis.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *Store) drop(ctx context.Context, key string) {
	if err := s.redis.Del(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

func (s *Store) replyKey(query string, mode conversation.Mode) (string, bool) {
	hash, err := cryptoutil.HashPayload(struct {
		Query string `json:"query"`
		Mode  string `json:"mode"`
	}{Query: query, Mode: string(mode)})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to derive reply cache key")
		return "", false
	}
	return "ai:" + hash, true
}

func (s *Store) translationKey(text, sourceLang, targetLang string) (string, bool) {
	hash, err := cryptoutil.HashPayload(struct {
		Text   string `json:"text"`
		Source string `json:"source"`
		Target string `json:"target"`
	}{Text: text, Source: sourceLang, Target: targetLang})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to derive translation cache key")
		return "", false
	}
	return "translation:" + hash, true
}

func userKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}
