package conversation_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type mockConversationRepo struct {
	stored  map[string]*conversation.Conversation
	updates int
	touched int
}

func newMockConversationRepo(conversations ...*conversation.Conversation) *mockConversationRepo {
	repo := &mockConversationRepo{stored: make(map[string]*conversation.Conversation)}
	for _, conv := range conversations {
		repo.stored[conv.PublicID] = conv
	}
	return repo
}

func (m *mockConversationRepo) Create(ctx context.Context, conv *conversation.Conversation) error {
	conv.ID = uint(len(m.stored) + 1)
	m.stored[conv.PublicID] = conv
	return nil
}

func (m *mockConversationRepo) FindOne(ctx context.Context, filter conversation.Filter) (*conversation.Conversation, error) {
	for _, conv := range m.stored {
		if filter.PublicID != nil && conv.PublicID != *filter.PublicID {
			continue
		}
		if filter.UserID != nil && conv.UserID != *filter.UserID {
			continue
		}
		return conv, nil
	}
	return nil, nil
}

func (m *mockConversationRepo) FindByFilter(ctx context.Context, filter conversation.Filter) ([]*conversation.Conversation, error) {
	var out []*conversation.Conversation
	for _, conv := range m.stored {
		if filter.UserID != nil && conv.UserID != *filter.UserID {
			continue
		}
		out = append(out, conv)
	}
	return out, nil
}

func (m *mockConversationRepo) Update(ctx context.Context, conv *conversation.Conversation) error {
	m.updates++
	m.stored[conv.PublicID] = conv
	return nil
}

func (m *mockConversationRepo) TouchLastMessage(ctx context.Context, id uint, at time.Time) error {
	m.touched++
	return nil
}

func (m *mockConversationRepo) Delete(ctx context.Context, id uint) error {
	for key, conv := range m.stored {
		if conv.ID == id {
			delete(m.stored, key)
		}
	}
	return nil
}

func (m *mockConversationRepo) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	var deleted int64
	for key, conv := range m.stored {
		if conv.UserID == userID {
			delete(m.stored, key)
			deleted++
		}
	}
	return deleted, nil
}

type mockMessageRepo struct {
	created []*conversation.Message
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *conversation.Message) error {
	msg.ID = uint(len(m.created) + 1)
	m.created = append(m.created, msg)
	return nil
}

func (m *mockMessageRepo) ListByConversation(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var out []*conversation.Message
	for _, msg := range m.created {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMessageRepo) LatestByConversations(ctx context.Context, conversationIDs []uint) (map[uint]*conversation.Message, error) {
	latest := make(map[uint]*conversation.Message)
	for _, id := range conversationIDs {
		for _, msg := range m.created {
			if msg.ConversationID == id {
				latest[id] = msg
			}
		}
	}
	return latest, nil
}

func (m *mockMessageRepo) DeleteByConversation(ctx context.Context, conversationID uint) error {
	return nil
}

type backendCall struct {
	method     string
	sessionID  *string
	documentID *string
}

type mockBackend struct {
	reply conversation.BackendReply
	calls []backendCall
}

func (m *mockBackend) Chat(ctx context.Context, prompt string) (conversation.BackendReply, error) {
	m.calls = append(m.calls, backendCall{method: "chat"})
	return m.reply, nil
}

func (m *mockBackend) AgentChat(ctx context.Context, message string, sessionID, documentID *string) (conversation.BackendReply, error) {
	m.calls = append(m.calls, backendCall{method: "agent_chat", sessionID: sessionID, documentID: documentID})
	return m.reply, nil
}

func (m *mockBackend) AgentUploadAndChat(ctx context.Context, file conversation.FileUpload, initialMessage string, sessionID *string, inputLanguage, outputLanguage *string) (conversation.BackendReply, error) {
	m.calls = append(m.calls, backendCall{method: "upload_and_chat", sessionID: sessionID})
	return m.reply, nil
}

type mockReplyCache struct {
	reply       conversation.BackendReply
	storeCalls  int
	listStores  int
	invalidated []uint
}

func (m *mockReplyCache) GetReply(ctx context.Context, query string, mode conversation.Mode) (conversation.BackendReply, bool) {
	if m.reply != nil {
		return m.reply, true
	}
	return nil, false
}

func (m *mockReplyCache) StoreReply(ctx context.Context, query string, mode conversation.Mode, reply conversation.BackendReply) {
	m.storeCalls++
}

func (m *mockReplyCache) GetConversationList(ctx context.Context, userID uint) ([]*conversation.ListEntry, bool) {
	return nil, false
}

func (m *mockReplyCache) StoreConversationList(ctx context.Context, userID uint, entries []*conversation.ListEntry) {
	m.listStores++
}

func (m *mockReplyCache) InvalidateUser(ctx context.Context, userID uint) {
	m.invalidated = append(m.invalidated, userID)
}

func (m *mockReplyCache) InvalidateConversation(ctx context.Context, conversationPublicID string) {}

type mockTxRunner struct{}

func (mockTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(convs *mockConversationRepo, msgs *mockMessageRepo, backend *mockBackend, cache *mockReplyCache) *conversation.Service {
	return conversation.NewService(convs, msgs, backend, cache, mockTxRunner{}, zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestCreate_DerivesTitleAndStoresFirstMessage(t *testing.T) {
	convs := newMockConversationRepo()
	msgs := &mockMessageRepo{}
	svc := newTestService(convs, msgs, &mockBackend{}, &mockReplyCache{})

	conv, err := svc.Create(context.Background(), conversation.CreateInput{
		UserID:       1,
		Mode:         conversation.ModeNormal,
		FirstMessage: "What is the notice period for terminating a commercial lease in most jurisdictions today?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len([]rune(conv.Title)) != 50 {
		t.Fatalf("expected title truncated to 50 runes, got %d", len([]rune(conv.Title)))
	}
	if len(msgs.created) != 1 || msgs.created[0].Role != conversation.RoleUser {
		t.Fatalf("expected one stored user message, got %+v", msgs.created)
	}
}

func TestCreate_RejectsUnknownMode(t *testing.T) {
	svc := newTestService(newMockConversationRepo(), &mockMessageRepo{}, &mockBackend{}, &mockReplyCache{})

	_, err := svc.Create(context.Background(), conversation.CreateInput{UserID: 1, Mode: "TURBO"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error type, got %v", err)
	}
}

func TestSend_NormalModeUsesPlainChat(t *testing.T) {
	conv := &conversation.Conversation{ID: 1, PublicID: "conv_a", UserID: 1, Mode: conversation.ModeNormal}
	backend := &mockBackend{reply: conversation.ClassifyReply([]byte(`{"response":"hello"}`))}
	cache := &mockReplyCache{}
	svc := newTestService(newMockConversationRepo(conv), &mockMessageRepo{}, backend, cache)

	result, err := svc.Send(context.Background(), conversation.SendInput{UserID: 1, ConversationID: "conv_a", Content: "hi"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(backend.calls) != 1 || backend.calls[0].method != "chat" {
		t.Fatalf("expected one plain chat call, got %+v", backend.calls)
	}
	if result.Message.Content != "hello" {
		t.Fatalf("unexpected assistant content %q", result.Message.Content)
	}
	if cache.storeCalls != 1 {
		t.Fatalf("expected reply cached once, got %d", cache.storeCalls)
	}
}

func TestSend_AgenticModeCarriesSessionAffinity(t *testing.T) {
	conv := &conversation.Conversation{ID: 1, PublicID: "conv_a", UserID: 1, Mode: conversation.ModeAgentic, SessionID: strPtr("sess-1")}
	backend := &mockBackend{reply: conversation.ClassifyReply([]byte(`{"session_id":"sess-1","response":"ok"}`))}
	svc := newTestService(newMockConversationRepo(conv), &mockMessageRepo{}, backend, &mockReplyCache{})

	result, err := svc.Send(context.Background(), conversation.SendInput{UserID: 1, ConversationID: "conv_a", Content: "follow up"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	call := backend.calls[0]
	if call.method != "agent_chat" {
		t.Fatalf("expected agent_chat, got %s", call.method)
	}
	if call.sessionID == nil || *call.sessionID != "sess-1" {
		t.Fatalf("expected session forwarded, got %v", call.sessionID)
	}
	if call.documentID != nil {
		t.Fatalf("expected no document id without binding")
	}
	if result.Conversation.SessionID == nil || *result.Conversation.SessionID != "sess-1" {
		t.Fatalf("expected session in result state")
	}
}

func TestSend_BoundDocumentRoutesWithDocument(t *testing.T) {
	conv := &conversation.Conversation{
		ID: 1, PublicID: "conv_a", UserID: 1,
		Mode:       conversation.ModeAgentic,
		SessionID:  strPtr("sess-1"),
		DocumentID: strPtr("doc-1"),
	}
	backend := &mockBackend{reply: conversation.ClassifyReply([]byte(`{"session_id":"sess-1","response":"ok"}`))}
	svc := newTestService(newMockConversationRepo(conv), &mockMessageRepo{}, backend, &mockReplyCache{})

	if _, err := svc.Send(context.Background(), conversation.SendInput{UserID: 1, ConversationID: "conv_a", Content: "about the doc"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	call := backend.calls[0]
	if call.method != "agent_chat" || call.documentID == nil || *call.documentID != "doc-1" {
		t.Fatalf("expected agent_chat with doc-1, got %+v", call)
	}
}

func TestSend_FileUploadBindsDocumentAndSkipsCache(t *testing.T) {
	conv := &conversation.Conversation{ID: 1, PublicID: "conv_a", UserID: 1, Mode: conversation.ModeAgentic}
	backend := &mockBackend{reply: conversation.ClassifyReply([]byte(`{"document_id":"doc-7","document_name":"contract.pdf","session_id":"sess-9","agent_response":"parsed"}`))}
	cache := &mockReplyCache{}
	convs := newMockConversationRepo(conv)
	svc := newTestService(convs, &mockMessageRepo{}, backend, cache)

	result, err := svc.Send(context.Background(), conversation.SendInput{
		UserID:         1,
		ConversationID: "conv_a",
		Content:        "summarize this",
		File:           &conversation.FileUpload{Filename: "contract.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if backend.calls[0].method != "upload_and_chat" {
		t.Fatalf("expected upload_and_chat, got %s", backend.calls[0].method)
	}
	if conv.DocumentID == nil || *conv.DocumentID != "doc-7" {
		t.Fatalf("expected document bound to conversation")
	}
	if conv.SessionID == nil || *conv.SessionID != "sess-9" {
		t.Fatalf("expected session bound to conversation")
	}
	if convs.updates == 0 {
		t.Fatalf("expected affinity change persisted")
	}
	if cache.storeCalls != 0 {
		t.Fatalf("file turns must never be cached, got %d store calls", cache.storeCalls)
	}
	if result.Conversation.DocumentID == nil || *result.Conversation.DocumentID != "doc-7" {
		t.Fatalf("expected document id in result state")
	}
}

func TestSend_CacheHitSkipsBackendAndMarksCached(t *testing.T) {
	conv := &conversation.Conversation{ID: 1, PublicID: "conv_a", UserID: 1, Mode: conversation.ModeNormal}
	backend := &mockBackend{}
	cache := &mockReplyCache{reply: conversation.ClassifyReply([]byte(`{"response":"cached answer"}`))}
	svc := newTestService(newMockConversationRepo(conv), &mockMessageRepo{}, backend, cache)

	result, err := svc.Send(context.Background(), conversation.SendInput{UserID: 1, ConversationID: "conv_a", Content: "hi"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(backend.calls) != 0 {
		t.Fatalf("cache hit must not reach the backend, got %+v", backend.calls)
	}
	if result.Message.Content != "cached answer" {
		t.Fatalf("unexpected content %q", result.Message.Content)
	}
	if result.Message.Metadata == nil || !result.Message.Metadata.Cached {
		t.Fatalf("expected cached flag on metadata")
	}
	if cache.storeCalls != 0 {
		t.Fatalf("a served hit must not be re-stored")
	}
}

func TestSend_PersistsUserTurnBeforeAssistant(t *testing.T) {
	conv := &conversation.Conversation{ID: 1, PublicID: "conv_a", UserID: 1, Mode: conversation.ModeNormal}
	backend := &mockBackend{reply: conversation.ClassifyReply([]byte(`{"response":"a"}`))}
	msgs := &mockMessageRepo{}
	svc := newTestService(newMockConversationRepo(conv), msgs, backend, &mockReplyCache{})

	if _, err := svc.Send(context.Background(), conversation.SendInput{UserID: 1, ConversationID: "conv_a", Content: "q"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(msgs.created) != 2 {
		t.Fatalf("expected two persisted messages, got %d", len(msgs.created))
	}
	if msgs.created[0].Role != conversation.RoleUser || msgs.created[1].Role != conversation.RoleAssistant {
		t.Fatalf("expected user turn persisted first, got %s then %s", msgs.created[0].Role, msgs.created[1].Role)
	}
}

func TestSend_OtherUsersConversationLooksMissing(t *testing.T) {
	conv := &conversation.Conversation{ID: 1, PublicID: "conv_a", UserID: 2, Mode: conversation.ModeNormal}
	svc := newTestService(newMockConversationRepo(conv), &mockMessageRepo{}, &mockBackend{}, &mockReplyCache{})

	_, err := svc.Send(context.Background(), conversation.SendInput{UserID: 1, ConversationID: "conv_a", Content: "hi"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("ownership miss must report NotFound, got %v", err)
	}
}

func TestSend_RejectsEmptyTurn(t *testing.T) {
	svc := newTestService(newMockConversationRepo(), &mockMessageRepo{}, &mockBackend{}, &mockReplyCache{})

	_, err := svc.Send(context.Background(), conversation.SendInput{UserID: 1, ConversationID: "conv_a"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation type, got %v", err)
	}
}

func TestSend_BoundDocumentRecordedOnAssistantTurn(t *testing.T) {
	conv := &conversation.Conversation{
		ID: 1, PublicID: "conv_a", UserID: 1,
		Mode:       conversation.ModeAgentic,
		SessionID:  strPtr("sess-1"),
		DocumentID: strPtr("doc-1"),
	}
	backend := &mockBackend{reply: conversation.ClassifyReply([]byte(`{"session_id":"sess-1","response":"about the clause"}`))}
	msgs := &mockMessageRepo{}
	svc := newTestService(newMockConversationRepo(conv), msgs, backend, &mockReplyCache{})

	result, err := svc.Send(context.Background(), conversation.SendInput{UserID: 1, ConversationID: "conv_a", Content: "what does clause 4 say"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	meta := result.Message.Metadata
	if meta == nil || meta.DocumentID == nil || *meta.DocumentID != "doc-1" {
		t.Fatalf("expected bound document recorded on assistant metadata, got %+v", meta)
	}
	assistant := msgs.created[len(msgs.created)-1]
	if assistant.Metadata == nil || assistant.Metadata.DocumentID == nil || *assistant.Metadata.DocumentID != "doc-1" {
		t.Fatalf("expected persisted assistant metadata to carry document id, got %+v", assistant.Metadata)
	}
}

func TestList_AnnotatesNewestMessage(t *testing.T) {
	convs := newMockConversationRepo(
		&conversation.Conversation{ID: 1, PublicID: "conv_a", UserID: 1},
		&conversation.Conversation{ID: 2, PublicID: "conv_b", UserID: 1},
	)
	msgs := &mockMessageRepo{}
	for _, msg := range []*conversation.Message{
		{ConversationID: 1, PublicID: "msg_1", Role: conversation.RoleUser, Content: "first"},
		{ConversationID: 1, PublicID: "msg_2", Role: conversation.RoleAssistant, Content: "latest answer"},
	} {
		if err := msgs.Create(context.Background(), msg); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}
	cache := &mockReplyCache{}
	svc := newTestService(convs, msgs, &mockBackend{}, cache)

	entries, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	byID := make(map[string]*conversation.ListEntry)
	for _, entry := range entries {
		byID[entry.Conversation.PublicID] = entry
	}
	active := byID["conv_a"]
	if active.LastMessage == nil || active.LastMessage.PublicID != "msg_2" {
		t.Fatalf("expected newest message annotated, got %+v", active.LastMessage)
	}
	if empty := byID["conv_b"]; empty.LastMessage != nil {
		t.Fatalf("conversation without messages must have no annotation, got %+v", empty.LastMessage)
	}
	if cache.listStores != 1 {
		t.Fatalf("expected listing cached once, got %d", cache.listStores)
	}
}

func TestDeleteAll_ReportsCountAndInvalidates(t *testing.T) {
	cache := &mockReplyCache{}
	convs := newMockConversationRepo(
		&conversation.Conversation{ID: 1, PublicID: "conv_a", UserID: 1},
		&conversation.Conversation{ID: 2, PublicID: "conv_b", UserID: 1},
		&conversation.Conversation{ID: 3, PublicID: "conv_c", UserID: 2},
	)
	svc := newTestService(convs, &mockMessageRepo{}, &mockBackend{}, cache)

	deleted, err := svc.DeleteAll(context.Background(), 1)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deletions, got %d", deleted)
	}
	if len(cache.invalidated) == 0 || cache.invalidated[0] != 1 {
		t.Fatalf("expected user listing cache invalidated")
	}
	if _, ok := convs.stored["conv_c"]; !ok {
		t.Fatalf("other user's conversation must survive")
	}
}
