package share_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/share"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type mockLinkRepo struct {
	links  map[string]*share.SharedLink
	nextID uint
}

func newMockLinkRepo(links ...*share.SharedLink) *mockLinkRepo {
	repo := &mockLinkRepo{links: make(map[string]*share.SharedLink)}
	for _, link := range links {
		repo.nextID++
		if link.ID == 0 {
			link.ID = repo.nextID
		}
		repo.links[link.Token] = link
	}
	return repo
}

func (m *mockLinkRepo) Create(ctx context.Context, link *share.SharedLink) error {
	m.nextID++
	link.ID = m.nextID
	link.CreatedAt = time.Now()
	m.links[link.Token] = link
	return nil
}

func (m *mockLinkRepo) FindByToken(ctx context.Context, token string) (*share.SharedLink, error) {
	return m.links[token], nil
}

func (m *mockLinkRepo) FindByConversation(ctx context.Context, conversationID uint) (*share.SharedLink, error) {
	for _, link := range m.links {
		if link.ConversationID == conversationID {
			return link, nil
		}
	}
	return nil, nil
}

func (m *mockLinkRepo) IncrementViewCount(ctx context.Context, id uint) error {
	for _, link := range m.links {
		if link.ID == id {
			link.ViewCount++
		}
	}
	return nil
}

func (m *mockLinkRepo) DeleteByConversation(ctx context.Context, conversationID uint) (int64, error) {
	var deleted int64
	for token, link := range m.links {
		if link.ConversationID == conversationID {
			delete(m.links, token)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockLinkRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	for token, link := range m.links {
		if link.ExpiresAt != nil && before.After(*link.ExpiresAt) {
			delete(m.links, token)
			deleted++
		}
	}
	return deleted, nil
}

type mockConvRepo struct {
	conversations map[uint]*conversation.Conversation
}

func newMockConvRepo(conversations ...*conversation.Conversation) *mockConvRepo {
	repo := &mockConvRepo{conversations: make(map[uint]*conversation.Conversation)}
	for _, conv := range conversations {
		repo.conversations[conv.ID] = conv
	}
	return repo
}

func (m *mockConvRepo) Create(ctx context.Context, conv *conversation.Conversation) error {
	m.conversations[conv.ID] = conv
	return nil
}

func (m *mockConvRepo) FindOne(ctx context.Context, filter conversation.Filter) (*conversation.Conversation, error) {
	for _, conv := range m.conversations {
		if filter.ID != nil && conv.ID != *filter.ID {
			continue
		}
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

func (m *mockConvRepo) FindByFilter(ctx context.Context, filter conversation.Filter) ([]*conversation.Conversation, error) {
	return nil, nil
}

func (m *mockConvRepo) Update(ctx context.Context, conv *conversation.Conversation) error {
	m.conversations[conv.ID] = conv
	return nil
}

func (m *mockConvRepo) TouchLastMessage(ctx context.Context, id uint, at time.Time) error { return nil }
func (m *mockConvRepo) Delete(ctx context.Context, id uint) error                         { return nil }
func (m *mockConvRepo) DeleteByUserID(ctx context.Context, userID uint) (int64, error)    { return 0, nil }

type mockMsgRepo struct {
	messages []*conversation.Message
}

func (m *mockMsgRepo) Create(ctx context.Context, msg *conversation.Message) error { return nil }
func (m *mockMsgRepo) ListByConversation(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	return m.messages, nil
}
func (m *mockMsgRepo) LatestByConversations(ctx context.Context, conversationIDs []uint) (map[uint]*conversation.Message, error) {
	return map[uint]*conversation.Message{}, nil
}
func (m *mockMsgRepo) DeleteByConversation(ctx context.Context, conversationID uint) error {
	return nil
}

type mockUserRepo struct {
	users map[uint]*user.User
}

func newMockUserRepo(users ...*user.User) *mockUserRepo {
	repo := &mockUserRepo{users: make(map[uint]*user.User)}
	for _, usr := range users {
		repo.users[usr.ID] = usr
	}
	return repo
}

func (m *mockUserRepo) Create(ctx context.Context, usr *user.User) error { return nil }
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}
func (m *mockUserRepo) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	return nil, nil
}
func (m *mockUserRepo) Update(ctx context.Context, usr *user.User) error {
	m.users[usr.ID] = usr
	return nil
}

func intPtr(n int) *int             { return &n }
func timePtr(t time.Time) *time.Time { return &t }

func newShareFixture(t *testing.T) (*share.Service, *mockLinkRepo, *mockConvRepo, *mockUserRepo) {
	t.Helper()
	links := newMockLinkRepo()
	convs := newMockConvRepo(&conversation.Conversation{
		ID: 10, PublicID: "conv_shared", UserID: 1,
		Title: "Lease questions", Mode: conversation.ModeAgentic,
	})
	users := newMockUserRepo(&user.User{ID: 1, PublicID: "usr_1", Name: "Asha", ShareEnabled: false})
	msgs := &mockMsgRepo{messages: []*conversation.Message{
		{PublicID: "msg_1", Role: conversation.RoleUser, Content: "question", Attachments: []string{"lease.pdf"}},
		{PublicID: "msg_2", Role: conversation.RoleAssistant, Content: "answer"},
	}}
	svc := share.NewService(links, convs, msgs, users, share.NewTokenGenerator(links), zerolog.Nop())
	return svc, links, convs, users
}

func TestEnable_CreatesLinkAndFlags(t *testing.T) {
	svc, _, convs, users := newShareFixture(t)

	link, err := svc.Enable(context.Background(), 1, "conv_shared", share.Options{MaxViews: intPtr(5)})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !share.ValidateToken(link.Token) {
		t.Fatalf("generated token %q fails validation", link.Token)
	}
	if link.MaxViews == nil || *link.MaxViews != 5 {
		t.Fatalf("expected max views carried onto link")
	}
	if !convs.conversations[10].IsShared {
		t.Fatalf("expected conversation flagged shared")
	}
	if !users.users[1].ShareEnabled {
		t.Fatalf("expected owner share flag enabled")
	}
}

func TestEnable_IsIdempotent(t *testing.T) {
	svc, _, _, _ := newShareFixture(t)

	first, err := svc.Enable(context.Background(), 1, "conv_shared", share.Options{})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	second, err := svc.Enable(context.Background(), 1, "conv_shared", share.Options{MaxViews: intPtr(3)})
	if err != nil {
		t.Fatalf("re-enable: %v", err)
	}
	if first.Token != second.Token {
		t.Fatalf("re-enabling must keep the token, got %q then %q", first.Token, second.Token)
	}
	if second.MaxViews != nil {
		t.Fatalf("options on re-enable must be ignored")
	}
}

func TestEnable_ForeignConversationLooksMissing(t *testing.T) {
	svc, _, _, _ := newShareFixture(t)

	_, err := svc.Enable(context.Background(), 99, "conv_shared", share.Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestResolve_ReturnsProjectionAndCountsView(t *testing.T) {
	svc, links, _, _ := newShareFixture(t)

	link, err := svc.Enable(context.Background(), 1, "conv_shared", share.Options{})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}

	shared, err := svc.Resolve(context.Background(), link.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if shared.Title != "Lease questions" || shared.OwnerName != "Asha" {
		t.Fatalf("unexpected projection %+v", shared)
	}
	if len(shared.Messages) != 2 {
		t.Fatalf("expected both turns, got %d", len(shared.Messages))
	}
	first := shared.Messages[0]
	if first.ID != "msg_1" {
		t.Fatalf("expected public message id in projection, got %q", first.ID)
	}
	if len(first.Attachments) != 1 || first.Attachments[0] != "lease.pdf" {
		t.Fatalf("expected attachments in projection, got %v", first.Attachments)
	}
	if links.links[link.Token].ViewCount != 1 {
		t.Fatalf("expected view counted, got %d", links.links[link.Token].ViewCount)
	}
}

func TestResolve_UnknownAndMalformedTokens(t *testing.T) {
	svc, _, _, _ := newShareFixture(t)

	if _, err := svc.Resolve(context.Background(), "deadbeefdeadbeef"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("unknown token must be NotFound, got %v", err)
	}
	// Too short and non-hex candidates are rejected before storage.
	if _, err := svc.Resolve(context.Background(), "abc"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("short token must be NotFound, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), "zzzzzzzzzzzzzzzz"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("non-hex token must be NotFound, got %v", err)
	}
}

func TestResolve_ExhaustedViewBudget(t *testing.T) {
	svc, _, _, _ := newShareFixture(t)

	link, err := svc.Enable(context.Background(), 1, "conv_shared", share.Options{MaxViews: intPtr(1)})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}

	if _, err := svc.Resolve(context.Background(), link.Token); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	_, err = svc.Resolve(context.Background(), link.Token)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("exhausted link must be Forbidden, got %v", err)
	}
}

func TestResolve_ExpiredLink(t *testing.T) {
	svc, _, _, _ := newShareFixture(t)

	link, err := svc.Enable(context.Background(), 1, "conv_shared", share.Options{ExpiresAt: timePtr(time.Now().Add(-time.Hour))})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}

	_, err = svc.Resolve(context.Background(), link.Token)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExpired) {
		t.Fatalf("expired link must report Expired, got %v", err)
	}
}

func TestResolve_OwnerSharingDisabled(t *testing.T) {
	svc, _, _, users := newShareFixture(t)

	link, err := svc.Enable(context.Background(), 1, "conv_shared", share.Options{})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}

	users.users[1].ShareEnabled = false
	_, err = svc.Resolve(context.Background(), link.Token)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("owner opt-out must be Forbidden, got %v", err)
	}
}

func TestDisable_RevokesTokenImmediately(t *testing.T) {
	svc, _, convs, _ := newShareFixture(t)

	link, err := svc.Enable(context.Background(), 1, "conv_shared", share.Options{})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	if err := svc.Disable(context.Background(), 1, "conv_shared"); err != nil {
		t.Fatalf("disable: %v", err)
	}

	if convs.conversations[10].IsShared {
		t.Fatalf("expected shared flag cleared")
	}
	_, err = svc.Resolve(context.Background(), link.Token)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("revoked token must be NotFound, got %v", err)
	}
}
