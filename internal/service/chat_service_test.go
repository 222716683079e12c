package service

import (
	"context"
	"testing"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/entity"
	"gasflow-be/internal/pkg/logger"
	"gasflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			for _, u := range r.users {
				if u.Id == s.ID {
					return u, nil
				}
			}
		case specification.ByRole:
			for _, u := range r.users {
				if string(u.Role) == s.Role {
					return u, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return r.users, nil
}
func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}
func (r *fakeUserRepo) ActivateUser(ctx context.Context, userId uuid.UUID) error { return nil }
func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return nil
}
func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	return nil
}
func (r *fakeUserRepo) CreateEmailVerificationToken(ctx context.Context, token *entity.EmailVerificationToken) error {
	return nil
}
func (r *fakeUserRepo) FindEmailVerificationToken(ctx context.Context, specs ...specification.Specification) (*entity.EmailVerificationToken, error) {
	return nil, nil
}
func (r *fakeUserRepo) DeleteEmailVerificationToken(ctx context.Context, id uuid.UUID) error {
	return nil
}
func (r *fakeUserRepo) SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error {
	return nil
}

// fakeChatRepo records created messages and lets tests script the
// rows-affected result of the ownership-predicated mutations.
type fakeChatRepo struct {
	created       []*entity.ChatMessage
	affectedRows  int64
	lastEditText  string
	mutationCalls int
}

func (r *fakeChatRepo) Create(ctx context.Context, msg *entity.ChatMessage) error {
	r.created = append(r.created, msg)
	return nil
}

func (r *fakeChatRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.ChatMessage, error) {
	for _, m := range r.created {
		if m.Id == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.created, nil
}

func (r *fakeChatRepo) Edit(ctx context.Context, messageId, senderId uuid.UUID, newText string) (int64, error) {
	r.mutationCalls++
	r.lastEditText = newText
	if r.affectedRows > 0 {
		for _, m := range r.created {
			if m.Id == messageId {
				m.Message = newText
				m.IsEdited = true
			}
		}
	}
	return r.affectedRows, nil
}

func (r *fakeChatRepo) SoftDelete(ctx context.Context, messageId, senderId uuid.UUID) (int64, error) {
	r.mutationCalls++
	return r.affectedRows, nil
}

func (r *fakeChatRepo) HardDelete(ctx context.Context, messageId, senderId uuid.UUID) (int64, error) {
	r.mutationCalls++
	return r.affectedRows, nil
}

func (r *fakeChatRepo) MarkAllRead(ctx context.Context, receiverId uuid.UUID) error { return nil }

func (r *fakeChatRepo) ListCustomerThreads(ctx context.Context) ([]*entity.CustomerThread, error) {
	return nil, nil
}

func (r *fakeChatRepo) FindConversation(ctx context.Context, customerId, adminId uuid.UUID) ([]*entity.ConversationMessage, error) {
	return nil, nil
}

type fakePusher struct {
	pushedTo []uuid.UUID
	online   bool
}

func (p *fakePusher) PushToUser(userId uuid.UUID, payload []byte) bool {
	p.pushedTo = append(p.pushedTo, userId)
	return p.online
}

func newChatFixture() (*fakeChatRepo, *fakeUserRepo, *fakePusher, IChatService, *entity.User, *entity.User) {
	admin := &entity.User{Id: uuid.New(), Role: entity.UserRoleAdmin, FullName: "Support"}
	customer := &entity.User{Id: uuid.New(), Role: entity.UserRoleCustomer, FullName: "Budi"}

	chatRepo := &fakeChatRepo{affectedRows: 1}
	userRepo := &fakeUserRepo{users: []*entity.User{admin, customer}}
	pusher := &fakePusher{online: true}
	svc := NewChatService(chatRepo, userRepo, pusher, noopLogger{})
	return chatRepo, userRepo, pusher, svc, admin, customer
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	_, _, _, svc, _, customer := newChatFixture()

	_, err := svc.SendMessage(context.Background(), customer.Id, &dto.SendMessageRequest{Message: "   \n\t "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendMessageDefaultsReceiverToAdmin(t *testing.T) {
	chatRepo, _, pusher, svc, admin, customer := newChatFixture()

	res, err := svc.SendMessage(context.Background(), customer.Id, &dto.SendMessageRequest{Message: "  need a refill  "})
	require.NoError(t, err)

	require.Len(t, chatRepo.created, 1)
	require.NotNil(t, chatRepo.created[0].ReceiverId)
	assert.Equal(t, admin.Id, *chatRepo.created[0].ReceiverId)
	assert.Equal(t, "need a refill", res.Message)

	// The push targets the resolved receiver.
	require.Len(t, pusher.pushedTo, 1)
	assert.Equal(t, admin.Id, pusher.pushedTo[0])
}

func TestSendMessageSucceedsWhenReceiverOffline(t *testing.T) {
	chatRepo, _, pusher, svc, _, customer := newChatFixture()
	pusher.online = false

	res, err := svc.SendMessage(context.Background(), customer.Id, &dto.SendMessageRequest{Message: "anyone there?"})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Len(t, chatRepo.created, 1)
}

func TestSendMessageFailsWithoutAdminAccount(t *testing.T) {
	customer := &entity.User{Id: uuid.New(), Role: entity.UserRoleCustomer}
	svc := NewChatService(&fakeChatRepo{}, &fakeUserRepo{users: []*entity.User{customer}}, &fakePusher{}, noopLogger{})

	_, err := svc.SendMessage(context.Background(), customer.Id, &dto.SendMessageRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrNoAdminAccount)
}

func TestEditMessageNotOwnedReturnsNotFound(t *testing.T) {
	chatRepo, _, _, svc, _, customer := newChatFixture()
	chatRepo.affectedRows = 0

	_, err := svc.EditMessage(context.Background(), uuid.New(), customer.Id, &dto.EditMessageRequest{Message: "edited"})
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestEditMessageRejectsEmptyText(t *testing.T) {
	_, _, _, svc, _, customer := newChatFixture()

	_, err := svc.EditMessage(context.Background(), uuid.New(), customer.Id, &dto.EditMessageRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestEditMessageTrimsAndReturnsUpdated(t *testing.T) {
	chatRepo, _, _, svc, _, customer := newChatFixture()

	sent, err := svc.SendMessage(context.Background(), customer.Id, &dto.SendMessageRequest{Message: "first"})
	require.NoError(t, err)

	res, err := svc.EditMessage(context.Background(), sent.Id, customer.Id, &dto.EditMessageRequest{Message: "  second  "})
	require.NoError(t, err)
	assert.Equal(t, "second", res.Message)
	assert.True(t, res.IsEdited)
	assert.Equal(t, "second", chatRepo.lastEditText)
}

func TestSoftDeleteAndUnsendMapZeroRowsToNotFound(t *testing.T) {
	chatRepo, _, _, svc, _, customer := newChatFixture()

	sent, err := svc.SendMessage(context.Background(), customer.Id, &dto.SendMessageRequest{Message: "typo"})
	require.NoError(t, err)

	// Scripted race: the row passes the ownership check but the guarded
	// update matches nothing.
	chatRepo.affectedRows = 0
	assert.ErrorIs(t, svc.SoftDeleteMessage(context.Background(), sent.Id, customer.Id), ErrMessageNotFound)
	assert.ErrorIs(t, svc.UnsendMessage(context.Background(), sent.Id, customer.Id), ErrMessageNotFound)

	chatRepo.affectedRows = 1
	assert.NoError(t, svc.SoftDeleteMessage(context.Background(), sent.Id, customer.Id))
	assert.NoError(t, svc.UnsendMessage(context.Background(), sent.Id, customer.Id))
}

func TestMutationsByNonOwnerNeverReachStorage(t *testing.T) {
	chatRepo, _, _, svc, _, customer := newChatFixture()
	stranger := uuid.New()

	sent, err := svc.SendMessage(context.Background(), customer.Id, &dto.SendMessageRequest{Message: "mine"})
	require.NoError(t, err)

	_, err = svc.EditMessage(context.Background(), sent.Id, stranger, &dto.EditMessageRequest{Message: "hijacked"})
	assert.ErrorIs(t, err, ErrMessageNotFound)
	assert.ErrorIs(t, svc.SoftDeleteMessage(context.Background(), sent.Id, stranger), ErrMessageNotFound)
	assert.ErrorIs(t, svc.UnsendMessage(context.Background(), sent.Id, stranger), ErrMessageNotFound)

	// The ownership guard rejects before any mutation statement runs.
	assert.Zero(t, chatRepo.mutationCalls)
	assert.Equal(t, "mine", chatRepo.created[0].Message)
}

func TestAssertOwner(t *testing.T) {
	owner := uuid.New()
	msg := &entity.ChatMessage{Id: uuid.New(), SenderId: owner}

	assert.NoError(t, assertOwner(msg, owner))
	assert.ErrorIs(t, assertOwner(msg, uuid.New()), ErrMessageNotFound)
	assert.ErrorIs(t, assertOwner(nil, owner), ErrMessageNotFound)
}
