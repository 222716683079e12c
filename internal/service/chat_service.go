package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/entity"
	"gasflow-be/internal/pkg/logger"
	"gasflow-be/internal/repository/contract"
	"gasflow-be/internal/repository/specification"
	"gasflow-be/internal/websocket"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrMessageNotFound = errors.New("message not found")
	ErrNoAdminAccount  = errors.New("no admin account available")
)

// RealtimePusher is the best-effort push side of the chat flow. A false
// return means the recipient had no live socket; the write has already been
// persisted by then, so the caller ignores it.
type RealtimePusher interface {
	PushToUser(userId uuid.UUID, payload []byte) bool
}

type IChatService interface {
	SendMessage(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
	ListMessages(ctx context.Context, userId uuid.UUID, orderId *uuid.UUID) ([]*dto.ChatMessageResponse, error)
	EditMessage(ctx context.Context, messageId, callerId uuid.UUID, req *dto.EditMessageRequest) (*dto.ChatMessageResponse, error)
	SoftDeleteMessage(ctx context.Context, messageId, callerId uuid.UUID) error
	UnsendMessage(ctx context.Context, messageId, callerId uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
	ListCustomerThreads(ctx context.Context) ([]*dto.CustomerThreadResponse, error)
	GetConversation(ctx context.Context, customerId, adminId uuid.UUID) ([]*dto.ConversationMessageResponse, error)
}

type chatService struct {
	chatRepo contract.ChatMessageRepository
	userRepo contract.UserRepository
	pusher   RealtimePusher
	log      logger.ILogger
}

func NewChatService(chatRepo contract.ChatMessageRepository, userRepo contract.UserRepository, pusher RealtimePusher, log logger.ILogger) IChatService {
	return &chatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		pusher:   pusher,
		log:      log,
	}
}

// assertOwner is the authorization rule for message mutation. Every
// mutation checks it on the fetched row before the write; the SQL
// predicate then re-checks under the update so a concurrent change still
// cannot slip through. A non-owner gets ErrMessageNotFound rather than a
// permission error so that existence is not revealed.
func assertOwner(msg *entity.ChatMessage, callerId uuid.UUID) error {
	if msg == nil || msg.SenderId != callerId {
		return ErrMessageNotFound
	}
	return nil
}

func (s *chatService) loadOwned(ctx context.Context, messageId, callerId uuid.UUID) (*entity.ChatMessage, error) {
	msg, err := s.chatRepo.FindById(ctx, messageId)
	if err != nil {
		return nil, err
	}
	if err := assertOwner(msg, callerId); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *chatService) SendMessage(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	sender, err := s.userRepo.FindOne(ctx, specification.ByID{ID: senderId})
	if err != nil || sender == nil {
		return nil, errors.New("sender not found")
	}

	receiverId := req.ReceiverId
	if receiverId == nil && !sender.IsAdmin() {
		// Customers without an explicit receiver write to the support
		// inbox. An admin account is guaranteed at boot.
		admin, err := s.userRepo.FindOne(ctx, specification.ByRole{Role: string(entity.UserRoleAdmin)})
		if err != nil || admin == nil {
			s.log.Error("chat", "send message failed: admin account missing", map[string]interface{}{"sender_id": senderId})
			return nil, ErrNoAdminAccount
		}
		receiverId = &admin.Id
	}

	msg := &entity.ChatMessage{
		Id:         uuid.New(),
		SenderId:   senderId,
		ReceiverId: receiverId,
		OrderId:    req.OrderId,
		Message:    text,
		Type:       entity.MessageTypeText,
		State:      entity.MessageStateActive,
		CreatedAt:  time.Now(),
	}

	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	res := toChatMessageResponse(msg)

	// Fire-and-forget push. Persistence already succeeded; an offline
	// receiver picks the message up on the next poll.
	if receiverId != nil && s.pusher != nil {
		delivered := s.pusher.PushToUser(*receiverId, websocket.NewMessageFrame(res))
		if !delivered {
			s.log.Debug("chat", "receiver offline, push skipped", map[string]interface{}{"message_id": msg.Id, "receiver_id": *receiverId})
		}
	}

	return res, nil
}

func (s *chatService) ListMessages(ctx context.Context, userId uuid.UUID, orderId *uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	var specs []specification.Specification
	if orderId != nil {
		// Order threads are visible to any authenticated participant.
		specs = append(specs, specification.VisibleMessages{}, specification.ByOrderThread{OrderID: *orderId})
	} else {
		specs = append(specs, specification.VisibleMessages{}, specification.ParticipantIs{UserID: userId})
	}

	messages, err := s.chatRepo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, toChatMessageResponse(m))
	}
	return res, nil
}

func (s *chatService) EditMessage(ctx context.Context, messageId, callerId uuid.UUID, req *dto.EditMessageRequest) (*dto.ChatMessageResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.loadOwned(ctx, messageId, callerId); err != nil {
		return nil, err
	}

	affected, err := s.chatRepo.Edit(ctx, messageId, callerId, text)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrMessageNotFound
	}

	msg, err := s.chatRepo.FindById(ctx, messageId)
	if err != nil || msg == nil {
		return nil, ErrMessageNotFound
	}
	return toChatMessageResponse(msg), nil
}

func (s *chatService) SoftDeleteMessage(ctx context.Context, messageId, callerId uuid.UUID) error {
	if _, err := s.loadOwned(ctx, messageId, callerId); err != nil {
		return err
	}

	affected, err := s.chatRepo.SoftDelete(ctx, messageId, callerId)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *chatService) UnsendMessage(ctx context.Context, messageId, callerId uuid.UUID) error {
	if _, err := s.loadOwned(ctx, messageId, callerId); err != nil {
		return err
	}

	affected, err := s.chatRepo.HardDelete(ctx, messageId, callerId)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *chatService) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	return s.chatRepo.MarkAllRead(ctx, userId)
}

func (s *chatService) ListCustomerThreads(ctx context.Context) ([]*dto.CustomerThreadResponse, error) {
	threads, err := s.chatRepo.ListCustomerThreads(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CustomerThreadResponse, 0, len(threads))
	for _, t := range threads {
		res = append(res, &dto.CustomerThreadResponse{
			CustomerId:      t.CustomerId,
			CustomerName:    t.CustomerName,
			CustomerEmail:   t.CustomerEmail,
			LastMessage:     t.LastMessage,
			LastMessageTime: t.LastMessageTime,
			UnreadCount:     t.UnreadCount,
		})
	}
	return res, nil
}

func (s *chatService) GetConversation(ctx context.Context, customerId, adminId uuid.UUID) ([]*dto.ConversationMessageResponse, error) {
	messages, err := s.chatRepo.FindConversation(ctx, customerId, adminId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ConversationMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, &dto.ConversationMessageResponse{
			ChatMessageResponse: *toChatMessageResponse(&m.ChatMessage),
			SenderName:          m.SenderName,
			SenderRole:          string(m.SenderRole),
		})
	}
	return res, nil
}

func toChatMessageResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:         m.Id,
		SenderId:   m.SenderId,
		ReceiverId: m.ReceiverId,
		OrderId:    m.OrderId,
		Message:    m.Message,
		Type:       string(m.Type),
		IsRead:     m.IsRead,
		IsEdited:   m.IsEdited,
		CreatedAt:  m.CreatedAt,
		EditedAt:   m.EditedAt,
	}
}
