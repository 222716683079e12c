package implementation

import (
	"context"
	"errors"
	"time"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/mapper"
	"gasflow-be/internal/model"
	"gasflow-be/internal/repository/contract"
	"gasflow-be/internal/repository/scope"
	"gasflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, msg *entity.ChatMessage) error {
	m := r.mapper.ToModel(msg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.ChatMessage, error) {
	var m model.ChatMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var ms []*model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...).Scopes(scope.OrderByCreatedAsc)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *ChatMessageRepositoryImpl) Edit(ctx context.Context, messageId, senderId uuid.UUID, newText string) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("id = ? AND sender_id = ? AND state = ?", messageId, senderId, string(entity.MessageStateActive)).
		Updates(map[string]interface{}{
			"message":   newText,
			"is_edited": true,
			"edited_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *ChatMessageRepositoryImpl) SoftDelete(ctx context.Context, messageId, senderId uuid.UUID) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("id = ? AND sender_id = ? AND state = ?", messageId, senderId, string(entity.MessageStateActive)).
		Updates(map[string]interface{}{
			"state":      string(entity.MessageStateSoftDeleted),
			"deleted_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *ChatMessageRepositoryImpl) HardDelete(ctx context.Context, messageId, senderId uuid.UUID) (int64, error) {
	// No state predicate: unsend works on soft-deleted rows too.
	result := r.db.WithContext(ctx).
		Where("id = ? AND sender_id = ?", messageId, senderId).
		Delete(&model.ChatMessage{})
	return result.RowsAffected, result.Error
}

func (r *ChatMessageRepositoryImpl) MarkAllRead(ctx context.Context, receiverId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("receiver_id = ? AND is_read = ?", receiverId, false).
		Update("is_read", true).Error
}

type customerThreadRow struct {
	CustomerId      uuid.UUID
	CustomerName    string
	CustomerEmail   string
	LastMessage     string
	LastMessageTime time.Time
	UnreadCount     int64
}

func (r *ChatMessageRepositoryImpl) ListCustomerThreads(ctx context.Context) ([]*entity.CustomerThread, error) {
	var rows []customerThreadRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id        AS customer_id,
		       u.full_name AS customer_name,
		       u.email     AS customer_email,
		       last.message    AS last_message,
		       last.created_at AS last_message_time,
		       (SELECT COUNT(*) FROM chat_messages m2
		         WHERE m2.sender_id = u.id
		           AND m2.state = 'active'
		           AND m2.is_read = false) AS unread_count
		FROM users u
		JOIN LATERAL (
			SELECT m.message, m.created_at
			FROM chat_messages m
			WHERE m.sender_id = u.id AND m.state = 'active'
			ORDER BY m.created_at DESC
			LIMIT 1
		) last ON true
		WHERE u.role = 'customer'
		ORDER BY last.created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	threads := make([]*entity.CustomerThread, len(rows))
	for i, row := range rows {
		threads[i] = &entity.CustomerThread{
			CustomerId:      row.CustomerId,
			CustomerName:    row.CustomerName,
			CustomerEmail:   row.CustomerEmail,
			LastMessage:     row.LastMessage,
			LastMessageTime: row.LastMessageTime,
			UnreadCount:     row.UnreadCount,
		}
	}
	return threads, nil
}

type conversationRow struct {
	model.ChatMessage
	SenderName string
	SenderRole string
}

func (r *ChatMessageRepositoryImpl) FindConversation(ctx context.Context, customerId, adminId uuid.UUID) ([]*entity.ConversationMessage, error) {
	var rows []conversationRow
	query := r.applySpecifications(
		r.db.WithContext(ctx).
			Table("chat_messages").
			Select("chat_messages.*, u.full_name AS sender_name, u.role AS sender_role").
			Joins("JOIN users u ON u.id = chat_messages.sender_id"),
		specification.VisibleMessages{},
		specification.ConversationBetween{A: customerId, B: adminId},
	)
	err := query.Order("chat_messages.created_at ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*entity.ConversationMessage, len(rows))
	for i, row := range rows {
		messages[i] = &entity.ConversationMessage{
			ChatMessage: *r.mapper.ToEntity(&row.ChatMessage),
			SenderName:  row.SenderName,
			SenderRole:  entity.UserRole(row.SenderRole),
		}
	}
	return messages, nil
}
