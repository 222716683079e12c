package mapper

import (
	"gasflow-be/internal/entity"
	"gasflow-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:         c.Id,
		SenderId:   c.SenderId,
		ReceiverId: c.ReceiverId,
		OrderId:    c.OrderId,
		Message:    c.Message,
		Type:       entity.MessageType(c.Type),
		State:      entity.MessageState(c.State),
		IsRead:     c.IsRead,
		IsEdited:   c.IsEdited,
		CreatedAt:  c.CreatedAt,
		EditedAt:   c.EditedAt,
		DeletedAt:  c.DeletedAt,
	}
}

func (m *ChatMapper) ToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:         c.Id,
		SenderId:   c.SenderId,
		ReceiverId: c.ReceiverId,
		OrderId:    c.OrderId,
		Message:    c.Message,
		Type:       string(c.Type),
		State:      string(c.State),
		IsRead:     c.IsRead,
		IsEdited:   c.IsEdited,
		CreatedAt:  c.CreatedAt,
		EditedAt:   c.EditedAt,
		DeletedAt:  c.DeletedAt,
	}
}

func (m *ChatMapper) ToEntities(messages []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(messages))
	for i, c := range messages {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
