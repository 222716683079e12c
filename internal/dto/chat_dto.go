package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ReceiverId *uuid.UUID `json:"receiverId"`
	OrderId    *uuid.UUID `json:"orderId"`
	Message    string     `json:"message" validate:"required"`
}

type EditMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatMessageResponse struct {
	Id         uuid.UUID  `json:"id"`
	SenderId   uuid.UUID  `json:"senderId"`
	ReceiverId *uuid.UUID `json:"receiverId,omitempty"`
	OrderId    *uuid.UUID `json:"orderId,omitempty"`
	Message    string     `json:"message"`
	Type       string     `json:"type"`
	IsRead     bool       `json:"isRead"`
	IsEdited   bool       `json:"isEdited"`
	CreatedAt  time.Time  `json:"createdAt"`
	EditedAt   *time.Time `json:"editedAt,omitempty"`
}

type CustomerThreadResponse struct {
	CustomerId      uuid.UUID `json:"customerId"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     int64     `json:"unreadCount"`
}

type ConversationMessageResponse struct {
	ChatMessageResponse
	SenderName string `json:"senderName"`
	SenderRole string `json:"senderRole"`
}
