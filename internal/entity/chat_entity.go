package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string
type MessageState string

const (
	MessageTypeText MessageType = "text"

	// MessageStateActive is the normal, listable state.
	MessageStateActive MessageState = "active"
	// MessageStateSoftDeleted hides the message from list views while
	// keeping the row for audit. Hard unsend removes the row entirely and
	// therefore has no state value.
	MessageStateSoftDeleted MessageState = "soft_deleted"
)

// ChatMessage is one unit of conversation. A nil ReceiverId means the
// message belongs to the general support thread and is resolved to the
// admin account before it is stored. A nil OrderId means the message is
// not scoped to an order.
type ChatMessage struct {
	Id         uuid.UUID
	SenderId   uuid.UUID
	ReceiverId *uuid.UUID
	OrderId    *uuid.UUID
	Message    string
	Type       MessageType
	State      MessageState
	IsRead     bool
	IsEdited   bool
	CreatedAt  time.Time
	EditedAt   *time.Time
	DeletedAt  *time.Time
}

func (m *ChatMessage) IsDeleted() bool {
	return m.State == MessageStateSoftDeleted
}

// CustomerThread is one row of the admin inbox list: a customer that has
// written at least one visible message, with their latest message and how
// many of their messages the admin has not read yet.
type CustomerThread struct {
	CustomerId      uuid.UUID
	CustomerName    string
	CustomerEmail   string
	LastMessage     string
	LastMessageTime time.Time
	UnreadCount     int64
}

// ConversationMessage is a ChatMessage enriched with sender display data
// for the admin conversation view.
type ConversationMessage struct {
	ChatMessage
	SenderName string
	SenderRole UserRole
}
