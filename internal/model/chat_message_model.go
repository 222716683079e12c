package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage rows carry a lifecycle state column instead of independent
// boolean flags so an edited-after-removal row is unrepresentable. Hard
// unsend deletes the row; there is no state value for it.
type ChatMessage struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SenderId   uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_sender"`
	ReceiverId *uuid.UUID `gorm:"type:uuid;index:idx_chat_receiver"`
	OrderId    *uuid.UUID `gorm:"type:uuid;index:idx_chat_order"`
	Message    string     `gorm:"type:text;not null"`
	Type       string     `gorm:"type:varchar(20);not null;default:'text'"`
	State      string     `gorm:"type:varchar(20);not null;default:'active';index"`
	IsRead     bool       `gorm:"default:false"`
	IsEdited   bool       `gorm:"default:false"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index"`
	EditedAt   *time.Time
	DeletedAt  *time.Time
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
