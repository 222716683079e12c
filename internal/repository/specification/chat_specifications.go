package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisibleMessages excludes soft-deleted rows. Every list query carries it;
// only audit-style by-id lookups go without.
type VisibleMessages struct{}

func (s VisibleMessages) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("state = ?", "active")
}

type ByOrderThread struct {
	OrderID uuid.UUID
}

func (s ByOrderThread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderID)
}

// ParticipantIs matches messages the user sent or received.
type ParticipantIs struct {
	UserID uuid.UUID
}

func (s ParticipantIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender_id = ? OR receiver_id = ?", s.UserID, s.UserID)
}

// ConversationBetween matches the symmetric two-party thread.
type ConversationBetween struct {
	A uuid.UUID
	B uuid.UUID
}

func (s ConversationBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		s.A, s.B, s.B, s.A,
	)
}
