package contract

import (
	"context"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ChatMessageRepository owns durable CRUD over chat messages. Ownership is
// embedded in the mutation predicates: Edit/SoftDelete/HardDelete return the
// number of rows matched, and zero rows means "not found" to the caller
// whether the message is missing or owned by someone else.
type ChatMessageRepository interface {
	Create(ctx context.Context, msg *entity.ChatMessage) error

	// FindById looks a message up regardless of state, for audit.
	FindById(ctx context.Context, id uuid.UUID) (*entity.ChatMessage, error)

	// FindAll returns messages matching the specs ordered by creation time ascending.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)

	// Edit updates text under the predicate id+sender+active.
	Edit(ctx context.Context, messageId, senderId uuid.UUID, newText string) (int64, error)

	// SoftDelete hides the message under the predicate id+sender+active.
	SoftDelete(ctx context.Context, messageId, senderId uuid.UUID) (int64, error)

	// HardDelete removes the row under the predicate id+sender. Works on
	// soft-deleted rows too; irreversible.
	HardDelete(ctx context.Context, messageId, senderId uuid.UUID) (int64, error)

	// MarkAllRead flags every message addressed to the user as read.
	MarkAllRead(ctx context.Context, receiverId uuid.UUID) error

	// ListCustomerThreads builds the admin inbox: one row per customer with
	// at least one visible message, newest thread first.
	ListCustomerThreads(ctx context.Context) ([]*entity.CustomerThread, error)

	// FindConversation returns the two-party thread enriched with sender
	// display data, ascending by time.
	FindConversation(ctx context.Context, customerId, adminId uuid.UUID) ([]*entity.ConversationMessage, error)
}
