package repository

import (
	"context"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/model"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetUsersByRole(ctx context.Context, role string) ([]*entity.User, error)
	GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	// MarkAsRead flips a single row, predicated on the owning user so a
	// caller cannot touch someone else's inbox.
	MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}
