package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gasflow-be/internal/model"
	"gasflow-be/internal/pkg/logger"
	"gasflow-be/internal/repository"
	"gasflow-be/pkg/events"
	pktNats "gasflow-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
}

// notificationRule maps an event code to the inbox entry it produces.
// target "self" resolves the recipient from the payload's customer_id or
// user_id; target "admin" fans out to every admin account.
type notificationRule struct {
	Target   string
	Title    string
	Template string
}

// ORDER_STATUS_CHANGED carries no rule: the order service writes the
// customer's inbox row and pushes the frame synchronously, so the worker
// acting on it too would double every status notification.
var notificationRules = map[string]notificationRule{
	events.TypeOrderCreated: {
		Target:   "admin",
		Title:    "New order",
		Template: "A new order worth Rp {total} was placed.",
	},
	events.TypePaymentSettled: {
		Target:   "self",
		Title:    "Payment received",
		Template: "We received your payment of Rp {total}. Your order is being prepared.",
	},
	events.TypeUserRegistered: {
		Target:   "admin",
		Title:    "New customer",
		Template: "{email} just created an account.",
	},
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	rule, ok := notificationRules[typeCode]
	if !ok {
		s.logger.Debug("NotificationService", "No rule for event, skipping", map[string]interface{}{"type": typeCode})
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, rule, event)
	if err != nil {
		s.logger.Error("NotificationService", "Error resolving recipients", map[string]interface{}{"type": typeCode, "error": err})
		return err // NATS will retry
	}

	for _, userID := range recipients {
		notif := s.buildNotification(userID, typeCode, rule, event)

		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}
	}

	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, rule notificationRule, event events.Event) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID

	switch rule.Target {
	case "self":
		payload := event.Payload()
		for _, key := range []string{"customer_id", "user_id"} {
			if uidStr, ok := payload[key].(string); ok {
				if uid, err := uuid.Parse(uidStr); err == nil {
					userIDs = append(userIDs, uid)
					break
				}
			}
		}
		if len(userIDs) == 0 {
			s.logger.Warn("NotificationService", "Target self but no recipient in payload", map[string]interface{}{"type": event.EventType()})
		}

	case "admin":
		admins, err := s.repo.GetUsersByRole(ctx, "admin")
		if err != nil {
			return nil, err
		}
		for _, u := range admins {
			userIDs = append(userIDs, u.Id)
		}
	}

	return userIDs, nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, typeCode string, rule notificationRule, event events.Event) model.Notification {
	msg := rule.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	metaJSON, _ := json.Marshal(payload)

	return model.Notification{
		ID:       uuid.New(),
		UserID:   userID,
		TypeCode: typeCode,
		Title:    rule.Title,
		Message:  msg,
		Metadata: datatypes.JSON(metaJSON),
		IsRead:   false,
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
