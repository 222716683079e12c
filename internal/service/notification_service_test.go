package service

import (
	"context"
	"testing"
	"time"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/model"
	"gasflow-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifRepo struct {
	admins  []*entity.User
	created []*model.Notification
}

func (r *fakeNotifRepo) CreateNotification(ctx context.Context, notification *model.Notification) error {
	r.created = append(r.created, notification)
	return nil
}

func (r *fakeNotifRepo) GetUsersByRole(ctx context.Context, role string) ([]*entity.User, error) {
	return r.admins, nil
}

func (r *fakeNotifRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}
func (r *fakeNotifRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *fakeNotifRepo) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return nil
}
func (r *fakeNotifRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error { return nil }

type recordingDelivery struct {
	sent map[uuid.UUID][]model.Notification
}

func (d *recordingDelivery) Send(userID uuid.UUID, notification model.Notification) {
	if d.sent == nil {
		d.sent = make(map[uuid.UUID][]model.Notification)
	}
	d.sent[userID] = append(d.sent[userID], notification)
}

func TestHandleEventTargetsSelfFromPayload(t *testing.T) {
	repo := &fakeNotifRepo{}
	delivery := &recordingDelivery{}
	svc := NewNotificationService(repo, nil, delivery, noopLogger{})

	customerID := uuid.New()
	err := svc.handleEvent(context.Background(), events.BaseEvent{
		Type: "events." + events.TypePaymentSettled,
		Data: map[string]interface{}{
			"customer_id": customerID.String(),
			"total":       120000,
		},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	notif := repo.created[0]
	assert.Equal(t, customerID, notif.UserID)
	assert.Equal(t, events.TypePaymentSettled, notif.TypeCode)
	assert.Equal(t, "We received your payment of Rp 120000. Your order is being prepared.", notif.Message)

	require.Len(t, delivery.sent[customerID], 1)
}

func TestHandleEventOrderStatusChangeWritesNoExtraRow(t *testing.T) {
	// The order service already persists and pushes the status
	// notification; the worker must not duplicate it.
	repo := &fakeNotifRepo{}
	delivery := &recordingDelivery{}
	svc := NewNotificationService(repo, nil, delivery, noopLogger{})

	err := svc.handleEvent(context.Background(), events.BaseEvent{
		Type: "events." + events.TypeOrderStatusChanged,
		Data: map[string]interface{}{
			"customer_id": uuid.New().String(),
			"status":      "confirmed",
		},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, repo.created)
	assert.Empty(t, delivery.sent)
}

func TestHandleEventFansOutToAdmins(t *testing.T) {
	adminA := &entity.User{Id: uuid.New(), Role: entity.UserRoleAdmin}
	adminB := &entity.User{Id: uuid.New(), Role: entity.UserRoleAdmin}
	repo := &fakeNotifRepo{admins: []*entity.User{adminA, adminB}}
	delivery := &recordingDelivery{}
	svc := NewNotificationService(repo, nil, delivery, noopLogger{})

	err := svc.handleEvent(context.Background(), events.BaseEvent{
		Type:       "events." + events.TypeUserRegistered,
		Data:       map[string]interface{}{"email": "budi@example.com"},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 2)
	assert.Equal(t, "budi@example.com just created an account.", repo.created[0].Message)
	assert.Len(t, delivery.sent[adminA.Id], 1)
	assert.Len(t, delivery.sent[adminB.Id], 1)
}

func TestHandleEventIgnoresUnknownType(t *testing.T) {
	repo := &fakeNotifRepo{}
	svc := NewNotificationService(repo, nil, &recordingDelivery{}, noopLogger{})

	err := svc.handleEvent(context.Background(), events.BaseEvent{
		Type:       "events.SOMETHING_ELSE",
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}

func TestBuildNotificationSubstitutesPlaceholders(t *testing.T) {
	svc := NewNotificationService(&fakeNotifRepo{}, nil, nil, noopLogger{})
	userID := uuid.New()

	rule := notificationRules[events.TypePaymentSettled]
	notif := svc.buildNotification(userID, events.TypePaymentSettled, rule, events.BaseEvent{
		Type:       "events." + events.TypePaymentSettled,
		Data:       map[string]interface{}{"total": 245000, "customer_id": userID.String()},
		OccurredAt: time.Now(),
	})

	assert.Equal(t, userID, notif.UserID)
	assert.Equal(t, "We received your payment of Rp 245000. Your order is being prepared.", notif.Message)
	assert.False(t, notif.IsRead)
	assert.NotEmpty(t, notif.Metadata)
}
