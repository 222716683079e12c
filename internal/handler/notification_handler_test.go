package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/model"
	"gasflow-be/internal/pkg/logger"
	"gasflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }
func (quietLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

// recordingNotifRepo captures the predicate arguments the handler path
// sends down to storage.
type recordingNotifRepo struct {
	rows           []model.Notification
	markReadNotif  uuid.UUID
	markReadCaller uuid.UUID
	markReadCalls  int
}

func (r *recordingNotifRepo) CreateNotification(ctx context.Context, notification *model.Notification) error {
	return nil
}

func (r *recordingNotifRepo) GetUsersByRole(ctx context.Context, role string) ([]*entity.User, error) {
	return nil, nil
}

func (r *recordingNotifRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return r.rows, int64(len(r.rows)), nil
}

func (r *recordingNotifRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *recordingNotifRepo) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	r.markReadCalls++
	r.markReadNotif = notificationID
	r.markReadCaller = userID
	return nil
}

func (r *recordingNotifRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error { return nil }

func signedToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newNotificationApp(t *testing.T, repo *recordingNotifRepo) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	svc := service.NewNotificationService(repo, nil, nil, quietLogger{})
	h := NewNotificationHandler(svc)

	app := fiber.New()
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func TestGetNotificationsClampsZeroLimit(t *testing.T) {
	repo := &recordingNotifRepo{rows: []model.Notification{{ID: uuid.New()}}}
	app := newNotificationApp(t, repo)
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/?limit=0", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, userID))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"page":1`)
}

func TestGetNotificationsRejectsMissingToken(t *testing.T) {
	app := newNotificationApp(t, &recordingNotifRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMarkAsReadScopesToCaller(t *testing.T) {
	repo := &recordingNotifRepo{}
	app := newNotificationApp(t, repo)

	caller := uuid.New()
	notifID := uuid.New()

	req := httptest.NewRequest(http.MethodPatch, "/api/notifications/"+notifID.String()+"/read", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, caller))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, repo.markReadCalls)
	assert.Equal(t, notifID, repo.markReadNotif)
	// The mark-read predicate always carries the authenticated caller.
	assert.Equal(t, caller, repo.markReadCaller)
}
