package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInbound(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantErr   bool
		wantType  string
		wantToken string
		wantOrder string
	}{
		{
			name:      "auth frame",
			data:      `{"type":"auth","token":"some.jwt.token"}`,
			wantType:  FrameAuth,
			wantToken: "some.jwt.token",
		},
		{
			name:      "subscribe tracking frame",
			data:      `{"type":"subscribe_delivery_tracking","orderId":"abc"}`,
			wantType:  FrameSubscribeTracking,
			wantOrder: "abc",
		},
		{
			name:     "unknown type is preserved",
			data:     `{"type":"whatever"}`,
			wantType: "whatever",
		},
		{
			name:    "malformed json",
			data:    `{"type":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := ParseInbound([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, frame.Type)
			assert.Equal(t, tt.wantToken, frame.Token)
			assert.Equal(t, tt.wantOrder, frame.OrderId)
		})
	}
}

func decodeFrame(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestOutboundFrames(t *testing.T) {
	userID := uuid.New()

	m := decodeFrame(t, AuthSuccessFrame(userID))
	assert.Equal(t, FrameAuthSuccess, m["type"])
	assert.Equal(t, userID.String(), m["userId"])

	m = decodeFrame(t, AuthErrorFrame("invalid token"))
	assert.Equal(t, FrameAuthError, m["type"])
	assert.Equal(t, "invalid token", m["message"])

	m = decodeFrame(t, NewMessageFrame(map[string]string{"text": "hi"}))
	assert.Equal(t, FrameNewMessage, m["type"])
	assert.NotNil(t, m["message"])

	m = decodeFrame(t, OrderStatusFrame(map[string]string{"status": "confirmed"}))
	assert.Equal(t, FrameOrderStatusUpdate, m["type"])

	m = decodeFrame(t, DeliveryRouteFrame("order-1", []float64{1, 2}))
	assert.Equal(t, FrameDeliveryRoute, m["type"])
	assert.Equal(t, "order-1", m["orderId"])

	m = decodeFrame(t, NotificationFrame(map[string]string{"title": "hello"}))
	assert.Equal(t, FrameNotification, m["type"])
}
