package websocket

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Frame types, client to server.
const (
	FrameAuth                = "auth"
	FrameOrderUpdate         = "order_update" // legacy, superseded by the HTTP-triggered push
	FrameSubscribeTracking   = "subscribe_delivery_tracking"
	FrameUnsubscribeTracking = "unsubscribe_delivery_tracking"
)

// Frame types, server to client.
const (
	FrameAuthSuccess       = "auth_success"
	FrameAuthError         = "auth_error"
	FrameNewMessage        = "new_message"
	FrameOrderStatusUpdate = "order_status_update"
	FrameDeliveryRoute     = "delivery_route"
	FrameNotification      = "notification"
)

// InboundFrame is the union of everything a client may send. Only the
// fields relevant to the given type are set.
type InboundFrame struct {
	Type    string `json:"type"`
	Token   string `json:"token,omitempty"`
	OrderId string `json:"orderId,omitempty"`
}

func ParseInbound(data []byte) (*InboundFrame, error) {
	var frame InboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, err
	}
	return &frame, nil
}

func mustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// All outbound frames are built from known-serializable values.
		return []byte(`{"type":"error"}`)
	}
	return data
}

func AuthSuccessFrame(userID uuid.UUID) []byte {
	return mustMarshal(map[string]interface{}{
		"type":   FrameAuthSuccess,
		"userId": userID,
	})
}

func AuthErrorFrame(message string) []byte {
	return mustMarshal(map[string]interface{}{
		"type":    FrameAuthError,
		"message": message,
	})
}

func NewMessageFrame(message interface{}) []byte {
	return mustMarshal(map[string]interface{}{
		"type":    FrameNewMessage,
		"message": message,
	})
}

func OrderStatusFrame(order interface{}) []byte {
	return mustMarshal(map[string]interface{}{
		"type":  FrameOrderStatusUpdate,
		"order": order,
	})
}

func NotificationFrame(notification interface{}) []byte {
	return mustMarshal(map[string]interface{}{
		"type":         FrameNotification,
		"notification": notification,
	})
}

func DeliveryRouteFrame(orderId string, route interface{}) []byte {
	return mustMarshal(map[string]interface{}{
		"type":    FrameDeliveryRoute,
		"orderId": orderId,
		"route":   route,
	})
}
