package handler

import (
	"context"
	"os"

	"gasflow-be/internal/pkg/logger"
	"gasflow-be/internal/service"
	internalWS "gasflow-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	fiberWS "github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RealtimeHandler owns the /ws endpoint and the inbound frame protocol.
// Sockets are accepted unauthenticated; a client binds itself to a user by
// sending an auth frame with a bearer token. Until then it is connected
// but receives no targeted pushes.
type RealtimeHandler struct {
	hub             *internalWS.Hub
	deliveryService service.IDeliveryService
	logger          logger.ILogger
}

func NewRealtimeHandler(hub *internalWS.Hub, deliveryService service.IDeliveryService, log logger.ILogger) *RealtimeHandler {
	return &RealtimeHandler{
		hub:             hub,
		deliveryService: deliveryService,
		logger:          log,
	}
}

func (h *RealtimeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}

// ServeWs upgrades the connection and runs the client until it closes.
func (h *RealtimeHandler) ServeWs(c *fiber.Ctx) error {
	if !fiberWS.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return fiberWS.New(func(conn *fiberWS.Conn) {
		client := internalWS.NewClient(h.hub, conn, h)
		h.logger.Info("RealtimeHandler", "WebSocket session started", nil)
		client.Run()
		h.logger.Info("RealtimeHandler", "WebSocket session ended", map[string]interface{}{"user_id": client.UserID})
	})(c)
}

// HandleFrame dispatches one inbound frame. Errors never close the
// connection; bad frames get an error frame back or are logged and
// dropped.
func (h *RealtimeHandler) HandleFrame(client *internalWS.Client, data []byte) {
	frame, err := internalWS.ParseInbound(data)
	if err != nil {
		h.logger.Warn("RealtimeHandler", "Dropping malformed frame", map[string]interface{}{"error": err.Error()})
		return
	}

	switch frame.Type {
	case internalWS.FrameAuth:
		h.handleAuth(client, frame.Token)

	case internalWS.FrameSubscribeTracking:
		h.handleSubscribeTracking(client, frame.OrderId)

	case internalWS.FrameUnsubscribeTracking:
		// The route frame is a one-shot snapshot; nothing to tear down.

	case internalWS.FrameOrderUpdate:
		// Legacy client path. Status pushes now originate from the HTTP
		// status-update endpoint; acknowledge by ignoring.
		h.logger.Debug("RealtimeHandler", "Ignoring legacy order_update frame", map[string]interface{}{"order_id": frame.OrderId})

	default:
		h.logger.Warn("RealtimeHandler", "Unknown frame type", map[string]interface{}{"type": frame.Type})
	}
}

// handleAuth verifies the token and registers the socket. A failed auth
// answers with an error frame and leaves the socket open for a retry.
func (h *RealtimeHandler) handleAuth(client *internalWS.Client, tokenStr string) {
	if tokenStr == "" {
		client.Send <- internalWS.AuthErrorFrame("missing token")
		return
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		client.Send <- internalWS.AuthErrorFrame("invalid token")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		client.Send <- internalWS.AuthErrorFrame("invalid claims")
		return
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		client.Send <- internalWS.AuthErrorFrame("token missing user_id")
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		client.Send <- internalWS.AuthErrorFrame("invalid user id in token")
		return
	}

	client.UserID = userID
	client.Hub.Register(client)
	client.Send <- internalWS.AuthSuccessFrame(userID)
}

func (h *RealtimeHandler) handleSubscribeTracking(client *internalWS.Client, orderIdStr string) {
	if client.UserID == uuid.Nil {
		client.Send <- internalWS.AuthErrorFrame("authenticate first")
		return
	}

	orderId, err := uuid.Parse(orderIdStr)
	if err != nil {
		h.logger.Warn("RealtimeHandler", "Bad orderId in tracking subscribe", map[string]interface{}{"order_id": orderIdStr})
		return
	}

	route, err := h.deliveryService.GetRoute(context.Background(), orderId)
	if err != nil {
		h.logger.Error("RealtimeHandler", "Failed to load delivery route", map[string]interface{}{"order_id": orderId, "error": err.Error()})
		return
	}
	if len(route) == 0 {
		return
	}

	client.Send <- internalWS.DeliveryRouteFrame(orderId.String(), route)
}
