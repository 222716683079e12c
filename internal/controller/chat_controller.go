package controller

import (
	"errors"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/pkg/serverutils"
	"gasflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	ListMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	MarkAllRead(ctx *fiber.Ctx) error
	EditMessage(ctx *fiber.Ctx) error
	SoftDeleteMessage(ctx *fiber.Ctx) error
	UnsendMessage(ctx *fiber.Ctx) error
	ListCustomerThreads(ctx *fiber.Ctx) error
	GetConversation(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(serverutils.JwtMiddleware)

	h.Get("/messages", c.ListMessages)
	h.Post("/messages", c.SendMessage)
	h.Post("/messages/read", c.MarkAllRead)
	h.Put("/messages/:id", c.EditMessage)
	h.Delete("/messages/:id/unsend", c.UnsendMessage)
	h.Delete("/messages/:id", c.SoftDeleteMessage)

	admin := h.Group("", serverutils.AdminOnly)
	admin.Get("/customers", c.ListCustomerThreads)
	admin.Get("/conversation/:customerId", c.GetConversation)
}

func callerID(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	userId := callerID(ctx)

	var orderId *uuid.UUID
	if raw := ctx.Query("orderId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid orderId")
		}
		orderId = &id
	}

	res, err := c.service.ListMessages(ctx.Context(), userId, orderId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId := callerID(ctx)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Message sent",
		"data":    res,
	})
}

func (c *chatController) MarkAllRead(ctx *fiber.Ctx) error {
	userId := callerID(ctx)

	if err := c.service.MarkAllRead(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Inbox marked read", nil))
}

func (c *chatController) EditMessage(ctx *fiber.Ctx) error {
	userId := callerID(ctx)

	messageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	var req dto.EditMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.EditMessage(ctx.Context(), messageId, userId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMessageNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message updated", res))
}

func (c *chatController) SoftDeleteMessage(ctx *fiber.Ctx) error {
	userId := callerID(ctx)

	messageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	if err := c.service.SoftDeleteMessage(ctx.Context(), messageId, userId); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message deleted", nil))
}

func (c *chatController) UnsendMessage(ctx *fiber.Ctx) error {
	userId := callerID(ctx)

	messageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	if err := c.service.UnsendMessage(ctx.Context(), messageId, userId); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message unsent", nil))
}

func (c *chatController) ListCustomerThreads(ctx *fiber.Ctx) error {
	res, err := c.service.ListCustomerThreads(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list customer threads", res))
}

func (c *chatController) GetConversation(ctx *fiber.Ctx) error {
	adminId := callerID(ctx)

	customerId, err := uuid.Parse(ctx.Params("customerId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid customer id")
	}

	res, err := c.service.GetConversation(ctx.Context(), customerId, adminId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get conversation", res))
}
