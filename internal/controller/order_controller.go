package controller

import (
	"errors"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/pkg/serverutils"
	"gasflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	Checkout(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Track(ctx *fiber.Ctx) error
	ListAll(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	MidtransWebhook(ctx *fiber.Ctx) error
}

type orderController struct {
	orderService    service.IOrderService
	deliveryService service.IDeliveryService
}

func NewOrderController(orderService service.IOrderService, deliveryService service.IDeliveryService) IOrderController {
	return &orderController{
		orderService:    orderService,
		deliveryService: deliveryService,
	}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	// Webhook is unauthenticated; midtrans signs the payload instead.
	r.Post("/payments/midtrans/notification", c.MidtransWebhook)

	h := r.Group("/orders")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/checkout", c.Checkout)
	h.Get("", c.ListMine)
	h.Get("/all", serverutils.AdminOnly, c.ListAll)
	h.Get("/:id", c.Show)
	h.Get("/:id/track", c.Track)
	h.Post("/:id/cancel", c.Cancel)
	h.Patch("/:id/status", serverutils.AdminOnly, c.UpdateStatus)
}

func isAdmin(ctx *fiber.Ctx) bool {
	role, _ := ctx.Locals("role").(string)
	return role == "admin"
}

func (c *orderController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.orderService.Checkout(ctx.Context(), callerID(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) || errors.Is(err, service.ErrInsufficientStock) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Order placed",
		"data":    res,
	})
}

func (c *orderController) ListMine(ctx *fiber.Ctx) error {
	res, err := c.orderService.ListMyOrders(ctx.Context(), callerID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list orders", res))
}

func (c *orderController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	res, err := c.orderService.GetOrder(ctx.Context(), id, callerID(ctx), isAdmin(ctx))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get order", res))
}

func (c *orderController) Cancel(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	if err := c.orderService.CancelOrder(ctx.Context(), id, callerID(ctx)); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			return fiber.NewError(fiber.StatusBadRequest, "order can no longer be cancelled")
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order cancelled", nil))
}

// Track returns the canned route for the client-side delivery animation.
func (c *orderController) Track(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	// Ownership check through the order lookup.
	if _, err := c.orderService.GetOrder(ctx.Context(), id, callerID(ctx), isAdmin(ctx)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	route, err := c.deliveryService.GetRoute(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get route", route))
}

func (c *orderController) ListAll(ctx *fiber.Ctx) error {
	res, err := c.orderService.ListOrders(ctx.Context(), ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list orders", res))
}

func (c *orderController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	var req dto.UpdateOrderStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.orderService.UpdateStatus(ctx.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order status updated", res))
}

func (c *orderController) MidtransWebhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification body")
	}

	if err := c.orderService.HandleMidtransNotification(ctx.Context(), &req); err != nil {
		// Midtrans retries on non-200; reject bad signatures outright.
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(fiber.Map{"status": "ok"})
}
