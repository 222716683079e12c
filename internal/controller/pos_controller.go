package controller

import (
	"errors"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/pkg/serverutils"
	"gasflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPOSController interface {
	RegisterRoutes(r fiber.Router)
	CreateSale(ctx *fiber.Ctx) error
}

type posController struct {
	orderService service.IOrderService
}

func NewPOSController(orderService service.IOrderService) IPOSController {
	return &posController{orderService: orderService}
}

func (c *posController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/pos")
	h.Use(serverutils.JwtMiddleware, serverutils.AdminOnly)
	h.Post("/sales", c.CreateSale)
}

func (c *posController) CreateSale(ctx *fiber.Ctx) error {
	var req dto.POSSaleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.orderService.CreatePOSSale(ctx.Context(), callerID(ctx), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInsufficientStock):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Sale recorded",
		"data":    res,
	})
}
