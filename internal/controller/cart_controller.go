package controller

import (
	"errors"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/pkg/serverutils"
	"gasflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICartController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	AddItem(ctx *fiber.Ctx) error
	UpdateItem(ctx *fiber.Ctx) error
	RemoveItem(ctx *fiber.Ctx) error
}

type cartController struct {
	service service.ICartService
}

func NewCartController(service service.ICartService) ICartController {
	return &cartController{service: service}
}

func (c *cartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cart")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
	h.Post("/items", c.AddItem)
	h.Put("/items/:productId", c.UpdateItem)
	h.Delete("/items/:productId", c.RemoveItem)
}

func (c *cartController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetCart(ctx.Context(), callerID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get cart", res))
}

func (c *cartController) AddItem(ctx *fiber.Ctx) error {
	var req dto.AddCartItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddItem(ctx.Context(), callerID(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Item added to cart", res))
}

func (c *cartController) UpdateItem(ctx *fiber.Ctx) error {
	productId, err := uuid.Parse(ctx.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var req dto.UpdateCartItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateItem(ctx.Context(), callerID(ctx), productId, &req)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Cart updated", res))
}

func (c *cartController) RemoveItem(ctx *fiber.Ctx) error {
	productId, err := uuid.Parse(ctx.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	res, err := c.service.RemoveItem(ctx.Context(), callerID(ctx), productId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Item removed", res))
}
