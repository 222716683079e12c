package controller

import (
	"errors"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/pkg/serverutils"
	"gasflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAddressController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type addressController struct {
	service service.IAddressService
}

func NewAddressController(service service.IAddressService) IAddressController {
	return &addressController{service: service}
}

func (c *addressController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/addresses")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *addressController) List(ctx *fiber.Ctx) error {
	res, err := c.service.ListAddresses(ctx.Context(), callerID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list addresses", res))
}

func (c *addressController) Create(ctx *fiber.Ctx) error {
	var req dto.AddressRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateAddress(ctx.Context(), callerID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Address created",
		"data":    res,
	})
}

func (c *addressController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid address id")
	}

	var req dto.AddressRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateAddress(ctx.Context(), id, callerID(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Address updated", res))
}

func (c *addressController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid address id")
	}

	if err := c.service.DeleteAddress(ctx.Context(), id, callerID(ctx)); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Address deleted", nil))
}
