package controller

import (
	"gasflow-be/internal/dto"
	"gasflow-be/internal/pkg/serverutils"
	"gasflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Dashboard(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	UserDetail(ctx *fiber.Ctx) error
	UpdateUserStatus(ctx *fiber.Ctx) error
	SystemLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
	orderService service.IOrderService
}

func NewAdminController(adminService service.IAdminService, orderService service.IOrderService) IAdminController {
	return &adminController{
		adminService: adminService,
		orderService: orderService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware, serverutils.AdminOnly)

	h.Get("/dashboard", c.Dashboard)
	h.Get("/users", c.ListUsers)
	h.Get("/users/:id", c.UserDetail)
	h.Patch("/users/:id/status", c.UpdateUserStatus)
	h.Get("/logs", c.SystemLogs)
}

func (c *adminController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.orderService.Dashboard(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	search := ctx.Query("search")

	res, err := c.adminService.GetAllUsers(ctx.Context(), page, limit, search)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) UserDetail(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	res, err := c.adminService.GetUserDetail(ctx.Context(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get user", res))
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.UpdateUserStatus(ctx.Context(), id, req.Status); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("User status updated", nil))
}

func (c *adminController) SystemLogs(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)
	level := ctx.Query("level")

	logs, err := c.adminService.GetSystemLogs(level, page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}
