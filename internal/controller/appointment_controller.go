// FILE: internal/controller/appointment_controller.go
package controller

import (
	"healthlink-be/internal/dto"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/pkg/serverutils"
	"healthlink-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAppointmentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	UpdateReport(ctx *fiber.Ctx) error
}

type appointmentController struct {
	appointmentService service.IAppointmentService
}

func NewAppointmentController(appointmentService service.IAppointmentService) IAppointmentController {
	return &appointmentController{appointmentService: appointmentService}
}

func (c *appointmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/appointments")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Cancel)
	h.Patch(":id/report", c.UpdateReport)
}

func (c *appointmentController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateAppointmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.appointmentService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Appointment booked successfully", res))
}

func (c *appointmentController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	role, _ := ctx.Locals("role").(string)

	res, err := c.appointmentService.List(ctx.Context(), userId, role)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list appointments", res))
}

func (c *appointmentController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid appointment id")
	}

	res, err := c.appointmentService.Get(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get appointment", res))
}

func (c *appointmentController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid appointment id")
	}

	var req dto.UpdateAppointmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.appointmentService.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Appointment updated successfully", res))
}

func (c *appointmentController) Cancel(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid appointment id")
	}

	if err := c.appointmentService.Cancel(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Appointment cancelled successfully", nil))
}

func (c *appointmentController) UpdateReport(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid appointment id")
	}

	var req dto.UpdateReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.appointmentService.UpdateReport(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Consultation report saved", res))
}
