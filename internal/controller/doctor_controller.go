// FILE: internal/controller/doctor_controller.go
package controller

import (
	"healthlink-be/internal/dto"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/pkg/serverutils"
	"healthlink-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDoctorController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Availability(ctx *fiber.Ctx) error
}

type doctorController struct {
	doctorService service.IDoctorService
}

func NewDoctorController(doctorService service.IDoctorService) IDoctorController {
	return &doctorController{doctorService: doctorService}
}

func (c *doctorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/doctors")
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/availability", c.Availability)
}

func (c *doctorController) List(ctx *fiber.Ctx) error {
	q := dto.DoctorListQuery{
		Specialization: ctx.Query("specialization"),
		Location:       ctx.Query("location"),
		MaxFee:         ctx.QueryFloat("maxFee"),
		Search:         ctx.Query("search"),
		SortBy:         ctx.Query("sort"),
		Page:           ctx.QueryInt("page", 1),
		Limit:          ctx.QueryInt("limit", 10),
	}

	res, err := c.doctorService.List(ctx.Context(), &q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list doctors", res))
}

func (c *doctorController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid doctor id")
	}

	res, err := c.doctorService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get doctor", res))
}

func (c *doctorController) Availability(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid doctor id")
	}

	date := ctx.Query("date")
	if date == "" {
		return apperror.Validation("date query parameter is required")
	}

	res, err := c.doctorService.Availability(ctx.Context(), id, date)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get availability", res))
}
