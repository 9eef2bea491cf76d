// FILE: internal/controller/medicine_controller.go
package controller

import (
	"healthlink-be/internal/dto"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/pkg/serverutils"
	"healthlink-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMedicineController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type medicineController struct {
	medicineService service.IMedicineService
}

func NewMedicineController(medicineService service.IMedicineService) IMedicineController {
	return &medicineController{medicineService: medicineService}
}

func (c *medicineController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/medicines")
	h.Get("", c.List)
	h.Get("search", c.Search)
	h.Get(":id", c.Show)

	w := h.Group("")
	w.Use(serverutils.JwtMiddleware)
	w.Post("", c.Create)
	w.Patch(":id", c.Update)
	w.Delete(":id", c.Delete)
}

func (c *medicineController) List(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)
	category := ctx.Query("category")

	res, err := c.medicineService.List(ctx.Context(), page, limit, category)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list medicines", res))
}

func (c *medicineController) Search(ctx *fiber.Ctx) error {
	q := dto.MedicineQuery{
		Search:   ctx.Query("q"),
		Category: ctx.Query("category"),
		MinPrice: ctx.QueryFloat("minPrice"),
		MaxPrice: ctx.QueryFloat("maxPrice"),
		Page:     ctx.QueryInt("page", 1),
		Limit:    ctx.QueryInt("limit", 10),
	}

	res, err := c.medicineService.Search(ctx.Context(), &q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search medicines", res))
}

func (c *medicineController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid medicine id")
	}

	res, err := c.medicineService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get medicine", res))
}

func (c *medicineController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateMedicineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.medicineService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Medicine created successfully", res))
}

func (c *medicineController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid medicine id")
	}

	var req dto.UpdateMedicineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.medicineService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Medicine updated successfully", res))
}

func (c *medicineController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid medicine id")
	}

	if err := c.medicineService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Medicine deleted successfully", nil))
}
