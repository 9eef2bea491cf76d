// FILE: internal/controller/chat_controller.go
package controller

import (
	"healthlink-be/internal/dto"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/pkg/serverutils"
	"healthlink-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ListSummaries(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chats")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("/chatSummaries", c.ListSummaries)
	h.Get(":chatId/messages", c.GetMessages)
	h.Delete(":chatId", c.Delete)
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateChat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chat created successfully", res))
}

func (c *chatController) ListSummaries(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.chatService.ListSummaries(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list chats", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	chatId, err := uuid.Parse(ctx.Params("chatId"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	res, err := c.chatService.GetMessages(ctx.Context(), userId, chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	chatId, err := uuid.Parse(ctx.Params("chatId"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	if err := c.chatService.DeleteChat(ctx.Context(), userId, chatId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat deleted successfully", nil))
}
