package service

import (
	"context"
	"strings"
	"time"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)

	// AppendMessage returns (nil, nil) when the chat no longer exists.
	// Callers treat that as "chat vanished mid-flight", not as a failure.
	AppendMessage(ctx context.Context, chatId uuid.UUID, role string, message string) (*entity.ChatMessage, error)

	// GetHistory returns an empty slice for a missing chat. Access control
	// is the caller's job.
	GetHistory(ctx context.Context, chatId uuid.UUID) ([]*entity.ChatMessage, error)

	ListSummaries(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSummaryResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	DeleteChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error
	IsMember(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (bool, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatService(uowFactory unitofwork.RepositoryFactory) IChatService {
	return &chatService{
		uowFactory: uowFactory,
	}
}

func (s *chatService) CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperror.Validation("title must not be empty")
	}
	if strings.TrimSpace(req.SystemMessage) == "" {
		return nil, apperror.Validation("systemMessage must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	sysRole := entity.MessageRoleSystem

	chat := entity.Chat{
		Id:              uuid.New(),
		Title:           req.Title,
		LastMessageRole: &sysRole,
		LastMessageText: &req.SystemMessage,
		LastMessageAt:   &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uow.ChatRepository().Create(ctx, &chat); err != nil {
		return nil, err
	}

	msg := entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		Role:      sysRole,
		Message:   req.SystemMessage,
		CreatedAt: now,
	}
	if err := uow.ChatRepository().AppendMessage(ctx, &msg); err != nil {
		return nil, err
	}

	member := entity.ChatMember{
		Id:     uuid.New(),
		UserId: userId,
		ChatId: chat.Id,
	}
	if err := uow.ChatRepository().AddMember(ctx, &member); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Id:        chat.Id,
		Title:     chat.Title,
		Messages:  []*dto.ChatMessageResponse{messageToResponse(&msg)},
		CreatedAt: chat.CreatedAt,
	}, nil
}

func (s *chatService) AppendMessage(ctx context.Context, chatId uuid.UUID, role string, message string) (*entity.ChatMessage, error) {
	canonical := entity.NormalizeRole(role)
	if canonical == "" {
		return nil, apperror.Validation("role must be one of System, User, Assistant")
	}
	if strings.TrimSpace(message) == "" {
		return nil, apperror.Validation("message must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Lock the chat row so concurrent appends serialize and the preview
	// always reflects the message committed last.
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId}, specification.Locked{})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, nil
	}

	now := time.Now()
	msg := entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		Role:      canonical,
		Message:   message,
		CreatedAt: now,
	}
	if err := uow.ChatRepository().AppendMessage(ctx, &msg); err != nil {
		return nil, err
	}

	// Overwrite the denormalized preview with the exact same timestamp so
	// summary ordering and history ordering never disagree.
	chat.LastMessageRole = &msg.Role
	chat.LastMessageText = &msg.Message
	chat.LastMessageAt = &now
	chat.UpdatedAt = now
	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *chatService) GetHistory(ctx context.Context, chatId uuid.UUID) ([]*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatRepository().FindMessages(ctx, specification.ByChatID{ChatID: chatId})
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*entity.ChatMessage{}
	}
	return messages, nil
}

func (s *chatService) ListSummaries(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.MemberOf{UserID: userId},
		specification.LastMessageDesc{},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.ChatSummaryResponse, 0, len(chats))
	for _, chat := range chats {
		summary := &dto.ChatSummaryResponse{
			Id:        chat.Id,
			Title:     chat.Title,
			Timestamp: chat.LastMessageAt,
		}
		if chat.LastMessageRole != nil && chat.LastMessageText != nil && chat.LastMessageAt != nil {
			summary.LastMessage = &dto.ChatLastMessage{
				Role:      *chat.LastMessageRole,
				Message:   *chat.LastMessageText,
				Timestamp: *chat.LastMessageAt,
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *chatService) GetMessages(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	member, err := s.IsMember(ctx, userId, chatId)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperror.AccessDenied("you are not a member of this chat")
	}

	history, err := s.GetHistory(ctx, chatId)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ChatMessageResponse, 0, len(history))
	for _, msg := range history {
		responses = append(responses, messageToResponse(msg))
	}
	return responses, nil
}

func (s *chatService) DeleteChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	member, err := uow.ChatRepository().IsMember(ctx, userId, chatId)
	if err != nil {
		return err
	}
	if !member {
		return apperror.AccessDenied("you are not a member of this chat")
	}

	// The chat row may already be gone if another member deleted it first.
	// Membership cleanup still has to happen.
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return err
	}
	if chat != nil {
		if err := uow.ChatRepository().DeleteMessages(ctx, chatId); err != nil {
			return err
		}
		if err := uow.ChatRepository().Delete(ctx, chatId); err != nil {
			return err
		}
	}

	if err := uow.ChatRepository().RemoveMember(ctx, userId, chatId); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *chatService) IsMember(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatRepository().IsMember(ctx, userId, chatId)
}

func messageToResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      msg.Role,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}
}
