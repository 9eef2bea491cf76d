package contract

import (
	"context"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	Update(ctx context.Context, chat *entity.Chat) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)

	AppendMessage(ctx context.Context, message *entity.ChatMessage) error
	FindMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	DeleteMessages(ctx context.Context, chatID uuid.UUID) error

	AddMember(ctx context.Context, member *entity.ChatMember) error
	RemoveMember(ctx context.Context, userID, chatID uuid.UUID) error
	IsMember(ctx context.Context, userID, chatID uuid.UUID) (bool, error)
}
