package mapper

import (
	"healthlink-be/internal/entity"
	"healthlink-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatToModel(e *entity.Chat) *model.Chat {
	return &model.Chat{
		Id:              e.Id,
		Title:           e.Title,
		LastMessageRole: e.LastMessageRole,
		LastMessageText: e.LastMessageText,
		LastMessageAt:   e.LastMessageAt,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (m *ChatMapper) ChatToEntity(mo *model.Chat) *entity.Chat {
	return &entity.Chat{
		Id:              mo.Id,
		Title:           mo.Title,
		LastMessageRole: mo.LastMessageRole,
		LastMessageText: mo.LastMessageText,
		LastMessageAt:   mo.LastMessageAt,
		CreatedAt:       mo.CreatedAt,
		UpdatedAt:       mo.UpdatedAt,
	}
}

func (m *ChatMapper) MessageToModel(e *entity.ChatMessage) *model.ChatMessage {
	return &model.ChatMessage{
		Id:        e.Id,
		ChatId:    e.ChatId,
		Role:      e.Role,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(mo *model.ChatMessage) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:        mo.Id,
		ChatId:    mo.ChatId,
		Role:      mo.Role,
		Message:   mo.Message,
		CreatedAt: mo.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, mo := range models {
		entities[i] = m.MessageToEntity(mo)
	}
	return entities
}

func (m *ChatMapper) MemberToModel(e *entity.ChatMember) *model.ChatMember {
	return &model.ChatMember{Id: e.Id, UserId: e.UserId, ChatId: e.ChatId}
}

func (m *ChatMapper) MemberToEntity(mo *model.ChatMember) *entity.ChatMember {
	return &entity.ChatMember{Id: mo.Id, UserId: mo.UserId, ChatId: mo.ChatId}
}
