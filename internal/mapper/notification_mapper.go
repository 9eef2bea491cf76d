package mapper

import (
	"healthlink-be/internal/entity"
	"healthlink-be/internal/model"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToModel(e *entity.Notification) *model.Notification {
	return &model.Notification{
		Id:        e.Id,
		UserId:    e.UserId,
		Type:      e.Type,
		Title:     e.Title,
		Message:   e.Message,
		IsRead:    e.IsRead,
		CreatedAt: e.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntity(mo *model.Notification) *entity.Notification {
	return &entity.Notification{
		Id:        mo.Id,
		UserId:    mo.UserId,
		Type:      mo.Type,
		Title:     mo.Title,
		Message:   mo.Message,
		IsRead:    mo.IsRead,
		CreatedAt: mo.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(models []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(models))
	for i, mo := range models {
		entities[i] = m.ToEntity(mo)
	}
	return entities
}
