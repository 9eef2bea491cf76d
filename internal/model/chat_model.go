package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title           string     `gorm:"type:text;not null"`
	LastMessageRole *string    `gorm:"type:varchar(20)"`
	LastMessageText *string    `gorm:"type:text"`
	LastMessageAt   *time.Time `gorm:"index"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

type ChatMember struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_member"`
	ChatId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_member"`
}

func (ChatMember) TableName() string {
	return "chat_members"
}
