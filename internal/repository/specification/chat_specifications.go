package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

// MemberOf scopes chats to those a user belongs to via the chat_members relation.
type MemberOf struct {
	UserID uuid.UUID
}

func (s MemberOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN chat_members ON chat_members.chat_id = chats.id").
		Where("chat_members.user_id = ?", s.UserID)
}

// LastMessageDesc orders chats newest-activity first; chats that have never
// seen a message sort last.
type LastMessageDesc struct{}

func (s LastMessageDesc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("last_message_at DESC NULLS LAST")
}
