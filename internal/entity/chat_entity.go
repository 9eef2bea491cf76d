package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MessageRoleSystem    = "System"
	MessageRoleUser      = "User"
	MessageRoleAssistant = "Assistant"
)

// NormalizeRole maps a role of any casing to its canonical form.
// Returns "" when the role is not one of the three known roles.
func NormalizeRole(role string) string {
	switch strings.ToLower(role) {
	case "system":
		return MessageRoleSystem
	case "user":
		return MessageRoleUser
	case "assistant":
		return MessageRoleAssistant
	default:
		return ""
	}
}

type ChatMessage struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	Role      string
	Message   string
	CreatedAt time.Time
}

// Chat carries a denormalized copy of its most recent message so summary
// listings never touch the message table.
type Chat struct {
	Id              uuid.UUID
	Title           string
	LastMessageRole *string
	LastMessageText *string
	LastMessageAt   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ChatSummary is the list-view projection of a chat.
type ChatSummary struct {
	Id          uuid.UUID
	Title       string
	LastMessage *ChatMessage
	Timestamp   *time.Time
}

type ChatMember struct {
	Id     uuid.UUID
	UserId uuid.UUID
	ChatId uuid.UUID
}
