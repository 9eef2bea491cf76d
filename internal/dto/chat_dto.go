package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Title         string `json:"title" validate:"required"`
	SystemMessage string `json:"systemMessage" validate:"required"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	ChatId    uuid.UUID `json:"chatId"`
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatResponse struct {
	Id        uuid.UUID              `json:"id"`
	Title     string                 `json:"title"`
	Messages  []*ChatMessageResponse `json:"messages"`
	CreatedAt time.Time              `json:"createdAt"`
}

// ChatLastMessage is the denormalized preview carried on summaries. It is
// rebuilt from the chat row, not loaded from the message table.
type ChatLastMessage struct {
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatSummaryResponse struct {
	Id          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	LastMessage *ChatLastMessage `json:"lastMessage"`
	Timestamp   *time.Time       `json:"timestamp"`
}

// Realtime event payloads. Field names are part of the wire contract with
// the frontend, hence camelCase.

type JoinChatEvent struct {
	ChatId string `json:"chatId"`
}

type NewMessageEvent struct {
	ChatId  string `json:"chatId"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

type ChatHistoryEvent struct {
	MessageHistory []*ChatMessageResponse `json:"messageHistory"`
}

type SocketErrorEvent struct {
	Message string `json:"message"`
}
