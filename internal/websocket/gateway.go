package websocket

import (
	"context"
	"encoding/json"
	"strings"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/pkg/logger"
	"healthlink-be/internal/service"
	"healthlink-be/pkg/ai"

	"github.com/google/uuid"
)

// aiFallbackMessage is shown to the sender when the model call fails.
// It is never written to chat history.
const aiFallbackMessage = "Sorry, I could not get a response from the AI."

const (
	EventJoinChat    = "joinChat"
	EventNewMessage  = "newMessage"
	EventChatHistory = "chatHistory"
	EventMessage     = "message"
	EventError       = "error"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Frame serializes an outbound event envelope.
func Frame(event string, data interface{}) []byte {
	frame, _ := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	return frame
}

// ChatGateway translates realtime events into chat service calls and fans
// results back out through the hub.
type ChatGateway struct {
	chatService service.IChatService
	responder   ai.Responder
	hub         *Hub
	logger      logger.ILogger
}

func NewChatGateway(chatService service.IChatService, responder ai.Responder, hub *Hub, log logger.ILogger) *ChatGateway {
	return &ChatGateway{
		chatService: chatService,
		responder:   responder,
		hub:         hub,
		logger:      log,
	}
}

// Dispatch routes one inbound frame. Events from a single connection are
// handled sequentially in arrival order because readPump calls this inline.
func (g *ChatGateway) Dispatch(client *Client, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		g.unicastError(client, "Invalid event payload")
		return
	}

	ctx := context.Background()

	switch env.Event {
	case EventJoinChat:
		g.handleJoinChat(ctx, client, env.Data)
	case EventNewMessage:
		g.handleNewMessage(ctx, client, env.Data)
	default:
		g.unicastError(client, "Unknown event: "+env.Event)
	}
}

func (g *ChatGateway) handleJoinChat(ctx context.Context, client *Client, data json.RawMessage) {
	var payload dto.JoinChatEvent
	if err := json.Unmarshal(data, &payload); err != nil || payload.ChatId == "" {
		g.unicastError(client, "Chat ID is required to join")
		return
	}

	chatID, err := uuid.Parse(payload.ChatId)
	if err != nil {
		g.unicastError(client, "Chat ID is required to join")
		return
	}

	member, err := g.chatService.IsMember(ctx, client.UserID, chatID)
	if err != nil {
		g.logger.Error("ChatGateway", "Membership lookup failed", map[string]interface{}{"chat_id": chatID, "error": err.Error()})
		g.unicastError(client, "Failed to join chat")
		return
	}
	if !member {
		g.unicastError(client, "Access denied: you are not a member of this chat")
		return
	}

	// Repeat joins are a no-op so a client retrying the event does not
	// receive its history twice.
	if g.hub.InRoom(client, chatID) {
		return
	}

	history, err := g.chatService.GetHistory(ctx, chatID)
	if err != nil {
		g.logger.Error("ChatGateway", "History load failed", map[string]interface{}{"chat_id": chatID, "error": err.Error()})
		g.unicastError(client, "Failed to join chat")
		return
	}

	// History goes to the joining connection only, then the connection
	// enters the broadcast group.
	g.unicast(client, Frame(EventChatHistory, dto.ChatHistoryEvent{MessageHistory: messagesToResponses(history)}))
	g.hub.JoinRoom(client, chatID)
}

func (g *ChatGateway) handleNewMessage(ctx context.Context, client *Client, data json.RawMessage) {
	var payload dto.NewMessageEvent
	if err := json.Unmarshal(data, &payload); err != nil ||
		payload.ChatId == "" || payload.Role == "" || payload.Message == "" {
		g.unicastError(client, "Invalid message data")
		return
	}

	chatID, err := uuid.Parse(payload.ChatId)
	if err != nil {
		g.unicastError(client, "Invalid message data")
		return
	}

	// Membership is re-checked per event. It may have been revoked since
	// the join.
	member, err := g.chatService.IsMember(ctx, client.UserID, chatID)
	if err != nil {
		g.logger.Error("ChatGateway", "Membership lookup failed", map[string]interface{}{"chat_id": chatID, "error": err.Error()})
		g.unicastError(client, "Failed to process new message")
		return
	}
	if !member {
		g.unicastError(client, "Access denied: you are not a member of this chat")
		return
	}

	msg, err := g.chatService.AppendMessage(ctx, chatID, payload.Role, payload.Message)
	if err != nil {
		if apperror.IsKind(err, apperror.KindValidation) {
			g.unicastError(client, err.Error())
			return
		}
		g.logger.Error("ChatGateway", "Message persist failed", map[string]interface{}{"chat_id": chatID, "error": err.Error()})
		g.unicastError(client, "Failed to process new message")
		return
	}
	if msg == nil {
		// Chat vanished between the membership check and the write.
		return
	}

	g.hub.BroadcastRoom(chatID, Frame(EventMessage, messageToResponse(msg)))

	if strings.ToLower(payload.Role) == "user" {
		g.respondAsAssistant(ctx, client, chatID)
	}
}

// respondAsAssistant fetches the full history, asks the model for a reply
// and broadcasts it. Every failure collapses into a non-persisted fallback
// message sent to the requester only.
func (g *ChatGateway) respondAsAssistant(ctx context.Context, client *Client, chatID uuid.UUID) {
	history, err := g.chatService.GetHistory(ctx, chatID)
	if err != nil {
		g.logger.Error("ChatGateway", "History load for AI reply failed", map[string]interface{}{"chat_id": chatID, "error": err.Error()})
		g.unicastFallback(client, chatID)
		return
	}

	entries := make([]ai.HistoryEntry, len(history))
	for i, msg := range history {
		entries[i] = ai.HistoryEntry{Role: msg.Role, Message: msg.Message}
	}

	reply, err := g.responder.Respond(ctx, entries)
	if err != nil {
		g.logger.Warn("ChatGateway", "AI responder failed", map[string]interface{}{"chat_id": chatID, "error": err.Error()})
		g.unicastFallback(client, chatID)
		return
	}

	aiMsg, err := g.chatService.AppendMessage(ctx, chatID, entity.MessageRoleAssistant, reply)
	if err != nil {
		g.logger.Error("ChatGateway", "AI reply persist failed", map[string]interface{}{"chat_id": chatID, "error": err.Error()})
		g.unicastFallback(client, chatID)
		return
	}
	if aiMsg == nil {
		return
	}

	g.hub.BroadcastRoom(chatID, Frame(EventMessage, messageToResponse(aiMsg)))
}

func (g *ChatGateway) unicastFallback(client *Client, chatID uuid.UUID) {
	g.unicast(client, Frame(EventMessage, &dto.ChatMessageResponse{
		ChatId:  chatID,
		Role:    entity.MessageRoleAssistant,
		Message: aiFallbackMessage,
	}))
}

func (g *ChatGateway) unicastError(client *Client, message string) {
	g.unicast(client, Frame(EventError, dto.SocketErrorEvent{Message: message}))
}

func (g *ChatGateway) unicast(client *Client, frame []byte) {
	select {
	case client.Send <- frame:
	default:
		g.logger.Warn("ChatGateway", "Client Send buffer full, dropping frame", map[string]interface{}{"user_id": client.UserID})
	}
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

func messagesToResponses(messages []*entity.ChatMessage) []*dto.ChatMessageResponse {
	responses := make([]*dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = messageToResponse(msg)
	}
	return responses
}
