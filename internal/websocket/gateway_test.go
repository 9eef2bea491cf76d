package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/pkg/ai"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// memoryChatService is an in-memory stand-in for the chat service, enough
// for gateway routing tests.
type memoryChatService struct {
	mu       sync.Mutex
	members  map[string]bool
	messages map[uuid.UUID][]*entity.ChatMessage
	missing  map[uuid.UUID]bool
}

func newMemoryChatService() *memoryChatService {
	return &memoryChatService{
		members:  make(map[string]bool),
		messages: make(map[uuid.UUID][]*entity.ChatMessage),
		missing:  make(map[uuid.UUID]bool),
	}
}

func (s *memoryChatService) addMember(userID, chatID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[userID.String()+"|"+chatID.String()] = true
}

func (s *memoryChatService) CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	return nil, errors.New("not supported")
}

func (s *memoryChatService) AppendMessage(ctx context.Context, chatId uuid.UUID, role string, message string) (*entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missing[chatId] {
		return nil, nil
	}
	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chatId,
		Role:      entity.NormalizeRole(role),
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.messages[chatId] = append(s.messages[chatId], msg)
	return msg, nil
}

func (s *memoryChatService) GetHistory(ctx context.Context, chatId uuid.UUID) ([]*entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.messages[chatId]
	if history == nil {
		history = []*entity.ChatMessage{}
	}
	return history, nil
}

func (s *memoryChatService) ListSummaries(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSummaryResponse, error) {
	return nil, nil
}

func (s *memoryChatService) GetMessages(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	return nil, nil
}

func (s *memoryChatService) DeleteChat(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) error {
	return nil
}

func (s *memoryChatService) IsMember(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[userId.String()+"|"+chatId.String()], nil
}

type scriptedResponder struct {
	reply string
	err   error
}

func (r *scriptedResponder) Respond(ctx context.Context, history []ai.HistoryEntry) (string, error) {
	return r.reply, r.err
}

func newTestClient(hub *Hub) *Client {
	return &Client{
		Hub:    hub,
		UserID: uuid.New(),
		Send:   make(chan []byte, 16),
	}
}

func drainFrame(t *testing.T, client *Client) (string, json.RawMessage) {
	t.Helper()
	select {
	case raw := <-client.Send:
		var env struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &env))
		return env.Event, env.Data
	default:
		t.Fatal("expected a frame on the client send channel")
		return "", nil
	}
}

func newTestGateway(chatService *memoryChatService, responder ai.Responder) (*ChatGateway, *Hub) {
	hub := NewHub(nil, nopLogger{})
	return NewChatGateway(chatService, responder, hub, nopLogger{}), hub
}

func TestDispatchRejectsMalformedFrame(t *testing.T) {
	gateway, hub := newTestGateway(newMemoryChatService(), &scriptedResponder{})
	client := newTestClient(hub)

	gateway.Dispatch(client, []byte("not json"))

	event, data := drainFrame(t, client)
	assert.Equal(t, EventError, event)
	assert.Contains(t, string(data), "Invalid event payload")
}

func TestDispatchUnknownEvent(t *testing.T) {
	gateway, hub := newTestGateway(newMemoryChatService(), &scriptedResponder{})
	client := newTestClient(hub)

	gateway.Dispatch(client, []byte(`{"event":"typing","data":{}}`))

	event, data := drainFrame(t, client)
	assert.Equal(t, EventError, event)
	assert.Contains(t, string(data), "typing")
}

func TestJoinChatSendsHistoryThenEntersRoom(t *testing.T) {
	chatService := newMemoryChatService()
	gateway, hub := newTestGateway(chatService, &scriptedResponder{})
	client := newTestClient(hub)

	chatID := uuid.New()
	chatService.addMember(client.UserID, chatID)
	_, err := chatService.AppendMessage(context.Background(), chatID, "System", "sys prompt")
	require.NoError(t, err)

	gateway.Dispatch(client, []byte(`{"event":"joinChat","data":{"chatId":"`+chatID.String()+`"}}`))

	event, data := drainFrame(t, client)
	assert.Equal(t, EventChatHistory, event)

	var history dto.ChatHistoryEvent
	require.NoError(t, json.Unmarshal(data, &history))
	require.Len(t, history.MessageHistory, 1)
	assert.Equal(t, "sys prompt", history.MessageHistory[0].Message)

	assert.True(t, hub.InRoom(client, chatID))
}

func TestJoinChatRepeatDeliversHistoryOnce(t *testing.T) {
	chatService := newMemoryChatService()
	gateway, hub := newTestGateway(chatService, &scriptedResponder{})
	client := newTestClient(hub)

	chatID := uuid.New()
	chatService.addMember(client.UserID, chatID)

	join := []byte(`{"event":"joinChat","data":{"chatId":"` + chatID.String() + `"}}`)
	gateway.Dispatch(client, join)
	gateway.Dispatch(client, join)

	event, _ := drainFrame(t, client)
	assert.Equal(t, EventChatHistory, event)
	assert.True(t, hub.InRoom(client, chatID))

	select {
	case frame := <-client.Send:
		t.Fatalf("unexpected second frame: %s", frame)
	default:
	}
}

func TestJoinChatDeniedForNonMember(t *testing.T) {
	gateway, hub := newTestGateway(newMemoryChatService(), &scriptedResponder{})
	client := newTestClient(hub)
	chatID := uuid.New()

	gateway.Dispatch(client, []byte(`{"event":"joinChat","data":{"chatId":"`+chatID.String()+`"}}`))

	event, data := drainFrame(t, client)
	assert.Equal(t, EventError, event)
	assert.Contains(t, string(data), "not a member")
	assert.False(t, hub.InRoom(client, chatID))
}

func TestNewMessageBroadcastsAndTriggersAssistant(t *testing.T) {
	chatService := newMemoryChatService()
	gateway, hub := newTestGateway(chatService, &scriptedResponder{reply: "Drink water and rest."})
	sender := newTestClient(hub)
	peer := newTestClient(hub)

	chatID := uuid.New()
	chatService.addMember(sender.UserID, chatID)
	chatService.addMember(peer.UserID, chatID)
	hub.JoinRoom(sender, chatID)
	hub.JoinRoom(peer, chatID)

	gateway.Dispatch(sender, []byte(`{"event":"newMessage","data":{"chatId":"`+chatID.String()+`","role":"User","message":"I have a headache"}}`))

	// Both room members see the user message, then the assistant reply.
	for _, client := range []*Client{sender, peer} {
		event, data := drainFrame(t, client)
		assert.Equal(t, EventMessage, event)
		assert.Contains(t, string(data), "I have a headache")

		event, data = drainFrame(t, client)
		assert.Equal(t, EventMessage, event)
		assert.Contains(t, string(data), "Drink water and rest.")
	}

	// Both messages were persisted.
	history, err := chatService.GetHistory(context.Background(), chatID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.MessageRoleAssistant, history[1].Role)
}

func TestAssistantReplySkippedForNonUserRole(t *testing.T) {
	chatService := newMemoryChatService()
	gateway, hub := newTestGateway(chatService, &scriptedResponder{reply: "should not appear"})
	client := newTestClient(hub)

	chatID := uuid.New()
	chatService.addMember(client.UserID, chatID)
	hub.JoinRoom(client, chatID)

	gateway.Dispatch(client, []byte(`{"event":"newMessage","data":{"chatId":"`+chatID.String()+`","role":"Assistant","message":"canned reply"}}`))

	event, _ := drainFrame(t, client)
	assert.Equal(t, EventMessage, event)

	select {
	case raw := <-client.Send:
		t.Fatalf("unexpected extra frame: %s", raw)
	default:
	}

	history, err := chatService.GetHistory(context.Background(), chatID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestAssistantFailureFallsBackToSenderOnly(t *testing.T) {
	chatService := newMemoryChatService()
	gateway, hub := newTestGateway(chatService, &scriptedResponder{err: errors.New("model unavailable")})
	sender := newTestClient(hub)
	peer := newTestClient(hub)

	chatID := uuid.New()
	chatService.addMember(sender.UserID, chatID)
	chatService.addMember(peer.UserID, chatID)
	hub.JoinRoom(sender, chatID)
	hub.JoinRoom(peer, chatID)

	gateway.Dispatch(sender, []byte(`{"event":"newMessage","data":{"chatId":"`+chatID.String()+`","role":"User","message":"hello"}}`))

	// Sender: broadcast message plus the fallback.
	event, _ := drainFrame(t, sender)
	assert.Equal(t, EventMessage, event)
	event, data := drainFrame(t, sender)
	assert.Equal(t, EventMessage, event)
	assert.Contains(t, string(data), aiFallbackMessage)

	// Peer: broadcast only. The fallback is never fanned out.
	event, _ = drainFrame(t, peer)
	assert.Equal(t, EventMessage, event)
	select {
	case raw := <-peer.Send:
		t.Fatalf("fallback leaked to peer: %s", raw)
	default:
	}

	// The fallback is not persisted.
	history, err := chatService.GetHistory(context.Background(), chatID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestNewMessageDeniedAfterMembershipRevoked(t *testing.T) {
	chatService := newMemoryChatService()
	gateway, hub := newTestGateway(chatService, &scriptedResponder{})
	client := newTestClient(hub)

	chatID := uuid.New()
	hub.JoinRoom(client, chatID) // joined earlier, membership since revoked

	gateway.Dispatch(client, []byte(`{"event":"newMessage","data":{"chatId":"`+chatID.String()+`","role":"User","message":"hello"}}`))

	event, data := drainFrame(t, client)
	assert.Equal(t, EventError, event)
	assert.Contains(t, string(data), "not a member")
}

func TestNewMessageVanishedChatIsSilent(t *testing.T) {
	chatService := newMemoryChatService()
	gateway, hub := newTestGateway(chatService, &scriptedResponder{})
	client := newTestClient(hub)

	chatID := uuid.New()
	chatService.addMember(client.UserID, chatID)
	chatService.missing[chatID] = true
	hub.JoinRoom(client, chatID)

	gateway.Dispatch(client, []byte(`{"event":"newMessage","data":{"chatId":"`+chatID.String()+`","role":"User","message":"hello"}}`))

	select {
	case raw := <-client.Send:
		t.Fatalf("expected silence for vanished chat, got: %s", raw)
	default:
	}
}
