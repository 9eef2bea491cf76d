package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Room membership map: ChatID -> set of Clients currently joined
	rooms map[uuid.UUID]map[*Client]struct{}

	// Reverse index for O(1) cleanup on disconnect
	clientRooms map[*Client]map[uuid.UUID]struct{}

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Identifies this process on the cluster channel so it can ignore
	// its own publishes
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		clients:     make(map[uuid.UUID][]*Client),
		rooms:       make(map[uuid.UUID]map[*Client]struct{}),
		clientRooms: make(map[*Client]map[uuid.UUID]struct{}),
		rdb:         rdb,
		instanceID:  uuid.NewString(),
		logger:      log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeClientLocked(client)
			h.mu.Unlock()
		}
	}
}

// removeClientLocked drops the client from the user map and from every room
// it joined. Caller must hold h.mu.
func (h *Hub) removeClientLocked(client *Client) {
	if clients, ok := h.clients[client.UserID]; ok {
		for i, c := range clients {
			if c == client {
				h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
				close(client.Send)
				break
			}
		}
		if len(h.clients[client.UserID]) == 0 {
			delete(h.clients, client.UserID)
			h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
		}
	}

	for chatID := range h.clientRooms[client] {
		delete(h.rooms[chatID], client)
		if len(h.rooms[chatID]) == 0 {
			delete(h.rooms, chatID)
		}
	}
	delete(h.clientRooms, client)
}

// JoinRoom adds the client to the broadcast group of a chat. Joining a room
// the client is already in is a no-op.
func (h *Hub) JoinRoom(client *Client, chatID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[chatID] == nil {
		h.rooms[chatID] = make(map[*Client]struct{})
	}
	h.rooms[chatID][client] = struct{}{}

	if h.clientRooms[client] == nil {
		h.clientRooms[client] = make(map[uuid.UUID]struct{})
	}
	h.clientRooms[client][chatID] = struct{}{}
}

// LeaveRoom removes the client from a single room without disconnecting it.
func (h *Hub) LeaveRoom(client *Client, chatID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.rooms[chatID], client)
	if len(h.rooms[chatID]) == 0 {
		delete(h.rooms, chatID)
	}
	delete(h.clientRooms[client], chatID)
}

// InRoom reports whether the client has joined the room.
func (h *Hub) InRoom(client *Client, chatID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clientRooms[client][chatID]
	return ok
}

// BroadcastRoom fans a pre-serialized frame out to every connection in the
// room, locally and via Redis for peers on other instances.
func (h *Hub) BroadcastRoom(chatID uuid.UUID, data []byte) {
	h.mu.RLock()
	for client := range h.rooms[chatID] {
		select {
		case client.Send <- data:
		default:
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		payload := map[string]interface{}{
			"origin":         h.instanceID,
			"target_chat_id": chatID.String(),
			"message":        json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// Broadcast sends a notification to ALL connected clients.
func (h *Hub) Broadcast(notification entity.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"event": "notification",
		"data":  notification,
	})

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
	h.mu.RUnlock()

	// Publish to Redis for other instances
	if h.rdb != nil {
		payload := map[string]interface{}{
			"origin":         h.instanceID,
			"target_user_id": "*", // Wildcard for broadcast
			"message":        json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// Send (NotificationDelivery interface implementation)
func (h *Hub) Send(userID uuid.UUID, notification entity.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"event": "notification",
		"data":  notification,
	})

	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": userID})
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}

	// Always publish for multi-instance delivery
	if h.rdb != nil {
		payload := map[string]interface{}{
			"origin":         h.instanceID,
			"target_user_id": userID.String(),
			"message":        json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "cluster_events". Each payload targets either
	// a user id, a chat room, or "*" for a global broadcast; an instance
	// delivers only to the connections it holds locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		h.handleClusterMessage([]byte(msg.Payload))
	}
}

// handleClusterMessage delivers a cluster payload to the connections this
// instance holds. Payloads this instance published were already delivered
// locally before the publish, so they are skipped to avoid double delivery.
func (h *Hub) handleClusterMessage(raw []byte) {
	var payload struct {
		Origin       string          `json:"origin"`
		TargetUserID string          `json:"target_user_id"`
		TargetChatID string          `json:"target_chat_id"`
		Message      json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("Redis msg parse error: %v", err)
		return
	}

	if payload.Origin == h.instanceID {
		return
	}

	if payload.TargetChatID != "" {
		chatID, err := uuid.Parse(payload.TargetChatID)
		if err != nil {
			return
		}
		h.mu.RLock()
		for client := range h.rooms[chatID] {
			select {
			case client.Send <- payload.Message:
			default:
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
		h.mu.RUnlock()
		return
	}

	if payload.TargetUserID == "*" {
		h.mu.RLock()
		for _, clients := range h.clients {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					go func(c *Client) { h.unregister <- c }(client)
				}
			}
		}
		h.mu.RUnlock()
		return
	}

	uid, err := uuid.Parse(payload.TargetUserID)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients, ok := h.clients[uid]
	h.mu.RUnlock()

	if ok {
		for _, client := range clients {
			select {
			case client.Send <- payload.Message:
			default:
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
}
