package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clusterFrame(t *testing.T, origin string, chatID uuid.UUID, message []byte) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"origin":         origin,
		"target_chat_id": chatID.String(),
		"message":        json.RawMessage(message),
	})
	require.NoError(t, err)
	return raw
}

func TestHandleClusterMessageSkipsOwnPublishes(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	client := newTestClient(hub)
	chatID := uuid.New()
	hub.JoinRoom(client, chatID)

	hub.handleClusterMessage(clusterFrame(t, hub.instanceID, chatID, []byte(`{"event":"message"}`)))

	select {
	case frame := <-client.Send:
		t.Fatalf("self-originated cluster message redelivered: %s", frame)
	default:
	}
}

func TestHandleClusterMessageDeliversForeignRoomFrames(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	member := newTestClient(hub)
	outsider := newTestClient(hub)
	chatID := uuid.New()
	hub.JoinRoom(member, chatID)

	frame := []byte(`{"event":"message","data":{"message":"hi"}}`)
	hub.handleClusterMessage(clusterFrame(t, uuid.NewString(), chatID, frame))

	select {
	case got := <-member.Send:
		assert.JSONEq(t, string(frame), string(got))
	default:
		t.Fatal("room member did not receive cluster frame")
	}

	select {
	case got := <-outsider.Send:
		t.Fatalf("non-member received cluster frame: %s", got)
	default:
	}
}

func TestHandleClusterMessageTargetsUser(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	client := newTestClient(hub)
	hub.mu.Lock()
	hub.clients[client.UserID] = []*Client{client}
	hub.mu.Unlock()

	frame := []byte(`{"event":"notification","data":{}}`)
	raw, err := json.Marshal(map[string]interface{}{
		"origin":         uuid.NewString(),
		"target_user_id": client.UserID.String(),
		"message":        json.RawMessage(frame),
	})
	require.NoError(t, err)

	hub.handleClusterMessage(raw)

	select {
	case got := <-client.Send:
		assert.JSONEq(t, string(frame), string(got))
	default:
		t.Fatal("targeted user did not receive cluster frame")
	}
}
