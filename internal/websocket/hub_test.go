package websocket_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ws "github.com/mautops/headcount-gin/internal/websocket"
)

func registerClient(t *testing.T, hub *ws.Hub, id, userID, requestID string) *ws.Client {
	before := hub.GetClientCount()
	client := ws.NewClient(id, userID, requestID, hub, nil)
	hub.Register <- client

	// 等待 Hub goroutine 处理注册
	require.Eventually(t, func() bool {
		return hub.GetClientCount() == before+1
	}, time.Second, 10*time.Millisecond)
	return client
}

// TestHubSubscription 测试按请求 ID 订阅与推送
func TestHubSubscription(t *testing.T) {
	hub := ws.NewHub(nil)
	go hub.Run()

	subscriber := registerClient(t, hub, "client-001", "user-001", "req-001")
	other := registerClient(t, hub, "client-002", "user-002", "req-002")

	assert.Equal(t, 1, hub.SubscriberCount("req-001"))
	assert.Equal(t, 1, hub.SubscriberCount("req-002"))
	assert.Equal(t, 0, hub.SubscriberCount("req-missing"))

	hub.BroadcastRequestUpdate("req-001", map[string]interface{}{"status": "approved"})

	// 订阅者收到推送
	select {
	case message := <-subscriber.Send:
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(message, &payload))
		assert.Equal(t, "request.update", payload["type"])
		assert.Equal(t, "req-001", payload["request_id"])
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive update")
	}

	// 订阅其他请求的客户端不收到推送
	select {
	case <-other.Send:
		t.Fatal("unexpected message for other subscriber")
	default:
	}
}

// TestHubUnregister 测试客户端注销
func TestHubUnregister(t *testing.T) {
	hub := ws.NewHub(nil)
	go hub.Run()

	client := registerClient(t, hub, "client-001", "user-001", "req-001")
	hub.Unregister <- client

	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 0
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.SubscriberCount("req-001"))
}

// TestHubBroadcastToUser 测试按用户广播
func TestHubBroadcastToUser(t *testing.T) {
	hub := ws.NewHub(nil)
	go hub.Run()

	client := registerClient(t, hub, "client-001", "user-001", "req-001")
	hub.BroadcastToUser("user-001", []byte("hello"))

	select {
	case message := <-client.Send:
		assert.Equal(t, []byte("hello"), message)
	case <-time.After(time.Second):
		t.Fatal("client did not receive user broadcast")
	}
}
