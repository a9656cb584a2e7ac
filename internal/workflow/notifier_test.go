package workflow_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mautops/headcount-gin/internal/config"
	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/workflow"
)

// TestWebhookDispatcherDelivery 测试 Webhook 投递与发件箱状态流转
func TestWebhookDispatcherDelivery(t *testing.T) {
	db := setupTestDB(t)

	received := make(chan *workflow.Event, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		var evt workflow.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&evt))
		received <- &evt
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dispatcher := workflow.NewWebhookDispatcher(db, []config.WebhookConfig{
		{URL: server.URL, AuthToken: "secret-token"},
	}, 1, nil)
	defer dispatcher.Stop()

	dispatcher.Dispatch(&workflow.Event{
		Type:      "request.approved",
		RequestID: "req-001",
		Payload:   map[string]interface{}{"status": "approved"},
	})

	select {
	case evt := <-received:
		assert.Equal(t, "request.approved", evt.Type)
		assert.Equal(t, "req-001", evt.RequestID)
	case <-time.After(5 * time.Second):
		t.Fatal("webhook not delivered within timeout")
	}

	// 发件箱记录最终标记为成功
	assert.Eventually(t, func() bool {
		var notification model.NotificationModel
		if err := db.Where("request_id = ?", "req-001").First(&notification).Error; err != nil {
			return false
		}
		return notification.Status == model.NotificationStatusSuccess
	}, 5*time.Second, 50*time.Millisecond)
}

// TestWebhookDispatcherOutboxPersistence 测试事件先持久化到发件箱
func TestWebhookDispatcherOutboxPersistence(t *testing.T) {
	db := setupTestDB(t)

	// 未配置 Webhook: 事件入箱后直接标记成功
	dispatcher := workflow.NewWebhookDispatcher(db, nil, 1, nil)
	defer dispatcher.Stop()

	dispatcher.Dispatch(&workflow.Event{
		Type:      "request.submitted",
		RequestID: "req-002",
		Payload:   map[string]interface{}{"status": "pending"},
	})

	var notification model.NotificationModel
	require.NoError(t, db.Where("request_id = ?", "req-002").First(&notification).Error)
	assert.Equal(t, "request.submitted", notification.Type)
	assert.NotEmpty(t, notification.Payload)

	assert.Eventually(t, func() bool {
		var reloaded model.NotificationModel
		if err := db.Where("request_id = ?", "req-002").First(&reloaded).Error; err != nil {
			return false
		}
		return reloaded.Status == model.NotificationStatusSuccess
	}, 5*time.Second, 50*time.Millisecond)
}

// TestWebhookDispatcherStopInterruptsRetry 测试关停打断重试退避
// Stop 之后不得再发起重试请求,发件箱行保持待处理
func TestWebhookDispatcherStopInterruptsRetry(t *testing.T) {
	db := setupTestDB(t)

	attempts := make(chan struct{}, 8)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts <- struct{}{}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dispatcher := workflow.NewWebhookDispatcher(db, []config.WebhookConfig{
		{URL: server.URL},
	}, 1, nil)

	dispatcher.Dispatch(&workflow.Event{
		Type:      "request.approved",
		RequestID: "req-004",
		Payload:   map[string]interface{}{"status": "approved"},
	})

	// 等待第一次投递失败
	select {
	case <-attempts:
	case <-time.After(5 * time.Second):
		t.Fatal("first delivery attempt not observed")
	}

	// 首次重试的退避是 1 秒,在退避期间关停
	dispatcher.Stop()

	select {
	case <-attempts:
		t.Fatal("retry fired after dispatcher stop")
	case <-time.After(1500 * time.Millisecond):
	}

	// 发件箱行保持非终态成功,已记录失败次数
	var notification model.NotificationModel
	require.NoError(t, db.Where("request_id = ?", "req-004").First(&notification).Error)
	assert.NotEqual(t, model.NotificationStatusSuccess, notification.Status)
	assert.GreaterOrEqual(t, notification.RetryCount, 1)
}

// TestNopDispatcher 测试空分发器不产生任何副作用
func TestNopDispatcher(t *testing.T) {
	dispatcher := workflow.NopDispatcher{}
	dispatcher.Dispatch(&workflow.Event{Type: "request.submitted", RequestID: "req-003"})
	dispatcher.Stop()
}
