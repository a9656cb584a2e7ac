package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/headcount-gin/internal/config"
	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Event 通知事件
type Event struct {
	Type      string      `json:"type"`
	RequestID string      `json:"request_id"`
	Payload   interface{} `json:"payload"`
}

// Dispatcher 通知分发接口
// Dispatch 始终尽力而为: 任何失败只记录日志,绝不阻塞或影响调用方的状态转换
type Dispatcher interface {
	Dispatch(evt *Event)
	Stop()
}

// queuedEvent 入队的通知事件及其发件箱记录 ID
type queuedEvent struct {
	evt            *Event
	notificationID string
}

// webhookDispatcher 基于发件箱 + worker 池的 Webhook 通知分发器
type webhookDispatcher struct {
	db               *gorm.DB
	notificationRepo repository.NotificationRepository
	httpClient       *http.Client
	webhooks         []config.WebhookConfig
	queue            chan *queuedEvent
	stop             chan struct{}
	logger           *logrus.Logger
}

// NewWebhookDispatcher 创建通知分发器
func NewWebhookDispatcher(db *gorm.DB, webhooks []config.WebhookConfig, workers int, logger *logrus.Logger) Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = logrus.New()
	}

	d := &webhookDispatcher{
		db:               db,
		notificationRepo: repository.NewNotificationRepository(db),
		httpClient:       &http.Client{Timeout: 10 * time.Second},
		webhooks:         webhooks,
		queue:            make(chan *queuedEvent, 1000),
		stop:             make(chan struct{}),
		logger:           logger,
	}

	// 启动 worker goroutines
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

// Dispatch 分发通知事件
// 先持久化到发件箱,再异步投递;持久化失败也只记录日志
func (d *webhookDispatcher) Dispatch(evt *Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		d.logger.WithError(err).WithField("type", evt.Type).Warn("failed to marshal notification")
		return
	}

	notification := &model.NotificationModel{
		ID:         uuid.New().String(),
		RequestID:  evt.RequestID,
		Type:       evt.Type,
		Payload:    data,
		Status:     model.NotificationStatusPending,
		RetryCount: 0,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := d.notificationRepo.Save(notification); err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"type":       evt.Type,
			"request_id": evt.RequestID,
		}).Warn("failed to save notification outbox row")
		return
	}

	select {
	case d.queue <- &queuedEvent{evt: evt, notificationID: notification.ID}:
		// 事件成功入队
	default:
		// 队列满时不阻塞,留在发件箱等待人工处理
		d.logger.WithFields(logrus.Fields{
			"type":       evt.Type,
			"request_id": evt.RequestID,
		}).Warn("notification queue full, dropping event")
	}
}

// worker 通知投递 worker
func (d *webhookDispatcher) worker() {
	for {
		select {
		case qe := <-d.queue:
			d.deliver(qe)
		case <-d.stop:
			return
		}
	}
}

// deliver 投递到所有配置的 Webhook,指数退避重试
func (d *webhookDispatcher) deliver(qe *queuedEvent) {
	var notification model.NotificationModel
	if err := d.db.Where("id = ?", qe.notificationID).First(&notification).Error; err != nil {
		d.logger.WithError(err).Warn("failed to load notification outbox row")
		return
	}

	// 没有配置 Webhook 时无需投递,直接标记成功
	if len(d.webhooks) == 0 {
		notification.Status = model.NotificationStatusSuccess
		notification.UpdatedAt = time.Now()
		_ = d.notificationRepo.Save(&notification)
		return
	}

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		success := true
		for _, webhook := range d.webhooks {
			if err := d.sendWebhookRequest(&webhook, qe.evt); err != nil {
				success = false
				d.logger.WithError(err).WithFields(logrus.Fields{
					"url":        webhook.URL,
					"request_id": qe.evt.RequestID,
				}).Warn("failed to send notification webhook")
			}
		}

		if success {
			notification.Status = model.NotificationStatusSuccess
			notification.UpdatedAt = time.Now()
			_ = d.notificationRepo.Save(&notification)
			return
		}

		notification.RetryCount++
		notification.UpdatedAt = time.Now()
		_ = d.notificationRepo.Save(&notification)

		if i < maxRetries-1 {
			// 退避等待可被 Stop 打断,关停时放弃重试,发件箱行保持 pending
			select {
			case <-d.stop:
				return
			case <-time.After(backoff):
			}
			backoff *= 2 // 指数退避
		}
	}

	notification.Status = model.NotificationStatusFailed
	notification.UpdatedAt = time.Now()
	_ = d.notificationRepo.Save(&notification)
}

// sendWebhookRequest 发送 Webhook 请求
func (d *webhookDispatcher) sendWebhookRequest(webhook *config.WebhookConfig, evt *Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	method := webhook.Method
	if method == "" {
		method = "POST"
	}

	req, err := http.NewRequest(method, webhook.URL, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range webhook.Headers {
		req.Header.Set(key, value)
	}
	if webhook.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+webhook.AuthToken)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status code: %d", resp.StatusCode)
	}

	return nil
}

// Stop 停止通知分发器
func (d *webhookDispatcher) Stop() {
	close(d.stop)
}

// NopDispatcher 空分发器(测试或未配置通知时使用)
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(evt *Event) {}
func (NopDispatcher) Stop()               {}
