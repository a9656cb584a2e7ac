package metrics

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mautops/headcount-gin/internal/model"
)

// Collector 定时采集数据库与业务指标
type Collector struct {
	db       *gorm.DB
	interval time.Duration
	logger   *logrus.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCollector 创建指标采集器
func NewCollector(db *gorm.DB, interval time.Duration, logger *logrus.Logger) *Collector {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Collector{
		db:       db,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start 启动后台采集
func (c *Collector) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	go func() {
		defer close(c.done)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		// 启动时立即采集一次
		c.collect()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.collect()
			}
		}
	}()
}

// Stop 停止采集并等待退出
func (c *Collector) Stop() {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
}

func (c *Collector) collect() {
	if err := UpdateDatabaseConnections(c.db); err != nil {
		c.logger.WithError(err).Warn("采集数据库连接指标失败")
	}

	c.collectStatusDistribution()
	c.collectOldestPendingAge()
}

func (c *Collector) collectStatusDistribution() {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := c.db.Model(&model.ChangeRequestModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		c.logger.WithError(err).Warn("采集请求状态分布失败")
		return
	}

	// 未出现的状态归零,避免仪表盘残留旧值
	counts := map[string]float64{
		model.RequestStatusPending:  0,
		model.RequestStatusApproved: 0,
		model.RequestStatusRejected: 0,
	}
	for _, row := range rows {
		counts[row.Status] = float64(row.Count)
	}
	for status, count := range counts {
		UpdateRequestsByStatus(status, count)
	}
}

func (c *Collector) collectOldestPendingAge() {
	var oldest model.ChangeRequestModel
	err := c.db.Where("status = ?", model.RequestStatusPending).
		Order("created_at ASC").
		First(&oldest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			UpdateOldestPendingAge(0)
			return
		}
		c.logger.WithError(err).Warn("采集最老待审请求时长失败")
		return
	}

	UpdateOldestPendingAge(time.Since(oldest.CreatedAt).Seconds())
}
