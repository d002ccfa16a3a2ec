package service

import (
	"context"
	"time"

	"github.com/AllenLi0110/simple-waterball/internal/pkg/logger"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/metrics"
)

// CronService 定时任务服务：周期性取消过期订单
// 扫描在循环内同步执行，同一时刻最多只有一次扫描在运行
type CronService struct {
	orders   *OrderService
	interval time.Duration
}

func NewCronService(orders *OrderService, interval time.Duration) *CronService {
	return &CronService{
		orders:   orders,
		interval: interval,
	}
}

// Run 阻塞运行，直到 ctx 取消
func (s *CronService) Run(ctx context.Context) error {
	// 启动时先扫一次，避免等待一个完整周期
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-ctx.Done():
			logger.Info("定时任务已停止")
			return nil
		}
	}
}

func (s *CronService) sweep() {
	metrics.SweepRuns.Inc()

	cancelled, err := s.orders.CancelExpired()
	if err != nil {
		logger.Errorf("查询过期订单失败: %v", err)
		return
	}
	if cancelled > 0 {
		logger.Infof("已取消 %d 笔过期订单", cancelled)
	}
}
