package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/AllenLi0110/simple-waterball/internal/model"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/logger"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/metrics"
)

// OrderStore 订单持久化接口
type OrderStore interface {
	Insert(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByOrderNumber(number string) (*model.Order, error)
	FindByUser(userID uint) ([]model.Order, error)
	FindByCourse(courseID uint) ([]model.Order, error)
	FindByUserAndCourse(userID, courseID uint) ([]model.Order, error)
	FindExpiredPending(now time.Time) ([]model.Order, error)
	// MarkPaid / MarkCancelled 必须原子地检查 status == PENDING 并写入，
	// 返回 false 表示订单已被并发操作转入终态
	MarkPaid(order *model.Order, paidAt time.Time) (bool, error)
	MarkCancelled(order *model.Order, remarks string) (bool, error)
}

// UserDirectory 用户目录，建单时做存在性检查
type UserDirectory interface {
	FindByID(id uint) (*model.User, error)
}

// Catalog 课程目录，建单时做存在性检查
type Catalog interface {
	FindByID(id uint) (*model.Course, error)
}

// 订单号随机后缀字母表
const orderNumberCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

type OrderService struct {
	orders  OrderStore
	users   UserDirectory
	courses Catalog

	now          func() time.Time
	deadlineDays int
	maxAttempts  int

	mu   sync.Mutex
	rand *rand.Rand
}

type OrderOption func(*OrderService)

// WithClock 注入时钟，便于测试
func WithClock(now func() time.Time) OrderOption {
	return func(s *OrderService) { s.now = now }
}

// WithRand 注入随机源，便于测试
func WithRand(r *rand.Rand) OrderOption {
	return func(s *OrderService) { s.rand = r }
}

// WithDeadlineDays 付款期限（天）
func WithDeadlineDays(days int) OrderOption {
	return func(s *OrderService) { s.deadlineDays = days }
}

// WithMaxAttempts 订单号冲突时的最大尝试次数
func WithMaxAttempts(n int) OrderOption {
	return func(s *OrderService) { s.maxAttempts = n }
}

func NewOrderService(orders OrderStore, users UserDirectory, courses Catalog, opts ...OrderOption) *OrderService {
	s := &OrderService{
		orders:       orders,
		users:        users,
		courses:      courses,
		now:          time.Now,
		deadlineDays: 3,
		maxAttempts:  3,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// generateOrderNumber 生成18位订单号：14位时间戳 + 4位随机后缀
func (s *OrderService) generateOrderNumber(now time.Time) string {
	suffix := make([]byte, 4)
	s.mu.Lock()
	for i := range suffix {
		suffix[i] = orderNumberCharset[s.rand.Intn(len(orderNumberCharset))]
	}
	s.mu.Unlock()
	return now.Format("20060102150405") + string(suffix)
}

// Create 创建订单
// 用户和课程必须存在；订单号冲突时重新生成并重试，超过次数返回 Conflict
func (s *OrderService) Create(userID, courseID uint) (*model.Order, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found with id %d", model.ErrNotFound, userID)
		}
		return nil, err
	}
	if _, err := s.courses.FindByID(courseID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: course not found with id %d", model.ErrNotFound, courseID)
		}
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		now := s.now()
		order := &model.Order{
			OrderNumber:     s.generateOrderNumber(now),
			UserID:          userID,
			CourseID:        courseID,
			Status:          model.OrderStatusPending,
			PaymentDeadline: now.AddDate(0, 0, s.deadlineDays),
		}

		err := s.orders.Insert(order)
		if err == nil {
			metrics.OrdersCreated.Inc()
			return order, nil
		}
		if !errors.Is(err, model.ErrConflict) {
			return nil, err
		}

		// 同一秒内后缀撞号，重新生成再试
		logger.Warnf("订单号冲突，重新生成: %s", order.OrderNumber)
		lastErr = err
	}

	return nil, lastErr
}

// CompletePayment 完成付款
// 订单必须存在、处于 PENDING 且未过付款期限；已过期的订单只报错，不在此处取消
func (s *OrderService) CompletePayment(orderNumber string) (*model.Order, error) {
	order, err := s.orders.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: order not found with order number %s", model.ErrNotFound, orderNumber)
		}
		return nil, err
	}

	if order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("%w: order is not in PENDING status", model.ErrInvalidState)
	}

	now := s.now()
	if order.ExpiredAt(now) {
		return nil, fmt.Errorf("%w: payment deadline has passed", model.ErrInvalidState)
	}

	ok, err := s.orders.MarkPaid(order, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 并发的取消或付款抢先了，重新读取并报告当前状态
		if current, ferr := s.orders.FindByID(order.ID); ferr == nil {
			return current, fmt.Errorf("%w: order is not in PENDING status", model.ErrInvalidState)
		}
		return nil, fmt.Errorf("%w: order is not in PENDING status", model.ErrInvalidState)
	}

	metrics.OrdersPaid.Inc()
	return order, nil
}

// CancelIfExpired 过期检查：PENDING 且严格晚于付款期限时取消并写入备注
// 幂等，已付款或已取消的订单不做任何写入；返回值表示本次是否发生了写入
func (s *OrderService) CancelIfExpired(order *model.Order) (bool, error) {
	if order.Status != model.OrderStatusPending || !order.ExpiredAt(s.now()) {
		return false, nil
	}

	ok, err := s.orders.MarkCancelled(order, model.OrderCancelledRemarks)
	if err != nil {
		return false, err
	}
	if !ok {
		// 竞争失败，读取胜者写入的终态
		current, ferr := s.orders.FindByID(order.ID)
		if ferr != nil {
			return false, ferr
		}
		*order = *current
		return false, nil
	}

	metrics.OrdersCancelled.Inc()
	return true, nil
}

// GetByID 按ID查询订单，读取时触发过期检查
func (s *OrderService) GetByID(id uint) (*model.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: order not found with id %d", model.ErrNotFound, id)
		}
		return nil, err
	}
	if _, err := s.CancelIfExpired(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByOrderNumber 按订单号查询订单，读取时触发过期检查
func (s *OrderService) GetByOrderNumber(number string) (*model.Order, error) {
	order, err := s.orders.FindByOrderNumber(number)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: order not found with order number %s", model.ErrNotFound, number)
		}
		return nil, err
	}
	if _, err := s.CancelIfExpired(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser 查询用户的全部订单，按创建时间倒序
func (s *OrderService) ListByUser(userID uint) ([]model.Order, error) {
	orders, err := s.orders.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.touchAll(orders)
}

// ListByCourse 查询课程的全部订单，按创建时间倒序
func (s *OrderService) ListByCourse(courseID uint) ([]model.Order, error) {
	orders, err := s.orders.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	return s.touchAll(orders)
}

// ListByUserAndCourse 查询用户在某课程下的全部订单，按创建时间倒序
func (s *OrderService) ListByUserAndCourse(userID, courseID uint) ([]model.Order, error) {
	orders, err := s.orders.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	return s.touchAll(orders)
}

func (s *OrderService) touchAll(orders []model.Order) ([]model.Order, error) {
	for i := range orders {
		if _, err := s.CancelIfExpired(&orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// CancelExpired 批量取消所有过期的 PENDING 订单，返回取消数量
// 单个订单失败只记录日志，不中断整批
func (s *OrderService) CancelExpired() (int, error) {
	expired, err := s.orders.FindExpiredPending(s.now())
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for i := range expired {
		order := &expired[i]
		ok, err := s.orders.MarkCancelled(order, model.OrderCancelledRemarks)
		if err != nil {
			logger.Errorf("取消过期订单 %s 失败: %v", order.OrderNumber, err)
			continue
		}
		if ok {
			metrics.OrdersCancelled.Inc()
			cancelled++
		}
	}

	return cancelled, nil
}
