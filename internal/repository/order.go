package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/AllenLi0110/simple-waterball/internal/model"
)

// OrderRepository 订单存储，基于 GORM
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Insert 插入新订单
// 订单号唯一索引冲突时返回 model.ErrConflict，由 service 层决定是否重新生成
func (r *OrderRepository) Insert(order *model.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: order number %s", model.ErrConflict, order.OrderNumber)
		}
		return err
	}
	return nil
}

func (r *OrderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("User").Preload("Course").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByOrderNumber(number string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("User").Preload("Course").
		Where("order_number = ?", number).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByUser(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("User").Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindByCourse(courseID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("User").Preload("Course").
		Where("course_id = ?", courseID).
		Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindByUserAndCourse(userID, courseID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("User").Preload("Course").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at desc").Find(&orders).Error
	return orders, err
}

// FindExpiredPending 查找所有已过付款期限且仍为 PENDING 的订单
func (r *OrderRepository) FindExpiredPending(now time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("status = ? AND payment_deadline < ?", model.OrderStatusPending, now).
		Order("created_at desc").Find(&orders).Error
	return orders, err
}

// MarkPaid 将 PENDING 订单标记为已付款
// 条件更新保证状态检查与写入原子：并发的取消/付款之中只有一方能成功，
// 返回 false 表示订单已不在 PENDING 状态
func (r *OrderRepository) MarkPaid(order *model.Order, paidAt time.Time) (bool, error) {
	res := r.db.Model(&model.Order{}).
		Where("id = ? AND status = ?", order.ID, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":       model.OrderStatusPaid,
			"payment_date": paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	order.Status = model.OrderStatusPaid
	order.PaymentDate = &paidAt
	return true, nil
}

// MarkCancelled 将 PENDING 订单标记为已取消，与 MarkPaid 相同的条件更新保护
func (r *OrderRepository) MarkCancelled(order *model.Order, remarks string) (bool, error) {
	res := r.db.Model(&model.Order{}).
		Where("id = ? AND status = ?", order.ID, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":  model.OrderStatusCancelled,
			"remarks": remarks,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	order.Status = model.OrderStatusCancelled
	order.Remarks = remarks
	return true, nil
}
