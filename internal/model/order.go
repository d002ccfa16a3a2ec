package model

import (
	"time"
)

// 订单状态
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
)

// OrderCancelledRemarks 订单过期自动取消时写入的备注
const OrderCancelledRemarks = "期限內未完成付款"

type Order struct {
	ID              uint       `json:"id" gorm:"primarykey"`
	OrderNumber     string     `json:"order_number" gorm:"size:18;uniqueIndex"`
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	User            User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CourseID        uint       `json:"course_id" gorm:"index;not null"`
	Course          Course     `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Status          string     `json:"status" gorm:"size:20;index"` // PENDING, PAID, CANCELLED
	PaymentDeadline time.Time  `json:"payment_deadline"`
	PaymentDate     *time.Time `json:"payment_date"` // 使用指针类型，可以为 NULL
	Remarks         string     `json:"remarks" gorm:"size:500"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsTerminal 订单是否已处于终态
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusPaid || o.Status == OrderStatusCancelled
}

// ExpiredAt 订单在指定时间点是否已超过付款期限
// 边界：恰好等于期限时仍可付款，严格晚于才算过期
func (o *Order) ExpiredAt(now time.Time) bool {
	return now.After(o.PaymentDeadline)
}
