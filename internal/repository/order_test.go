package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AllenLi0110/simple-waterball/internal/model"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUserAndCourse(t *testing.T, db *gorm.DB) (*model.User, *model.Course) {
	t.Helper()

	user := &model.User{Name: "水球", Username: "waterball", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	course := &model.Course{Title: "軟體設計模式精通之旅"}
	require.NoError(t, db.Create(course).Error)

	return user, course
}

func pendingOrder(user *model.User, course *model.Course, number string, deadline time.Time) *model.Order {
	return &model.Order{
		OrderNumber:     number,
		UserID:          user.ID,
		CourseID:        course.ID,
		Status:          model.OrderStatusPending,
		PaymentDeadline: deadline,
	}
}

func TestOrderInsertAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	user, course := seedUserAndCourse(t, db)

	deadline := time.Now().AddDate(0, 0, 3).Truncate(time.Second)
	order := pendingOrder(user, course, "20240520131415abcd", deadline)
	require.NoError(t, repo.Insert(order))
	require.NotZero(t, order.ID)

	found, err := repo.FindByOrderNumber("20240520131415abcd")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, model.OrderStatusPending, found.Status)
	assert.Nil(t, found.PaymentDate)

	// 关联预加载
	assert.Equal(t, "水球", found.User.Name)
	assert.Equal(t, "軟體設計模式精通之旅", found.Course.Title)

	byID, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, byID.OrderNumber)
}

func TestOrderInsertDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	user, course := seedUserAndCourse(t, db)

	deadline := time.Now().AddDate(0, 0, 3)
	require.NoError(t, repo.Insert(pendingOrder(user, course, "20240520131415abcd", deadline)))

	err := repo.Insert(pendingOrder(user, course, "20240520131415abcd", deadline))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestOrderFindNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	_, err := repo.FindByID(42)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.FindByOrderNumber("20240520131415zzzz")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMarkPaidGuardsStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	user, course := seedUserAndCourse(t, db)

	order := pendingOrder(user, course, "20240520131415aaaa", time.Now().AddDate(0, 0, 3))
	require.NoError(t, repo.Insert(order))

	paidAt := time.Now().Truncate(time.Second)
	ok, err := repo.MarkPaid(order, paidAt)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	require.NotNil(t, order.PaymentDate)

	// 已付款的订单不能再被取消或重复付款
	ok, err = repo.MarkCancelled(order, model.OrderCancelledRemarks)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.MarkPaid(order, paidAt)
	require.NoError(t, err)
	assert.False(t, ok)

	current, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, current.Status)
	assert.Empty(t, current.Remarks)
	require.NotNil(t, current.PaymentDate)
}

func TestMarkCancelledGuardsStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	user, course := seedUserAndCourse(t, db)

	order := pendingOrder(user, course, "20240520131415bbbb", time.Now().AddDate(0, 0, 3))
	require.NoError(t, repo.Insert(order))

	ok, err := repo.MarkCancelled(order, model.OrderCancelledRemarks)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusCancelled, order.Status)
	assert.Equal(t, model.OrderCancelledRemarks, order.Remarks)

	// 已取消的订单不能再付款
	ok, err = repo.MarkPaid(order, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	current, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, current.Status)
	assert.Nil(t, current.PaymentDate)
}

func TestFindExpiredPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	user, course := seedUserAndCourse(t, db)

	now := time.Now().Truncate(time.Second)

	expired := pendingOrder(user, course, "20240517131415aaaa", now.Add(-time.Hour))
	require.NoError(t, repo.Insert(expired))

	active := pendingOrder(user, course, "20240520131415bbbb", now.Add(time.Hour))
	require.NoError(t, repo.Insert(active))

	paid := pendingOrder(user, course, "20240517131415cccc", now.Add(-time.Hour))
	require.NoError(t, repo.Insert(paid))
	ok, err := repo.MarkPaid(paid, now)
	require.NoError(t, err)
	require.True(t, ok)

	// 恰好等于期限的订单不算过期
	atDeadline := pendingOrder(user, course, "20240520131415dddd", now)
	require.NoError(t, repo.Insert(atDeadline))

	orders, err := repo.FindExpiredPending(now)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, expired.OrderNumber, orders[0].OrderNumber)
}

func TestOrderListsOrderedByCreatedAtDesc(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	user, course := seedUserAndCourse(t, db)

	base := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	deadline := base.AddDate(0, 0, 3)

	first := pendingOrder(user, course, "20240520120000aaaa", deadline)
	first.CreatedAt = base
	require.NoError(t, repo.Insert(first))

	second := pendingOrder(user, course, "20240521120000bbbb", deadline)
	second.CreatedAt = base.Add(24 * time.Hour)
	require.NoError(t, repo.Insert(second))

	tests := []struct {
		name string
		list func() ([]model.Order, error)
	}{
		{name: "by_user", list: func() ([]model.Order, error) { return repo.FindByUser(user.ID) }},
		{name: "by_course", list: func() ([]model.Order, error) { return repo.FindByCourse(course.ID) }},
		{name: "by_user_and_course", list: func() ([]model.Order, error) {
			return repo.FindByUserAndCourse(user.ID, course.ID)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := tt.list()
			require.NoError(t, err)
			require.Len(t, orders, 2)
			assert.Equal(t, second.OrderNumber, orders[0].OrderNumber)
			assert.Equal(t, first.OrderNumber, orders[1].OrderNumber)
		})
	}
}
