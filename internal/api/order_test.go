package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AllenLi0110/simple-waterball/internal/model"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/database"
	"github.com/AllenLi0110/simple-waterball/internal/repository"
	"github.com/AllenLi0110/simple-waterball/internal/service"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type orderTestEnv struct {
	router *gin.Engine
	clock  *testClock
	user   *model.User
	course *model.Course
}

// setupOrderTestEnv 用内存数据库组装完整的订单接口栈，
// 认证中间件用固定用户替代
func setupOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := &model.User{Name: "水球", Username: "waterball", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	course := &model.Course{Title: "軟體設計模式精通之旅"}
	require.NoError(t, db.Create(course).Error)

	clock := &testClock{t: time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)}

	orderService := service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		service.WithClock(clock.Now),
	)
	orderAPI := NewOrderAPI(orderService)

	r := gin.New()
	authStub := func(c *gin.Context) { c.Set("userId", user.ID) }

	orders := r.Group("/api/v1/orders", authStub)
	orders.POST("", orderAPI.Create)
	orders.GET("/:id", orderAPI.GetByID)
	orders.GET("/number/:orderNumber", orderAPI.GetByNumber)
	orders.POST("/number/:orderNumber/payment", orderAPI.CompletePayment)
	orders.GET("/user/:userId", orderAPI.ListByUser)
	orders.GET("/course/:courseId", orderAPI.ListByCourse)
	orders.GET("/user/:userId/course/:courseId", orderAPI.ListByUserAndCourse)

	return &orderTestEnv{router: r, clock: clock, user: user, course: course}
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (e *orderTestEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (e *orderTestEnv) createOrder(t *testing.T) OrderResponse {
	t.Helper()

	w, env := e.do(t, http.MethodPost, "/api/v1/orders", gin.H{"courseId": e.course.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var order OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &order))
	return order
}

func TestCreateOrderEndpoint(t *testing.T) {
	env := setupOrderTestEnv(t)

	order := env.createOrder(t)
	assert.Len(t, order.OrderNumber, 18)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, env.user.ID, order.UserID)
	assert.Equal(t, "水球", order.UserName)
	assert.Equal(t, env.course.ID, order.CourseID)
	assert.Equal(t, "軟體設計模式精通之旅", order.CourseTitle)
	assert.Nil(t, order.PaymentDate)
}

func TestCreateOrderEndpointFailures(t *testing.T) {
	env := setupOrderTestEnv(t)

	tests := []struct {
		name     string
		body     interface{}
		wantCode int
	}{
		{name: "missing_body", body: gin.H{}, wantCode: http.StatusBadRequest},
		{name: "unknown_course", body: gin.H{"courseId": 999}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env2 := env.do(t, http.MethodPost, "/api/v1/orders", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCode, env2.Code)
		})
	}
}

func TestCompletePaymentEndpoint(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	env.clock.Advance(time.Hour)

	w, resp := env.do(t, http.MethodPost, "/api/v1/orders/number/"+order.OrderNumber+"/payment", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var paid OrderResponse
	require.NoError(t, json.Unmarshal(resp.Data, &paid))
	assert.Equal(t, model.OrderStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)

	// 重复付款
	w, resp = env.do(t, http.MethodPost, "/api/v1/orders/number/"+order.OrderNumber+"/payment", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Msg, "order is not in PENDING status")
}

func TestCompletePaymentAfterDeadlineEndpoint(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	env.clock.Advance(72*time.Hour + time.Minute)

	w, resp := env.do(t, http.MethodPost, "/api/v1/orders/number/"+order.OrderNumber+"/payment", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Msg, "payment deadline has passed")
}

func TestGetOrderEndpoint(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	w, resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got OrderResponse
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, order.OrderNumber, got.OrderNumber)

	w, _ = env.do(t, http.MethodGet, "/api/v1/orders/number/20240520120000zzzz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(t, http.MethodGet, "/api/v1/orders/notanumber", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetExpiredOrderCancelsOnRead(t *testing.T) {
	env := setupOrderTestEnv(t)
	order := env.createOrder(t)

	env.clock.Advance(72*time.Hour + time.Hour)

	w, resp := env.do(t, http.MethodGet, "/api/v1/orders/number/"+order.OrderNumber, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got OrderResponse
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, model.OrderStatusCancelled, got.Status)
	assert.Equal(t, model.OrderCancelledRemarks, got.Remarks)
}

func TestListOrdersEndpoint(t *testing.T) {
	env := setupOrderTestEnv(t)

	first := env.createOrder(t)
	env.clock.Advance(time.Second)
	second := env.createOrder(t)

	paths := []string{
		fmt.Sprintf("/api/v1/orders/user/%d", env.user.ID),
		fmt.Sprintf("/api/v1/orders/course/%d", env.course.ID),
		fmt.Sprintf("/api/v1/orders/user/%d/course/%d", env.user.ID, env.course.ID),
	}

	for _, path := range paths {
		w, resp := env.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)

		var orders []OrderResponse
		require.NoError(t, json.Unmarshal(resp.Data, &orders))
		require.Len(t, orders, 2, path)

		// 创建时间倒序
		assert.Equal(t, second.OrderNumber, orders[0].OrderNumber, path)
		assert.Equal(t, first.OrderNumber, orders[1].OrderNumber, path)
	}

	// 没有订单的用户返回空数组
	w, resp := env.do(t, http.MethodGet, "/api/v1/orders/user/999", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var empty []OrderResponse
	require.NoError(t, json.Unmarshal(resp.Data, &empty))
	assert.Empty(t, empty)
}
