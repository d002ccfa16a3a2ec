package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AllenLi0110/simple-waterball/internal/model"
	"github.com/AllenLi0110/simple-waterball/internal/service"
)

type OrderAPI struct {
	orders *service.OrderService
}

func NewOrderAPI(orders *service.OrderService) *OrderAPI {
	return &OrderAPI{orders: orders}
}

// OrderResponse 订单响应
type OrderResponse struct {
	ID              uint       `json:"id"`
	OrderNumber     string     `json:"order_number"`
	UserID          uint       `json:"user_id"`
	UserName        string     `json:"user_name"`
	CourseID        uint       `json:"course_id"`
	CourseTitle     string     `json:"course_title"`
	Status          string     `json:"status"`
	PaymentDeadline time.Time  `json:"payment_deadline"`
	PaymentDate     *time.Time `json:"payment_date"`
	Remarks         string     `json:"remarks"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toOrderResponse(order *model.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID,
		UserName:        order.User.Name,
		CourseID:        order.CourseID,
		CourseTitle:     order.Course.Title,
		Status:          order.Status,
		PaymentDeadline: order.PaymentDeadline,
		PaymentDate:     order.PaymentDate,
		Remarks:         order.Remarks,
		CreatedAt:       order.CreatedAt,
	}
}

func toOrderResponses(orders []model.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}
	return responses
}

// Create 创建订单
func (a *OrderAPI) Create(c *gin.Context) {
	var req struct {
		CourseID uint `json:"courseId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	userId := c.GetUint("userId")
	order, err := a.orders.Create(userId, req.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toOrderResponse(order))
}

// GetByID 按ID查询订单
func (a *OrderAPI) GetByID(c *gin.Context) {
	orderId, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c)
		return
	}

	order, err := a.orders.GetByID(uint(orderId))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toOrderResponse(order))
}

// GetByNumber 按订单号查询订单
func (a *OrderAPI) GetByNumber(c *gin.Context) {
	order, err := a.orders.GetByOrderNumber(c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toOrderResponse(order))
}

// CompletePayment 完成付款
func (a *OrderAPI) CompletePayment(c *gin.Context) {
	order, err := a.orders.CompletePayment(c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toOrderResponse(order))
}

// ListByUser 查询用户的订单列表
func (a *OrderAPI) ListByUser(c *gin.Context) {
	userId, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		respondBadRequest(c)
		return
	}

	orders, err := a.orders.ListByUser(uint(userId))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toOrderResponses(orders))
}

// ListByCourse 查询课程的订单列表
func (a *OrderAPI) ListByCourse(c *gin.Context) {
	courseId, err := strconv.ParseUint(c.Param("courseId"), 10, 32)
	if err != nil {
		respondBadRequest(c)
		return
	}

	orders, err := a.orders.ListByCourse(uint(courseId))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toOrderResponses(orders))
}

// ListByUserAndCourse 查询用户在某课程下的订单列表
func (a *OrderAPI) ListByUserAndCourse(c *gin.Context) {
	userId, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		respondBadRequest(c)
		return
	}
	courseId, err := strconv.ParseUint(c.Param("courseId"), 10, 32)
	if err != nil {
		respondBadRequest(c)
		return
	}

	orders, err := a.orders.ListByUserAndCourse(uint(userId), uint(courseId))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toOrderResponses(orders))
}
