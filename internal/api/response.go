package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AllenLi0110/simple-waterball/internal/model"
)

// respondOK 统一成功响应
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": data,
	})
}

// respondError 按错误分类映射状态码
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, model.ErrInvalidState):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"code": status,
		"msg":  err.Error(),
	})
}

// respondBadRequest 参数绑定失败
func respondBadRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code": 400,
		"msg":  "参数错误",
	})
}
