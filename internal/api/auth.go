package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AllenLi0110/simple-waterball/internal/service"
)

type AuthAPI struct {
	auth *service.AuthService
}

func NewAuthAPI(auth *service.AuthService) *AuthAPI {
	return &AuthAPI{auth: auth}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthAPI) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	token, user, err := a.auth.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": 401,
			"msg":  err.Error(),
		})
		return
	}

	respondOK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"username": user.Username,
		},
	})
}

func (a *AuthAPI) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	user, err := a.auth.Register(req.Name, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
	})
}
