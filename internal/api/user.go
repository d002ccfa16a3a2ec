package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AllenLi0110/simple-waterball/internal/model"
	"github.com/AllenLi0110/simple-waterball/internal/service"
)

type UserAPI struct {
	users *service.UserService
}

func NewUserAPI(users *service.UserService) *UserAPI {
	return &UserAPI{users: users}
}

// UserResponse 用户响应，不包含密码
type UserResponse struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Username   string     `json:"username"`
	Gender     string     `json:"gender"`
	Nickname   string     `json:"nickname"`
	Occupation string     `json:"occupation"`
	Birthday   *time.Time `json:"birthday"`
	Location   string     `json:"location"`
	GithubLink string     `json:"github_link"`
	AvatarURL  string     `json:"avatar_url"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Username:   user.Username,
		Gender:     user.Gender,
		Nickname:   user.Nickname,
		Occupation: user.Occupation,
		Birthday:   user.Birthday,
		Location:   user.Location,
		GithubLink: user.GithubLink,
		AvatarURL:  user.AvatarURL,
		CreatedAt:  user.CreatedAt,
	}
}

// UpdateProfileRequest 更新个人资料请求，省略的字段不修改
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Gender     *string `json:"gender"`
	Nickname   *string `json:"nickname"`
	Occupation *string `json:"occupation"`
	Birthday   *string `json:"birthday"` // YYYY-MM-DD
	Location   *string `json:"location"`
	GithubLink *string `json:"github_link"`
	AvatarURL  *string `json:"avatar_url"`
}

// GetProfile 获取当前用户的个人资料
func (a *UserAPI) GetProfile(c *gin.Context) {
	userId := c.GetUint("userId")

	user, err := a.users.GetProfile(userId)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toUserResponse(user))
}

// UpdateProfile 更新当前用户的个人资料
func (a *UserAPI) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	update := service.ProfileUpdate{
		Name:       req.Name,
		Gender:     req.Gender,
		Nickname:   req.Nickname,
		Occupation: req.Occupation,
		Location:   req.Location,
		GithubLink: req.GithubLink,
		AvatarURL:  req.AvatarURL,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			respondBadRequest(c)
			return
		}
		update.Birthday = &birthday
	}

	userId := c.GetUint("userId")
	user, err := a.users.UpdateProfile(userId, update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, toUserResponse(user))
}
