package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/AllenLi0110/simple-waterball/internal/model"
)

// ProfileStore 个人资料存储接口
type ProfileStore interface {
	FindByID(id uint) (*model.User, error)
	UpdateProfile(id uint, updates map[string]interface{}) error
}

type UserService struct {
	users ProfileStore
}

func NewUserService(users ProfileStore) *UserService {
	return &UserService{users: users}
}

// ProfileUpdate 可更新的个人资料字段，nil 表示不修改
type ProfileUpdate struct {
	Name       *string
	Gender     *string
	Nickname   *string
	Occupation *string
	Birthday   *time.Time
	Location   *string
	GithubLink *string
	AvatarURL  *string
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found with id %d", model.ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	if _, err := s.GetProfile(userID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Gender != nil {
		updates["gender"] = *update.Gender
	}
	if update.Nickname != nil {
		updates["nickname"] = *update.Nickname
	}
	if update.Occupation != nil {
		updates["occupation"] = *update.Occupation
	}
	if update.Birthday != nil {
		updates["birthday"] = *update.Birthday
	}
	if update.Location != nil {
		updates["location"] = *update.Location
	}
	if update.GithubLink != nil {
		updates["github_link"] = *update.GithubLink
	}
	if update.AvatarURL != nil {
		updates["avatar_url"] = *update.AvatarURL
	}

	if err := s.users.UpdateProfile(userID, updates); err != nil {
		return nil, err
	}

	return s.GetProfile(userID)
}
