package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/AllenLi0110/simple-waterball/internal/model"
)

// UserRepository 用户存储，基于 GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户，用户名唯一索引冲突时返回 model.ErrConflict
func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: username %s", model.ErrConflict, user.Username)
		}
		return err
	}
	return nil
}

// UpdateProfile 更新个人资料字段
func (r *UserRepository) UpdateProfile(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
}

// SetAdmin 设置管理员标识
func (r *UserRepository) SetAdmin(id uint, isAdmin bool) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("is_admin", isAdmin).Error
}
