package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/AllenLi0110/simple-waterball/internal/middleware"
	"github.com/AllenLi0110/simple-waterball/internal/model"
	"github.com/AllenLi0110/simple-waterball/internal/pkg/logger"
)

// UserStore 认证所需的用户存储接口
type UserStore interface {
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	Create(user *model.User) error
	SetAdmin(id uint, isAdmin bool) error
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return "", nil, errors.New("用户名或密码错误")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("用户名或密码错误")
	}

	// 使用中间件中的 GenerateToken 函数
	token, err := middleware.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) Register(name, username, password string) (*model.User, error) {
	// 检查用户名是否已存在
	if _, err := s.users.FindByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: 用户名已存在", model.ErrConflict)
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Username: username,
		Password: string(hashedPassword),
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, fmt.Errorf("%w: 用户名已存在", model.ErrConflict)
		}
		return nil, err
	}

	return user, nil
}

// EnsureDefaultAdmin 检查并在缺失时创建默认管理员账号
func (s *AuthService) EnsureDefaultAdmin() error {
	user, err := s.users.FindByUsername("admin")
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("查询管理员账号失败: %w", err)
	}

	if errors.Is(err, model.ErrNotFound) {
		// 创建默认管理员账号
		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte("waterball"), bcrypt.DefaultCost)
		if hashErr != nil {
			return fmt.Errorf("生成管理员默认密码失败: %w", hashErr)
		}

		admin := &model.User{
			Name:     "管理员",
			Username: "admin",
			Password: string(hashedPassword),
			IsAdmin:  true,
		}

		if createErr := s.users.Create(admin); createErr != nil {
			return fmt.Errorf("创建默认管理员账号失败: %w", createErr)
		}

		logger.Infof("默认管理员账号已创建，用户名: %s", admin.Username)
		return nil
	}

	// 如果存在但未标记为管理员，进行修正
	if !user.IsAdmin {
		if updateErr := s.users.SetAdmin(user.ID, true); updateErr != nil {
			return fmt.Errorf("更新管理员标识失败: %w", updateErr)
		}
		logger.Infof("账号 %s 已标记为管理员", user.Username)
	}

	return nil
}
