package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	Name       string     `json:"name" gorm:"size:64"`
	Username   string     `json:"username" gorm:"size:64;uniqueIndex"`
	Password   string     `json:"-" gorm:"size:128"`
	Gender     string     `json:"gender" gorm:"size:16"` // 男、女
	Nickname   string     `json:"nickname" gorm:"size:64"`
	Occupation string     `json:"occupation" gorm:"size:64"`
	Birthday   *time.Time `json:"birthday"`
	Location   string     `json:"location" gorm:"size:64"`
	GithubLink string     `json:"github_link" gorm:"size:255"`
	AvatarURL  string     `json:"avatar_url" gorm:"size:255"`
	IsAdmin    bool       `json:"is_admin" gorm:"default:false"` // 是否是管理员
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
