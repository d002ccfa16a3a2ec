package model

import (
	"time"

	"gorm.io/gorm"
)

// 课程
type Course struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Title         string    `json:"title" gorm:"size:100;not null"`
	Subtitle      string    `json:"subtitle" gorm:"size:200"`
	Description   string    `json:"description" gorm:"size:1000"`
	PriceText     string    `json:"price_text" gorm:"size:64"`
	ButtonLabel   string    `json:"button_label" gorm:"size:64"`
	ImageURL      string    `json:"image_url" gorm:"size:255"`
	ImageSubtitle string    `json:"image_subtitle" gorm:"size:200"`
	IsFeatured    bool      `json:"is_featured" gorm:"default:false"`
	Chapters      []Chapter `json:"chapters,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// 章节
type Chapter struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:500"`
	OrderIndex  int       `json:"order_index"` // 章节在课程中的顺序
	Videos      []Video   `json:"videos,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// 视频
type Video struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ChapterID  uint      `json:"chapter_id" gorm:"index;not null"`
	Title      string    `json:"title" gorm:"size:100;not null"`
	URL        string    `json:"url" gorm:"size:255"`
	Duration   int       `json:"duration"` // 时长（秒）
	OrderIndex int       `json:"order_index"` // 视频在章节中的顺序
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
