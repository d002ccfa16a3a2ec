package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AllenLi0110/simple-waterball/internal/model"
)

// CourseRepository 课程存储，基于 GORM
type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID 查询课程及其章节、视频，按顺序返回
func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapters.order_index asc")
		}).
		Preload("Chapters.Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("videos.order_index asc")
		}).
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Order("id asc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindFeatured() ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Where("is_featured = ?", true).Order("id asc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Course{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
