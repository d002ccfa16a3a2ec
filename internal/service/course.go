package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AllenLi0110/simple-waterball/internal/model"
)

// CourseStore 课程存储接口
type CourseStore interface {
	FindByID(id uint) (*model.Course, error)
	FindAll() ([]model.Course, error)
	FindFeatured() ([]model.Course, error)
	Create(course *model.Course) error
	Update(course *model.Course) error
	Delete(id uint) error
}

// 课程字段长度限制
const (
	maxCourseTitleLength       = 100
	maxCourseSubtitleLength    = 200
	maxCourseDescriptionLength = 1000
)

type CourseService struct {
	courses CourseStore
}

func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

func (s *CourseService) GetAll() ([]model.Course, error) {
	return s.courses.FindAll()
}

func (s *CourseService) GetFeatured() ([]model.Course, error) {
	return s.courses.FindFeatured()
}

func (s *CourseService) GetByID(id uint) (*model.Course, error) {
	course, err := s.courses.FindByID(id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: course not found with id %d", model.ErrNotFound, id)
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Create(course *model.Course) (*model.Course, error) {
	if err := validateCourse(course, true); err != nil {
		return nil, err
	}
	if err := s.courses.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Update(id uint, details *model.Course) (*model.Course, error) {
	if err := validateCourse(details, false); err != nil {
		return nil, err
	}

	course, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if details.Title != "" {
		course.Title = details.Title
	}
	course.Subtitle = details.Subtitle
	course.Description = details.Description
	course.PriceText = details.PriceText
	course.ButtonLabel = details.ButtonLabel
	course.ImageURL = details.ImageURL
	course.ImageSubtitle = details.ImageSubtitle
	course.IsFeatured = details.IsFeatured

	if err := s.courses.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(id uint) error {
	if err := s.courses.Delete(id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("%w: course not found with id %d", model.ErrNotFound, id)
		}
		return err
	}
	return nil
}

// validateCourse 校验课程字段；创建时标题必填
func validateCourse(course *model.Course, requireTitle bool) error {
	if course == nil {
		return fmt.Errorf("%w: course cannot be nil", model.ErrInvalidState)
	}
	if requireTitle && strings.TrimSpace(course.Title) == "" {
		return fmt.Errorf("%w: course title cannot be empty", model.ErrInvalidState)
	}
	if len(course.Title) > maxCourseTitleLength {
		return fmt.Errorf("%w: course title length cannot exceed %d characters", model.ErrInvalidState, maxCourseTitleLength)
	}
	if len(course.Subtitle) > maxCourseSubtitleLength {
		return fmt.Errorf("%w: subtitle length cannot exceed %d characters", model.ErrInvalidState, maxCourseSubtitleLength)
	}
	if len(course.Description) > maxCourseDescriptionLength {
		return fmt.Errorf("%w: description length cannot exceed %d characters", model.ErrInvalidState, maxCourseDescriptionLength)
	}
	return nil
}
