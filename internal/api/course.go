package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AllenLi0110/simple-waterball/internal/model"
	"github.com/AllenLi0110/simple-waterball/internal/service"
)

type CourseAPI struct {
	courses *service.CourseService
}

func NewCourseAPI(courses *service.CourseService) *CourseAPI {
	return &CourseAPI{courses: courses}
}

// CourseRequest 创建/更新课程请求
type CourseRequest struct {
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	Description   string `json:"description"`
	PriceText     string `json:"price_text"`
	ButtonLabel   string `json:"button_label"`
	ImageURL      string `json:"image_url"`
	ImageSubtitle string `json:"image_subtitle"`
	IsFeatured    bool   `json:"is_featured"`
}

func (r *CourseRequest) toModel() *model.Course {
	return &model.Course{
		Title:         r.Title,
		Subtitle:      r.Subtitle,
		Description:   r.Description,
		PriceText:     r.PriceText,
		ButtonLabel:   r.ButtonLabel,
		ImageURL:      r.ImageURL,
		ImageSubtitle: r.ImageSubtitle,
		IsFeatured:    r.IsFeatured,
	}
}

// List 获取课程列表，?featured=true 时只返回精选课程
func (a *CourseAPI) List(c *gin.Context) {
	var (
		courses []model.Course
		err     error
	)
	if c.Query("featured") == "true" {
		courses, err = a.courses.GetFeatured()
	} else {
		courses, err = a.courses.GetAll()
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, courses)
}

// Get 获取课程详情（含章节和视频）
func (a *CourseAPI) Get(c *gin.Context) {
	courseId, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c)
		return
	}

	course, err := a.courses.GetByID(uint(courseId))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, course)
}

// Create 创建课程（管理员）
func (a *CourseAPI) Create(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	course, err := a.courses.Create(req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, course)
}

// Update 更新课程（管理员）
func (a *CourseAPI) Update(c *gin.Context) {
	courseId, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c)
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	course, err := a.courses.Update(uint(courseId), req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, course)
}

// Delete 删除课程（管理员）
func (a *CourseAPI) Delete(c *gin.Context) {
	courseId, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c)
		return
	}

	if err := a.courses.Delete(uint(courseId)); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}
