package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/service"
	"github.com/jamaicasolina/ClassSync/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// Create 教授新建课程
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, bindErrorMessage(err))
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, "Course created successfully", gin.H{"course": course})
}

// Get 课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, "", gin.H{"course": course})
}

// Mine 教授本人的课程
// GET /api/v1/courses/mine
func (h *CourseHandler) Mine(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListMine(c.Request.Context(), caller)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, "", gin.H{"courses": courses})
}

// Students 课程选课名单
// GET /api/v1/courses/:id/students
func (h *CourseHandler) Students(c *gin.Context) {
	students, err := h.courseSvc.ListStudents(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, "", gin.H{"students": students})
}

// MyEnrolled 学生本人已选课程
// GET /api/v1/courses/enrolled
func (h *CourseHandler) MyEnrolled(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListEnrolled(c.Request.Context(), caller)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, "", gin.H{"courses": courses})
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 15101, "Course not found")
	case errors.Is(err, service.ErrForbiddenAction):
		response.Forbidden(c, 15301, "Access denied")
	default:
		response.InternalError(c)
	}
}
