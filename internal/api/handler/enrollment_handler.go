package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/service"
	"github.com/jamaicasolina/ClassSync/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// Enroll 选课
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.EnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, bindErrorMessage(err))
		return
	}

	if err := h.enrollmentSvc.Enroll(c.Request.Context(), &req, caller); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.Created(c, "Enrolled successfully", nil)
}

// Unenroll 退课，参数可放在 body 或 query 中
// DELETE /api/v1/enrollments
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.EnrollmentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 16001, bindErrorMessage(err))
		return
	}

	if err := h.enrollmentSvc.Unenroll(c.Request.Context(), &req, caller); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, "Unenrolled successfully", nil)
}

// Check 学生是否已选课；student_id 缺省为本人
// GET /api/v1/enrollments/check?course_id=xxx&student_id=xxx
func (h *EnrollmentHandler) Check(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.EnrollmentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, bindErrorMessage(err))
		return
	}
	studentID := req.StudentID
	if studentID == "" {
		studentID = caller.UserID
	}

	enrolled, err := h.enrollmentSvc.IsEnrolled(c.Request.Context(), req.CourseID, studentID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, "", gin.H{"enrolled": enrolled})
}

// Count 课程选课人数
// GET /api/v1/enrollments/count?course_id=xxx
func (h *EnrollmentHandler) Count(c *gin.Context) {
	var q dto.CourseIDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 16001, bindErrorMessage(err))
		return
	}

	n, err := h.enrollmentSvc.Count(c.Request.Context(), q.CourseID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, "", gin.H{"count": n})
}

// EnrollBatch 教授或学生代表批量选课
// POST /api/v1/enrollments/batch
func (h *EnrollmentHandler) EnrollBatch(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.BatchEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, bindErrorMessage(err))
		return
	}

	result, err := h.enrollmentSvc.EnrollBatch(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, fmt.Sprintf("Enrolled %d student(s) successfully", result.EnrolledCount), gin.H{
		"enrolled_count": result.EnrolledCount,
		"skipped_ids":    result.SkippedIDs,
	})
}

// StudentsBySection 某年级班级的学生，学生代表在前
// GET /api/v1/enrollments/students?year_level=3&section=A
func (h *EnrollmentHandler) StudentsBySection(c *gin.Context) {
	var q dto.StudentSectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 16001, bindErrorMessage(err))
		return
	}

	students, err := h.enrollmentSvc.ListStudentsBySection(c.Request.Context(), &q)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, "", gin.H{"students": students})
}

// AllStudents 全部学生
// GET /api/v1/enrollments/students/all
func (h *EnrollmentHandler) AllStudents(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	students, err := h.enrollmentSvc.ListAllStudents(c.Request.Context(), caller)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, "", gin.H{"students": students})
}

func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentRequired):
		response.BadRequest(c, 16002, "Student ID required")
	case errors.Is(err, service.ErrStudentIDsRequired):
		response.BadRequest(c, 16003, "Student IDs array required")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 16101, "Course not found")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 16102, "Student not found")
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 16103, "Enrollment not found")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 16201, "Student is already enrolled in this course")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 16301, "You do not own this course")
	case errors.Is(err, service.ErrForbiddenAction):
		response.Forbidden(c, 16302, "Access denied")
	case errors.Is(err, service.ErrNotClassmate):
		response.Forbidden(c, 16303, "Student representatives can only manage their own section")
	default:
		response.InternalError(c)
	}
}
