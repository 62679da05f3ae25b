package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/service"
	"github.com/jamaicasolina/ClassSync/pkg/response"
)

// ScheduleHandler 课时模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Create 创建课时
// POST /api/v1/schedules/create
func (h *ScheduleHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, bindErrorMessage(err))
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, "Schedule created successfully", gin.H{"schedule": schedule})
}

// CreateBatch 同一时段批量创建多天课时
// POST /api/v1/schedules/create_batch
func (h *ScheduleHandler) CreateBatch(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateBatchScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, bindErrorMessage(err))
		return
	}

	result, err := h.scheduleSvc.CreateBatch(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	message := fmt.Sprintf("Created %d schedule(s)", result.CreatedCount)
	fields := gin.H{"created_count": result.CreatedCount, "failed_days": result.FailedDays}
	if result.CreatedCount == 0 {
		response.ErrorWithFields(c, http.StatusUnprocessableEntity, 13007, message, fields)
		return
	}
	response.OK(c, message, fields)
}

// Get 课时详情
// GET /api/v1/schedules/get?id=xxx
func (h *ScheduleHandler) Get(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.BadRequest(c, 13001, "Schedule ID required")
		return
	}

	schedule, err := h.scheduleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "", gin.H{"schedule": schedule})
}

// ByCourse 课程的全部课时（含已取消）
// GET /api/v1/schedules/by_course?course_id=xxx
func (h *ScheduleHandler) ByCourse(c *gin.Context) {
	courseID := c.Query("course_id")
	if courseID == "" {
		response.BadRequest(c, 13001, "Course ID required")
		return
	}

	schedules, err := h.scheduleSvc.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "", gin.H{"schedules": schedules})
}

// MySchedules 教授本人授课的课时
// GET /api/v1/schedules/my_schedules
func (h *ScheduleHandler) MySchedules(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	schedules, err := h.scheduleSvc.ListByProfessor(c.Request.Context(), caller.UserID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "", gin.H{"schedules": schedules})
}

// BySection 年级班级的课时；学生可省略参数
// GET /api/v1/schedules/by_section?year_level=3&section=A
func (h *ScheduleHandler) BySection(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var q dto.SectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 13001, bindErrorMessage(err))
		return
	}

	schedules, err := h.scheduleSvc.ListBySection(c.Request.Context(), &q, caller)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "", gin.H{"schedules": schedules})
}

// MyStudentSchedules 学生已选课程的课时
// GET /api/v1/schedules/my_student_schedules
func (h *ScheduleHandler) MyStudentSchedules(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	schedules, err := h.scheduleSvc.ListByStudent(c.Request.Context(), caller.UserID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "", gin.H{"schedules": schedules})
}

// Update 修改课时
// PUT /api/v1/schedules/update
func (h *ScheduleHandler) Update(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, bindErrorMessage(err))
		return
	}

	if err := h.scheduleSvc.Update(c.Request.Context(), &req, caller); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "Schedule updated successfully", nil)
}

// Cancel 取消课时
// PUT /api/v1/schedules/cancel
func (h *ScheduleHandler) Cancel(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CancelScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, bindErrorMessage(err))
		return
	}

	if err := h.scheduleSvc.Cancel(c.Request.Context(), &req, caller); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "Schedule cancelled successfully", nil)
}

// Uncancel 恢复已取消的课时
// PUT /api/v1/schedules/uncancel
func (h *ScheduleHandler) Uncancel(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ScheduleIDRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 13001, bindErrorMessage(err))
		return
	}

	if err := h.scheduleSvc.Uncancel(c.Request.Context(), req.ID, caller); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "Schedule uncancelled successfully", nil)
}

// Delete 删除课时（先归档）
// DELETE /api/v1/schedules/delete
func (h *ScheduleHandler) Delete(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ScheduleIDRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 13001, bindErrorMessage(err))
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), req.ID, caller); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "Schedule deleted successfully", nil)
}

// Changes 课时变更记录，最新在前
// GET /api/v1/schedules/changes?schedule_id=xxx
func (h *ScheduleHandler) Changes(c *gin.Context) {
	scheduleID := c.Query("schedule_id")
	if scheduleID == "" {
		response.BadRequest(c, 13001, "Schedule ID required")
		return
	}

	changes, err := h.scheduleSvc.ListChanges(c.Request.Context(), scheduleID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "", gin.H{"changes": changes})
}

// CheckConflict 冲突预检
// GET /api/v1/schedules/check_conflict?room_id=&day_of_week=&start_time=&end_time=&exclude_id=
func (h *ScheduleHandler) CheckConflict(c *gin.Context) {
	var req dto.CheckConflictRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, bindErrorMessage(err))
		return
	}

	conflict, err := h.scheduleSvc.CheckConflict(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "", gin.H{"conflict": conflict})
}

// Archive 已删除课时的归档
// GET /api/v1/schedules/archive?schedule_id=xxx
func (h *ScheduleHandler) Archive(c *gin.Context) {
	scheduleID := c.Query("schedule_id")
	if scheduleID == "" {
		response.BadRequest(c, 13001, "Schedule ID required")
		return
	}

	archive, err := h.scheduleSvc.GetArchive(c.Request.Context(), scheduleID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "", gin.H{"archive": archive})
}

// handleScheduleError 统一处理课时模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidWeekday):
		response.BadRequest(c, 13002, err.Error())
	case errors.Is(err, service.ErrInvalidTime):
		response.BadRequest(c, 13003, err.Error())
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 13004, err.Error())
	case errors.Is(err, service.ErrReasonRequired):
		response.BadRequest(c, 13005, "Reason is required")
	case errors.Is(err, service.ErrSectionRequired):
		response.BadRequest(c, 13006, "Year level and section required")
	case errors.Is(err, service.ErrInvalidExcludeID):
		response.BadRequest(c, 13008, err.Error())
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13101, "Schedule not found")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13102, "Course not found")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 13103, "Room not found")
	case errors.Is(err, service.ErrArchiveNotFound):
		response.NotFound(c, 13104, "Archive not found")
	case errors.Is(err, service.ErrScheduleConflict):
		response.Conflict(c, 13201, "Room is already booked for an overlapping time slot")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 13301, "You do not own this course")
	case errors.Is(err, service.ErrForbiddenAction):
		response.Forbidden(c, 13302, "Access denied")
	default:
		response.InternalError(c)
	}
}
