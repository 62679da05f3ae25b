package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jamaicasolina/ClassSync/internal/access"
	"github.com/jamaicasolina/ClassSync/internal/service"
	"github.com/jamaicasolina/ClassSync/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Schedule   *ScheduleHandler
	Export     *ExportHandler
	Room       *RoomHandler
	Course     *CourseHandler
	Enrollment *EnrollmentHandler

	scheduleRoutes []ScheduleRoute
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	h := &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Export:     NewExportHandler(svc.Export),
		Room:       NewRoomHandler(svc.Room),
		Course:     NewCourseHandler(svc.Course),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
	}
	h.scheduleRoutes = h.buildScheduleRoutes()
	return h
}

// ScheduleRoute 课时模块的一个 action
// 同时注册为 /schedules/<Name> 路由，并供 ?action=<Name> 分发使用
type ScheduleRoute struct {
	Name   string
	Method string
	Action access.Action
	Denied string
	Handle gin.HandlerFunc
}

const (
	deniedProfessorOnly = "Only professors can perform this action"
	deniedDefault       = "Access denied"
)

func (h *Handler) buildScheduleRoutes() []ScheduleRoute {
	s, e := h.Schedule, h.Export
	return []ScheduleRoute{
		{"create", http.MethodPost, access.ScheduleCreate, "Only professors can create schedules", s.Create},
		{"create_batch", http.MethodPost, access.ScheduleCreateBatch, "Only professors can create schedules", s.CreateBatch},
		{"get", http.MethodGet, access.ScheduleRead, deniedDefault, s.Get},
		{"by_course", http.MethodGet, access.ScheduleRead, deniedDefault, s.ByCourse},
		{"my_schedules", http.MethodGet, access.ScheduleMine, deniedProfessorOnly, s.MySchedules},
		{"by_section", http.MethodGet, access.ScheduleBySection, deniedDefault, s.BySection},
		{"my_student_schedules", http.MethodGet, access.ScheduleMineStudent, "Only students can view enrolled schedules", s.MyStudentSchedules},
		{"update", http.MethodPut, access.ScheduleUpdate, "Only professors can update schedules", s.Update},
		{"cancel", http.MethodPut, access.ScheduleCancel, "Only professors can cancel schedules", s.Cancel},
		{"uncancel", http.MethodPut, access.ScheduleUncancel, "Only professors can uncancel schedules", s.Uncancel},
		{"changes", http.MethodGet, access.ScheduleRead, deniedDefault, s.Changes},
		{"delete", http.MethodDelete, access.ScheduleDelete, "Only professors can delete schedules", s.Delete},
		{"check_conflict", http.MethodGet, access.ScheduleCheckConflict, deniedProfessorOnly, s.CheckConflict},
		{"archive", http.MethodGet, access.ScheduleRead, deniedDefault, s.Archive},
		{"export", http.MethodGet, access.ScheduleExport, deniedDefault, e.Timetable},
		{"calendar", http.MethodGet, access.ScheduleCalendar, deniedDefault, e.Calendar},
	}
}

// ScheduleRoutes 课时模块 action 表
func (h *Handler) ScheduleRoutes() []ScheduleRoute {
	return h.scheduleRoutes
}

// DispatchSchedule 单入口形式 /api/v1/schedules?action=<name>
// 按 action 与请求方法查表，权限判定与独立路由一致
func (h *Handler) DispatchSchedule(c *gin.Context) {
	name := c.Query("action")
	for _, r := range h.scheduleRoutes {
		if r.Name != name || r.Method != c.Request.Method {
			continue
		}
		caller, ok := MustGetCaller(c)
		if !ok {
			return
		}
		if !caller.Can(r.Action) {
			response.Forbidden(c, 10003, r.Denied)
			return
		}
		r.Handle(c)
		return
	}
	response.BadRequest(c, 13000, "Invalid action")
}
