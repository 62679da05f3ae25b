// Package access 定义系统角色、操作与角色×操作权限矩阵。
// 所有路由与 action 分发统一经由 Can 判定，不在业务代码中比较角色字符串。
package access

import (
	"errors"
	"strings"
)

// Role 用户角色（封闭枚举）
type Role string

const (
	RoleProfessor   Role = "professor"
	RoleStudent     Role = "student"
	RoleStudentRep  Role = "student_rep"
	RoleRoomAdmin   Role = "room_admin"
	RoleChairperson Role = "chairperson"
)

// ErrUnknownRole 无法识别的角色
var ErrUnknownRole = errors.New("unknown role")

var allRoles = []Role{RoleProfessor, RoleStudent, RoleStudentRep, RoleRoomAdmin, RoleChairperson}

// ParseRole 解析角色字符串（大小写不敏感）
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allRoles {
		if r == known {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

// IsStudent 学生或学生代表
func (r Role) IsStudent() bool {
	return r == RoleStudent || r == RoleStudentRep
}

// Action 受权限控制的操作
type Action string

const (
	// 课时
	ScheduleCreate        Action = "schedule.create"
	ScheduleCreateBatch   Action = "schedule.create_batch"
	ScheduleUpdate        Action = "schedule.update"
	ScheduleCancel        Action = "schedule.cancel"
	ScheduleUncancel      Action = "schedule.uncancel"
	ScheduleDelete        Action = "schedule.delete"
	ScheduleCheckConflict Action = "schedule.check_conflict"
	ScheduleRead          Action = "schedule.read"
	ScheduleBySection     Action = "schedule.by_section"
	ScheduleMine          Action = "schedule.my_schedules"
	ScheduleMineStudent   Action = "schedule.my_student_schedules"
	ScheduleExport        Action = "schedule.export"
	ScheduleCalendar      Action = "schedule.calendar"

	// 教室
	RoomRead   Action = "room.read"
	RoomManage Action = "room.manage"

	// 课程
	CourseRead       Action = "course.read"
	CourseCreate     Action = "course.create"
	CourseMine       Action = "course.mine"
	CourseMyEnrolled Action = "course.my_enrolled"

	// 选课
	EnrollmentSelf    Action = "enrollment.self"
	EnrollmentManage  Action = "enrollment.manage"
	EnrollmentRead    Action = "enrollment.read"
	EnrollmentListAll Action = "enrollment.all_students"
)

var (
	professorOnly = []Role{RoleProfessor}
	studentsOnly  = []Role{RoleStudent, RoleStudentRep}
	everyone      = allRoles
)

// capabilities 角色×操作权限矩阵
var capabilities = map[Action][]Role{
	ScheduleCreate:        professorOnly,
	ScheduleCreateBatch:   professorOnly,
	ScheduleUpdate:        professorOnly,
	ScheduleCancel:        professorOnly,
	ScheduleUncancel:      professorOnly,
	ScheduleDelete:        professorOnly,
	ScheduleCheckConflict: professorOnly,
	ScheduleRead:          everyone,
	ScheduleBySection:     everyone,
	ScheduleMine:          professorOnly,
	ScheduleMineStudent:   studentsOnly,
	ScheduleExport:        everyone,
	ScheduleCalendar:      {RoleProfessor, RoleStudent, RoleStudentRep},

	RoomRead:   everyone,
	RoomManage: {RoleRoomAdmin, RoleChairperson},

	CourseRead:       everyone,
	CourseCreate:     professorOnly,
	CourseMine:       professorOnly,
	CourseMyEnrolled: studentsOnly,

	EnrollmentSelf:    {RoleStudent},
	EnrollmentManage:  {RoleProfessor, RoleStudentRep},
	EnrollmentRead:    everyone,
	EnrollmentListAll: professorOnly,
}

// Can 判断角色是否允许执行操作；未登记的操作一律拒绝
func Can(role Role, action Action) bool {
	for _, r := range capabilities[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Caller 请求级调用者身份，由认证中间件建立后显式传入各业务方法
type Caller struct {
	UserID string
	Role   Role
}

// Can 调用者是否允许执行操作
func (c Caller) Can(action Action) bool {
	return Can(c.Role, action)
}
