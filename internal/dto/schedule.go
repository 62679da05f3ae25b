package dto

import "encoding/json"

// ── 课时模块 DTO ──

// CreateScheduleRequest 创建课时请求；room_id 为空表示不分配教室
type CreateScheduleRequest struct {
	CourseID  string `json:"course_id"   binding:"required"`
	RoomID    string `json:"room_id"`
	DayOfWeek string `json:"day_of_week" binding:"required,weekday"`
	StartTime string `json:"start_time"  binding:"required,clock"`
	EndTime   string `json:"end_time"    binding:"required,clock"`
}

// CreateBatchScheduleRequest 批量创建课时请求：多个星期共用同一时段
// days 中的非法星期不在绑定阶段拒绝，而是计入 failed_days
type CreateBatchScheduleRequest struct {
	CourseID  string   `json:"course_id"  binding:"required"`
	RoomID    string   `json:"room_id"`
	Days      []string `json:"days"       binding:"required,min=1"`
	StartTime string   `json:"start_time" binding:"required,clock"`
	EndTime   string   `json:"end_time"   binding:"required,clock"`
}

// UpdateScheduleRequest 修改课时请求
type UpdateScheduleRequest struct {
	ID        string `json:"id"          binding:"required"`
	RoomID    string `json:"room_id"`
	DayOfWeek string `json:"day_of_week" binding:"required,weekday"`
	StartTime string `json:"start_time"  binding:"required,clock"`
	EndTime   string `json:"end_time"    binding:"required,clock"`
	Reason    string `json:"reason"      binding:"required,max=500"`
}

// CancelScheduleRequest 取消课时请求
type CancelScheduleRequest struct {
	ID     string `json:"id"     binding:"required"`
	Reason string `json:"reason" binding:"required,max=500"`
}

// ScheduleIDRequest 仅携带课时 ID 的请求（uncancel / delete）
type ScheduleIDRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// CheckConflictRequest 冲突预检查询参数
type CheckConflictRequest struct {
	RoomID    string `form:"room_id"     binding:"required"`
	DayOfWeek string `form:"day_of_week" binding:"required,weekday"`
	StartTime string `form:"start_time"  binding:"required,clock"`
	EndTime   string `form:"end_time"    binding:"required,clock"`
	ExcludeID string `form:"exclude_id"`
}

// SectionQuery 按年级班级查询；学生角色一律取其档案中的年级班级
type SectionQuery struct {
	YearLevel int    `form:"year_level" binding:"omitempty,min=1"`
	Section   string `form:"section"`
}

// ScheduleSlot 一个星期几 + 起止时间
type ScheduleSlot struct {
	DayOfWeek string
	StartTime string
	EndTime   string
}

// ── 响应 ──

// ScheduleResponse 课时响应；课程、教室、教授字段仅在联表查询中填充
type ScheduleResponse struct {
	ScheduleID         string  `json:"schedule_id"`
	CourseID           string  `json:"course_id"`
	RoomID             *string `json:"room_id"`
	DayOfWeek          string  `json:"day_of_week"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	IsCancelled        bool    `json:"is_cancelled"`
	CancellationReason *string `json:"cancellation_reason"`
	CourseCode         string  `json:"course_code,omitempty"`
	CourseName         string  `json:"course_name,omitempty"`
	ProfessorID        string  `json:"professor_id,omitempty"`
	Section            string  `json:"section,omitempty"`
	RoomNumber         *string `json:"room_number,omitempty"`
	Building           *string `json:"building,omitempty"`
	ProfessorName      *string `json:"professor_name,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// BatchCreateResult 批量创建结果
type BatchCreateResult struct {
	CreatedCount int      `json:"created_count"`
	FailedDays   []string `json:"failed_days"`
}

// ScheduleChangeResponse 变更记录响应；取消事件四个时间字段均为 null
type ScheduleChangeResponse struct {
	ChangeID      string  `json:"change_id"`
	ScheduleID    string  `json:"schedule_id"`
	OldStartTime  *string `json:"old_start_time"`
	OldEndTime    *string `json:"old_end_time"`
	NewStartTime  *string `json:"new_start_time"`
	NewEndTime    *string `json:"new_end_time"`
	Reason        string  `json:"reason"`
	ChangedBy     string  `json:"changed_by"`
	ChangedByName *string `json:"changed_by_name"`
	ChangedAt     string  `json:"changed_at"`
}

// ScheduleArchiveResponse 删除归档响应
type ScheduleArchiveResponse struct {
	ArchiveID  string          `json:"archive_id"`
	ScheduleID string          `json:"schedule_id"`
	CourseID   string          `json:"course_id"`
	Snapshot   json.RawMessage `json:"snapshot"`
	Changes    json.RawMessage `json:"changes"`
	DeletedBy  string          `json:"deleted_by"`
	DeletedAt  string          `json:"deleted_at"`
}
