package model

import (
	"time"

	"gorm.io/datatypes"
)

// Schedule 课时表 — 对应 schedules
// 每条记录是某门课程每周固定的一个上课时段
type Schedule struct {
	ScheduleID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	CourseID           string  `gorm:"type:uuid;not null"                             json:"course_id"`
	RoomID             *string `gorm:"type:uuid"                                      json:"room_id"` // NULL 表示未分配教室
	DayOfWeek          string  `gorm:"type:varchar(10);not null"                      json:"day_of_week"`
	StartTime          string  `gorm:"type:time;not null"                             json:"start_time"`
	EndTime            string  `gorm:"type:time;not null"                             json:"end_time"`
	IsCancelled        bool    `gorm:"not null;default:false"                         json:"is_cancelled"`
	CancellationReason *string `gorm:"type:varchar(500)"                              json:"cancellation_reason"`
	BaseModel
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// ScheduleDetail 课时联表视图（课程、班级、教室、教授）
// 非实体表，由 Repository 的 Joins 查询填充
type ScheduleDetail struct {
	Schedule
	CourseCode    string  `json:"course_code"`
	CourseName    string  `json:"course_name"`
	ProfessorID   string  `json:"professor_id"`
	YearLevel     int     `json:"year_level"`
	Section       string  `json:"section"`
	RoomNumber    *string `json:"room_number"`
	Building      *string `json:"building"`
	ProfessorName *string `json:"professor_name"`
}

// ScheduleChange 课时变更记录表 — 对应 schedule_changes（只追加的审计日志）
// 取消事件的四个时间字段均为 NULL
type ScheduleChange struct {
	ChangeID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"change_id"`
	ScheduleID   string    `gorm:"type:uuid;not null"                             json:"schedule_id"`
	OldStartTime *string   `gorm:"type:time"                                      json:"old_start_time"`
	OldEndTime   *string   `gorm:"type:time"                                      json:"old_end_time"`
	NewStartTime *string   `gorm:"type:time"                                      json:"new_start_time"`
	NewEndTime   *string   `gorm:"type:time"                                      json:"new_end_time"`
	Reason       string    `gorm:"type:varchar(500);not null"                     json:"reason"`
	ChangedBy    string    `gorm:"type:uuid;not null"                             json:"changed_by"`
	ChangedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"changed_at"`
}

// TableName 指定表名
func (ScheduleChange) TableName() string { return "schedule_changes" }

// IsCancellation 是否为取消事件记录
func (c *ScheduleChange) IsCancellation() bool {
	return c.OldStartTime == nil && c.OldEndTime == nil && c.NewStartTime == nil && c.NewEndTime == nil
}

// ScheduleChangeDetail 变更记录 + 操作人姓名
type ScheduleChangeDetail struct {
	ScheduleChange
	ChangedByName *string `json:"changed_by_name"`
}

// ScheduleArchive 课时删除归档表 — 对应 schedule_archives
// 删除课时前保存课时快照与当时的全部变更记录
type ScheduleArchive struct {
	ArchiveID  string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"archive_id"`
	ScheduleID string         `gorm:"type:uuid;not null;uniqueIndex"                 json:"schedule_id"`
	CourseID   string         `gorm:"type:uuid;not null"                             json:"course_id"`
	Snapshot   datatypes.JSON `gorm:"type:jsonb;not null"                            json:"snapshot"`
	Changes    datatypes.JSON `gorm:"type:jsonb;not null"                            json:"changes"`
	DeletedBy  string         `gorm:"type:uuid;not null"                             json:"deleted_by"`
	DeletedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"deleted_at"`
}

// TableName 指定表名
func (ScheduleArchive) TableName() string { return "schedule_archives" }

// RoomOccupancy 教室当前占用视图
// 无有效课时占用时课程相关字段为 NULL
type RoomOccupancy struct {
	Room
	ScheduleID    *string `json:"schedule_id"`
	CourseCode    *string `json:"course_code"`
	ProfessorName *string `json:"professor"`
	YearLevel     *int    `json:"-"`
	SectionName   *string `json:"-"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
}
