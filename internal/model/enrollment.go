package model

import "time"

// Enrollment 选课表 — 对应 course_enrollments（复合主键）
type Enrollment struct {
	CourseID   string    `gorm:"type:uuid;primaryKey"               json:"course_id"`
	StudentID  string    `gorm:"type:uuid;primaryKey"               json:"student_id"`
	EnrolledAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"enrolled_at"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "course_enrollments" }

// EnrolledStudent 课程名单中的一名学生，附选课时间
type EnrolledStudent struct {
	User
	EnrolledAt time.Time `json:"enrolled_at"`
}

// EnrolledCourse 学生已选课程，附负责教授姓名与选课时间
type EnrolledCourse struct {
	Course
	ProfessorName *string   `json:"professor_name"`
	EnrolledAt    time.Time `json:"enrolled_at"`
}
