package model

import "strconv"

// Course 课程表 — 对应 courses
type Course struct {
	CourseID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	CourseCode  string `gorm:"type:varchar(30);not null"                      json:"course_code"`
	CourseName  string `gorm:"type:varchar(200);not null"                     json:"course_name"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	ProfessorID string `gorm:"type:uuid;not null"                             json:"professor_id"`
	YearLevel   int    `gorm:"type:smallint;not null"                         json:"year_level"`
	Section     string `gorm:"type:varchar(20);not null"                      json:"section"`
	BaseModel

	// 关联
	Professor *User `gorm:"foreignKey:ProfessorID;references:UserID" json:"professor,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// SectionLabel 年级-班级标签，如 "3-A"
func SectionLabel(yearLevel int, section string) string {
	return strconv.Itoa(yearLevel) + "-" + section
}
