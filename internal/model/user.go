package model

import "strings"

// User 用户表 — 对应 users
type User struct {
	UserID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FirstName     string  `gorm:"type:varchar(100);not null"                     json:"first_name"`
	MiddleName    *string `gorm:"type:varchar(100)"                              json:"middle_name,omitempty"`
	Surname       string  `gorm:"type:varchar(100);not null"                     json:"surname"`
	Email         string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	StudentNumber *string `gorm:"type:varchar(30);uniqueIndex"                   json:"student_number,omitempty"`
	PasswordHash  string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role          string  `gorm:"type:varchar(20);not null"                      json:"role"` // professor | student | student_rep | room_admin | chairperson
	YearLevel     *int    `gorm:"type:smallint"                                  json:"year_level,omitempty"`
	Section       *string `gorm:"type:varchar(20)"                               json:"section,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// DisplayName 展示名："名 姓"
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.Surname)
}
