package dto

// ── 课程 / 选课模块 DTO ──

// CreateCourseRequest 创建课程请求，负责教授为调用者
type CreateCourseRequest struct {
	CourseCode  string `json:"course_code" binding:"required,max=30"`
	CourseName  string `json:"course_name" binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	YearLevel   int    `json:"year_level"  binding:"required,min=1,max=6"`
	Section     string `json:"section"     binding:"required,max=20"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID            string `json:"course_id"`
	CourseCode    string `json:"course_code"`
	CourseName    string `json:"course_name"`
	Description   string `json:"description,omitempty"`
	ProfessorID   string `json:"professor_id"`
	ProfessorName string `json:"professor_name,omitempty"`
	YearLevel     int    `json:"year_level"`
	Section       string `json:"section"`
	SectionLabel  string `json:"section_label"`
}

// EnrollmentRequest 选课 / 退课请求
// student_id 为空时对调用者本人操作
type EnrollmentRequest struct {
	CourseID  string `json:"course_id"  form:"course_id"  binding:"required"`
	StudentID string `json:"student_id" form:"student_id"`
}

// CourseIDQuery 仅携带课程 ID 的查询参数
type CourseIDQuery struct {
	CourseID string `form:"course_id" binding:"required"`
}

// BatchEnrollmentRequest 教授或学生代表批量选课
type BatchEnrollmentRequest struct {
	CourseID   string   `json:"course_id"   binding:"required"`
	StudentIDs []string `json:"student_ids" binding:"max=500"`
}

// BatchEnrollmentResult 批量选课结果；skipped_ids 为已选、不存在或无权代办的学生
type BatchEnrollmentResult struct {
	EnrolledCount int      `json:"enrolled_count"`
	SkippedIDs    []string `json:"skipped_ids"`
}

// StudentSectionQuery 按年级班级列出学生
type StudentSectionQuery struct {
	YearLevel int    `form:"year_level" binding:"required,min=1,max=6"`
	Section   string `form:"section"    binding:"required,max=20"`
}

// StudentResponse 学生名单条目；enrolled_at 仅在课程名单中出现
type StudentResponse struct {
	ID            string  `json:"user_id"`
	FirstName     string  `json:"first_name"`
	MiddleName    *string `json:"middle_name,omitempty"`
	Surname       string  `json:"surname"`
	StudentNumber *string `json:"student_number,omitempty"`
	Role          string  `json:"role"`
	YearLevel     *int    `json:"year_level,omitempty"`
	Section       *string `json:"section,omitempty"`
	EnrolledAt    string  `json:"enrolled_at,omitempty"`
}

// EnrolledCourseResponse 学生已选课程
type EnrolledCourseResponse struct {
	CourseResponse
	EnrolledAt string `json:"enrolled_at"`
}
