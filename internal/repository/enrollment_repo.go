package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jamaicasolina/ClassSync/internal/model"
)

// EnrollmentRepository 选课数据访问接口
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	// CreateIfAbsent 已存在时不写入，返回是否新建
	CreateIfAbsent(ctx context.Context, enrollment *model.Enrollment) (bool, error)
	Delete(ctx context.Context, courseID, studentID string) error
	Exists(ctx context.Context, courseID, studentID string) (bool, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
	// ListStudentsByCourse 学生代表在前，再按姓氏
	ListStudentsByCourse(ctx context.Context, courseID string) ([]model.EnrolledStudent, error)
	ListCoursesByStudent(ctx context.Context, studentID string) ([]model.EnrolledCourse, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepo) CreateIfAbsent(ctx context.Context, enrollment *model.Enrollment) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(enrollment)
	return result.RowsAffected > 0, result.Error
}

func (r *enrollmentRepo) Delete(ctx context.Context, courseID, studentID string) error {
	result := r.db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&model.Enrollment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *enrollmentRepo) Exists(ctx context.Context, courseID, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *enrollmentRepo) ListStudentsByCourse(ctx context.Context, courseID string) ([]model.EnrolledStudent, error) {
	var students []model.EnrolledStudent
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*, ce.enrolled_at").
		Joins("JOIN course_enrollments ce ON ce.student_id = users.user_id").
		Where("ce.course_id = ?", courseID).
		Order("users.role DESC, users.surname ASC").
		Scan(&students).Error
	return students, err
}

func (r *enrollmentRepo) ListCoursesByStudent(ctx context.Context, studentID string) ([]model.EnrolledCourse, error) {
	var courses []model.EnrolledCourse
	err := r.db.WithContext(ctx).
		Table("courses").
		Select("courses.*, CONCAT(u.first_name, ' ', u.surname) AS professor_name, ce.enrolled_at").
		Joins("JOIN course_enrollments ce ON ce.course_id = courses.course_id").
		Joins("LEFT JOIN users u ON u.user_id = courses.professor_id").
		Where("ce.student_id = ?", studentID).
		Order("courses.course_code ASC").
		Scan(&courses).Error
	return courses, err
}
