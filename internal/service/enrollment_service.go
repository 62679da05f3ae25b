package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jamaicasolina/ClassSync/internal/access"
	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/model"
	"github.com/jamaicasolina/ClassSync/internal/repository"
	pkgerrors "github.com/jamaicasolina/ClassSync/pkg/errors"
)

// ── 选课模块业务错误 ──

var (
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentRequired    = errors.New("student_id is required")
	ErrStudentIDsRequired = errors.New("student_ids must be a non-empty array")
	ErrNotClassmate       = errors.New("student representatives can only manage students in their own section")
)

// EnrollmentService 选课业务接口
type EnrollmentService interface {
	Enroll(ctx context.Context, req *dto.EnrollmentRequest, caller access.Caller) error
	Unenroll(ctx context.Context, req *dto.EnrollmentRequest, caller access.Caller) error
	IsEnrolled(ctx context.Context, courseID, studentID string) (bool, error)
	Count(ctx context.Context, courseID string) (int64, error)
	EnrollBatch(ctx context.Context, req *dto.BatchEnrollmentRequest, caller access.Caller) (*dto.BatchEnrollmentResult, error)
	ListStudentsBySection(ctx context.Context, q *dto.StudentSectionQuery) ([]dto.StudentResponse, error)
	ListAllStudents(ctx context.Context, caller access.Caller) ([]dto.StudentResponse, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

func (s *enrollmentService) Enroll(ctx context.Context, req *dto.EnrollmentRequest, caller access.Caller) error {
	courseID, studentID, err := s.resolve(ctx, req, caller)
	if err != nil {
		return err
	}

	enrollment := &model.Enrollment{
		CourseID:   courseID,
		StudentID:  studentID,
		EnrolledAt: time.Now(),
	}
	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return ErrAlreadyEnrolled
		}
		s.logger.Error("选课失败", zap.String("course_id", courseID), zap.String("student_id", studentID), zap.Error(err))
		return err
	}
	return nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, req *dto.EnrollmentRequest, caller access.Caller) error {
	courseID, studentID, err := s.resolve(ctx, req, caller)
	if err != nil {
		return err
	}

	if err := s.repo.Enrollment.Delete(ctx, courseID, studentID); err != nil {
		if isNotFound(err) {
			return ErrEnrollmentNotFound
		}
		s.logger.Error("退课失败", zap.String("course_id", courseID), zap.String("student_id", studentID), zap.Error(err))
		return err
	}
	return nil
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, courseID, studentID string) (bool, error) {
	ok, err := s.repo.Enrollment.Exists(ctx, courseID, studentID)
	if err != nil {
		if pkgerrors.IsInvalidTextRepresentation(err) {
			return false, nil
		}
		s.logger.Error("查询选课失败", zap.Error(err))
		return false, err
	}
	return ok, nil
}

func (s *enrollmentService) Count(ctx context.Context, courseID string) (int64, error) {
	n, err := s.repo.Enrollment.CountByCourse(ctx, courseID)
	if err != nil {
		if pkgerrors.IsInvalidTextRepresentation(err) {
			return 0, nil
		}
		s.logger.Error("统计选课人数失败", zap.String("course_id", courseID), zap.Error(err))
		return 0, err
	}
	return n, nil
}

// EnrollBatch 逐个校验后在同一事务内写入；已选、不存在或无权代办的学生计入 skipped_ids
func (s *enrollmentService) EnrollBatch(ctx context.Context, req *dto.BatchEnrollmentRequest, caller access.Caller) (*dto.BatchEnrollmentResult, error) {
	if !caller.Can(access.EnrollmentManage) {
		return nil, ErrForbiddenAction
	}
	if len(req.StudentIDs) == 0 {
		return nil, ErrStudentIDsRequired
	}

	course, err := s.course(ctx, strings.TrimSpace(req.CourseID))
	if err != nil {
		return nil, err
	}
	if caller.Role == access.RoleProfessor && course.ProfessorID != caller.UserID {
		return nil, ErrNotCourseOwner
	}
	rep, err := s.representative(ctx, caller)
	if err != nil {
		return nil, err
	}

	result := &dto.BatchEnrollmentResult{SkippedIDs: []string{}}
	seen := make(map[string]bool, len(req.StudentIDs))
	var eligible []string
	for _, raw := range req.StudentIDs {
		id := strings.TrimSpace(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		if _, err := s.student(ctx, id, rep); err != nil {
			if errors.Is(err, ErrStudentNotFound) || errors.Is(err, ErrNotClassmate) {
				result.SkippedIDs = append(result.SkippedIDs, id)
				continue
			}
			return nil, err
		}
		eligible = append(eligible, id)
	}

	// 查询放在事务外：非法 UUID 触发的 22P02 会中止事务
	now := time.Now()
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for _, id := range eligible {
			created, err := tx.Enrollment.CreateIfAbsent(ctx, &model.Enrollment{
				CourseID:   course.CourseID,
				StudentID:  id,
				EnrolledAt: now,
			})
			if err != nil {
				return err
			}
			if !created {
				result.SkippedIDs = append(result.SkippedIDs, id)
				continue
			}
			result.EnrolledCount++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("批量选课失败", zap.String("course_id", course.CourseID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("批量选课完成",
		zap.String("course_id", course.CourseID),
		zap.String("by", caller.UserID),
		zap.Int("enrolled", result.EnrolledCount),
		zap.Int("skipped", len(result.SkippedIDs)),
	)
	return result, nil
}

func (s *enrollmentService) ListStudentsBySection(ctx context.Context, q *dto.StudentSectionQuery) ([]dto.StudentResponse, error) {
	users, err := s.repo.User.ListStudents(ctx, q.YearLevel, strings.TrimSpace(q.Section))
	if err != nil {
		s.logger.Error("按班级查询学生失败", zap.Int("year_level", q.YearLevel), zap.String("section", q.Section), zap.Error(err))
		return nil, err
	}
	return toStudentResponses(users), nil
}

func (s *enrollmentService) ListAllStudents(ctx context.Context, caller access.Caller) ([]dto.StudentResponse, error) {
	if !caller.Can(access.EnrollmentListAll) {
		return nil, ErrForbiddenAction
	}
	users, err := s.repo.User.ListStudents(ctx, 0, "")
	if err != nil {
		s.logger.Error("查询全部学生失败", zap.Error(err))
		return nil, err
	}
	return toStudentResponses(users), nil
}

// resolve 确定操作的课程与学生
// 学生只能为本人选课；教授只能管理自己的课程；学生代表只能为同班同学代办
func (s *enrollmentService) resolve(ctx context.Context, req *dto.EnrollmentRequest, caller access.Caller) (string, string, error) {
	courseID := strings.TrimSpace(req.CourseID)
	studentID := strings.TrimSpace(req.StudentID)

	course, err := s.course(ctx, courseID)
	if err != nil {
		return "", "", err
	}

	switch {
	case caller.Can(access.EnrollmentSelf):
		if studentID != "" && studentID != caller.UserID {
			return "", "", ErrForbiddenAction
		}
		return course.CourseID, caller.UserID, nil

	case caller.Can(access.EnrollmentManage):
		if caller.Role == access.RoleProfessor && course.ProfessorID != caller.UserID {
			return "", "", ErrNotCourseOwner
		}
		if caller.Role.IsStudent() && (studentID == "" || studentID == caller.UserID) {
			return course.CourseID, caller.UserID, nil
		}
		if studentID == "" {
			return "", "", ErrStudentRequired
		}
		rep, err := s.representative(ctx, caller)
		if err != nil {
			return "", "", err
		}
		student, err := s.student(ctx, studentID, rep)
		if err != nil {
			return "", "", err
		}
		return course.CourseID, student.UserID, nil
	}

	return "", "", ErrForbiddenAction
}

func (s *enrollmentService) course(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// representative 学生代表本人档案；教授返回 nil，不受班级限制
func (s *enrollmentService) representative(ctx context.Context, caller access.Caller) (*model.User, error) {
	if caller.Role != access.RoleStudentRep {
		return nil, nil
	}
	rep, err := s.repo.User.GetByID(ctx, caller.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrForbiddenAction
		}
		s.logger.Error("查询学生代表失败", zap.String("user_id", caller.UserID), zap.Error(err))
		return nil, err
	}
	return rep, nil
}

// student 查询目标学生；rep 非 nil 时要求与其同年级同班级
func (s *enrollmentService) student(ctx context.Context, studentID string, rep *model.User) (*model.User, error) {
	student, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if role, _ := access.ParseRole(student.Role); !role.IsStudent() {
		return nil, ErrStudentNotFound
	}
	if rep != nil && !sameSection(rep, student) {
		return nil, ErrNotClassmate
	}
	return student, nil
}

// sameSection 档案缺少年级或班级时视为不同班
func sameSection(a, b *model.User) bool {
	if a.YearLevel == nil || a.Section == nil || b.YearLevel == nil || b.Section == nil {
		return false
	}
	return *a.YearLevel == *b.YearLevel && *a.Section == *b.Section
}

func toStudentResponse(u *model.User) dto.StudentResponse {
	return dto.StudentResponse{
		ID:            u.UserID,
		FirstName:     u.FirstName,
		MiddleName:    u.MiddleName,
		Surname:       u.Surname,
		StudentNumber: u.StudentNumber,
		Role:          u.Role,
		YearLevel:     u.YearLevel,
		Section:       u.Section,
	}
}

func toStudentResponses(users []model.User) []dto.StudentResponse {
	result := make([]dto.StudentResponse, 0, len(users))
	for i := range users {
		result = append(result, toStudentResponse(&users[i]))
	}
	return result
}
