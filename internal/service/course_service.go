package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jamaicasolina/ClassSync/internal/access"
	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/model"
	"github.com/jamaicasolina/ClassSync/internal/repository"
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, caller access.Caller) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	ListMine(ctx context.Context, caller access.Caller) ([]dto.CourseResponse, error)
	// ListStudents 课程选课名单
	ListStudents(ctx context.Context, courseID string) ([]dto.StudentResponse, error)
	// ListEnrolled 学生本人已选课程
	ListEnrolled(ctx context.Context, caller access.Caller) ([]dto.EnrolledCourseResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, caller access.Caller) (*dto.CourseResponse, error) {
	if !caller.Can(access.CourseCreate) {
		return nil, ErrForbiddenAction
	}

	course := &model.Course{
		CourseCode:  strings.TrimSpace(req.CourseCode),
		CourseName:  strings.TrimSpace(req.CourseName),
		Description: req.Description,
		ProfessorID: caller.UserID,
		YearLevel:   req.YearLevel,
		Section:     strings.TrimSpace(req.Section),
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) ListMine(ctx context.Context, caller access.Caller) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByProfessor(ctx, caller.UserID)
	if err != nil {
		s.logger.Error("查询教授课程失败", zap.String("professor_id", caller.UserID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result, nil
}

func (s *courseService) ListStudents(ctx context.Context, courseID string) ([]dto.StudentResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if isNotFound(err) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}

	students, err := s.repo.Enrollment.ListStudentsByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询选课名单失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		resp := toStudentResponse(&students[i].User)
		resp.EnrolledAt = students[i].EnrolledAt.Format(time.RFC3339)
		result = append(result, resp)
	}
	return result, nil
}

func (s *courseService) ListEnrolled(ctx context.Context, caller access.Caller) ([]dto.EnrolledCourseResponse, error) {
	if !caller.Can(access.CourseMyEnrolled) {
		return nil, ErrForbiddenAction
	}

	courses, err := s.repo.Enrollment.ListCoursesByStudent(ctx, caller.UserID)
	if err != nil {
		s.logger.Error("查询已选课程失败", zap.String("student_id", caller.UserID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EnrolledCourseResponse, 0, len(courses))
	for i := range courses {
		resp := dto.EnrolledCourseResponse{
			CourseResponse: toCourseResponse(&courses[i].Course),
			EnrolledAt:     courses[i].EnrolledAt.Format(time.RFC3339),
		}
		if courses[i].ProfessorName != nil {
			resp.ProfessorName = *courses[i].ProfessorName
		}
		result = append(result, resp)
	}
	return result, nil
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:           c.CourseID,
		CourseCode:   c.CourseCode,
		CourseName:   c.CourseName,
		Description:  c.Description,
		ProfessorID:  c.ProfessorID,
		YearLevel:    c.YearLevel,
		Section:      c.Section,
		SectionLabel: model.SectionLabel(c.YearLevel, c.Section),
	}
	if c.Professor != nil {
		resp.ProfessorName = c.Professor.DisplayName()
	}
	return resp
}
