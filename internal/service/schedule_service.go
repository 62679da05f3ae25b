package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jamaicasolina/ClassSync/internal/access"
	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/model"
	"github.com/jamaicasolina/ClassSync/internal/repository"
	pkgerrors "github.com/jamaicasolina/ClassSync/pkg/errors"
	"github.com/jamaicasolina/ClassSync/pkg/metrics"
)

// ── 课时模块业务错误 ──

var (
	// 校验
	ErrInvalidWeekday   = errors.New("day_of_week must be monday to saturday")
	ErrInvalidTime      = errors.New("time must be HH:MM or HH:MM:SS")
	ErrInvalidTimeRange = errors.New("start_time must be before end_time")
	ErrReasonRequired   = errors.New("reason is required")
	ErrSectionRequired  = errors.New("year_level and section are required")
	ErrInvalidExcludeID = errors.New("exclude_id must be a valid schedule id")

	// 不存在
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrArchiveNotFound  = errors.New("archive not found")

	// 冲突
	ErrScheduleConflict = errors.New("room is already booked for an overlapping time slot")

	// 权限
	ErrNotCourseOwner  = errors.New("you do not own this course")
	ErrForbiddenAction = errors.New("action not allowed for your role")
)

// IsValidationError 是否属于输入校验类错误
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidWeekday) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrReasonRequired) ||
		errors.Is(err, ErrSectionRequired) ||
		errors.Is(err, ErrInvalidExcludeID)
}

// ScheduleService 课时引擎业务接口
type ScheduleService interface {
	CheckConflict(ctx context.Context, req *dto.CheckConflictRequest) (bool, error)
	Create(ctx context.Context, req *dto.CreateScheduleRequest, caller access.Caller) (*dto.ScheduleResponse, error)
	CreateBatch(ctx context.Context, req *dto.CreateBatchScheduleRequest, caller access.Caller) (*dto.BatchCreateResult, error)
	Update(ctx context.Context, req *dto.UpdateScheduleRequest, caller access.Caller) error
	Cancel(ctx context.Context, req *dto.CancelScheduleRequest, caller access.Caller) error
	Uncancel(ctx context.Context, id string, caller access.Caller) error
	Delete(ctx context.Context, id string, caller access.Caller) error

	GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	ListByCourse(ctx context.Context, courseID string) ([]dto.ScheduleResponse, error)
	ListByProfessor(ctx context.Context, professorID string) ([]dto.ScheduleResponse, error)
	ListBySection(ctx context.Context, q *dto.SectionQuery, caller access.Caller) ([]dto.ScheduleResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.ScheduleResponse, error)
	ListChanges(ctx context.Context, scheduleID string) ([]dto.ScheduleChangeResponse, error)
	GetArchive(ctx context.Context, scheduleID string) (*dto.ScheduleArchiveResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── CheckConflict ──────────────────────

func (s *scheduleService) CheckConflict(ctx context.Context, req *dto.CheckConflictRequest) (bool, error) {
	day, start, end, err := normalizeSlot(dto.ScheduleSlot{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return false, err
	}

	excludeID := strings.TrimSpace(req.ExcludeID)
	if excludeID != "" {
		if _, err := uuid.Parse(excludeID); err != nil {
			return false, ErrInvalidExcludeID
		}
	}

	room := normalizeRoom(req.RoomID)
	if room == nil {
		return false, nil
	}

	conflict, err := s.repo.Schedule.HasConflict(ctx, *room, day, start, end, excludeID)
	if err != nil {
		// room_id 不是合法 UUID 时不可能占用任何课时
		if pkgerrors.IsInvalidTextRepresentation(err) {
			return false, nil
		}
		s.logger.Error("冲突检测失败", zap.String("room_id", *room), zap.Error(err))
		return false, err
	}
	return conflict, nil
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, caller access.Caller) (*dto.ScheduleResponse, error) {
	if !caller.Can(access.ScheduleCreate) {
		observe("create", ErrForbiddenAction)
		return nil, ErrForbiddenAction
	}

	entry, err := s.createOne(ctx, req.CourseID, req.RoomID, dto.ScheduleSlot{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, caller)
	observe("create", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("课时已创建",
		zap.String("schedule_id", entry.ScheduleID),
		zap.String("course_id", entry.CourseID),
		zap.String("caller", caller.UserID),
	)
	return toScheduleResponse(entry), nil
}

// createOne 单条创建：锁教室 → 校验课程归属 → 冲突检测 → 写入，全部在同一事务内
func (s *scheduleService) createOne(ctx context.Context, courseID, roomID string, slot dto.ScheduleSlot, caller access.Caller) (*model.Schedule, error) {
	day, start, end, err := normalizeSlot(slot)
	if err != nil {
		return nil, err
	}

	entry := &model.Schedule{
		CourseID:  strings.TrimSpace(courseID),
		RoomID:    normalizeRoom(roomID),
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.authorizeCourse(ctx, tx, entry.CourseID, caller); err != nil {
			return err
		}
		if err := s.ensureSlotFree(ctx, tx, entry.RoomID, day, start, end, ""); err != nil {
			return err
		}
		if err := tx.Schedule.Create(ctx, entry); err != nil {
			return s.mapWriteError("创建课时失败", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ────────────────────── CreateBatch ──────────────────────

// CreateBatch 每个星期独立创建（各自事务），失败的星期按原样记入 FailedDays
func (s *scheduleService) CreateBatch(ctx context.Context, req *dto.CreateBatchScheduleRequest, caller access.Caller) (*dto.BatchCreateResult, error) {
	if !caller.Can(access.ScheduleCreateBatch) {
		observe("create_batch", ErrForbiddenAction)
		return nil, ErrForbiddenAction
	}

	result := &dto.BatchCreateResult{FailedDays: []string{}}
	for _, day := range req.Days {
		_, err := s.createOne(ctx, req.CourseID, req.RoomID, dto.ScheduleSlot{
			DayOfWeek: day,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}, caller)
		observe("create_batch", err)
		if err != nil {
			s.logger.Warn("批量创建课时失败",
				zap.String("course_id", req.CourseID),
				zap.String("day", day),
				zap.Error(err),
			)
			result.FailedDays = append(result.FailedDays, day)
			continue
		}
		result.CreatedCount++
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 修改教室/星期/时间，并追加一条变更记录（即使值未变化）
func (s *scheduleService) Update(ctx context.Context, req *dto.UpdateScheduleRequest, caller access.Caller) error {
	err := s.update(ctx, req, caller)
	observe("update", err)
	if err == nil {
		metrics.ScheduleChangeRecords.WithLabelValues("update").Inc()
	}
	return err
}

func (s *scheduleService) update(ctx context.Context, req *dto.UpdateScheduleRequest, caller access.Caller) error {
	if !caller.Can(access.ScheduleUpdate) {
		return ErrForbiddenAction
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ErrReasonRequired
	}
	day, start, end, err := normalizeSlot(dto.ScheduleSlot{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return err
	}
	room := normalizeRoom(req.RoomID)

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := s.loadOwnedEntry(ctx, tx, req.ID, caller)
		if err != nil {
			return err
		}
		if err := s.ensureSlotFree(ctx, tx, room, day, start, end, entry.ScheduleID); err != nil {
			return err
		}

		oldStart, oldEnd := entry.StartTime, entry.EndTime
		entry.RoomID = room
		entry.DayOfWeek = day
		entry.StartTime = start
		entry.EndTime = end
		if err := tx.Schedule.Update(ctx, entry); err != nil {
			return s.mapWriteError("修改课时失败", err)
		}

		change := &model.ScheduleChange{
			ScheduleID:   entry.ScheduleID,
			OldStartTime: &oldStart,
			OldEndTime:   &oldEnd,
			NewStartTime: &start,
			NewEndTime:   &end,
			Reason:       reason,
			ChangedBy:    caller.UserID,
			ChangedAt:    time.Now(),
		}
		if err := tx.ScheduleChange.Create(ctx, change); err != nil {
			s.logger.Error("写入变更记录失败", zap.String("schedule_id", entry.ScheduleID), zap.Error(err))
			return err
		}
		return nil
	})
}

// ────────────────────── Cancel / Uncancel ──────────────────────

// Cancel 标记取消并追加一条四个时间字段均为空的变更记录
// 已取消的课时可再次取消，原因被覆盖
func (s *scheduleService) Cancel(ctx context.Context, req *dto.CancelScheduleRequest, caller access.Caller) error {
	err := s.cancel(ctx, req, caller)
	observe("cancel", err)
	if err == nil {
		metrics.ScheduleChangeRecords.WithLabelValues("cancel").Inc()
	}
	return err
}

func (s *scheduleService) cancel(ctx context.Context, req *dto.CancelScheduleRequest, caller access.Caller) error {
	if !caller.Can(access.ScheduleCancel) {
		return ErrForbiddenAction
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ErrReasonRequired
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := s.loadOwnedEntry(ctx, tx, req.ID, caller)
		if err != nil {
			return err
		}

		entry.IsCancelled = true
		entry.CancellationReason = &reason
		if err := tx.Schedule.Update(ctx, entry); err != nil {
			return s.mapWriteError("取消课时失败", err)
		}

		change := &model.ScheduleChange{
			ScheduleID: entry.ScheduleID,
			Reason:     reason,
			ChangedBy:  caller.UserID,
			ChangedAt:  time.Now(),
		}
		if err := tx.ScheduleChange.Create(ctx, change); err != nil {
			s.logger.Error("写入变更记录失败", zap.String("schedule_id", entry.ScheduleID), zap.Error(err))
			return err
		}
		return nil
	})
}

// Uncancel 恢复课时；恢复前重新检测时段，期间被占用则返回冲突。不写变更记录
func (s *scheduleService) Uncancel(ctx context.Context, id string, caller access.Caller) error {
	err := s.uncancel(ctx, id, caller)
	observe("uncancel", err)
	return err
}

func (s *scheduleService) uncancel(ctx context.Context, id string, caller access.Caller) error {
	if !caller.Can(access.ScheduleUncancel) {
		return ErrForbiddenAction
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := s.loadOwnedEntry(ctx, tx, id, caller)
		if err != nil {
			return err
		}
		if err := s.ensureSlotFree(ctx, tx, entry.RoomID, entry.DayOfWeek, entry.StartTime, entry.EndTime, entry.ScheduleID); err != nil {
			return err
		}

		entry.IsCancelled = false
		entry.CancellationReason = nil
		if err := tx.Schedule.Update(ctx, entry); err != nil {
			return s.mapWriteError("恢复课时失败", err)
		}
		return nil
	})
}

// ────────────────────── Delete ──────────────────────

// Delete 先写归档（课时快照 + 当前全部变更记录），再物理删除课时
// schedule_changes 中的记录保持不动
func (s *scheduleService) Delete(ctx context.Context, id string, caller access.Caller) error {
	err := s.delete(ctx, id, caller)
	observe("delete", err)
	return err
}

func (s *scheduleService) delete(ctx context.Context, id string, caller access.Caller) error {
	if !caller.Can(access.ScheduleDelete) {
		return ErrForbiddenAction
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := s.loadOwnedEntry(ctx, tx, id, caller)
		if err != nil {
			return err
		}

		changes, err := tx.ScheduleChange.ListBySchedule(ctx, entry.ScheduleID)
		if err != nil {
			s.logger.Error("查询变更记录失败", zap.String("schedule_id", entry.ScheduleID), zap.Error(err))
			return err
		}
		if changes == nil {
			changes = []model.ScheduleChangeDetail{}
		}

		snapshot, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		changesJSON, err := json.Marshal(changes)
		if err != nil {
			return err
		}

		archive := &model.ScheduleArchive{
			ScheduleID: entry.ScheduleID,
			CourseID:   entry.CourseID,
			Snapshot:   datatypes.JSON(snapshot),
			Changes:    datatypes.JSON(changesJSON),
			DeletedBy:  caller.UserID,
			DeletedAt:  time.Now(),
		}
		if err := tx.ScheduleArchive.Create(ctx, archive); err != nil {
			s.logger.Error("写入课时归档失败", zap.String("schedule_id", entry.ScheduleID), zap.Error(err))
			return err
		}

		if err := tx.Schedule.Delete(ctx, entry.ScheduleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScheduleNotFound
			}
			s.logger.Error("删除课时失败", zap.String("schedule_id", entry.ScheduleID), zap.Error(err))
			return err
		}

		s.logger.Info("课时已删除并归档",
			zap.String("schedule_id", entry.ScheduleID),
			zap.Int("changes", len(changes)),
			zap.String("caller", caller.UserID),
		)
		return nil
	})
}

// ────────────────────── 查询 ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	detail, err := s.repo.Schedule.GetDetail(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课时失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toScheduleDetailResponse(detail), nil
}

func (s *scheduleService) ListByCourse(ctx context.Context, courseID string) ([]dto.ScheduleResponse, error) {
	details, err := s.repo.Schedule.ListByCourse(ctx, courseID)
	return s.projection("按课程查询课时失败", details, err)
}

func (s *scheduleService) ListByProfessor(ctx context.Context, professorID string) ([]dto.ScheduleResponse, error) {
	details, err := s.repo.Schedule.ListByProfessor(ctx, professorID)
	return s.projection("按教授查询课时失败", details, err)
}

// ListBySection 学生与学生代表只能查看本人档案中的年级班级，忽略请求参数
func (s *scheduleService) ListBySection(ctx context.Context, q *dto.SectionQuery, caller access.Caller) ([]dto.ScheduleResponse, error) {
	yearLevel, section := q.YearLevel, strings.TrimSpace(q.Section)

	if caller.Role.IsStudent() {
		yearLevel, section = 0, ""
		user, err := s.repo.User.GetByID(ctx, caller.UserID)
		if err != nil && !isNotFound(err) {
			s.logger.Error("查询用户失败", zap.String("user_id", caller.UserID), zap.Error(err))
			return nil, err
		}
		if user != nil && user.YearLevel != nil && user.Section != nil {
			yearLevel, section = *user.YearLevel, *user.Section
		}
	}

	if yearLevel <= 0 || section == "" {
		return nil, ErrSectionRequired
	}

	details, err := s.repo.Schedule.ListBySection(ctx, yearLevel, section)
	return s.projection("按班级查询课时失败", details, err)
}

func (s *scheduleService) ListByStudent(ctx context.Context, studentID string) ([]dto.ScheduleResponse, error) {
	details, err := s.repo.Schedule.ListByStudent(ctx, studentID)
	return s.projection("按学生查询课时失败", details, err)
}

func (s *scheduleService) projection(msg string, details []model.ScheduleDetail, err error) ([]dto.ScheduleResponse, error) {
	if err != nil {
		if pkgerrors.IsInvalidTextRepresentation(err) {
			return []dto.ScheduleResponse{}, nil
		}
		s.logger.Error(msg, zap.Error(err))
		return nil, err
	}
	result := make([]dto.ScheduleResponse, 0, len(details))
	for i := range details {
		result = append(result, *toScheduleDetailResponse(&details[i]))
	}
	return result, nil
}

func (s *scheduleService) ListChanges(ctx context.Context, scheduleID string) ([]dto.ScheduleChangeResponse, error) {
	changes, err := s.repo.ScheduleChange.ListBySchedule(ctx, scheduleID)
	if err != nil {
		if pkgerrors.IsInvalidTextRepresentation(err) {
			return []dto.ScheduleChangeResponse{}, nil
		}
		s.logger.Error("查询变更记录失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleChangeResponse, 0, len(changes))
	for i := range changes {
		c := &changes[i]
		result = append(result, dto.ScheduleChangeResponse{
			ChangeID:      c.ChangeID,
			ScheduleID:    c.ScheduleID,
			OldStartTime:  c.OldStartTime,
			OldEndTime:    c.OldEndTime,
			NewStartTime:  c.NewStartTime,
			NewEndTime:    c.NewEndTime,
			Reason:        c.Reason,
			ChangedBy:     c.ChangedBy,
			ChangedByName: c.ChangedByName,
			ChangedAt:     c.ChangedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

func (s *scheduleService) GetArchive(ctx context.Context, scheduleID string) (*dto.ScheduleArchiveResponse, error) {
	archive, err := s.repo.ScheduleArchive.GetBySchedule(ctx, scheduleID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrArchiveNotFound
		}
		s.logger.Error("查询课时归档失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}
	return &dto.ScheduleArchiveResponse{
		ArchiveID:  archive.ArchiveID,
		ScheduleID: archive.ScheduleID,
		CourseID:   archive.CourseID,
		Snapshot:   json.RawMessage(archive.Snapshot),
		Changes:    json.RawMessage(archive.Changes),
		DeletedBy:  archive.DeletedBy,
		DeletedAt:  archive.DeletedAt.Format(time.RFC3339),
	}, nil
}

// ────────────────────── 内部辅助 ──────────────────────

// authorizeCourse 课程须存在且由调用者负责
func (s *scheduleService) authorizeCourse(ctx context.Context, tx *repository.Repository, courseID string, caller access.Caller) error {
	course, err := tx.Course.GetByID(ctx, courseID)
	if err != nil {
		if isNotFound(err) {
			return ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}
	if course.ProfessorID != caller.UserID {
		return ErrNotCourseOwner
	}
	return nil
}

// loadOwnedEntry 读取课时并校验课程归属
func (s *scheduleService) loadOwnedEntry(ctx context.Context, tx *repository.Repository, id string, caller access.Caller) (*model.Schedule, error) {
	entry, err := tx.Schedule.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课时失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.authorizeCourse(ctx, tx, entry.CourseID, caller); err != nil {
		return nil, err
	}
	return entry, nil
}

// ensureSlotFree 锁定教室行后检测时段冲突；未分配教室时不检测
func (s *scheduleService) ensureSlotFree(ctx context.Context, tx *repository.Repository, room *string, day, start, end, excludeID string) error {
	if room == nil {
		return nil
	}

	if _, err := tx.Room.LockByID(ctx, *room); err != nil {
		if isNotFound(err) {
			return ErrRoomNotFound
		}
		s.logger.Error("锁定教室失败", zap.String("room_id", *room), zap.Error(err))
		return err
	}

	conflict, err := tx.Schedule.HasConflict(ctx, *room, day, start, end, excludeID)
	if err != nil {
		s.logger.Error("冲突检测失败", zap.String("room_id", *room), zap.Error(err))
		return err
	}
	if conflict {
		return ErrScheduleConflict
	}
	return nil
}

// mapWriteError 将写入时的约束冲突映射为业务错误，其余记录日志后原样返回
func (s *scheduleService) mapWriteError(msg string, err error) error {
	switch {
	case pkgerrors.IsExclusionViolation(err):
		return ErrScheduleConflict
	case pkgerrors.IsForeignKeyViolation(err):
		if strings.Contains(pkgerrors.ConstraintName(err), "room") {
			return ErrRoomNotFound
		}
		return ErrCourseNotFound
	case pkgerrors.IsCheckViolation(err):
		switch pkgerrors.ConstraintName(err) {
		case "schedules_time_order":
			return ErrInvalidTimeRange
		case "schedules_day_of_week_check":
			return ErrInvalidWeekday
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrScheduleNotFound
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

// isNotFound 记录不存在，或 ID 不是合法 UUID
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || pkgerrors.IsInvalidTextRepresentation(err)
}

// observe 记录课时操作结果指标
func observe(operation string, err error) {
	metrics.ScheduleOperations.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrScheduleConflict):
		return "conflict"
	case errors.Is(err, ErrScheduleNotFound), errors.Is(err, ErrCourseNotFound), errors.Is(err, ErrRoomNotFound):
		return "not_found"
	case errors.Is(err, ErrNotCourseOwner), errors.Is(err, ErrForbiddenAction):
		return "forbidden"
	case IsValidationError(err):
		return "invalid"
	default:
		return "error"
	}
}

func toScheduleResponse(e *model.Schedule) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ScheduleID:         e.ScheduleID,
		CourseID:           e.CourseID,
		RoomID:             e.RoomID,
		DayOfWeek:          e.DayOfWeek,
		StartTime:          e.StartTime,
		EndTime:            e.EndTime,
		IsCancelled:        e.IsCancelled,
		CancellationReason: e.CancellationReason,
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          e.UpdatedAt.Format(time.RFC3339),
	}
}

func toScheduleDetailResponse(d *model.ScheduleDetail) *dto.ScheduleResponse {
	resp := toScheduleResponse(&d.Schedule)
	resp.CourseCode = d.CourseCode
	resp.CourseName = d.CourseName
	resp.ProfessorID = d.ProfessorID
	resp.Section = model.SectionLabel(d.YearLevel, d.Section)
	resp.RoomNumber = d.RoomNumber
	resp.Building = d.Building
	resp.ProfessorName = d.ProfessorName
	return resp
}
