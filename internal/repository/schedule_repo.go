package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jamaicasolina/ClassSync/internal/model"
)

// ScheduleRepository 课时数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	GetDetail(ctx context.Context, id string) (*model.ScheduleDetail, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id string) error
	// HasConflict 同一教室同一天是否存在与 [start, end) 重叠的有效课时，excludeID 非空时排除该课时
	HasConflict(ctx context.Context, roomID, day, start, end, excludeID string) (bool, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.ScheduleDetail, error)
	ListByProfessor(ctx context.Context, professorID string) ([]model.ScheduleDetail, error)
	ListBySection(ctx context.Context, yearLevel int, section string) ([]model.ScheduleDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.ScheduleDetail, error)
}

// ScheduleChangeRepository 课时变更记录数据访问接口（只追加）
type ScheduleChangeRepository interface {
	Create(ctx context.Context, change *model.ScheduleChange) error
	// ListBySchedule 按时间倒序
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleChangeDetail, error)
}

// ScheduleArchiveRepository 课时删除归档数据访问接口
type ScheduleArchiveRepository interface {
	Create(ctx context.Context, archive *model.ScheduleArchive) error
	GetBySchedule(ctx context.Context, scheduleID string) (*model.ScheduleArchive, error)
}

// ── Schedule Repository 实现 ──

// TIME 列统一以 HH:MM:SS 文本读出
const scheduleColumns = `schedules.schedule_id, schedules.course_id, schedules.room_id, schedules.day_of_week,
	to_char(schedules.start_time, 'HH24:MI:SS') AS start_time,
	to_char(schedules.end_time, 'HH24:MI:SS') AS end_time,
	schedules.is_cancelled, schedules.cancellation_reason, schedules.created_at, schedules.updated_at`

const scheduleDetailColumns = scheduleColumns + `,
	c.course_code, c.course_name, c.professor_id, c.year_level, c.section,
	r.room_number, r.building,
	CONCAT(u.first_name, ' ', u.surname) AS professor_name`

// 周一至周六，再按开始时间
const scheduleWeekOrder = `array_position(
	ARRAY['monday','tuesday','wednesday','thursday','friday','saturday']::varchar[],
	schedules.day_of_week) ASC, schedules.start_time ASC`

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Select(scheduleColumns).
		Where("schedules.schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// detailQuery 课时 + 课程 + 教室 + 教授 联表
func (r *scheduleRepo) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("schedules").
		Select(scheduleDetailColumns).
		Joins("JOIN courses c ON c.course_id = schedules.course_id").
		Joins("LEFT JOIN rooms r ON r.room_id = schedules.room_id").
		Joins("LEFT JOIN users u ON u.user_id = c.professor_id")
}

func (r *scheduleRepo) GetDetail(ctx context.Context, id string) (*model.ScheduleDetail, error) {
	var detail model.ScheduleDetail
	err := r.detailQuery(ctx).
		Where("schedules.schedule_id = ?", id).
		Take(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_id = ?", schedule.ScheduleID).
		Updates(map[string]interface{}{
			"room_id":             schedule.RoomID,
			"day_of_week":         schedule.DayOfWeek,
			"start_time":          schedule.StartTime,
			"end_time":            schedule.EndTime,
			"is_cancelled":        schedule.IsCancelled,
			"cancellation_reason": schedule.CancellationReason,
			"updated_at":          now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	schedule.UpdatedAt = now
	return nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.Schedule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *scheduleRepo) HasConflict(ctx context.Context, roomID, day, start, end, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("room_id = ? AND day_of_week = ? AND is_cancelled = FALSE", roomID, day).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != "" {
		db = db.Where("schedule_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *scheduleRepo) ListByCourse(ctx context.Context, courseID string) ([]model.ScheduleDetail, error) {
	var details []model.ScheduleDetail
	err := r.detailQuery(ctx).
		Where("schedules.course_id = ?", courseID).
		Order(scheduleWeekOrder).
		Scan(&details).Error
	return details, err
}

func (r *scheduleRepo) ListByProfessor(ctx context.Context, professorID string) ([]model.ScheduleDetail, error) {
	var details []model.ScheduleDetail
	err := r.detailQuery(ctx).
		Where("c.professor_id = ?", professorID).
		Order(scheduleWeekOrder).
		Scan(&details).Error
	return details, err
}

func (r *scheduleRepo) ListBySection(ctx context.Context, yearLevel int, section string) ([]model.ScheduleDetail, error) {
	var details []model.ScheduleDetail
	err := r.detailQuery(ctx).
		Where("c.year_level = ? AND c.section = ?", yearLevel, section).
		Order(scheduleWeekOrder).
		Scan(&details).Error
	return details, err
}

func (r *scheduleRepo) ListByStudent(ctx context.Context, studentID string) ([]model.ScheduleDetail, error) {
	var details []model.ScheduleDetail
	err := r.detailQuery(ctx).
		Joins("JOIN course_enrollments ce ON ce.course_id = schedules.course_id").
		Where("ce.student_id = ?", studentID).
		Order(scheduleWeekOrder).
		Scan(&details).Error
	return details, err
}

// ── ScheduleChange Repository 实现 ──

type scheduleChangeRepo struct {
	db *gorm.DB
}

// NewScheduleChangeRepo 创建 ScheduleChangeRepository 实例
func NewScheduleChangeRepo(db *gorm.DB) ScheduleChangeRepository {
	return &scheduleChangeRepo{db: db}
}

func (r *scheduleChangeRepo) Create(ctx context.Context, change *model.ScheduleChange) error {
	return r.db.WithContext(ctx).Create(change).Error
}

func (r *scheduleChangeRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleChangeDetail, error) {
	var changes []model.ScheduleChangeDetail
	err := r.db.WithContext(ctx).
		Table("schedule_changes").
		Select(`schedule_changes.change_id, schedule_changes.schedule_id,
			to_char(schedule_changes.old_start_time, 'HH24:MI:SS') AS old_start_time,
			to_char(schedule_changes.old_end_time, 'HH24:MI:SS') AS old_end_time,
			to_char(schedule_changes.new_start_time, 'HH24:MI:SS') AS new_start_time,
			to_char(schedule_changes.new_end_time, 'HH24:MI:SS') AS new_end_time,
			schedule_changes.reason, schedule_changes.changed_by, schedule_changes.changed_at,
			CONCAT(u.first_name, ' ', u.surname) AS changed_by_name`).
		Joins("LEFT JOIN users u ON u.user_id = schedule_changes.changed_by").
		Where("schedule_changes.schedule_id = ?", scheduleID).
		Order("schedule_changes.changed_at DESC").
		Scan(&changes).Error
	return changes, err
}

// ── ScheduleArchive Repository 实现 ──

type scheduleArchiveRepo struct {
	db *gorm.DB
}

// NewScheduleArchiveRepo 创建 ScheduleArchiveRepository 实例
func NewScheduleArchiveRepo(db *gorm.DB) ScheduleArchiveRepository {
	return &scheduleArchiveRepo{db: db}
}

func (r *scheduleArchiveRepo) Create(ctx context.Context, archive *model.ScheduleArchive) error {
	return r.db.WithContext(ctx).Create(archive).Error
}

func (r *scheduleArchiveRepo) GetBySchedule(ctx context.Context, scheduleID string) (*model.ScheduleArchive, error) {
	var archive model.ScheduleArchive
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		First(&archive).Error
	if err != nil {
		return nil, err
	}
	return &archive, nil
}
