package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/jamaicasolina/ClassSync/config"
	"github.com/jamaicasolina/ClassSync/internal/repository"
	"github.com/jamaicasolina/ClassSync/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Schedule   ScheduleService
	Room       RoomService
	Course     CourseService
	Enrollment EnrollmentService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	loc := loadLocation(cfg.Export.Timezone, logger)
	schedules := NewScheduleService(repo, logger)

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Schedule:   schedules,
		Room:       NewRoomService(repo, loc, logger),
		Course:     NewCourseService(repo, logger),
		Enrollment: NewEnrollmentService(repo, logger),
		Export:     NewExportService(schedules, cfg.Export, loc, logger),
	}
}

func loadLocation(name string, logger *zap.Logger) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("时区无效，使用 UTC", zap.String("timezone", name), zap.Error(err))
		return time.UTC
	}
	return loc
}
