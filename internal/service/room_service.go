package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/model"
	"github.com/jamaicasolina/ClassSync/internal/repository"
	pkgerrors "github.com/jamaicasolina/ClassSync/pkg/errors"
)

// ── 教室模块业务错误 ──

var (
	ErrRoomDuplicate     = errors.New("room already exists in this building")
	ErrInvalidRoomStatus = errors.New("status must be available, occupied or maintenance")
)

// RoomService 教室业务接口
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	List(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateRoomStatusRequest) error
	// Occupancy 各教室在指定星期/时刻被哪条有效课时占用；缺省取 now
	Occupancy(ctx context.Context, req *dto.OccupancyRequest, now time.Time) ([]dto.RoomOccupancyResponse, error)
}

type roomService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewRoomService 创建 RoomService 实例；loc 为校区所在时区
func NewRoomService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) RoomService {
	if loc == nil {
		loc = time.UTC
	}
	return &roomService{repo: repo, loc: loc, logger: logger}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	status := req.Status
	if status == "" {
		status = model.RoomStatusAvailable
	}
	if !model.IsValidRoomStatus(status) {
		return nil, ErrInvalidRoomStatus
	}

	room := &model.Room{
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		Building:   strings.TrimSpace(req.Building),
		Capacity:   req.Capacity,
		Status:     status,
	}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrRoomDuplicate
		}
		s.logger.Error("创建教室失败", zap.Error(err))
		return nil, err
	}

	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *roomService) List(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx, req.Status)
	if err != nil {
		s.logger.Error("列出教室失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, toRoomResponse(&rooms[i]))
	}
	return result, nil
}

func (s *roomService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateRoomStatusRequest) error {
	if !model.IsValidRoomStatus(req.Status) {
		return ErrInvalidRoomStatus
	}
	if err := s.repo.Room.UpdateStatus(ctx, id, req.Status); err != nil {
		if isNotFound(err) {
			return ErrRoomNotFound
		}
		s.logger.Error("修改教室状态失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *roomService) Occupancy(ctx context.Context, req *dto.OccupancyRequest, now time.Time) ([]dto.RoomOccupancyResponse, error) {
	local := now.In(s.loc)

	day := strings.ToLower(local.Weekday().String())
	if req.DayOfWeek != "" {
		d, err := NormalizeWeekday(req.DayOfWeek)
		if err != nil {
			return nil, err
		}
		day = d
	}

	at := local.Format("15:04:05")
	if req.Time != "" {
		t, err := NormalizeClock(req.Time)
		if err != nil {
			return nil, err
		}
		at = t
	}

	rows, err := s.repo.Room.ListOccupancy(ctx, day, at)
	if err != nil {
		s.logger.Error("查询教室占用失败", zap.String("day", day), zap.String("at", at), zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoomOccupancyResponse, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		item := dto.RoomOccupancyResponse{RoomResponse: toRoomResponse(&r.Room)}
		if r.ScheduleID != nil {
			occ := &dto.OccupantResponse{ScheduleID: *r.ScheduleID}
			if r.CourseCode != nil {
				occ.CourseCode = *r.CourseCode
			}
			if r.ProfessorName != nil {
				occ.Professor = *r.ProfessorName
			}
			if r.YearLevel != nil && r.SectionName != nil {
				occ.Section = model.SectionLabel(*r.YearLevel, *r.SectionName)
			}
			if r.StartTime != nil {
				occ.StartTime = *r.StartTime
			}
			if r.EndTime != nil {
				occ.EndTime = *r.EndTime
			}
			item.Current = occ
		}
		result = append(result, item)
	}
	return result, nil
}

func toRoomResponse(r *model.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:         r.RoomID,
		RoomNumber: r.RoomNumber,
		Building:   r.Building,
		Capacity:   r.Capacity,
		Status:     r.Status,
	}
}
