package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jamaicasolina/ClassSync/internal/model"
)

// RoomRepository 教室数据访问接口
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	// LockByID 在当前事务中对教室行加 FOR UPDATE 锁
	LockByID(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context, status string) ([]model.Room, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// ListOccupancy 每间教室在 day/at 时刻被哪条有效课时占用
	ListOccupancy(ctx context.Context, day, at string) ([]model.RoomOccupancy, error)
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo 创建 RoomRepository 实例
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) LockByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context, status string) ([]model.Room, error) {
	var rooms []model.Room
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("building ASC, room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("room_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *roomRepo) ListOccupancy(ctx context.Context, day, at string) ([]model.RoomOccupancy, error) {
	var rows []model.RoomOccupancy
	err := r.db.WithContext(ctx).
		Table("rooms").
		Select(`rooms.*, s.schedule_id, c.course_code,
			CONCAT(u.first_name, ' ', u.surname) AS professor_name,
			c.year_level, c.section AS section_name,
			to_char(s.start_time, 'HH24:MI:SS') AS start_time,
			to_char(s.end_time, 'HH24:MI:SS') AS end_time`).
		Joins(`LEFT JOIN schedules s ON s.room_id = rooms.room_id
			AND s.is_cancelled = FALSE AND s.day_of_week = ?
			AND s.start_time <= ? AND s.end_time > ?`, day, at, at).
		Joins("LEFT JOIN courses c ON c.course_id = s.course_id").
		Joins("LEFT JOIN users u ON u.user_id = c.professor_id").
		Order("rooms.building ASC, rooms.room_number ASC").
		Scan(&rows).Error
	return rows, err
}
