package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jamaicasolina/ClassSync/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// ListStudents 学生与学生代表；yearLevel 为 0 时列出全部
	ListStudents(ctx context.Context, yearLevel int, section string) ([]model.User, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListStudents(ctx context.Context, yearLevel int, section string) ([]model.User, error) {
	var users []model.User
	db := r.db.WithContext(ctx).Where("role IN ?", []string{"student", "student_rep"})
	if yearLevel > 0 {
		db = db.Where("year_level = ? AND section = ?", yearLevel, section).
			Order("role DESC, surname ASC")
	} else {
		db = db.Order("year_level ASC, section ASC, surname ASC")
	}
	err := db.Find(&users).Error
	return users, err
}
