package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrportal/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// List returns accounts ordered by email; a nil companyID lists every company.
	List(ctx context.Context, companyID *uuid.UUID, page, limit int) ([]model.User, int64, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return GetDB(ctx, r.db).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := GetDB(ctx, r.db).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, companyID *uuid.UUID, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := GetDB(ctx, r.db).Model(&model.User{})
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("email ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := GetDB(ctx, r.db).Model(&model.User{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "user")
	}
	return nil
}
