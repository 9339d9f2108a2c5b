package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrportal/internal/model"
)

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var emp model.Employee
	if err := GetDB(ctx, r.db).First(&emp, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "employee "+id.String())
	}
	return &emp, nil
}

func (r *employeeRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Employee, error) {
	var emps []model.Employee
	err := GetDB(ctx, r.db).
		Where("company_id = ?", companyID).
		Order("full_name ASC").
		Find(&emps).Error
	return emps, err
}
