package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrportal/internal/model"
	"hrportal/pkg/apperror"
)

// StatusCondition is the state a transition was decided on. The write only
// lands when the stored row still matches it.
type StatusCondition struct {
	Status  string
	Version int
}

// RequestRepository is the only read/write path the request core uses.
// Rows are never deleted; UpdateStatus is the only mutation.
type RequestRepository interface {
	Insert(ctx context.Context, req model.Request) error
	UpdateStatus(ctx context.Context, kind model.RequestKind, id uuid.UUID, cond StatusCondition, newStatus string, extra map[string]any) error
	FindByID(ctx context.Context, kind model.RequestKind, id uuid.UUID) (model.Request, error)
	ListByEmployee(ctx context.Context, kind model.RequestKind, employeeID uuid.UUID) ([]model.Request, error)
	ListByCompany(ctx context.Context, kind model.RequestKind, companyID uuid.UUID, page, pageSize int) ([]model.Request, int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// kindTable returns the model and submission-time column of kind.
func kindTable(kind model.RequestKind) (interface{}, string, error) {
	switch kind {
	case model.KindLeave:
		return &model.LeaveRequest{}, "created_at", nil
	case model.KindDocument:
		return &model.DocumentRequest{}, "requested_at", nil
	case model.KindGeneric:
		return &model.GenericRequest{}, "submitted_at", nil
	}
	return nil, "", fmt.Errorf("request kind %q: %w", kind, apperror.ErrNotFound)
}

func (r *requestRepository) Insert(ctx context.Context, req model.Request) error {
	return GetDB(ctx, r.db).Omit("Employee").Create(req).Error
}

func (r *requestRepository) UpdateStatus(ctx context.Context, kind model.RequestKind, id uuid.UUID, cond StatusCondition, newStatus string, extra map[string]any) error {
	table, _, err := kindTable(kind)
	if err != nil {
		return err
	}

	updates := make(map[string]any, len(extra)+3)
	for k, v := range extra {
		updates[k] = v
	}
	updates["status"] = newStatus
	updates["version"] = gorm.Expr("version + 1")
	updates["updated_at"] = time.Now()

	res := GetDB(ctx, r.db).Model(table).
		Where("id = ? AND status = ? AND version = ?", id, cond.Status, cond.Version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s request %s: %w", kind, id, apperror.ErrStaleState)
	}
	return nil
}

func (r *requestRepository) FindByID(ctx context.Context, kind model.RequestKind, id uuid.UUID) (model.Request, error) {
	db := GetDB(ctx, r.db).Preload("Employee")
	what := fmt.Sprintf("%s request %s", kind, id)

	switch kind {
	case model.KindLeave:
		var rec model.LeaveRequest
		if err := db.First(&rec, "id = ?", id).Error; err != nil {
			return nil, notFound(err, what)
		}
		return &rec, nil
	case model.KindDocument:
		var rec model.DocumentRequest
		if err := db.First(&rec, "id = ?", id).Error; err != nil {
			return nil, notFound(err, what)
		}
		return &rec, nil
	case model.KindGeneric:
		var rec model.GenericRequest
		if err := db.First(&rec, "id = ?", id).Error; err != nil {
			return nil, notFound(err, what)
		}
		return &rec, nil
	}
	_, _, err := kindTable(kind)
	return nil, err
}

func (r *requestRepository) ListByEmployee(ctx context.Context, kind model.RequestKind, employeeID uuid.UUID) ([]model.Request, error) {
	_, order, err := kindTable(kind)
	if err != nil {
		return nil, err
	}
	query := GetDB(ctx, r.db).Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order(order + " DESC")
	return r.find(query, kind)
}

func (r *requestRepository) ListByCompany(ctx context.Context, kind model.RequestKind, companyID uuid.UUID, page, pageSize int) ([]model.Request, int64, error) {
	table, order, err := kindTable(kind)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	db := GetDB(ctx, r.db)
	var total int64
	if err := db.Model(table).Where("company_id = ?", companyID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Preload("Employee").
		Where("company_id = ?", companyID).
		Order(order + " DESC").Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize)
	recs, err := r.find(query, kind)
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (r *requestRepository) find(query *gorm.DB, kind model.RequestKind) ([]model.Request, error) {
	switch kind {
	case model.KindLeave:
		var rows []model.LeaveRequest
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]model.Request, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	case model.KindDocument:
		var rows []model.DocumentRequest
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]model.Request, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	default:
		var rows []model.GenericRequest
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]model.Request, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	}
}
