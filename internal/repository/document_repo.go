package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrportal/internal/model"
)

// DocumentRepository reads documents already on file for employees.
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.EmployeeDocument, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.EmployeeDocument, error)
	FindByFileURL(ctx context.Context, url string) (*model.EmployeeDocument, error)
	FindRequestByFulfillmentURL(ctx context.Context, url string) (*model.DocumentRequest, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EmployeeDocument, error) {
	var doc model.EmployeeDocument
	if err := GetDB(ctx, r.db).First(&doc, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "document "+id.String())
	}
	return &doc, nil
}

func (r *documentRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.EmployeeDocument, error) {
	var docs []model.EmployeeDocument
	err := GetDB(ctx, r.db).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) FindByFileURL(ctx context.Context, url string) (*model.EmployeeDocument, error) {
	var doc model.EmployeeDocument
	if err := GetDB(ctx, r.db).First(&doc, "file_url = ?", url).Error; err != nil {
		return nil, notFound(err, "document "+url)
	}
	return &doc, nil
}

// FindRequestByFulfillmentURL returns the document request an uploaded file
// was attached to.
func (r *documentRepository) FindRequestByFulfillmentURL(ctx context.Context, url string) (*model.DocumentRequest, error) {
	var req model.DocumentRequest
	if err := GetDB(ctx, r.db).First(&req, "fulfillment_url = ?", url).Error; err != nil {
		return nil, notFound(err, "document request for "+url)
	}
	return &req, nil
}
