package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hrportal/internal/authz"
	"hrportal/internal/model"
	"hrportal/internal/repository"
	"hrportal/internal/session"
	"hrportal/pkg/apperror"
)

// EmployeeService exposes the employee directory and the documents on file,
// which reviewers pick from when fulfilling document requests.
type EmployeeService interface {
	ListEmployees(ctx context.Context, sess *session.Session, companyID uuid.UUID) ([]model.Employee, error)
	// ListDocuments is open to reviewers of the employee's company and to the employee.
	ListDocuments(ctx context.Context, sess *session.Session, employeeID uuid.UUID) ([]model.EmployeeDocument, error)
}

type employeeService struct {
	employees repository.EmployeeRepository
	documents repository.DocumentRepository
}

func NewEmployeeService(employees repository.EmployeeRepository, documents repository.DocumentRepository) EmployeeService {
	return &employeeService{employees: employees, documents: documents}
}

func (s *employeeService) ListEmployees(ctx context.Context, sess *session.Session, companyID uuid.UUID) ([]model.Employee, error) {
	p := sess.Principal()
	if !authz.CanAccess(p, model.ReviewerRoles...) {
		return nil, fmt.Errorf("list employees: %w", apperror.ErrUnauthorized)
	}
	if companyID == uuid.Nil {
		if p.CompanyID == nil {
			return nil, fmt.Errorf("%w: company scope is required", apperror.ErrValidation)
		}
		companyID = *p.CompanyID
	}
	if !authz.IsReviewer(p, companyID) {
		return nil, fmt.Errorf("list employees: %w", apperror.ErrUnauthorized)
	}
	return s.employees.ListByCompany(ctx, companyID)
}

func (s *employeeService) ListDocuments(ctx context.Context, sess *session.Session, employeeID uuid.UUID) ([]model.EmployeeDocument, error) {
	p := sess.Principal()
	if p == nil || !p.Active {
		return nil, fmt.Errorf("list documents: %w", apperror.ErrUnauthorized)
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("list documents: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}
	if !authz.IsReviewer(p, emp.CompanyID) && !p.IsEmployee(emp.ID) {
		return nil, fmt.Errorf("list documents: %w", apperror.ErrUnauthorized)
	}
	return s.documents.ListByEmployee(ctx, emp.ID)
}
