package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hrportal/internal/authz"
	"hrportal/internal/model"
	"hrportal/internal/repository"
	"hrportal/internal/session"
	"hrportal/pkg/apperror"
)

type AuditService interface {
	// GetAuditLogs lists the trail newest first. companyID may be uuid.Nil to
	// use the viewer's own company; super_admin without a company sees all.
	GetAuditLogs(ctx context.Context, sess *session.Session, companyID uuid.UUID, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) GetAuditLogs(ctx context.Context, sess *session.Session, companyID uuid.UUID, page, limit int) ([]model.AuditLog, int64, error) {
	p := sess.Principal()
	if !authz.CanAccess(p, model.ReviewerRoles...) {
		return nil, 0, fmt.Errorf("audit logs: %w", apperror.ErrUnauthorized)
	}

	var scope *uuid.UUID
	switch {
	case companyID != uuid.Nil:
		scope = &companyID
	case p.CompanyID != nil:
		scope = p.CompanyID
	case p.Role != model.RoleSuperAdmin:
		return nil, 0, fmt.Errorf("%w: company scope is required", apperror.ErrValidation)
	}
	if scope != nil && !authz.CanAccessCompany(p, *scope) {
		return nil, 0, fmt.Errorf("audit logs: %w", apperror.ErrUnauthorized)
	}

	return s.repo.List(ctx, scope, page, limit)
}
