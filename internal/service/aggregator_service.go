package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrportal/internal/authz"
	"hrportal/internal/model"
	"hrportal/internal/repository"
	"hrportal/internal/session"
	"hrportal/pkg/apperror"
)

// companyPageSize is the page size used to drain a company's requests of one kind.
const companyPageSize = 100

// ListFilter narrows the unified list. All fields are optional except that
// super_admin viewers without a company of their own must name one.
type ListFilter struct {
	Status    model.CanonicalStatus
	Category  string
	Search    string
	CompanyID uuid.UUID
	Kind      model.RequestKind
}

// AggregatorService merges every request kind into one time-ordered list.
type AggregatorService interface {
	ListUnified(ctx context.Context, sess *session.Session, filter ListFilter) ([]model.UnifiedRequest, error)
}

type aggregatorService struct {
	requests repository.RequestRepository
	logger   *zap.Logger
}

func NewAggregatorService(requests repository.RequestRepository, logger *zap.Logger) AggregatorService {
	return &aggregatorService{requests: requests, logger: logger}
}

func (s *aggregatorService) ListUnified(ctx context.Context, sess *session.Session, filter ListFilter) ([]model.UnifiedRequest, error) {
	p := sess.Principal()
	if !authz.CanAccess(p, model.RoleEmployee, model.RoleAdmin) {
		return nil, fmt.Errorf("list requests: %w", apperror.ErrUnauthorized)
	}

	companyID := filter.CompanyID
	if companyID == uuid.Nil {
		if p.CompanyID == nil {
			return nil, fmt.Errorf("%w: company scope is required", apperror.ErrValidation)
		}
		companyID = *p.CompanyID
	}
	if !authz.CanAccessCompany(p, companyID) {
		return nil, fmt.Errorf("list requests: %w", apperror.ErrUnauthorized)
	}

	kinds := model.RequestKinds
	if filter.Kind != "" {
		kinds = []model.RequestKind{filter.Kind}
	}

	var records []model.Request
	for _, kind := range kinds {
		var (
			recs []model.Request
			err  error
		)
		if authz.IsReviewer(p, companyID) {
			recs, err = s.listCompany(ctx, kind, companyID)
		} else {
			if p.EmployeeID == nil {
				return nil, fmt.Errorf("list requests: %w", apperror.ErrUnauthorized)
			}
			recs, err = s.requests.ListByEmployee(ctx, kind, *p.EmployeeID)
		}
		if err != nil {
			s.logger.Error("failed to list requests", zap.String("kind", string(kind)), zap.Error(err))
			return nil, err
		}
		records = append(records, recs...)
	}

	out := make([]model.UnifiedRequest, 0, len(records))
	for _, rec := range records {
		if rec.OwnerCompanyID() != companyID {
			s.logger.Warn("dropping request outside company scope",
				zap.String("kind", string(rec.Kind())),
				zap.String("id", rec.RequestID().String()),
			)
			continue
		}
		u := Normalize(rec)
		if filter.matches(u) {
			out = append(out, u)
		}
	}

	SortUnified(out)
	return out, nil
}

// listCompany drains every page of one kind for a company.
func (s *aggregatorService) listCompany(ctx context.Context, kind model.RequestKind, companyID uuid.UUID) ([]model.Request, error) {
	var all []model.Request
	for page := 1; ; page++ {
		recs, total, err := s.requests.ListByCompany(ctx, kind, companyID, page, companyPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
		if len(recs) < companyPageSize || int64(len(all)) >= total {
			return all, nil
		}
	}
}

func (f ListFilter) matches(u model.UnifiedRequest) bool {
	if f.Status != "" && u.Status != f.Status {
		return false
	}
	if f.Category != "" && !strings.EqualFold(strings.TrimSpace(f.Category), u.Category) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		haystack := strings.ToLower(u.Type + "\x00" + u.EmployeeName + "\x00" + u.EmployeeExternalID)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// SortUnified orders newest submission first. Equal timestamps fall back to
// kind priority, then id.
func SortUnified(list []model.UnifiedRequest) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.After(b.SubmittedAt)
		}
		if a.Kind.Priority() != b.Kind.Priority() {
			return a.Kind.Priority() < b.Kind.Priority()
		}
		return a.ID.String() < b.ID.String()
	})
}
