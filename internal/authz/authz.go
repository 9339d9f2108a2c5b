// Package authz decides whether a principal may act. Every function is pure
// and fails closed: a nil or inactive principal is denied everything.
package authz

import (
	"fmt"

	"github.com/google/uuid"

	"hrportal/internal/model"
	"hrportal/pkg/apperror"
)

// CanAccess reports whether p holds one of the required roles.
// super_admin passes unconditionally.
func CanAccess(p *model.Principal, required ...model.Role) bool {
	if p == nil || !p.Active {
		return false
	}
	if p.Role == model.RoleSuperAdmin {
		return true
	}
	for _, r := range required {
		if p.Role == r {
			return true
		}
	}
	return false
}

// CanAccessCompany reports whether p is scoped to companyID. Scoping is strict
// equality; super_admin is scoped to every company.
func CanAccessCompany(p *model.Principal, companyID uuid.UUID) bool {
	if p == nil || !p.Active {
		return false
	}
	if p.Role == model.RoleSuperAdmin {
		return true
	}
	return p.CompanyID != nil && *p.CompanyID == companyID
}

// IsReviewer reports whether p may review, approve, reject and fulfill
// requests of companyID.
func IsReviewer(p *model.Principal, companyID uuid.UUID) bool {
	return CanAccess(p, model.ReviewerRoles...) && CanAccessCompany(p, companyID)
}

// CanView reports whether p may read a request: reviewers of the owning
// company, or the employee the request belongs to.
func CanView(p *model.Principal, req model.Request) bool {
	if IsReviewer(p, req.OwnerCompanyID()) {
		return true
	}
	return CanAccess(p, model.RoleEmployee) &&
		CanAccessCompany(p, req.OwnerCompanyID()) &&
		p.IsEmployee(req.OwnerID())
}

// RequireReviewer returns a wrapped ErrUnauthorized when p may not review
// requests of companyID.
func RequireReviewer(p *model.Principal, companyID uuid.UUID, action string) error {
	if !IsReviewer(p, companyID) {
		return fmt.Errorf("%s: %w", action, apperror.ErrUnauthorized)
	}
	return nil
}
