package authz

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hrportal/internal/model"
	"hrportal/pkg/apperror"
)

var allRoles = []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleEmployee}

func principal(role model.Role, company uuid.UUID, active bool) *model.Principal {
	c := company
	return &model.Principal{ID: uuid.New(), Role: role, CompanyID: &c, Active: active}
}

func TestCanAccess_InactiveDeniedForEveryRole(t *testing.T) {
	company := uuid.New()
	for _, role := range allRoles {
		p := principal(role, company, false)
		assert.False(t, CanAccess(p, allRoles...), role)
		assert.False(t, CanAccess(p, role), role)
		assert.False(t, CanAccessCompany(p, company), role)
	}
}

func TestCanAccess_NilPrincipal(t *testing.T) {
	assert.False(t, CanAccess(nil, model.RoleEmployee))
	assert.False(t, CanAccessCompany(nil, uuid.New()))
}

func TestCanAccess_SuperAdminPassesEverything(t *testing.T) {
	p := principal(model.RoleSuperAdmin, uuid.New(), true)
	p.CompanyID = nil

	assert.True(t, CanAccess(p))
	assert.True(t, CanAccess(p, model.RoleEmployee))
	assert.True(t, CanAccess(p, model.Role("auditor")))
	assert.True(t, CanAccessCompany(p, uuid.New()))
}

func TestCanAccess_RoleMembership(t *testing.T) {
	admin := principal(model.RoleAdmin, uuid.New(), true)
	assert.True(t, CanAccess(admin, model.RoleAdmin, model.RoleSuperAdmin))
	assert.False(t, CanAccess(admin, model.RoleEmployee))
	assert.False(t, CanAccess(admin))

	emp := principal(model.RoleEmployee, uuid.New(), true)
	assert.True(t, CanAccess(emp, model.RoleEmployee))
	assert.False(t, CanAccess(emp, model.ReviewerRoles...))
}

func TestCanAccessCompany_StrictEquality(t *testing.T) {
	c1, c2 := uuid.New(), uuid.New()
	for _, role := range []model.Role{model.RoleAdmin, model.RoleEmployee} {
		p := principal(role, c1, true)
		assert.True(t, CanAccessCompany(p, c1), role)
		assert.False(t, CanAccessCompany(p, c2), role)

		p.CompanyID = nil
		assert.False(t, CanAccessCompany(p, c1), role)
	}
}

func TestCanView(t *testing.T) {
	c1, c2 := uuid.New(), uuid.New()
	owner := uuid.New()
	req := &model.LeaveRequest{ID: uuid.New(), EmployeeID: owner, CompanyID: c1, CreatedAt: time.Now()}

	assert.True(t, CanView(principal(model.RoleAdmin, c1, true), req))
	assert.False(t, CanView(principal(model.RoleAdmin, c2, true), req))
	assert.True(t, CanView(principal(model.RoleSuperAdmin, c2, true), req))

	self := principal(model.RoleEmployee, c1, true)
	self.EmployeeID = &owner
	assert.True(t, CanView(self, req))

	other := principal(model.RoleEmployee, c1, true)
	otherID := uuid.New()
	other.EmployeeID = &otherID
	assert.False(t, CanView(other, req))

	self.Active = false
	assert.False(t, CanView(self, req))
}

func TestRequireReviewer(t *testing.T) {
	c1 := uuid.New()
	assert.NoError(t, RequireReviewer(principal(model.RoleAdmin, c1, true), c1, "approve"))

	err := RequireReviewer(principal(model.RoleAdmin, uuid.New(), true), c1, "approve")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	err = RequireReviewer(principal(model.RoleEmployee, c1, true), c1, "reject")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}
