package model

import "github.com/google/uuid"

// Role is the closed set of portal roles.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// ReviewerRoles are the roles allowed to review, approve, reject and fulfill requests.
var ReviewerRoles = []Role{RoleAdmin, RoleSuperAdmin}

// Principal is the authenticated identity behind a session.
// Employee-role principals are bound to exactly one EmployeeID.
type Principal struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	CompanyID  *uuid.UUID `json:"company_id,omitempty"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	Active     bool       `json:"active"`
}

// IsEmployee reports whether the principal acts as the employee bound to employeeID.
func (p *Principal) IsEmployee(employeeID uuid.UUID) bool {
	return p != nil && p.EmployeeID != nil && *p.EmployeeID == employeeID
}
