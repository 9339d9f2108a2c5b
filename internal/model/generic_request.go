package model

import (
	"time"

	"github.com/google/uuid"
)

// GenericStatus is the status vocabulary of self-service employee requests
// (IT tickets, equipment, reimbursements, ...).
type GenericStatus string

const (
	GenericPending   GenericStatus = "Pending"
	GenericInReview  GenericStatus = "In Review"
	GenericApproved  GenericStatus = "Approved"
	GenericRejected  GenericStatus = "Rejected"
	GenericCompleted GenericStatus = "Completed"
	GenericCancelled GenericStatus = "Cancelled"
)

func (s GenericStatus) Terminal() bool {
	switch s {
	case GenericApproved, GenericRejected, GenericCompleted, GenericCancelled:
		return true
	}
	return false
}

func (s GenericStatus) Canonical() CanonicalStatus {
	switch s {
	case GenericInReview:
		return CanonicalInReview
	case GenericApproved, GenericCompleted:
		return CanonicalApproved
	case GenericRejected:
		return CanonicalRejected
	case GenericCancelled:
		return CanonicalCancelled
	default:
		return CanonicalPending
	}
}

// GenericRequest carries a schema-less form payload routed through an ordered
// list of approver roles.
type GenericRequest struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee        *Employee     `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	CompanyID       uuid.UUID     `gorm:"type:uuid;not null;index:idx_genreq_company_submitted" json:"company_id"`
	RequestType     string        `gorm:"type:varchar(100);not null" json:"request_type"`
	RequestCategory string        `gorm:"type:varchar(100);not null" json:"request_category"`
	FormData        JSONMap       `gorm:"type:jsonb" json:"form_data"`
	WorkflowRoute   StringList    `gorm:"type:jsonb" json:"workflow_route"`
	CurrentApprover string        `gorm:"type:varchar(50)" json:"current_approver"`
	CurrentStep     int           `gorm:"not null;default:0" json:"current_step"` // index into WorkflowRoute
	Status          GenericStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	SubmittedAt     time.Time     `gorm:"not null;index:idx_genreq_company_submitted" json:"submitted_at"`
	ReviewedBy      *uuid.UUID    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time    `json:"reviewed_at,omitempty"`
	ReviewComments  string        `gorm:"type:text" json:"review_comments,omitempty"`
	Version         int           `gorm:"not null;default:1" json:"version"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (GenericRequest) TableName() string { return "employee_requests" }

// NextApprover returns the route step after CurrentStep and its index, or
// ("", -1) when the current step is the last one. Routes may repeat a role.
func (r *GenericRequest) NextApprover() (string, int) {
	next := r.CurrentStep + 1
	if next >= len(r.WorkflowRoute) {
		return "", -1
	}
	return r.WorkflowRoute[next], next
}

func (r *GenericRequest) Kind() RequestKind         { return KindGeneric }
func (r *GenericRequest) RequestID() uuid.UUID      { return r.ID }
func (r *GenericRequest) OwnerID() uuid.UUID        { return r.EmployeeID }
func (r *GenericRequest) OwnerCompanyID() uuid.UUID { return r.CompanyID }
func (r *GenericRequest) Owner() *Employee          { return r.Employee }
func (r *GenericRequest) StatusValue() string       { return string(r.Status) }
func (r *GenericRequest) Canonical() CanonicalStatus {
	return r.Status.Canonical()
}
func (r *GenericRequest) Terminal() bool            { return r.Status.Terminal() }
func (r *GenericRequest) SubmissionTime() time.Time { return r.SubmittedAt }
func (r *GenericRequest) Revision() int             { return r.Version }
