package model

import (
	"time"

	"github.com/google/uuid"
)

// LeaveStatus is the status vocabulary of leave requests. Leave approval is
// binary: there is no review stage.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "Pending"
	LeaveApproved  LeaveStatus = "Approved"
	LeaveRejected  LeaveStatus = "Rejected"
	LeaveCancelled LeaveStatus = "Cancelled"
)

func (s LeaveStatus) Terminal() bool {
	return s == LeaveApproved || s == LeaveRejected || s == LeaveCancelled
}

func (s LeaveStatus) Canonical() CanonicalStatus {
	switch s {
	case LeaveApproved:
		return CanonicalApproved
	case LeaveRejected:
		return CanonicalRejected
	case LeaveCancelled:
		return CanonicalCancelled
	default:
		return CanonicalPending
	}
}

// LeaveRequest is an employee's request for time off.
type LeaveRequest struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee       *Employee   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	CompanyID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_leave_company_created" json:"company_id"`
	LeaveType      string      `gorm:"type:varchar(50);not null" json:"leave_type"`
	StartDate      time.Time   `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time   `gorm:"type:date;not null" json:"end_date"`
	Reason         string      `gorm:"type:text" json:"reason"`
	Status         LeaveStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	ApprovedBy     *uuid.UUID  `gorm:"type:uuid" json:"approved_by,omitempty"`
	ReviewedAt     *time.Time  `json:"reviewed_at,omitempty"`
	ReviewComments string      `gorm:"type:text" json:"review_comments,omitempty"`
	Version        int         `gorm:"not null;default:1" json:"version"`
	CreatedAt      time.Time   `gorm:"index:idx_leave_company_created" json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }

// DurationDays is the inclusive number of calendar days covered.
func (r *LeaveRequest) DurationDays() int {
	start := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

func (r *LeaveRequest) Kind() RequestKind         { return KindLeave }
func (r *LeaveRequest) RequestID() uuid.UUID      { return r.ID }
func (r *LeaveRequest) OwnerID() uuid.UUID        { return r.EmployeeID }
func (r *LeaveRequest) OwnerCompanyID() uuid.UUID { return r.CompanyID }
func (r *LeaveRequest) Owner() *Employee          { return r.Employee }
func (r *LeaveRequest) StatusValue() string       { return string(r.Status) }
func (r *LeaveRequest) Canonical() CanonicalStatus {
	return r.Status.Canonical()
}
func (r *LeaveRequest) Terminal() bool            { return r.Status.Terminal() }
func (r *LeaveRequest) SubmissionTime() time.Time { return r.CreatedAt }
func (r *LeaveRequest) Revision() int             { return r.Version }
