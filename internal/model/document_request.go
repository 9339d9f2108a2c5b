package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus is the status vocabulary of letter and certificate requests.
type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "Pending"
	DocumentInProgress DocumentStatus = "In Progress"
	DocumentCompleted  DocumentStatus = "Completed"
	DocumentRejected   DocumentStatus = "Rejected"
	DocumentCancelled  DocumentStatus = "Cancelled"
)

func (s DocumentStatus) Terminal() bool {
	return s == DocumentCompleted || s == DocumentRejected || s == DocumentCancelled
}

// Canonical shows Completed as Approved.
func (s DocumentStatus) Canonical() CanonicalStatus {
	switch s {
	case DocumentInProgress:
		return CanonicalInReview
	case DocumentCompleted:
		return CanonicalApproved
	case DocumentRejected:
		return CanonicalRejected
	case DocumentCancelled:
		return CanonicalCancelled
	default:
		return CanonicalPending
	}
}

// DocumentRequest asks HR to issue a letter or certificate.
type DocumentRequest struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee            *Employee      `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	CompanyID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_docreq_company_requested" json:"company_id"`
	DocumentType        string         `gorm:"type:varchar(100);not null" json:"document_type"`
	Purpose             string         `gorm:"type:text" json:"purpose,omitempty"`
	Language            string         `gorm:"type:varchar(30);not null;default:'English'" json:"language"`
	Destination         string         `gorm:"type:varchar(255)" json:"destination,omitempty"`
	Status              DocumentStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	RequestedAt         time.Time      `gorm:"not null;index:idx_docreq_company_requested" json:"requested_at"`
	CompletedAt         *time.Time     `json:"completed_at,omitempty"`
	FulfilledDocumentID *uuid.UUID     `gorm:"type:uuid" json:"fulfilled_document_id,omitempty"`
	FulfillmentURL      string         `gorm:"type:text" json:"fulfillment_url,omitempty"`
	FulfillmentNotes    string         `gorm:"type:text" json:"fulfillment_notes,omitempty"`
	ReviewedBy          *uuid.UUID     `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewComments      string         `gorm:"type:text" json:"review_comments,omitempty"`
	Version             int            `gorm:"not null;default:1" json:"version"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

func (DocumentRequest) TableName() string { return "document_requests" }

// Fulfillment returns the attached artifact, or nil when none is attached yet.
func (r *DocumentRequest) Fulfillment() *Fulfillment {
	if r.FulfilledDocumentID != nil {
		id := *r.FulfilledDocumentID
		return &Fulfillment{ExistingDocumentID: &id}
	}
	if r.FulfillmentURL != "" {
		return &Fulfillment{UploadedLocation: r.FulfillmentURL}
	}
	return nil
}

func (r *DocumentRequest) Kind() RequestKind         { return KindDocument }
func (r *DocumentRequest) RequestID() uuid.UUID      { return r.ID }
func (r *DocumentRequest) OwnerID() uuid.UUID        { return r.EmployeeID }
func (r *DocumentRequest) OwnerCompanyID() uuid.UUID { return r.CompanyID }
func (r *DocumentRequest) Owner() *Employee          { return r.Employee }
func (r *DocumentRequest) StatusValue() string       { return string(r.Status) }
func (r *DocumentRequest) Canonical() CanonicalStatus {
	return r.Status.Canonical()
}
func (r *DocumentRequest) Terminal() bool            { return r.Status.Terminal() }
func (r *DocumentRequest) SubmissionTime() time.Time { return r.RequestedAt }
func (r *DocumentRequest) Revision() int             { return r.Version }
