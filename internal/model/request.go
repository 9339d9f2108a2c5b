package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RequestKind tags the three request shapes the portal stores.
type RequestKind string

const (
	KindLeave    RequestKind = "leave"
	KindDocument RequestKind = "document"
	KindGeneric  RequestKind = "generic"
)

// RequestKinds lists every kind in tie-break priority order.
var RequestKinds = []RequestKind{KindLeave, KindDocument, KindGeneric}

// ParseRequestKind accepts the tag as used in URLs and JSON.
func ParseRequestKind(s string) (RequestKind, error) {
	switch RequestKind(s) {
	case KindLeave, KindDocument, KindGeneric:
		return RequestKind(s), nil
	}
	return "", fmt.Errorf("unknown request kind %q", s)
}

// Priority orders kinds when two requests share a submission timestamp.
func (k RequestKind) Priority() int {
	switch k {
	case KindLeave:
		return 0
	case KindDocument:
		return 1
	case KindGeneric:
		return 2
	}
	return 3
}

// CanonicalStatus is the cross-kind status vocabulary used for listing and filtering.
type CanonicalStatus string

const (
	CanonicalPending   CanonicalStatus = "Pending"
	CanonicalInReview  CanonicalStatus = "In Review"
	CanonicalApproved  CanonicalStatus = "Approved"
	CanonicalRejected  CanonicalStatus = "Rejected"
	CanonicalCancelled CanonicalStatus = "Cancelled"
)

// ParseCanonicalStatus is used for list filters coming from the UI.
func ParseCanonicalStatus(s string) (CanonicalStatus, error) {
	switch CanonicalStatus(s) {
	case CanonicalPending, CanonicalInReview, CanonicalApproved, CanonicalRejected, CanonicalCancelled:
		return CanonicalStatus(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Request is implemented by LeaveRequest, DocumentRequest and GenericRequest.
// It exposes the shared subset the lifecycle engine and aggregator work with.
type Request interface {
	Kind() RequestKind
	RequestID() uuid.UUID
	OwnerID() uuid.UUID
	OwnerCompanyID() uuid.UUID
	Owner() *Employee
	StatusValue() string
	Canonical() CanonicalStatus
	Terminal() bool
	SubmissionTime() time.Time
	Revision() int
}

// Fulfillment is the artifact handed out for a document request. Exactly one
// of the two sources is set.
type Fulfillment struct {
	ExistingDocumentID *uuid.UUID `json:"existing_document_id,omitempty"`
	UploadedLocation   string     `json:"uploaded_location,omitempty"`
}

// UnifiedRequest is the display shape all kinds are normalized into. It is
// derived on every read and never persisted.
type UnifiedRequest struct {
	ID                 uuid.UUID       `json:"id"`
	Kind               RequestKind     `json:"kind"`
	EmployeeID         uuid.UUID       `json:"employee_ref"`
	EmployeeName       string          `json:"employee_name"`
	EmployeeExternalID string          `json:"employee_id"`
	Department         string          `json:"department,omitempty"`
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	Summary            string          `json:"summary"`
	SubmittedAt        time.Time       `json:"submitted_at"`
	Status             CanonicalStatus `json:"status"`
	RawStatus          string          `json:"raw_status"`
	Version            int             `json:"version"`
}
