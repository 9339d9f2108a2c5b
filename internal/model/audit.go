package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionSubmitRequest  = "SUBMIT_REQUEST"
	ActionStartReview    = "START_REVIEW"
	ActionApproveRequest = "APPROVE_REQUEST"
	ActionAdvanceRequest = "ADVANCE_REQUEST"
	ActionRejectRequest  = "REJECT_REQUEST"
	ActionFulfillRequest = "FULFILL_REQUEST"
	ActionCancelRequest  = "CANCEL_REQUEST"
)

// AuditLog records who moved which request from what status to what, and when.
// Rows are only ever inserted.
type AuditLog struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorID    *uuid.UUID  `gorm:"type:uuid;index" json:"actor_id"`
	ActorEmail string      `gorm:"type:varchar(255)" json:"actor_email"`
	CompanyID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"company_id"`
	Action     string      `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityKind RequestKind `gorm:"type:varchar(20);not null" json:"entity_kind"`
	EntityID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"entity_id"`
	FromStatus string      `gorm:"type:varchar(20)" json:"from_status,omitempty"`
	ToStatus   string      `gorm:"type:varchar(20)" json:"to_status"`
	Details    string      `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
}
