package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant boundary. Records of one company are never visible
// to principals scoped to another.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Employee is the HR record requests are filed for.
type Employee struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	ExternalID string         `gorm:"type:varchar(50);not null;index" json:"employee_id"` // badge / payroll number shown in the UI
	FullName   string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Email      string         `gorm:"type:varchar(255)" json:"email"`
	Department string         `gorm:"type:varchar(100)" json:"department"`
	Position   string         `gorm:"type:varchar(100)" json:"position"`
	Active     bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// EmployeeDocument is a document already on file for an employee, which can be
// handed out to fulfill a document request.
type EmployeeDocument struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	DocumentType string    `gorm:"type:varchar(100);not null" json:"document_type"`
	FileURL      string    `gorm:"type:text;not null" json:"file_url"`
	CreatedAt    time.Time `json:"created_at"`
}
