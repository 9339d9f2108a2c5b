package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a portal login account. Its Principal is what sessions carry.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string         `gorm:"type:varchar(255);not null" json:"-"`
	Role       Role           `gorm:"type:varchar(30);not null" json:"role"`
	CompanyID  *uuid.UUID     `gorm:"type:uuid;index" json:"company_id"`
	EmployeeID *uuid.UUID     `gorm:"type:uuid;index" json:"employee_id"`
	Active     bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Principal snapshots the account into the identity a session carries.
func (u *User) Principal() Principal {
	return Principal{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		CompanyID:  u.CompanyID,
		EmployeeID: u.EmployeeID,
		Active:     u.Active,
	}
}
