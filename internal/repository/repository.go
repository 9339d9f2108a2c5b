package repository

import "gorm.io/gorm"

// Repository groups every repository the services depend on.
type Repository struct {
	Requests  RequestRepository
	Employees EmployeeRepository
	Documents DocumentRepository
	Users     UserRepository
	Audit     AuditRepository
	Tx        TransactionManager
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Requests:  NewRequestRepository(db),
		Employees: NewEmployeeRepository(db),
		Documents: NewDocumentRepository(db),
		Users:     NewUserRepository(db),
		Audit:     NewAuditRepository(db),
		Tx:        NewTransactionManager(db),
	}
}
