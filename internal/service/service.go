package service

import (
	"go.uber.org/zap"

	"hrportal/internal/repository"
	"hrportal/internal/session"
)

// Service groups every service the HTTP layer depends on.
type Service struct {
	Lifecycle  LifecycleService
	Aggregator AggregatorService
	Auth       AuthService
	Audit      AuditService
	Statistics StatisticsService
	Users      UserService
	Employees  EmployeeService
	Files      FileService
}

func NewService(repo *repository.Repository, files FileLocator, notifier Notifier, store session.Store, tokens *session.TokenManager, logger *zap.Logger) *Service {
	aggregator := NewAggregatorService(repo.Requests, logger.Named("aggregator"))
	return &Service{
		Lifecycle:  NewLifecycleService(repo, files, notifier, logger.Named("lifecycle")),
		Aggregator: aggregator,
		Auth:       NewAuthService(repo.Users, store, tokens, logger.Named("auth")),
		Audit:      NewAuditService(repo.Audit),
		Statistics: NewStatisticsService(aggregator, logger.Named("statistics")),
		Users:      NewUserService(repo.Users, repo.Employees, logger.Named("users")),
		Employees:  NewEmployeeService(repo.Employees, repo.Documents),
		Files:      NewFileService(files, repo.Documents),
	}
}
