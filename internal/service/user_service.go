package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hrportal/internal/authz"
	"hrportal/internal/model"
	"hrportal/internal/repository"
	"hrportal/internal/session"
	"hrportal/pkg/apperror"
)

// CreateUserInput provisions a login account.
type CreateUserInput struct {
	Email      string     `json:"email" validate:"required,email,max=255"`
	Password   string     `json:"password" validate:"required,min=8,max=72"`
	Role       model.Role `json:"role" validate:"required"`
	CompanyID  *uuid.UUID `json:"company_id"`
	EmployeeID *uuid.UUID `json:"employee_id"`
}

// UserResponse is an account without its password hash
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Role       model.Role `json:"role"`
	CompanyID  *uuid.UUID `json:"company_id"`
	EmployeeID *uuid.UUID `json:"employee_id"`
	Active     bool       `json:"active"`
	CreatedAt  string     `json:"created_at"`
	UpdatedAt  string     `json:"updated_at"`
}

// UserService manages portal accounts. Admins manage their own company;
// super admins manage every company and other super admins.
type UserService interface {
	CreateUser(ctx context.Context, sess *session.Session, in CreateUserInput) (*UserResponse, error)
	ListUsers(ctx context.Context, sess *session.Session, companyID uuid.UUID, page, limit int) ([]UserResponse, int64, error)
	SetActive(ctx context.Context, sess *session.Session, id uuid.UUID, active bool) (*UserResponse, error)
	// EnsureSuperAdmin creates the bootstrap account when no account uses email yet.
	EnsureSuperAdmin(ctx context.Context, email, password string) error
}

type userService struct {
	users     repository.UserRepository
	employees repository.EmployeeRepository
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewUserService(users repository.UserRepository, employees repository.EmployeeRepository, logger *zap.Logger) UserService {
	return &userService{users: users, employees: employees, validate: newValidator(), logger: logger}
}

func mapToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		CompanyID:  user.CompanyID,
		EmployeeID: user.EmployeeID,
		Active:     user.Active,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  user.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *userService) CreateUser(ctx context.Context, sess *session.Session, in CreateUserInput) (*UserResponse, error) {
	p := sess.Principal()
	if !authz.CanAccess(p, model.ReviewerRoles...) {
		return nil, fmt.Errorf("create user: %w", apperror.ErrUnauthorized)
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, describeValidation(err))
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", apperror.ErrValidation, in.Role)
	}

	switch in.Role {
	case model.RoleSuperAdmin:
		if p.Role != model.RoleSuperAdmin {
			return nil, fmt.Errorf("create super admin: %w", apperror.ErrUnauthorized)
		}
		if in.CompanyID != nil || in.EmployeeID != nil {
			return nil, fmt.Errorf("%w: super admin accounts have no company or employee", apperror.ErrValidation)
		}
	default:
		if in.CompanyID == nil && p.CompanyID != nil {
			in.CompanyID = p.CompanyID
		}
		if in.CompanyID == nil {
			return nil, fmt.Errorf("%w: company_id is required", apperror.ErrValidation)
		}
		if !authz.CanAccessCompany(p, *in.CompanyID) {
			return nil, fmt.Errorf("create user: %w", apperror.ErrUnauthorized)
		}
	}

	if in.Role == model.RoleEmployee && in.EmployeeID == nil {
		return nil, fmt.Errorf("%w: employee_id is required", apperror.ErrValidation)
	}
	if in.EmployeeID != nil {
		emp, err := s.employees.FindByID(ctx, *in.EmployeeID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil, fmt.Errorf("%w: employee not found", apperror.ErrValidation)
			}
			return nil, err
		}
		if emp.CompanyID != *in.CompanyID {
			return nil, fmt.Errorf("%w: employee belongs to another company", apperror.ErrValidation)
		}
	}

	user, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("created_by", p.ID.String()))
	return mapToResponse(user), nil
}

func (s *userService) create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", apperror.ErrValidation)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:         uuid.New(),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Password:   string(hashedPassword),
		Role:       in.Role,
		CompanyID:  in.CompanyID,
		EmployeeID: in.EmployeeID,
		Active:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, sess *session.Session, companyID uuid.UUID, page, limit int) ([]UserResponse, int64, error) {
	p := sess.Principal()
	if !authz.CanAccess(p, model.ReviewerRoles...) {
		return nil, 0, fmt.Errorf("list users: %w", apperror.ErrUnauthorized)
	}

	var scope *uuid.UUID
	switch {
	case companyID != uuid.Nil:
		scope = &companyID
	case p.CompanyID != nil:
		scope = p.CompanyID
	case p.Role != model.RoleSuperAdmin:
		return nil, 0, fmt.Errorf("%w: company scope is required", apperror.ErrValidation)
	}
	if scope != nil && !authz.CanAccessCompany(p, *scope) {
		return nil, 0, fmt.Errorf("list users: %w", apperror.ErrUnauthorized)
	}

	users, total, err := s.users.List(ctx, scope, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapToResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) SetActive(ctx context.Context, sess *session.Session, id uuid.UUID, active bool) (*UserResponse, error) {
	p := sess.Principal()
	if !authz.CanAccess(p, model.ReviewerRoles...) {
		return nil, fmt.Errorf("update user: %w", apperror.ErrUnauthorized)
	}
	if p.ID == id && !active {
		return nil, fmt.Errorf("%w: cannot deactivate your own account", apperror.ErrValidation)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Accounts outside the caller's reach look the same as missing ones.
	if user.CompanyID == nil {
		if p.Role != model.RoleSuperAdmin {
			return nil, fmt.Errorf("user: %w", apperror.ErrNotFound)
		}
	} else if !authz.CanAccessCompany(p, *user.CompanyID) {
		return nil, fmt.Errorf("user: %w", apperror.ErrNotFound)
	}

	if err := s.users.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	user.Active = active
	s.logger.Info("user activation changed",
		zap.String("user_id", id.String()),
		zap.Bool("active", active),
		zap.String("changed_by", p.ID.String()))
	return mapToResponse(user), nil
}

func (s *userService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}
	in := CreateUserInput{Email: email, Password: password, Role: model.RoleSuperAdmin}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrValidation, describeValidation(err))
	}
	user, err := s.create(ctx, in)
	if err != nil {
		return err
	}
	s.logger.Info("bootstrap super admin created", zap.String("user_id", user.ID.String()))
	return nil
}
