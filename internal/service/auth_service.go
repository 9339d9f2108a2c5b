package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hrportal/internal/repository"
	"hrportal/internal/session"
	"hrportal/pkg/apperror"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token   string           `json:"token"`
	Session *session.Session `json:"-"`
}

// AuthService establishes and tears down sessions. It is the only writer of
// the session store.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, sess *session.Session) error
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

type authService struct {
	users  repository.UserRepository
	store  session.Store
	tokens *session.TokenManager
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, store session.Store, tokens *session.TokenManager, logger *zap.Logger) AuthService {
	return &authService{users: users, store: store, tokens: tokens, logger: logger}
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		s.logger.Info("login rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}
	if !user.Role.Valid() {
		return nil, fmt.Errorf("user %s has unknown role %q", user.ID, user.Role)
	}

	sess := session.New(user.Principal(), s.tokens.TTL())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(sess)
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID())
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("session established",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return &LoginResult{Token: token, Session: sess}, nil
}

func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return ErrNotAuthenticated
	}
	return s.store.Delete(ctx, sess.ID())
}

// Resolve turns a bearer token into its live session.
func (s *authService) Resolve(ctx context.Context, token string) (*session.Session, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return sess, nil
}
