package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"hrportal/internal/model"
	"hrportal/internal/session"
)

type stubResolver struct {
	sessions map[string]*session.Session
}

func (r stubResolver) Resolve(_ context.Context, token string) (*session.Session, error) {
	if sess, ok := r.sessions[token]; ok {
		return sess, nil
	}
	return nil, errors.New("unknown token")
}

func newSession(role model.Role) *session.Session {
	company := uuid.New()
	return session.New(model.Principal{ID: uuid.New(), Role: role, CompanyID: &company, Active: true}, time.Hour)
}

func newTestRouter(resolver SessionResolver, roles ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.NewNop()))
	handlers := []gin.HandlerFunc{Authenticate(resolver, zap.NewNop())}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, string(CurrentSession(c).Principal().Role))
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthenticate(t *testing.T) {
	admin := newSession(model.RoleAdmin)
	r := newTestRouter(stubResolver{sessions: map[string]*session.Session{"good": admin}})

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") }, http.StatusOK},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"}) }, http.StatusOK},
		{"wrong scheme", func(req *http.Request) { req.Header.Set("Authorization", "Basic good") }, http.StatusUnauthorized},
		{"unknown token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer stale") }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if tt.status == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	resolver := stubResolver{sessions: map[string]*session.Session{
		"employee": newSession(model.RoleEmployee),
		"admin":    newSession(model.RoleAdmin),
		"super":    newSession(model.RoleSuperAdmin),
	}}
	r := newTestRouter(resolver, model.RoleAdmin)

	for token, want := range map[string]int{"employee": http.StatusForbidden, "admin": http.StatusOK, "super": http.StatusOK} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, token)
	}
}

func TestRequestID_KeepsCallerValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Body.String())
	assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
}
