package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hrportal/internal/authz"
	"hrportal/internal/model"
	"hrportal/internal/session"
	"hrportal/pkg/response"
)

const (
	sessionKey        = "session"
	AccessTokenCookie = "access_token"
)

// SessionResolver turns an access token into its live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

// SetTokenCookie stores the access token as an HttpOnly cookie.
func SetTokenCookie(c *gin.Context, token string, ttl time.Duration) {
	sameSite, secure := cookiePolicy()
	c.SetSameSite(sameSite)
	c.SetCookie(AccessTokenCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearTokenCookie removes the access token cookie.
func ClearTokenCookie(c *gin.Context) {
	sameSite, secure := cookiePolicy()
	c.SetSameSite(sameSite)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", secure, true)
}

// Release builds serve a cross-origin frontend, which needs SameSite=None and Secure.
func cookiePolicy() (http.SameSite, bool) {
	if gin.Mode() == gin.ReleaseMode {
		return http.SameSiteNoneMode, true
	}
	return http.SameSiteLaxMode, false
}

// TokenFromRequest reads the access token from the cookie, falling back to
// the Authorization header.
func TokenFromRequest(c *gin.Context) (string, bool) {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token, true
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Authenticate resolves the session behind the request token and stores it
// in the gin context. Requests without a live session are rejected with 401.
func Authenticate(resolver SessionResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := TokenFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		sess, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.Debug("session rejected", zap.String("request_id", RequestIDFrom(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Session expired or invalid"))
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireRole rejects principals holding none of roles. It must run after Authenticate.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authz.CanAccess(CurrentSession(c).Principal(), roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session set by Authenticate, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// WithSession stores sess in the context. Used by tests and the websocket upgrade.
func WithSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionKey, sess)
}
