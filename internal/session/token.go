package session

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hrportal/internal/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carry only the session id; the principal is always read from the store.
type Claims struct {
	SessionID string `json:"sid"`
	jwtv5.RegisteredClaims
}

// TokenManager signs and verifies access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg *config.AuthConfig) *TokenManager {
	return &TokenManager{secret: []byte(cfg.JWTSecret), ttl: cfg.AccessTokenTTL}
}

// TTL is the lifetime given to both tokens and the sessions behind them.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for sess.
func (m *TokenManager) Issue(sess *Session) (string, error) {
	p := sess.Principal()
	subject := ""
	if p != nil {
		subject = p.ID.String()
	}
	claims := Claims{
		SessionID: sess.ID().String(),
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject,
			IssuedAt:  jwtv5.NewNumericDate(sess.IssuedAt()),
			ExpiresAt: jwtv5.NewNumericDate(sess.ExpiresAt()),
			Issuer:    "hrportal",
		},
	}
	return jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies the token and returns the session id it carries.
func (m *TokenManager) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}
	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return id, nil
}
