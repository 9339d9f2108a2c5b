// Package session holds the authenticated principal for the lifetime of a
// sign-in. A Session is immutable once established; the collaborator layer
// owns creating and tearing it down and passes it into every core call.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"hrportal/internal/model"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// Session binds one principal to one sign-in.
type Session struct {
	id        uuid.UUID
	principal model.Principal
	issuedAt  time.Time
	expiresAt time.Time
}

// New establishes a session for p that expires after ttl.
func New(p model.Principal, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		id:        uuid.New(),
		principal: p,
		issuedAt:  now,
		expiresAt: now.Add(ttl),
	}
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) IssuedAt() time.Time  { return s.issuedAt }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Principal returns a copy of the session principal. A nil or expired session
// yields nil, which every authorization check denies.
func (s *Session) Principal() *model.Principal {
	if s == nil || s.Expired(time.Now()) {
		return nil
	}
	p := s.principal
	return &p
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

// record is the serialized form kept in the store.
type record struct {
	ID        uuid.UUID       `json:"id"`
	Principal model.Principal `json:"principal"`
	IssuedAt  time.Time       `json:"issued_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (s *Session) toRecord() record {
	return record{ID: s.id, Principal: s.principal, IssuedAt: s.issuedAt, ExpiresAt: s.expiresAt}
}

func (r record) toSession() *Session {
	return &Session{id: r.ID, principal: r.Principal, issuedAt: r.IssuedAt, expiresAt: r.ExpiresAt}
}
