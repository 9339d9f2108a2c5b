package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal/internal/config"
	"hrportal/internal/model"
)

func testPrincipal() model.Principal {
	company := uuid.New()
	return model.Principal{ID: uuid.New(), Email: "a@corp.test", Role: model.RoleAdmin, CompanyID: &company, Active: true}
}

func TestSession_PrincipalIsACopy(t *testing.T) {
	sess := New(testPrincipal(), time.Hour)

	p := sess.Principal()
	require.NotNil(t, p)
	p.Role = model.RoleSuperAdmin
	p.Active = false

	again := sess.Principal()
	assert.Equal(t, model.RoleAdmin, again.Role)
	assert.True(t, again.Active)
}

func TestSession_ExpiredOrNilHasNoPrincipal(t *testing.T) {
	var nilSess *Session
	assert.Nil(t, nilSess.Principal())

	expired := New(testPrincipal(), -time.Minute)
	assert.True(t, expired.Expired(time.Now()))
	assert.Nil(t, expired.Principal())
}

func TestSession_RecordRoundTrip(t *testing.T) {
	sess := New(testPrincipal(), time.Hour)
	back := sess.toRecord().toSession()

	assert.Equal(t, sess.ID(), back.ID())
	assert.Equal(t, *sess.Principal(), *back.Principal())
	assert.True(t, sess.ExpiresAt().Equal(back.ExpiresAt()))
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	mgr := NewTokenManager(&config.AuthConfig{JWTSecret: "0123456789abcdef-secret", AccessTokenTTL: time.Hour})
	sess := New(testPrincipal(), mgr.TTL())

	token, err := mgr.Issue(sess)
	require.NoError(t, err)

	id, err := mgr.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID(), id)

	other := NewTokenManager(&config.AuthConfig{JWTSecret: "another-secret-0123456789", AccessTokenTTL: time.Hour})
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = mgr.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_Expired(t *testing.T) {
	mgr := NewTokenManager(&config.AuthConfig{JWTSecret: "0123456789abcdef-secret", AccessTokenTTL: time.Hour})
	sess := New(testPrincipal(), -time.Minute)

	token, err := mgr.Issue(sess)
	require.NoError(t, err)

	_, err = mgr.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
