package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"hrportal/internal/model"
)

func member(role model.Role, company uuid.UUID) *model.Principal {
	c := company
	emp := uuid.New()
	return &model.Principal{ID: uuid.New(), Role: role, CompanyID: &c, EmployeeID: &emp, Active: true}
}

func TestMessage_VisibleTo(t *testing.T) {
	c1, c2 := uuid.New(), uuid.New()
	owner := member(model.RoleEmployee, c1)
	actor := member(model.RoleAdmin, c1)

	msg := Message{CompanyID: c1, EmployeeID: *owner.EmployeeID, ActorID: actor.ID}

	assert.True(t, msg.visibleTo(actor))
	assert.True(t, msg.visibleTo(owner))
	assert.True(t, msg.visibleTo(member(model.RoleAdmin, c1)))
	assert.True(t, msg.visibleTo(member(model.RoleSuperAdmin, c2)))

	assert.False(t, msg.visibleTo(member(model.RoleAdmin, c2)), "other company admin")
	assert.False(t, msg.visibleTo(member(model.RoleEmployee, c1)), "colleague")
	assert.False(t, msg.visibleTo(nil))

	private := msg
	private.ActorOnly = true
	assert.True(t, private.visibleTo(actor))
	assert.False(t, private.visibleTo(owner))
}

func TestHub_DeliversOnlyToAudience(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	company := uuid.New()
	reviewer := &Client{Hub: hub, Send: make(chan []byte, 4), Principal: member(model.RoleAdmin, company)}
	outsider := &Client{Hub: hub, Send: make(chan []byte, 4), Principal: member(model.RoleAdmin, uuid.New())}
	hub.register <- reviewer
	hub.register <- outsider

	assert.True(t, hub.Publish(Message{CompanyID: company, ActorID: uuid.New(), Payload: []byte(`{"type":"APPROVE_REQUEST"}`)}))

	select {
	case got := <-reviewer.Send:
		assert.JSONEq(t, `{"type":"APPROVE_REQUEST"}`, string(got))
	case <-time.After(time.Second):
		t.Fatal("reviewer did not receive the event")
	}

	select {
	case <-outsider.Send:
		t.Fatal("event leaked to another company")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Principal: member(model.RoleAdmin, uuid.New())}
	assert.True(t, hub.Register(client))

	cancel()
	<-stopped

	finished := make(chan bool)
	go func() {
		hub.Unregister(client)
		finished <- hub.Register(&Client{Hub: hub, Send: make(chan []byte, 1), Principal: member(model.RoleEmployee, uuid.New())})
	}()

	select {
	case registered := <-finished:
		assert.False(t, registered)
	case <-time.After(time.Second):
		t.Fatal("register or unregister blocked after the hub stopped")
	}
}
