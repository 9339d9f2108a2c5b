package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrportal/internal/model"
	"hrportal/internal/websocket"
	"hrportal/pkg/apperror"
)

// Event reports the outcome of one core operation for user feedback.
type Event struct {
	Type       string            `json:"type"`
	Kind       model.RequestKind `json:"kind,omitempty"`
	RequestID  uuid.UUID         `json:"request_id,omitempty"`
	Status     string            `json:"status,omitempty"`
	ActorID    uuid.UUID         `json:"actor_id"`
	CompanyID  uuid.UUID         `json:"-"`
	EmployeeID uuid.UUID         `json:"-"`
	Success    bool              `json:"success"`
	Error      string            `json:"error,omitempty"`
	At         time.Time         `json:"at"`
}

// Notifier is told about outcomes. It is observational and never fails an operation.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// HubNotifier pushes events to connected websocket clients. Failures are only
// delivered to the actor.
type HubNotifier struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewHubNotifier(hub *websocket.Hub, logger *zap.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, logger: logger}
}

func (n *HubNotifier) Notify(_ context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		n.logger.Warn("failed to encode notification", zap.Error(err))
		return
	}
	ok := n.hub.Publish(websocket.Message{
		CompanyID:  ev.CompanyID,
		EmployeeID: ev.EmployeeID,
		ActorID:    ev.ActorID,
		ActorOnly:  !ev.Success,
		Payload:    payload,
	})
	if !ok {
		n.logger.Warn("notification queue full, dropping event", zap.String("type", ev.Type))
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Event) {}

// failureEvent builds the event for a failed operation. The error is reduced
// to its taxonomy code so nothing about out-of-scope records leaks.
func failureEvent(action string, kind model.RequestKind, id uuid.UUID, actor *model.Principal, err error) Event {
	ev := Event{
		Type:      action,
		Kind:      kind,
		RequestID: id,
		Success:   false,
		Error:     apperror.Code(err),
		At:        time.Now().UTC(),
	}
	if actor != nil {
		ev.ActorID = actor.ID
	}
	return ev
}

func successEvent(action string, req model.Request, actor *model.Principal) Event {
	ev := Event{
		Type:       action,
		Kind:       req.Kind(),
		RequestID:  req.RequestID(),
		Status:     req.StatusValue(),
		CompanyID:  req.OwnerCompanyID(),
		EmployeeID: req.OwnerID(),
		Success:    true,
		At:         time.Now().UTC(),
	}
	if actor != nil {
		ev.ActorID = actor.ID
	}
	return ev
}
