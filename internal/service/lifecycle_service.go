package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrportal/internal/authz"
	"hrportal/internal/model"
	"hrportal/internal/repository"
	"hrportal/internal/session"
	"hrportal/internal/storage"
	"hrportal/pkg/apperror"
)

// --- Submission payloads ---

// SubmitPayload is one of LeavePayload, DocumentPayload or GenericPayload.
type SubmitPayload interface {
	Kind() model.RequestKind
	build(emp *model.Employee, now time.Time) (model.Request, error)
}

type LeavePayload struct {
	LeaveType string    `json:"leave_type" validate:"required,max=50"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Reason    string    `json:"reason" validate:"max=2000"`
}

func (LeavePayload) Kind() model.RequestKind { return model.KindLeave }

func (p LeavePayload) build(emp *model.Employee, now time.Time) (model.Request, error) {
	start, end := dateOnly(p.StartDate), dateOnly(p.EndDate)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start_date must not be after end_date", apperror.ErrValidation)
	}
	return &model.LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		CompanyID:  emp.CompanyID,
		LeaveType:  strings.TrimSpace(p.LeaveType),
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(p.Reason),
		Status:     model.LeavePending,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

type DocumentPayload struct {
	DocumentType string `json:"document_type" validate:"required,max=100"`
	Purpose      string `json:"purpose" validate:"max=2000"`
	Language     string `json:"language" validate:"max=30"`
	Destination  string `json:"destination" validate:"max=255"`
}

func (DocumentPayload) Kind() model.RequestKind { return model.KindDocument }

func (p DocumentPayload) build(emp *model.Employee, now time.Time) (model.Request, error) {
	lang := strings.TrimSpace(p.Language)
	if lang == "" {
		lang = "English"
	}
	return &model.DocumentRequest{
		ID:           uuid.New(),
		EmployeeID:   emp.ID,
		CompanyID:    emp.CompanyID,
		DocumentType: strings.TrimSpace(p.DocumentType),
		Purpose:      strings.TrimSpace(p.Purpose),
		Language:     lang,
		Destination:  strings.TrimSpace(p.Destination),
		Status:       model.DocumentPending,
		RequestedAt:  now,
		Version:      1,
		UpdatedAt:    now,
	}, nil
}

type GenericPayload struct {
	RequestType     string         `json:"request_type" validate:"required,max=100"`
	RequestCategory string         `json:"request_category" validate:"required,max=100"`
	FormData        map[string]any `json:"form_data"`
	WorkflowRoute   []string       `json:"workflow_route" validate:"dive,required,max=50"`
}

func (GenericPayload) Kind() model.RequestKind { return model.KindGeneric }

func (p GenericPayload) build(emp *model.Employee, now time.Time) (model.Request, error) {
	req := &model.GenericRequest{
		ID:              uuid.New(),
		EmployeeID:      emp.ID,
		CompanyID:       emp.CompanyID,
		RequestType:     strings.TrimSpace(p.RequestType),
		RequestCategory: strings.TrimSpace(p.RequestCategory),
		FormData:        model.JSONMap(p.FormData),
		WorkflowRoute:   model.StringList(p.WorkflowRoute),
		Status:          model.GenericPending,
		SubmittedAt:     now,
		Version:         1,
		UpdatedAt:       now,
	}
	if req.FormData == nil {
		req.FormData = model.JSONMap{}
	}
	if len(req.WorkflowRoute) > 0 {
		req.CurrentApprover = req.WorkflowRoute[0]
		req.CurrentStep = 0
	}
	return req, nil
}

// ReviewInput carries reviewer comments (the rejection reason for Reject) and
// optionally the version the caller read. A non-zero Version that no longer
// matches the stored record fails with ErrStaleState.
type ReviewInput struct {
	Comments string `json:"comments"`
	Version  int    `json:"version"`
}

// FulfillInput attaches exactly one artifact to a document request.
type FulfillInput struct {
	ExistingDocumentID *uuid.UUID `json:"existing_document_id"`
	UploadedLocation   string     `json:"uploaded_location"`
	Notes              string     `json:"notes"`
	Version            int        `json:"version"`
}

// FileResolver resolves an uploaded file to a stable location.
type FileResolver interface {
	Resolve(ctx context.Context, location string) (string, error)
}

// --- Interface ---

// LifecycleService creates requests and moves them through their status
// workflow. Every mutation is authorized against the session principal and
// written atomically together with its audit row.
type LifecycleService interface {
	Submit(ctx context.Context, sess *session.Session, employeeID uuid.UUID, payload SubmitPayload) (model.Request, error)
	Get(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID) (model.Request, error)
	History(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID) ([]model.AuditLog, error)
	StartReview(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID, in ReviewInput) (model.Request, error)
	Approve(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID, in ReviewInput) (model.Request, error)
	Reject(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID, in ReviewInput) (model.Request, error)
	Fulfill(ctx context.Context, sess *session.Session, documentRequestID uuid.UUID, in FulfillInput) (model.Request, error)
	Cancel(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID, in ReviewInput) (model.Request, error)
}

type lifecycleService struct {
	repo     *repository.Repository
	files    FileResolver
	notifier Notifier
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

func NewLifecycleService(repo *repository.Repository, files FileResolver, notifier Notifier, logger *zap.Logger) LifecycleService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &lifecycleService{
		repo:     repo,
		files:    files,
		notifier: notifier,
		validate: newValidator(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// --- Submit / read ---

func (s *lifecycleService) Submit(ctx context.Context, sess *session.Session, employeeID uuid.UUID, payload SubmitPayload) (model.Request, error) {
	p := sess.Principal()
	req, err := s.submit(ctx, p, employeeID, payload)
	if err != nil {
		var kind model.RequestKind
		if payload != nil {
			kind = payload.Kind()
		}
		s.notifier.Notify(ctx, failureEvent(model.ActionSubmitRequest, kind, uuid.Nil, p, err))
		return nil, err
	}
	s.notifier.Notify(ctx, successEvent(model.ActionSubmitRequest, req, p))
	return req, nil
}

func (s *lifecycleService) submit(ctx context.Context, p *model.Principal, employeeID uuid.UUID, payload SubmitPayload) (model.Request, error) {
	if !authz.CanAccess(p, model.RoleEmployee, model.RoleAdmin) {
		return nil, fmt.Errorf("submit: %w", apperror.ErrUnauthorized)
	}
	if p.Role == model.RoleEmployee && !p.IsEmployee(employeeID) {
		return nil, fmt.Errorf("submit for another employee: %w", apperror.ErrUnauthorized)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is required", apperror.ErrValidation)
	}
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, describeValidation(err))
	}

	emp, err := s.repo.Employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessCompany(p, emp.CompanyID) {
		return nil, fmt.Errorf("submit: %w", apperror.ErrUnauthorized)
	}

	req, err := payload.build(emp, s.now())
	if err != nil {
		return nil, err
	}

	err = s.repo.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Requests.Insert(txCtx, req); err != nil {
			return fmt.Errorf("failed to create %s request: %w", req.Kind(), err)
		}
		return s.audit(txCtx, p, req, model.ActionSubmitRequest, "", req.StatusValue(), map[string]any{
			"employee_id": employeeID.String(),
		})
	})
	if err != nil {
		s.logger.Error("submit failed", zap.String("kind", string(payload.Kind())), zap.Error(err))
		return nil, err
	}

	s.logger.Info("request submitted",
		zap.String("kind", string(req.Kind())),
		zap.String("id", req.RequestID().String()),
		zap.String("actor", p.ID.String()),
	)
	return s.repo.Requests.FindByID(ctx, req.Kind(), req.RequestID())
}

func (s *lifecycleService) Get(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID) (model.Request, error) {
	p := sess.Principal()
	if !authz.CanAccess(p, model.RoleEmployee, model.RoleAdmin) {
		return nil, fmt.Errorf("view request: %w", apperror.ErrUnauthorized)
	}
	req, err := s.repo.Requests.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanView(p, req) {
		return nil, fmt.Errorf("view request: %w", apperror.ErrUnauthorized)
	}
	return req, nil
}

func (s *lifecycleService) History(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID) ([]model.AuditLog, error) {
	if _, err := s.Get(ctx, sess, kind, id); err != nil {
		return nil, err
	}
	return s.repo.Audit.ListByEntity(ctx, id)
}

// --- Transitions ---

// plan is what a transition decided: the next status, the extra columns to
// write and the audit details.
type plan struct {
	action  string
	status  string
	extra   map[string]any
	details map[string]any
}

type planner func(ctx context.Context, p *model.Principal, req model.Request) (plan, error)

type authorizer func(p *model.Principal, req model.Request) error

func requireReviewer(action string) authorizer {
	return func(p *model.Principal, req model.Request) error {
		return authz.RequireReviewer(p, req.OwnerCompanyID(), action)
	}
}

// transition is the shared read, authorize, check, conditional-write path.
// The write only lands if the row still has the status and version the plan
// was made on; otherwise the caller gets ErrStaleState.
func (s *lifecycleService) transition(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID, version int, action string, authorize authorizer, decide planner) (model.Request, error) {
	p := sess.Principal()

	req, err := s.doTransition(ctx, p, kind, id, version, action, authorize, decide)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			s.logger.Warn("transition denied", zap.String("action", action), zap.String("kind", string(kind)))
		}
		s.notifier.Notify(ctx, failureEvent(action, kind, id, p, err))
		return nil, err
	}
	s.notifier.Notify(ctx, successEvent(action, req, p))
	return req, nil
}

func (s *lifecycleService) doTransition(ctx context.Context, p *model.Principal, kind model.RequestKind, id uuid.UUID, version int, action string, authorize authorizer, decide planner) (model.Request, error) {
	if p == nil || !p.Active {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(action), apperror.ErrUnauthorized)
	}

	req, err := s.repo.Requests.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, req); err != nil {
		return nil, err
	}
	if version != 0 && version != req.Revision() {
		return nil, fmt.Errorf("%s request %s read at version %d, now %d: %w",
			kind, id, version, req.Revision(), apperror.ErrStaleState)
	}
	if req.Terminal() {
		return nil, fmt.Errorf("%w: %s request is already %s", apperror.ErrInvalidTransition, kind, req.StatusValue())
	}

	pl, err := decide(ctx, p, req)
	if err != nil {
		return nil, err
	}

	from := req.StatusValue()
	cond := repository.StatusCondition{Status: from, Version: req.Revision()}
	err = s.repo.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Requests.UpdateStatus(txCtx, kind, id, cond, pl.status, pl.extra); err != nil {
			return err
		}
		return s.audit(txCtx, p, req, pl.action, from, pl.status, pl.details)
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrStaleState) {
			s.logger.Error("transition write failed", zap.String("action", pl.action), zap.String("id", id.String()), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("request transitioned",
		zap.String("kind", string(kind)),
		zap.String("id", id.String()),
		zap.String("action", pl.action),
		zap.String("from", from),
		zap.String("to", pl.status),
		zap.String("actor", p.ID.String()),
	)
	return s.repo.Requests.FindByID(ctx, kind, id)
}

func (s *lifecycleService) StartReview(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID, in ReviewInput) (model.Request, error) {
	return s.transition(ctx, sess, kind, id, in.Version, model.ActionStartReview, requireReviewer("start review"),
		func(_ context.Context, p *model.Principal, req model.Request) (plan, error) {
			var next string
			switch r := req.(type) {
			case *model.DocumentRequest:
				if r.Status != model.DocumentPending {
					return plan{}, invalidTransition(req, string(model.DocumentInProgress))
				}
				next = string(model.DocumentInProgress)
			case *model.GenericRequest:
				if r.Status != model.GenericPending {
					return plan{}, invalidTransition(req, string(model.GenericInReview))
				}
				next = string(model.GenericInReview)
			default:
				return plan{}, fmt.Errorf("%w: leave requests have no review stage", apperror.ErrInvalidTransition)
			}
			return plan{
				action:  model.ActionStartReview,
				status:  next,
				extra:   map[string]any{"reviewed_by": p.ID},
				details: map[string]any{"comments": in.Comments},
			}, nil
		})
}

func (s *lifecycleService) Approve(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID, in ReviewInput) (model.Request, error) {
	return s.transition(ctx, sess, kind, id, in.Version, model.ActionApproveRequest, requireReviewer("approve"),
		func(_ context.Context, p *model.Principal, req model.Request) (plan, error) {
			now := s.now()
			comments := strings.TrimSpace(in.Comments)
			pl := plan{action: model.ActionApproveRequest, details: map[string]any{"comments": comments}}

			switch r := req.(type) {
			case *model.LeaveRequest:
				pl.status = string(model.LeaveApproved)
				pl.extra = map[string]any{"approved_by": p.ID, "reviewed_at": now, "review_comments": comments}
			case *model.DocumentRequest:
				if r.Fulfillment() == nil {
					return plan{}, fmt.Errorf("document request %s: %w", r.ID, apperror.ErrFulfillmentRequired)
				}
				pl.status = string(model.DocumentCompleted)
				pl.extra = map[string]any{"reviewed_by": p.ID, "completed_at": now, "review_comments": comments}
			case *model.GenericRequest:
				pl.extra = map[string]any{"reviewed_by": p.ID, "reviewed_at": now, "review_comments": comments}
				if next, step := r.NextApprover(); step > 0 {
					pl.action = model.ActionAdvanceRequest
					pl.status = string(model.GenericInReview)
					pl.extra["current_approver"] = next
					pl.extra["current_step"] = step
					pl.details["approved_step"] = r.CurrentApprover
					pl.details["step"] = step
					pl.details["next_approver"] = next
				} else {
					pl.status = string(model.GenericApproved)
				}
			}
			return pl, nil
		})
}

func (s *lifecycleService) Reject(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID, in ReviewInput) (model.Request, error) {
	return s.transition(ctx, sess, kind, id, in.Version, model.ActionRejectRequest, requireReviewer("reject"),
		func(_ context.Context, p *model.Principal, req model.Request) (plan, error) {
			reason := strings.TrimSpace(in.Comments)
			if reason == "" {
				return plan{}, fmt.Errorf("%w: a rejection reason is required", apperror.ErrValidation)
			}
			now := s.now()
			pl := plan{action: model.ActionRejectRequest, details: map[string]any{"reason": reason}}

			switch req.(type) {
			case *model.LeaveRequest:
				pl.status = string(model.LeaveRejected)
				pl.extra = map[string]any{"approved_by": p.ID, "reviewed_at": now, "review_comments": reason}
			case *model.DocumentRequest:
				pl.status = string(model.DocumentRejected)
				pl.extra = map[string]any{"reviewed_by": p.ID, "review_comments": reason}
			case *model.GenericRequest:
				pl.status = string(model.GenericRejected)
				pl.extra = map[string]any{"reviewed_by": p.ID, "reviewed_at": now, "review_comments": reason}
			}
			return pl, nil
		})
}

func (s *lifecycleService) Fulfill(ctx context.Context, sess *session.Session, documentRequestID uuid.UUID, in FulfillInput) (model.Request, error) {
	location := strings.TrimSpace(in.UploadedLocation)
	hasExisting := in.ExistingDocumentID != nil && *in.ExistingDocumentID != uuid.Nil
	if hasExisting == (location != "") {
		err := fmt.Errorf("%w: provide exactly one of existing_document_id or uploaded_location", apperror.ErrValidation)
		s.notifier.Notify(ctx, failureEvent(model.ActionFulfillRequest, model.KindDocument, documentRequestID, sess.Principal(), err))
		return nil, err
	}

	return s.transition(ctx, sess, model.KindDocument, documentRequestID, in.Version, model.ActionFulfillRequest, requireReviewer("fulfill"),
		func(ctx context.Context, p *model.Principal, req model.Request) (plan, error) {
			docReq := req.(*model.DocumentRequest)
			pl := plan{
				action:  model.ActionFulfillRequest,
				status:  string(docReq.Status),
				details: map[string]any{"notes": in.Notes},
			}

			if hasExisting {
				doc, err := s.repo.Documents.FindByID(ctx, *in.ExistingDocumentID)
				if err != nil {
					if errors.Is(err, apperror.ErrNotFound) {
						return plan{}, fmt.Errorf("%w: document not found", apperror.ErrValidation)
					}
					return plan{}, err
				}
				if doc.EmployeeID != docReq.EmployeeID {
					return plan{}, fmt.Errorf("%w: document belongs to another employee", apperror.ErrValidation)
				}
				pl.extra = map[string]any{"fulfilled_document_id": doc.ID, "fulfillment_url": "", "fulfillment_notes": in.Notes}
				pl.details["existing_document_id"] = doc.ID.String()
				return pl, nil
			}

			if s.files == nil {
				return plan{}, fmt.Errorf("%w: file uploads are not configured", apperror.ErrValidation)
			}
			if owner, ok := storage.UploadCompany(location); ok && owner != uuid.Nil && owner != docReq.CompanyID {
				return plan{}, fmt.Errorf("%w: upload belongs to another company", apperror.ErrValidation)
			}
			url, err := s.files.Resolve(ctx, location)
			if err != nil {
				if errors.Is(err, apperror.ErrNotFound) {
					return plan{}, fmt.Errorf("%w: uploaded file not found", apperror.ErrValidation)
				}
				return plan{}, err
			}
			pl.extra = map[string]any{"fulfilled_document_id": nil, "fulfillment_url": url, "fulfillment_notes": in.Notes}
			pl.details["uploaded_location"] = url
			return pl, nil
		})
}

func (s *lifecycleService) Cancel(ctx context.Context, sess *session.Session, kind model.RequestKind, id uuid.UUID, in ReviewInput) (model.Request, error) {
	authorize := func(p *model.Principal, req model.Request) error {
		if authz.IsReviewer(p, req.OwnerCompanyID()) {
			return nil
		}
		if authz.CanAccess(p, model.RoleEmployee) && authz.CanAccessCompany(p, req.OwnerCompanyID()) && p.IsEmployee(req.OwnerID()) {
			return nil
		}
		return fmt.Errorf("cancel: %w", apperror.ErrUnauthorized)
	}

	return s.transition(ctx, sess, kind, id, in.Version, model.ActionCancelRequest, authorize,
		func(_ context.Context, _ *model.Principal, req model.Request) (plan, error) {
			var next string
			switch req.(type) {
			case *model.LeaveRequest:
				next = string(model.LeaveCancelled)
			case *model.DocumentRequest:
				next = string(model.DocumentCancelled)
			case *model.GenericRequest:
				next = string(model.GenericCancelled)
			}
			return plan{
				action:  model.ActionCancelRequest,
				status:  next,
				details: map[string]any{"comments": strings.TrimSpace(in.Comments)},
			}, nil
		})
}

// --- Helpers ---

func (s *lifecycleService) audit(ctx context.Context, p *model.Principal, req model.Request, action, from, to string, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}
	actorID := p.ID
	entry := model.AuditLog{
		ActorID:    &actorID,
		ActorEmail: p.Email,
		CompanyID:  req.OwnerCompanyID(),
		Action:     action,
		EntityKind: req.Kind(),
		EntityID:   req.RequestID(),
		FromStatus: from,
		ToStatus:   to,
		Details:    string(payload),
	}
	if err := s.repo.Audit.Log(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func invalidTransition(req model.Request, to string) error {
	return fmt.Errorf("%w: %s request cannot move from %s to %s",
		apperror.ErrInvalidTransition, req.Kind(), req.StatusValue(), to)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
