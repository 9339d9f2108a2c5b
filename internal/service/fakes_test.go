package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrportal/internal/model"
	"hrportal/internal/repository"
	"hrportal/internal/session"
	"hrportal/pkg/apperror"
)

// --- requests ---

type fakeRequests struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]model.Request
	employees *fakeEmployees

	// beforeUpdate runs inside UpdateStatus before the condition is checked,
	// simulating a concurrent writer.
	beforeUpdate func()
}

func newFakeRequests(emps *fakeEmployees) *fakeRequests {
	return &fakeRequests{rows: map[uuid.UUID]model.Request{}, employees: emps}
}

func clone(req model.Request) model.Request {
	switch r := req.(type) {
	case *model.LeaveRequest:
		c := *r
		c.Employee = nil
		return &c
	case *model.DocumentRequest:
		c := *r
		c.Employee = nil
		return &c
	case *model.GenericRequest:
		c := *r
		c.Employee = nil
		return &c
	}
	panic(fmt.Sprintf("unexpected request type %T", req))
}

func (f *fakeRequests) withOwner(req model.Request) model.Request {
	c := clone(req)
	emp, ok := f.employees.rows[c.OwnerID()]
	if !ok {
		return c
	}
	e := *emp
	switch r := c.(type) {
	case *model.LeaveRequest:
		r.Employee = &e
	case *model.DocumentRequest:
		r.Employee = &e
	case *model.GenericRequest:
		r.Employee = &e
	}
	return c
}

func (f *fakeRequests) put(req model.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[req.RequestID()] = clone(req)
}

func (f *fakeRequests) Insert(_ context.Context, req model.Request) error {
	f.put(req)
	return nil
}

func (f *fakeRequests) UpdateStatus(_ context.Context, kind model.RequestKind, id uuid.UUID, cond repository.StatusCondition, newStatus string, extra map[string]any) error {
	if f.beforeUpdate != nil {
		hook := f.beforeUpdate
		f.beforeUpdate = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok || row.Kind() != kind {
		return fmt.Errorf("%s request %s: %w", kind, id, apperror.ErrNotFound)
	}
	if row.StatusValue() != cond.Status || row.Revision() != cond.Version {
		return fmt.Errorf("%s request %s: %w", kind, id, apperror.ErrStaleState)
	}

	now := time.Now()
	switch r := row.(type) {
	case *model.LeaveRequest:
		r.Status = model.LeaveStatus(newStatus)
		r.Version++
		r.UpdatedAt = now
		for k, v := range extra {
			switch k {
			case "approved_by":
				r.ApprovedBy = uuidPtr(v)
			case "reviewed_at":
				r.ReviewedAt = timePtr(v)
			case "review_comments":
				r.ReviewComments = v.(string)
			default:
				return fmt.Errorf("leave_requests has no column %q", k)
			}
		}
	case *model.DocumentRequest:
		r.Status = model.DocumentStatus(newStatus)
		r.Version++
		r.UpdatedAt = now
		for k, v := range extra {
			switch k {
			case "reviewed_by":
				r.ReviewedBy = uuidPtr(v)
			case "completed_at":
				r.CompletedAt = timePtr(v)
			case "review_comments":
				r.ReviewComments = v.(string)
			case "fulfilled_document_id":
				r.FulfilledDocumentID = uuidPtr(v)
			case "fulfillment_url":
				r.FulfillmentURL = v.(string)
			case "fulfillment_notes":
				r.FulfillmentNotes = v.(string)
			default:
				return fmt.Errorf("document_requests has no column %q", k)
			}
		}
	case *model.GenericRequest:
		r.Status = model.GenericStatus(newStatus)
		r.Version++
		r.UpdatedAt = now
		for k, v := range extra {
			switch k {
			case "reviewed_by":
				r.ReviewedBy = uuidPtr(v)
			case "reviewed_at":
				r.ReviewedAt = timePtr(v)
			case "review_comments":
				r.ReviewComments = v.(string)
			case "current_approver":
				r.CurrentApprover = v.(string)
			case "current_step":
				r.CurrentStep = v.(int)
			default:
				return fmt.Errorf("employee_requests has no column %q", k)
			}
		}
	}
	return nil
}

func uuidPtr(v any) *uuid.UUID {
	if id, ok := v.(uuid.UUID); ok {
		return &id
	}
	return nil
}

func timePtr(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}
	return nil
}

func (f *fakeRequests) FindByID(_ context.Context, kind model.RequestKind, id uuid.UUID) (model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.Kind() != kind {
		return nil, fmt.Errorf("%s request %s: %w", kind, id, apperror.ErrNotFound)
	}
	return f.withOwner(row), nil
}

func (f *fakeRequests) ListByEmployee(_ context.Context, kind model.RequestKind, employeeID uuid.UUID) ([]model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Request
	for _, row := range f.rows {
		if row.Kind() == kind && row.OwnerID() == employeeID {
			out = append(out, f.withOwner(row))
		}
	}
	return out, nil
}

func (f *fakeRequests) ListByCompany(_ context.Context, kind model.RequestKind, companyID uuid.UUID, page, pageSize int) ([]model.Request, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.Request
	for _, row := range f.rows {
		if row.Kind() == kind && row.OwnerCompanyID() == companyID {
			all = append(all, f.withOwner(row))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].RequestID().String() < all[j].RequestID().String()
	})

	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, int64(len(all)), nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

// --- employees, documents, users ---

type fakeEmployees struct {
	rows map[uuid.UUID]*model.Employee
}

func (f *fakeEmployees) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	emp, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, apperror.ErrNotFound)
	}
	c := *emp
	return &c, nil
}

func (f *fakeEmployees) ListByCompany(_ context.Context, companyID uuid.UUID) ([]model.Employee, error) {
	var out []model.Employee
	for _, emp := range f.rows {
		if emp.CompanyID == companyID {
			out = append(out, *emp)
		}
	}
	return out, nil
}

type fakeDocuments struct {
	rows     map[uuid.UUID]*model.EmployeeDocument
	requests *fakeRequests
}

func (f *fakeDocuments) FindByID(_ context.Context, id uuid.UUID) (*model.EmployeeDocument, error) {
	doc, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, apperror.ErrNotFound)
	}
	c := *doc
	return &c, nil
}

func (f *fakeDocuments) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]model.EmployeeDocument, error) {
	var out []model.EmployeeDocument
	for _, doc := range f.rows {
		if doc.EmployeeID == employeeID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (f *fakeDocuments) FindByFileURL(_ context.Context, url string) (*model.EmployeeDocument, error) {
	for _, doc := range f.rows {
		if doc.FileURL == url {
			c := *doc
			return &c, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", url, apperror.ErrNotFound)
}

func (f *fakeDocuments) FindRequestByFulfillmentURL(_ context.Context, url string) (*model.DocumentRequest, error) {
	if f.requests != nil {
		f.requests.mu.Lock()
		defer f.requests.mu.Unlock()
		for _, row := range f.requests.rows {
			if doc, ok := row.(*model.DocumentRequest); ok && doc.FulfillmentURL == url {
				c := *doc
				return &c, nil
			}
		}
	}
	return nil, fmt.Errorf("document request for %s: %w", url, apperror.ErrNotFound)
}

type fakeUsers struct {
	rows map[string]*model.User
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.rows[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperror.ErrNotFound)
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	c := *user
	f.rows[strings.ToLower(user.Email)] = &c
	return nil
}

func (f *fakeUsers) List(_ context.Context, companyID *uuid.UUID, page, limit int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.rows {
		if companyID == nil || (u.CompanyID != nil && *u.CompanyID == *companyID) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	total := int64(len(out))
	start := (page - 1) * limit
	if start > len(out) {
		start = len(out)
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeUsers) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	for _, u := range f.rows {
		if u.ID == id {
			u.Active = active
			return nil
		}
	}
	return fmt.Errorf("user: %w", apperror.ErrNotFound)
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.rows {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, fmt.Errorf("user: %w", apperror.ErrNotFound)
}

// --- audit, tx ---

type fakeAudit struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (f *fakeAudit) Log(_ context.Context, entry *model.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAudit) List(_ context.Context, companyID *uuid.UUID, page, limit int) ([]model.AuditLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AuditLog
	for i := len(f.entries) - 1; i >= 0; i-- {
		if companyID == nil || f.entries[i].CompanyID == *companyID {
			out = append(out, f.entries[i])
		}
	}
	total := int64(len(out))
	start := (page - 1) * limit
	if start >= len(out) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeAudit) ListByEntity(_ context.Context, entityID uuid.UUID) ([]model.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AuditLog
	for _, e := range f.entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAudit) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.Action
	}
	return out
}

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// --- collaborators ---

type fakeFiles struct {
	known map[string]string
}

func (f *fakeFiles) Resolve(_ context.Context, location string) (string, error) {
	url, ok := f.known[location]
	if !ok {
		return "", fmt.Errorf("upload %q: %w", location, apperror.ErrNotFound)
	}
	return url, nil
}

func (f *fakeFiles) Path(_ context.Context, location string) (string, error) {
	if _, ok := f.known[location]; !ok {
		return "", fmt.Errorf("upload %q: %w", location, apperror.ErrNotFound)
	}
	return "/srv/uploads/" + location, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Notify(_ context.Context, ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) last() Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return Event{}
	}
	return n.events[len(n.events)-1]
}

type fakeStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*session.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[uuid.UUID]*session.Session{}}
}

func (s *fakeStore) Save(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[sess.ID()] = sess
	return nil
}

func (s *fakeStore) Load(_ context.Context, id uuid.UUID) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.rows[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return sess, nil
}

func (s *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

// --- fixture ---

// fixture is two companies: A with employees alice and bob plus an admin,
// B with carol plus an admin, and one super admin without a company.
type fixture struct {
	repo      *repository.Repository
	requests  *fakeRequests
	employees *fakeEmployees
	documents *fakeDocuments
	audit     *fakeAudit
	files     *fakeFiles
	notifier  *recordingNotifier

	lifecycle  LifecycleService
	aggregator AggregatorService

	companyA, companyB uuid.UUID
	alice, bob, carol  *model.Employee

	adminA, adminA2, adminB, superAdmin *session.Session
	aliceSess, bobSess, carolSess       *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{companyA: uuid.New(), companyB: uuid.New()}
	f.alice = &model.Employee{ID: uuid.New(), CompanyID: f.companyA, ExternalID: "EMP-001", FullName: "Alice Nguyen", Department: "Finance", Active: true}
	f.bob = &model.Employee{ID: uuid.New(), CompanyID: f.companyA, ExternalID: "EMP-002", FullName: "Bob Tran", Department: "IT", Active: true}
	f.carol = &model.Employee{ID: uuid.New(), CompanyID: f.companyB, ExternalID: "EMP-900", FullName: "Carol Le", Active: true}

	f.employees = &fakeEmployees{rows: map[uuid.UUID]*model.Employee{
		f.alice.ID: f.alice, f.bob.ID: f.bob, f.carol.ID: f.carol,
	}}
	f.requests = newFakeRequests(f.employees)
	f.documents = &fakeDocuments{rows: map[uuid.UUID]*model.EmployeeDocument{}, requests: f.requests}
	f.audit = &fakeAudit{}
	f.files = &fakeFiles{known: map[string]string{}}
	f.notifier = &recordingNotifier{}

	f.repo = &repository.Repository{
		Requests:  f.requests,
		Employees: f.employees,
		Documents: f.documents,
		Users:     &fakeUsers{rows: map[string]*model.User{}},
		Audit:     f.audit,
		Tx:        fakeTx{},
	}
	f.lifecycle = NewLifecycleService(f.repo, f.files, f.notifier, zap.NewNop())
	f.aggregator = NewAggregatorService(f.requests, zap.NewNop())

	f.adminA = newSession(model.RoleAdmin, &f.companyA, nil)
	f.adminA2 = newSession(model.RoleAdmin, &f.companyA, nil)
	f.adminB = newSession(model.RoleAdmin, &f.companyB, nil)
	f.superAdmin = newSession(model.RoleSuperAdmin, nil, nil)
	f.aliceSess = newSession(model.RoleEmployee, &f.companyA, &f.alice.ID)
	f.bobSess = newSession(model.RoleEmployee, &f.companyA, &f.bob.ID)
	f.carolSess = newSession(model.RoleEmployee, &f.companyB, &f.carol.ID)
	return f
}

func newSession(role model.Role, company, employee *uuid.UUID) *session.Session {
	p := model.Principal{
		ID:         uuid.New(),
		Email:      fmt.Sprintf("%s-%s@corp.test", role, uuid.NewString()[:8]),
		Role:       role,
		CompanyID:  company,
		EmployeeID: employee,
		Active:     true,
	}
	return session.New(p, time.Hour)
}

func inactive(sess *session.Session) *session.Session {
	p := sess.Principal()
	p.Active = false
	return session.New(*p, time.Hour)
}

func (f *fixture) seedLeave(emp *model.Employee, status model.LeaveStatus, at time.Time) *model.LeaveRequest {
	req := &model.LeaveRequest{
		ID: uuid.New(), EmployeeID: emp.ID, CompanyID: emp.CompanyID,
		LeaveType: "Annual", StartDate: at, EndDate: at.AddDate(0, 0, 1),
		Status: status, Version: 1, CreatedAt: at,
	}
	f.requests.put(req)
	return req
}

func (f *fixture) seedDocument(emp *model.Employee, status model.DocumentStatus, at time.Time) *model.DocumentRequest {
	req := &model.DocumentRequest{
		ID: uuid.New(), EmployeeID: emp.ID, CompanyID: emp.CompanyID,
		DocumentType: "Employment Certificate", Purpose: "Visa application", Language: "English",
		Status: status, RequestedAt: at, Version: 1,
	}
	f.requests.put(req)
	return req
}

func (f *fixture) seedGeneric(emp *model.Employee, status model.GenericStatus, at time.Time, route ...string) *model.GenericRequest {
	req := &model.GenericRequest{
		ID: uuid.New(), EmployeeID: emp.ID, CompanyID: emp.CompanyID,
		RequestType: "Laptop Replacement", RequestCategory: "IT Support",
		FormData:      model.JSONMap{"subject": "Screen broken"},
		WorkflowRoute: model.StringList(route),
		Status:        status, SubmittedAt: at, Version: 1,
	}
	if len(route) > 0 {
		req.CurrentApprover = route[0]
	}
	f.requests.put(req)
	return req
}

func (f *fixture) seedDocumentOnFile(emp *model.Employee) *model.EmployeeDocument {
	doc := &model.EmployeeDocument{
		ID: uuid.New(), EmployeeID: emp.ID, CompanyID: emp.CompanyID,
		Title: "Employment Certificate 2025", DocumentType: "Employment Certificate",
		FileURL: "/uploads/cert.pdf",
	}
	f.documents.rows[doc.ID] = doc
	return doc
}
