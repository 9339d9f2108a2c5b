package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrportal/internal/middleware"
	"hrportal/internal/model"
	"hrportal/internal/service"
	"hrportal/pkg/pagination"
	"hrportal/pkg/response"
)

type RequestHandler struct {
	lifecycle  service.LifecycleService
	aggregator service.AggregatorService
}

func NewRequestHandler(lifecycle service.LifecycleService, aggregator service.AggregatorService) *RequestHandler {
	return &RequestHandler{lifecycle: lifecycle, aggregator: aggregator}
}

// RegisterRoutes mounts the request endpoints. authenticate must resolve the
// session; per-record authorization happens in the services.
func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	requests := router.Group("/api/requests", authenticate)
	reviewers := middleware.RequireRole(model.ReviewerRoles...)
	{
		requests.GET("", h.ListRequests)
		requests.POST("/:kind", h.SubmitRequest)
		requests.GET("/:kind/:id", h.GetRequest)
		requests.GET("/:kind/:id/history", h.GetHistory)
		requests.PUT("/:kind/:id/review", reviewers, h.StartReview)
		requests.PUT("/:kind/:id/approve", reviewers, h.ApproveRequest)
		requests.PUT("/:kind/:id/reject", reviewers, h.RejectRequest)
		requests.PUT("/:kind/:id/fulfill", reviewers, h.FulfillRequest)
		requests.PUT("/:kind/:id/cancel", h.CancelRequest)
	}
}

// RequestResponse is a stored record together with its unified view.
type RequestResponse struct {
	Request model.Request        `json:"request"`
	Unified model.UnifiedRequest `json:"unified"`
}

func toResponse(req model.Request) RequestResponse {
	return RequestResponse{Request: req, Unified: service.Normalize(req)}
}

// --- submission bodies ---

type leaveBody struct {
	EmployeeID *uuid.UUID `json:"employee_id"`
	LeaveType  string     `json:"leave_type"`
	StartDate  string     `json:"start_date" example:"2025-01-05"`
	EndDate    string     `json:"end_date" example:"2025-01-10"`
	Reason     string     `json:"reason"`
}

type documentBody struct {
	EmployeeID *uuid.UUID `json:"employee_id"`
	service.DocumentPayload
}

type genericBody struct {
	EmployeeID *uuid.UUID `json:"employee_id"`
	service.GenericPayload
}

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp.
// An empty string yields the zero time, which validation rejects.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func decodeSubmission(kind model.RequestKind, raw []byte) (*uuid.UUID, service.SubmitPayload, error) {
	switch kind {
	case model.KindLeave:
		var body leaveBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, nil, err
		}
		start, err := parseDate(body.StartDate)
		if err != nil {
			return nil, nil, err
		}
		end, err := parseDate(body.EndDate)
		if err != nil {
			return nil, nil, err
		}
		return body.EmployeeID, service.LeavePayload{
			LeaveType: body.LeaveType, StartDate: start, EndDate: end, Reason: body.Reason,
		}, nil
	case model.KindDocument:
		var body documentBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, nil, err
		}
		return body.EmployeeID, body.DocumentPayload, nil
	default:
		var body genericBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, nil, err
		}
		return body.EmployeeID, body.GenericPayload, nil
	}
}

// SubmitRequest files a new request
// @Summary      Submit a request
// @Description  Creates a leave, document or generic request in Pending. employee_id defaults to the caller's own employee record.
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        kind     path      string  true  "leave | document | generic"
// @Success      201      {object}  response.Response{data=RequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/requests/{kind} [post]
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	kind, err := model.ParseRequestKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	employeeID, payload, err := decodeSubmission(kind, raw)
	if err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	sess := middleware.CurrentSession(c)
	if employeeID == nil {
		if p := sess.Principal(); p != nil && p.EmployeeID != nil {
			employeeID = p.EmployeeID
		} else {
			badRequest(c, "employee_id is required")
			return
		}
	}

	rec, err := h.lifecycle.Submit(c.Request.Context(), sess, *employeeID, payload)
	if err != nil {
		respondError(c, err, false)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, toResponse(rec)))
}

// ListRequests returns the unified request list
// @Summary      List requests
// @Description  Merges every request kind visible to the caller, newest first.
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        status      query     string  false  "Pending | In Review | Approved | Rejected | Cancelled"
// @Param        category    query     string  false  "Category, case-insensitive"
// @Param        search      query     string  false  "Matches type, employee name or employee id"
// @Param        kind        query     string  false  "leave | document | generic"
// @Param        company_id  query     string  false  "Company scope, required for super admins"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Success      200         {object}  response.Response{data=response.Page}
// @Router       /api/requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	filter := service.ListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if s := c.Query("status"); s != "" {
		status, err := model.ParseCanonicalStatus(s)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		filter.Status = status
	}
	if k := c.Query("kind"); k != "" {
		kind, err := model.ParseRequestKind(k)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		filter.Kind = kind
	}
	if cid := c.Query("company_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			badRequest(c, "invalid company_id")
			return
		}
		filter.CompanyID = id
	}

	list, err := h.aggregator.ListUnified(c.Request.Context(), middleware.CurrentSession(c), filter)
	if err != nil {
		respondError(c, err, false)
		return
	}

	page := pagination.Parse(c)
	start, end := page.Window(len(list))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Page{
		Items: list[start:end],
		Total: int64(len(list)),
		Page:  page.Page,
		Limit: page.Limit,
	}))
}

// recordParams parses :kind and :id. Anything malformed is answered as a missing record.
func recordParams(c *gin.Context) (model.RequestKind, uuid.UUID, bool) {
	kind, err := model.ParseRequestKind(c.Param("kind"))
	if err != nil {
		notFound(c)
		return "", uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return "", uuid.Nil, false
	}
	return kind, id, true
}

// bindOptional binds a JSON body when one is present.
func bindOptional(c *gin.Context, dst interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}

// GetRequest returns one request
// @Summary      Get a request
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        kind  path      string  true  "leave | document | generic"
// @Param        id    path      string  true  "Request ID"
// @Success      200   {object}  response.Response{data=RequestResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/requests/{kind}/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	kind, id, ok := recordParams(c)
	if !ok {
		return
	}
	rec, err := h.lifecycle.Get(c.Request.Context(), middleware.CurrentSession(c), kind, id)
	if err != nil {
		respondError(c, err, true)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, toResponse(rec)))
}

// GetHistory returns the audit trail of one request
// @Summary      Request history
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        kind  path      string  true  "leave | document | generic"
// @Param        id    path      string  true  "Request ID"
// @Success      200   {object}  response.Response{data=[]model.AuditLog}
// @Router       /api/requests/{kind}/{id}/history [get]
func (h *RequestHandler) GetHistory(c *gin.Context) {
	kind, id, ok := recordParams(c)
	if !ok {
		return
	}
	logs, err := h.lifecycle.History(c.Request.Context(), middleware.CurrentSession(c), kind, id)
	if err != nil {
		respondError(c, err, true)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, logs))
}

type transitionFunc func(c *gin.Context, kind model.RequestKind, id uuid.UUID, in service.ReviewInput) (model.Request, error)

func (h *RequestHandler) transition(c *gin.Context, apply transitionFunc) {
	kind, id, ok := recordParams(c)
	if !ok {
		return
	}
	var in service.ReviewInput
	if !bindOptional(c, &in) {
		return
	}
	rec, err := apply(c, kind, id, in)
	if err != nil {
		respondError(c, err, true)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, toResponse(rec)))
}

// StartReview moves a request into review
// @Summary      Start review
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        kind     path      string               true   "document | generic"
// @Param        id       path      string               true   "Request ID"
// @Param        payload  body      service.ReviewInput  false  "Optional comments and expected version"
// @Success      200      {object}  response.Response{data=RequestResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{kind}/{id}/review [put]
func (h *RequestHandler) StartReview(c *gin.Context) {
	h.transition(c, func(c *gin.Context, kind model.RequestKind, id uuid.UUID, in service.ReviewInput) (model.Request, error) {
		return h.lifecycle.StartReview(c.Request.Context(), middleware.CurrentSession(c), kind, id, in)
	})
}

// ApproveRequest approves a pending or in-review request
// @Summary      Approve a request
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        kind     path      string               true   "leave | document | generic"
// @Param        id       path      string               true   "Request ID"
// @Param        payload  body      service.ReviewInput  false  "Optional comments and expected version"
// @Success      200      {object}  response.Response{data=RequestResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{kind}/{id}/approve [put]
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	h.transition(c, func(c *gin.Context, kind model.RequestKind, id uuid.UUID, in service.ReviewInput) (model.Request, error) {
		return h.lifecycle.Approve(c.Request.Context(), middleware.CurrentSession(c), kind, id, in)
	})
}

// RejectRequest rejects a request; comments carry the required reason
// @Summary      Reject a request
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        kind     path      string               true  "leave | document | generic"
// @Param        id       path      string               true  "Request ID"
// @Param        payload  body      service.ReviewInput  true  "Reason in comments"
// @Success      200      {object}  response.Response{data=RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests/{kind}/{id}/reject [put]
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	h.transition(c, func(c *gin.Context, kind model.RequestKind, id uuid.UUID, in service.ReviewInput) (model.Request, error) {
		return h.lifecycle.Reject(c.Request.Context(), middleware.CurrentSession(c), kind, id, in)
	})
}

// CancelRequest withdraws a request
// @Summary      Cancel a request
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        kind     path      string               true   "leave | document | generic"
// @Param        id       path      string               true   "Request ID"
// @Param        payload  body      service.ReviewInput  false  "Optional comments and expected version"
// @Success      200      {object}  response.Response{data=RequestResponse}
// @Router       /api/requests/{kind}/{id}/cancel [put]
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	h.transition(c, func(c *gin.Context, kind model.RequestKind, id uuid.UUID, in service.ReviewInput) (model.Request, error) {
		return h.lifecycle.Cancel(c.Request.Context(), middleware.CurrentSession(c), kind, id, in)
	})
}

// FulfillRequest attaches the issued document to a document request
// @Summary      Fulfill a document request
// @Description  Exactly one of existing_document_id or uploaded_location must be given.
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Document request ID"
// @Param        payload  body      service.FulfillInput  true  "Fulfillment source"
// @Success      200      {object}  response.Response{data=RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests/document/{id}/fulfill [put]
func (h *RequestHandler) FulfillRequest(c *gin.Context) {
	kind, id, ok := recordParams(c)
	if !ok {
		return
	}
	if kind != model.KindDocument {
		notFound(c)
		return
	}

	var in service.FulfillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	rec, err := h.lifecycle.Fulfill(c.Request.Context(), middleware.CurrentSession(c), id, in)
	if err != nil {
		respondError(c, err, true)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, toResponse(rec)))
}
