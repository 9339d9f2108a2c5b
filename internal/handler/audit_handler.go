package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrportal/internal/middleware"
	"hrportal/internal/model"
	"hrportal/internal/service"
	"hrportal/pkg/pagination"
	"hrportal/pkg/response"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	group := router.Group("/api/audit-logs", authenticate, middleware.RequireRole(model.ReviewerRoles...))
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs lists the request audit trail of a company
// @Summary      Get audit logs
// @Description  Newest first. Admins see their own company; super admins may pass company_id or omit it to see every company.
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        company_id  query     string  false  "Company scope"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=response.Page}
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	var companyID uuid.UUID
	if cid := c.Query("company_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			badRequest(c, "invalid company_id")
			return
		}
		companyID = id
	}
	page := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), middleware.CurrentSession(c), companyID, page.Page, page.Limit)
	if err != nil {
		respondError(c, err, false)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Page{
		Items: logs,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}))
}
