package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrportal/internal/middleware"
	"hrportal/internal/model"
	"hrportal/internal/service"
	"hrportal/pkg/response"
)

type EmployeeHandler struct {
	employeeService service.EmployeeService
}

func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	employees := router.Group("/api/employees", authenticate)
	{
		employees.GET("", middleware.RequireRole(model.ReviewerRoles...), h.ListEmployees)
		employees.GET("/:id/documents", h.ListDocuments)
	}
}

// ListEmployees lists the employee directory of a company
// @Summary      List employees
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        company_id  query     string  false  "Company scope, required for super admins"
// @Success      200         {object}  response.Response{data=[]model.Employee}
// @Router       /api/employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var companyID uuid.UUID
	if cid := c.Query("company_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			badRequest(c, "invalid company_id")
			return
		}
		companyID = id
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), middleware.CurrentSession(c), companyID)
	if err != nil {
		respondError(c, err, false)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employees))
}

// ListDocuments lists the documents on file for one employee
// @Summary      List employee documents
// @Description  Candidates for existing_document_id when fulfilling a document request.
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  response.Response{data=[]model.EmployeeDocument}
// @Failure      404  {object}  response.Response
// @Router       /api/employees/{id}/documents [get]
func (h *EmployeeHandler) ListDocuments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	docs, err := h.employeeService.ListDocuments(c.Request.Context(), middleware.CurrentSession(c), id)
	if err != nil {
		respondError(c, err, true)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, docs))
}
