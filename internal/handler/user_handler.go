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

type UserHandler struct {
	userService service.UserService
}

// NewUserHandler sets up the routing dependencies for User endpoints
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	users := router.Group("/api/users", authenticate, middleware.RequireRole(model.ReviewerRoles...))
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PUT("/:id/activate", h.ActivateUser)
		users.PUT("/:id/deactivate", h.DeactivateUser)
	}
}

// CreateUser provisions a login account
// @Summary      Create a user
// @Description  Admins create employee and admin accounts in their own company. Only super admins create super admins.
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateUserInput  true  "Create User Payload"
// @Success      201      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var in service.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request payload")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), middleware.CurrentSession(c), in)
	if err != nil {
		respondError(c, err, false)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, user))
}

// ListUsers lists accounts of a company
// @Summary      List users
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        company_id  query     string  false  "Company scope"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=response.Page}
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
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

	users, total, err := h.userService.ListUsers(c.Request.Context(), middleware.CurrentSession(c), companyID, page.Page, page.Limit)
	if err != nil {
		respondError(c, err, false)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Page{
		Items: users,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}))
}

// ActivateUser re-enables a login account
// @Summary      Activate a user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id}/activate [put]
func (h *UserHandler) ActivateUser(c *gin.Context) {
	h.setActive(c, true)
}

// DeactivateUser disables a login account. Sessions already issued run until they expire.
// @Summary      Deactivate a user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id}/deactivate [put]
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	h.setActive(c, false)
}

func (h *UserHandler) setActive(c *gin.Context, active bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	user, err := h.userService.SetActive(c.Request.Context(), middleware.CurrentSession(c), id, active)
	if err != nil {
		respondError(c, err, false)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}
