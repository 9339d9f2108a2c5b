package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrportal/internal/middleware"
	"hrportal/internal/service"
	"hrportal/pkg/response"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
	now               func() time.Time
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, now: time.Now}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	statsGroup := router.Group("/api/statistics", authenticate)
	{
		statsGroup.GET("/requests", h.GetStatistics)
	}
}

// GetStatistics summarizes requests submitted in a time range
// @Summary      Get request statistics
// @Description  Counts by status, kind and category. Defaults to the current month. Date-only end_date includes the whole day.
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Start date (2006-01-02 or RFC3339)"
// @Param        end_date    query     string  false  "End date (2006-01-02 or RFC3339)"
// @Param        company_id  query     string  false  "Company scope, required for super admins"
// @Success      200         {object}  response.Response{data=model.RequestStatistics}
// @Failure      400         {object}  response.Response
// @Router       /api/statistics/requests [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	now := h.now()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endDate := now

	if s := c.Query("start_date"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			badRequest(c, "invalid start_date format, expected 2006-01-02 or RFC3339")
			return
		}
		startDate = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			badRequest(c, "invalid end_date format, expected 2006-01-02 or RFC3339")
			return
		}
		if len(s) == len("2006-01-02") {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		endDate = t
	}

	var companyID uuid.UUID
	if cid := c.Query("company_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			badRequest(c, "invalid company_id")
			return
		}
		companyID = id
	}

	stats, err := h.statisticsService.GetStatistics(c.Request.Context(), middleware.CurrentSession(c), companyID, startDate, endDate)
	if err != nil {
		respondError(c, err, false)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
