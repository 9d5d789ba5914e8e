package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"vph-backend/services"
	"vph-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

func (rc *ReportController) GetDashboard(c *gin.Context) {
	dash, err := rc.Reports.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, dash)
}

func (rc *ReportController) GetRoomSummary(c *gin.Context) {
	summary, err := rc.Reports.RoomSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

// GetRevenue reports totals for ?from=YYYY-MM-DD&to=YYYY-MM-DD,
// defaulting to the last 30 days.
func (rc *ReportController) GetRevenue(c *gin.Context) {
	to := services.Today(time.Now().UTC())
	from := to.AddDate(0, 0, -30)

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid from date")
			return
		}
		from = t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid to date")
			return
		}
		to = t
	}
	if to.Before(from) {
		utils.JSONError(c, http.StatusBadRequest, "to must not precede from")
		return
	}

	report, err := rc.Reports.Revenue(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

func (rc *ReportController) GetRecentBookings(c *gin.Context) {
	limit := 10
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	bookings, err := rc.Reports.RecentBookings(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}
