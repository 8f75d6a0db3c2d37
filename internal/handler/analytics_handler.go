package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/internal/middleware"
	"github.com/spendwise/internal/service"
	"github.com/spendwise/internal/session"
)

// AnalyticsHandler handles the yearly summary page
type AnalyticsHandler struct {
	reportService *service.ReportService
	sessions      *session.Manager
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(reportService *service.ReportService, sessions *session.Manager) *AnalyticsHandler {
	return &AnalyticsHandler{
		reportService: reportService,
		sessions:      sessions,
	}
}

// Show renders spending analytics for a year, default the current one
// GET /analytics?year=
func (h *AnalyticsHandler) Show(c *gin.Context) {
	year := queryInt(c, "year", time.Now().Year())

	data, err := h.reportService.Year(middleware.GetUserID(c), year)
	if err != nil {
		fail(c, err)
		return
	}

	months := make([]string, 0, len(data.MonthlyTotals))
	monthlyTotals := make([]float64, 0, len(data.MonthlyTotals))
	for _, m := range data.MonthlyTotals {
		months = append(months, m.Month)
		monthlyTotals = append(monthlyTotals, m.Total)
	}

	categoryNames := make([]string, 0, len(data.CategoryTotals))
	categoryTotals := make([]float64, 0, len(data.CategoryTotals))
	for _, ct := range data.CategoryTotals {
		categoryNames = append(categoryNames, ct.Category)
		categoryTotals = append(categoryTotals, ct.Total)
	}

	render(c, h.sessions, http.StatusOK, "analytics.html", "Analytics", gin.H{
		"year":            year,
		"monthly_data":    data.MonthlyTotals,
		"category_data":   data.CategoryTotals,
		"months":          months,
		"monthly_totals":  monthlyTotals,
		"category_names":  categoryNames,
		"category_totals": categoryTotals,
	})
}

// RegisterRoutes registers the analytics route
func (h *AnalyticsHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	r.GET("/analytics", requireAuth, h.Show)
}
