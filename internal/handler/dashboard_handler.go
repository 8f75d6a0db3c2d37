package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/internal/middleware"
	"github.com/spendwise/internal/service"
	"github.com/spendwise/internal/session"
)

// DashboardHandler handles the current-month summary page
type DashboardHandler struct {
	reportService *service.ReportService
	sessions      *session.Manager
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(reportService *service.ReportService, sessions *session.Manager) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
		sessions:      sessions,
	}
}

// Show renders the dashboard for the current month
// GET /dashboard
func (h *DashboardHandler) Show(c *gin.Context) {
	data, err := h.reportService.Dashboard(middleware.GetUserID(c), time.Now())
	if err != nil {
		fail(c, err)
		return
	}

	// Chart arrays for the client-side charting consumer
	chartCategories := make([]string, 0, len(data.Budgets))
	chartSpent := make([]float64, 0, len(data.Budgets))
	chartBudgets := make([]float64, 0, len(data.Budgets))
	for _, b := range data.Budgets {
		chartCategories = append(chartCategories, b.Category)
		chartSpent = append(chartSpent, b.Spent)
		chartBudgets = append(chartBudgets, b.Budget)
	}

	render(c, h.sessions, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
		"total_spent":      data.TotalSpent,
		"budget_data":      data.Budgets,
		"recent_expenses":  data.RecentExpenses,
		"month_name":       data.MonthName,
		"year":             data.Year,
		"chart_categories": chartCategories,
		"chart_spent":      chartSpent,
		"chart_budgets":    chartBudgets,
	})
}

// RegisterRoutes registers the dashboard route
func (h *DashboardHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	r.GET("/dashboard", requireAuth, h.Show)
}
