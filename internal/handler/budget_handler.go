package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/internal/forms"
	"github.com/spendwise/internal/middleware"
	"github.com/spendwise/internal/service"
	"github.com/spendwise/internal/session"
	"github.com/spendwise/pkg/response"
)

// BudgetHandler handles the budget listing and upsert page
type BudgetHandler struct {
	budgetService *service.BudgetService
	sessions      *session.Manager
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, sessions *session.Manager) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		sessions:      sessions,
	}
}

// List shows the budget report for a month, default the current one
// GET /budgets?month=&year=
func (h *BudgetHandler) List(c *gin.Context) {
	now := time.Now()
	month := queryInt(c, "month", int(now.Month()))
	year := queryInt(c, "year", now.Year())
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	form := &forms.BudgetForm{Month: month, Year: year}
	h.renderList(c, form, nil, month, year)
}

// Set upserts a budget for (category, month, year): a second submission for
// the same tuple updates the existing row's amount.
// POST /budgets
func (h *BudgetHandler) Set(c *gin.Context) {
	now := time.Now()

	var form forms.BudgetForm
	if err := c.ShouldBind(&form); err != nil {
		form.FillDefaults(now)
		h.renderList(c, &form, forms.Translate(err), form.Month, form.Year)
		return
	}
	form.FillDefaults(now)

	updated, fieldErrs, err := h.budgetService.Set(middleware.GetUserID(c), &form, now)
	if err != nil {
		fail(c, err)
		return
	}
	if fieldErrs.Any() {
		h.renderList(c, &form, fieldErrs, form.Month, form.Year)
		return
	}

	if updated {
		addFlash(c, h.sessions, "Budget updated successfully!", "success")
	} else {
		addFlash(c, h.sessions, "Budget added successfully!", "success")
	}
	response.Redirect(c, "/budgets")
}

func (h *BudgetHandler) renderList(c *gin.Context, form *forms.BudgetForm, errs forms.Errors, month, year int) {
	report, err := h.budgetService.PeriodReport(middleware.GetUserID(c), month, year)
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusOK
	if errs.Any() {
		status = http.StatusBadRequest
	}
	render(c, h.sessions, status, "budgets.html", "Manage Budgets", gin.H{
		"form":          form,
		"errors":        errs,
		"budget_data":   report,
		"current_month": month,
		"current_year":  year,
		"month_name":    time.Month(month).String(),
		"months":        forms.MonthChoices(),
		"years":         forms.YearChoices(time.Now()),
	})
}

// RegisterRoutes registers the budget routes
func (h *BudgetHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	r.GET("/budgets", requireAuth, h.List)
	r.POST("/budgets", requireAuth, h.Set)
}

// queryInt reads an integer query parameter, falling back on the default
// when absent or malformed
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
