package handler

import (
	"errors"
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

// ExpenseHandler handles the expense listing, entry and deletion pages
type ExpenseHandler struct {
	expenseService  *service.ExpenseService
	categoryService *service.CategoryService
	sessions        *session.Manager
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(
	expenseService *service.ExpenseService,
	categoryService *service.CategoryService,
	sessions *session.Manager,
) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService:  expenseService,
		categoryService: categoryService,
		sessions:        sessions,
	}
}

// List shows the expense listing with the entry form
// GET /expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	form := &forms.ExpenseForm{}
	form.FillDefaults(time.Now())
	h.renderList(c, form, nil)
}

// Create records a new expense and redirects back to the listing
// POST /expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var form forms.ExpenseForm
	if err := c.ShouldBind(&form); err != nil {
		form.FillDefaults(time.Now())
		h.renderList(c, &form, forms.Translate(err))
		return
	}
	form.FillDefaults(time.Now())

	fieldErrs, err := h.expenseService.Add(middleware.GetUserID(c), &form)
	if err != nil {
		fail(c, err)
		return
	}
	if fieldErrs.Any() {
		h.renderList(c, &form, fieldErrs)
		return
	}

	addFlash(c, h.sessions, "Expense added successfully!", "success")
	response.Redirect(c, "/expenses")
}

// Delete removes an expense the user owns. A non-owned or missing id gets
// the same rejection notice and changes nothing.
// POST /expenses/delete/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		addFlash(c, h.sessions, "You are not authorized to delete this expense.", "danger")
		response.Redirect(c, "/expenses")
		return
	}

	if err := h.expenseService.Delete(middleware.GetUserID(c), uint(id)); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			addFlash(c, h.sessions, "You are not authorized to delete this expense.", "danger")
			response.Redirect(c, "/expenses")
			return
		}
		fail(c, err)
		return
	}

	addFlash(c, h.sessions, "Expense deleted successfully!", "success")
	response.Redirect(c, "/expenses")
}

func (h *ExpenseHandler) renderList(c *gin.Context, form *forms.ExpenseForm, errs forms.Errors) {
	userID := middleware.GetUserID(c)

	expenses, err := h.expenseService.List(userID)
	if err != nil {
		fail(c, err)
		return
	}
	categories, err := h.categoryService.List()
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusOK
	if errs.Any() {
		status = http.StatusBadRequest
	}
	render(c, h.sessions, status, "expenses.html", "Manage Expenses", gin.H{
		"form":       form,
		"errors":     errs,
		"expenses":   expenses,
		"categories": categories,
	})
}

// RegisterRoutes registers the expense routes
func (h *ExpenseHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	r.GET("/expenses", requireAuth, h.List)
	r.POST("/expenses", requireAuth, h.Create)
	r.POST("/expenses/delete/:id", requireAuth, h.Delete)
}
