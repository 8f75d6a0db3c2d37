package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/internal/forms"
	"github.com/spendwise/internal/service"
	"github.com/spendwise/internal/session"
	"github.com/spendwise/pkg/response"
)

// CategoryHandler handles the category listing and creation page
type CategoryHandler struct {
	categoryService *service.CategoryService
	sessions        *session.Manager
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService, sessions *session.Manager) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		sessions:        sessions,
	}
}

// List shows all categories with the add form
// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	h.renderList(c, &forms.CategoryForm{}, nil)
}

// Create adds a new category by name
// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var form forms.CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderList(c, &form, forms.Translate(err))
		return
	}

	_, fieldErrs, err := h.categoryService.Create(&form)
	if err != nil {
		fail(c, err)
		return
	}
	if fieldErrs.Any() {
		h.renderList(c, &form, fieldErrs)
		return
	}

	addFlash(c, h.sessions, "Category added successfully!", "success")
	response.Redirect(c, "/categories")
}

func (h *CategoryHandler) renderList(c *gin.Context, form *forms.CategoryForm, errs forms.Errors) {
	categories, err := h.categoryService.List()
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusOK
	if errs.Any() {
		status = http.StatusBadRequest
	}
	render(c, h.sessions, status, "categories.html", "Manage Categories", gin.H{
		"form":       form,
		"errors":     errs,
		"categories": categories,
	})
}

// RegisterRoutes registers the category routes
func (h *CategoryHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	r.GET("/categories", requireAuth, h.List)
	r.POST("/categories", requireAuth, h.Create)
}
