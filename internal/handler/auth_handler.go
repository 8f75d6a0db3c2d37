package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/internal/forms"
	"github.com/spendwise/internal/middleware"
	"github.com/spendwise/internal/service"
	"github.com/spendwise/internal/session"
	"github.com/spendwise/pkg/response"
)

// AuthHandler handles the landing page and the register/login/logout flows
type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Home handles the landing page
// GET /
func (h *AuthHandler) Home(c *gin.Context) {
	if middleware.Authenticated(c) {
		response.Redirect(c, "/dashboard")
		return
	}
	render(c, h.sessions, http.StatusOK, "home.html", "SpendWise - Track Your Expenses", nil)
}

// RegisterPage shows the registration form
// GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if middleware.Authenticated(c) {
		response.Redirect(c, "/dashboard")
		return
	}
	h.renderRegister(c, &forms.RegisterForm{}, nil)
}

// Register handles account creation
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	if middleware.Authenticated(c) {
		response.Redirect(c, "/dashboard")
		return
	}

	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegister(c, &form, forms.Translate(err))
		return
	}

	_, fieldErrs, err := h.authService.Register(&form)
	if err != nil {
		fail(c, err)
		return
	}
	if fieldErrs.Any() {
		h.renderRegister(c, &form, fieldErrs)
		return
	}

	addFlash(c, h.sessions, "Your account has been created! You can now log in.", "success")
	response.Redirect(c, "/login")
}

func (h *AuthHandler) renderRegister(c *gin.Context, form *forms.RegisterForm, errs forms.Errors) {
	render(c, h.sessions, http.StatusOK, "register.html", "Register", gin.H{
		"form":   form,
		"errors": errs,
	})
}

// LoginPage shows the login form
// GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.Authenticated(c) {
		response.Redirect(c, "/dashboard")
		return
	}
	h.renderLogin(c, &forms.LoginForm{}, nil)
}

// Login handles authentication
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.Authenticated(c) {
		response.Redirect(c, "/dashboard")
		return
	}

	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, &form, forms.Translate(err))
		return
	}

	token, _, err := h.authService.Login(c.Request.Context(), &form)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			addFlash(c, h.sessions, "Login failed. Please check your email and password.", "danger")
			h.renderLogin(c, &form, nil)
			return
		}
		fail(c, err)
		return
	}

	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(h.sessions.CookieName(), token, maxAge, "/", "", false, true)

	addFlash(c, h.sessions, "Login successful!", "success")
	response.Redirect(c, safeNext(c.Query("next")))
}

func (h *AuthHandler) renderLogin(c *gin.Context, form *forms.LoginForm, errs forms.Errors) {
	render(c, h.sessions, http.StatusOK, "login.html", "Login", gin.H{
		"form":   form,
		"errors": errs,
		"next":   c.Query("next"),
	})
}

// Logout revokes the session and clears the cookie
// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.sessions.CookieName()); err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			middleware.LogError("failed to revoke session: %v", err)
		}
	}
	c.SetCookie(h.sessions.CookieName(), "", -1, "/", "", false, true)

	addFlash(c, h.sessions, "You have been logged out.", "info")
	response.Redirect(c, "/")
}

// RegisterRoutes registers the public pages and the authenticated logout
func (h *AuthHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	r.GET("/", h.Home)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", requireAuth, h.Logout)
}
