package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spendwise/internal/config"
	"github.com/spendwise/internal/forms"
	"github.com/spendwise/internal/handler"
	"github.com/spendwise/internal/middleware"
	"github.com/spendwise/internal/models"
	"github.com/spendwise/internal/repository"
	"github.com/spendwise/internal/service"
	"github.com/spendwise/internal/session"
	"github.com/spendwise/web"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions *session.Manager
	auth     *service.AuthService
}

// newTestApp wires the full page stack against an in-memory database and
// session store, mirroring the wiring in cmd/server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Expense{},
		&models.Budget{},
	))

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)

	sessions := session.NewManager(config.SessionConfig{
		Secret:      "test-secret",
		ExpireHours: 1,
		CookieName:  "spendwise_session",
	}, session.NewMemoryStore())

	authService := service.NewAuthService(userRepo, sessions)
	categoryService := service.NewCategoryService(categoryRepo)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, expenseRepo)
	reportService := service.NewReportService(expenseRepo, budgetRepo)

	router := gin.New()
	router.Use(middleware.LoadSession(sessions))
	router.SetHTMLTemplate(web.Templates())

	requireAuth := middleware.RequireAuth()
	handler.NewAuthHandler(authService, sessions).RegisterRoutes(router, requireAuth)
	handler.NewDashboardHandler(reportService, sessions).RegisterRoutes(router, requireAuth)
	handler.NewExpenseHandler(expenseService, categoryService, sessions).RegisterRoutes(router, requireAuth)
	handler.NewCategoryHandler(categoryService, sessions).RegisterRoutes(router, requireAuth)
	handler.NewBudgetHandler(budgetService, sessions).RegisterRoutes(router, requireAuth)
	handler.NewAnalyticsHandler(reportService, sessions).RegisterRoutes(router, requireAuth)

	return &testApp{router: router, db: db, sessions: sessions, auth: authService}
}

// get performs a GET request with optional cookies
func (a *testApp) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// postForm performs a form POST with optional cookies
func (a *testApp) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signUp registers a user directly through the service layer
func (a *testApp) signUp(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	user, fieldErrs, err := a.auth.Register(&forms.RegisterForm{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
	require.False(t, fieldErrs.Any())
	return user
}

// logIn performs a login POST and returns the session cookie
func (a *testApp) logIn(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	w := a.postForm(t, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == a.sessions.CookieName() && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}
