package handler_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/spendwise/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnauthenticatedRedirectPreservesDestination(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/dashboard", "/expenses", "/categories", "/budgets", "/analytics", "/logout"} {
		w := app.get(t, path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login?next="+url.QueryEscape(path), w.Header().Get("Location"), path)
	}
}

func TestHomePage(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SpendWise")
}

func TestHomeRedirectsAuthenticatedToDashboard(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")
	cookie := app.logIn(t, "a@example.com", "s3cret")

	w := app.get(t, "/", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRegisterFlow(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm(t, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"a@example.com"},
		"password":         {"s3cret"},
		"confirm_password": {"s3cret"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	var count int64
	require.NoError(t, app.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterDuplicateEmailCreatesNoRow(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")

	w := app.postForm(t, "/register", url.Values{
		"username":         {"someone"},
		"email":            {"a@example.com"},
		"password":         {"s3cret"},
		"confirm_password": {"s3cret"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")

	var count int64
	require.NoError(t, app.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm(t, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"a@example.com"},
		"password":         {"s3cret"},
		"confirm_password": {"other"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match.")
}

func TestLoginWrongPasswordRerenders(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")

	w := app.postForm(t, "/login", url.Values{
		"email":    {"a@example.com"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// The failure notice shows on the re-rendered page even for a browser
	// with no flash cookie yet: the key minted to store the notice must be
	// the same one the render pops.
	assert.Contains(t, w.Body.String(), "Login failed. Please check your email and password.")

	flashCookies := 0
	for _, c := range w.Result().Cookies() {
		// No session cookie on failure
		assert.NotEqual(t, app.sessions.CookieName(), c.Name)
		if c.Name == "spendwise_flash" {
			flashCookies++
		}
	}
	assert.Equal(t, 1, flashCookies)
}

func TestLoginHonorsNextParam(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")

	w := app.postForm(t, "/login?next=%2Fexpenses", url.Values{
		"email":    {"a@example.com"},
		"password": {"s3cret"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/expenses", w.Header().Get("Location"))
}

func TestLoginRejectsExternalNext(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")

	w := app.postForm(t, "/login?next=%2F%2Fevil.example.com", url.Values{
		"email":    {"a@example.com"},
		"password": {"s3cret"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLogoutRevokesSession(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")
	cookie := app.logIn(t, "a@example.com", "s3cret")

	w := app.get(t, "/logout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The old cookie no longer authenticates
	w = app.get(t, "/dashboard", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestDashboardRenders(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")
	cookie := app.logIn(t, "a@example.com", "s3cret")

	w := app.get(t, "/dashboard", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total spent")
}

func TestExpenseCreateAndList(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")
	cookie := app.logIn(t, "a@example.com", "s3cret")

	category := &models.Category{Name: "Food & Dining"}
	require.NoError(t, app.db.Create(category).Error)

	w := app.postForm(t, "/expenses", url.Values{
		"amount":      {"12.50"},
		"description": {"lunch"},
		"category_id": {fmt.Sprint(category.ID)},
		"date":        {"2025-05-10"},
	}, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/expenses", w.Header().Get("Location"))

	w = app.get(t, "/expenses", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lunch")
}

func TestExpenseCreateInvalidCategoryRerenders(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")
	cookie := app.logIn(t, "a@example.com", "s3cret")

	w := app.postForm(t, "/expenses", url.Values{
		"amount":      {"12.50"},
		"category_id": {"999"},
		"date":        {"2025-05-10"},
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Choose a valid category.")

	var count int64
	require.NoError(t, app.db.Model(&models.Expense{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteExpenseNotOwnedLeavesRow(t *testing.T) {
	app := newTestApp(t)
	alice := app.signUp(t, "alice", "a@example.com", "s3cret")
	app.signUp(t, "bob", "b@example.com", "s3cret")

	category := &models.Category{Name: "Travel"}
	require.NoError(t, app.db.Create(category).Error)
	expense := &models.Expense{
		Amount: 10, Date: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		UserID: alice.ID, CategoryID: category.ID,
	}
	require.NoError(t, app.db.Create(expense).Error)

	bobCookie := app.logIn(t, "b@example.com", "s3cret")
	w := app.postForm(t, fmt.Sprintf("/expenses/delete/%d", expense.ID), url.Values{}, bobCookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/expenses", w.Header().Get("Location"))

	var count int64
	require.NoError(t, app.db.Model(&models.Expense{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteExpenseOwned(t *testing.T) {
	app := newTestApp(t)
	alice := app.signUp(t, "alice", "a@example.com", "s3cret")

	category := &models.Category{Name: "Travel"}
	require.NoError(t, app.db.Create(category).Error)
	expense := &models.Expense{
		Amount: 10, Date: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		UserID: alice.ID, CategoryID: category.ID,
	}
	require.NoError(t, app.db.Create(expense).Error)

	cookie := app.logIn(t, "a@example.com", "s3cret")
	w := app.postForm(t, fmt.Sprintf("/expenses/delete/%d", expense.ID), url.Values{}, cookie)
	assert.Equal(t, http.StatusFound, w.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.Expense{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCategoryCreateDuplicateRerenders(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")
	cookie := app.logIn(t, "a@example.com", "s3cret")

	w := app.postForm(t, "/categories", url.Values{"name": {"Subscriptions"}}, cookie)
	assert.Equal(t, http.StatusFound, w.Code)

	w = app.postForm(t, "/categories", url.Values{"name": {"Subscriptions"}}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "This category already exists.")

	var count int64
	require.NoError(t, app.db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBudgetUpsertViaForm(t *testing.T) {
	app := newTestApp(t)
	alice := app.signUp(t, "alice", "a@example.com", "s3cret")
	cookie := app.logIn(t, "a@example.com", "s3cret")

	category := &models.Category{Name: "Travel"}
	require.NoError(t, app.db.Create(category).Error)

	form := url.Values{
		"category_id": {fmt.Sprint(category.ID)},
		"amount":      {"100"},
		"month":       {"5"},
		"year":        {fmt.Sprint(time.Now().Year())},
	}
	w := app.postForm(t, "/budgets", form, cookie)
	assert.Equal(t, http.StatusFound, w.Code)

	form.Set("amount", "250")
	w = app.postForm(t, "/budgets", form, cookie)
	assert.Equal(t, http.StatusFound, w.Code)

	var budgets []models.Budget
	require.NoError(t, app.db.Where("user_id = ?", alice.ID).Find(&budgets).Error)
	require.Len(t, budgets, 1)
	assert.Equal(t, 250.0, budgets[0].Amount)
}

func TestBudgetsPageListsEveryCategory(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")
	cookie := app.logIn(t, "a@example.com", "s3cret")

	require.NoError(t, app.db.Create(&models.Category{Name: "Travel"}).Error)
	require.NoError(t, app.db.Create(&models.Category{Name: "Housing"}).Error)

	w := app.get(t, "/budgets?month=5&year=2025", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Travel")
	assert.Contains(t, body, "Housing")
	assert.Contains(t, body, "no budget")
}

func TestAnalyticsPage(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice", "a@example.com", "s3cret")
	cookie := app.logIn(t, "a@example.com", "s3cret")

	w := app.get(t, "/analytics?year=2025", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "2025")
	assert.Contains(t, body, "January")
	assert.Contains(t, body, "December")
}
