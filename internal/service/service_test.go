package service_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spendwise/internal/config"
	"github.com/spendwise/internal/models"
	"github.com/spendwise/internal/repository"
	"github.com/spendwise/internal/session"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	users    *repository.UserRepository
	cats     *repository.CategoryRepository
	expenses *repository.ExpenseRepository
	budgets  *repository.BudgetRepository
	sessions *session.Manager
}

func newFixture(t *testing.T) *fixture {
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

	return &fixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		cats:     repository.NewCategoryRepository(db),
		expenses: repository.NewExpenseRepository(db),
		budgets:  repository.NewBudgetRepository(db),
		sessions: session.NewManager(config.SessionConfig{
			Secret:      "test-secret",
			ExpireHours: 1,
			CookieName:  "spendwise_session",
		}, session.NewMemoryStore()),
	}
}

func (f *fixture) seedUser(t *testing.T, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, PasswordHash: "x"}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *fixture) seedCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, f.db.Create(category).Error)
	return category
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
