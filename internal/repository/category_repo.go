package repository

import (
	"errors"

	"github.com/spendwise/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository handles category data access
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	return translateErr(r.db.Create(category).Error)
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	result := r.db.First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// List retrieves all categories ordered by name
func (r *CategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	result := r.db.Order("name ASC").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

// ExistsByName checks whether a category name already exists (exact match)
func (r *CategoryRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// EnsureDefaults creates any of the given category names that are absent.
// Idempotent: existing rows are never touched, and a concurrent creator
// winning the race is treated as success.
func (r *CategoryRepository) EnsureDefaults(names []string) error {
	var existing []models.Category
	if err := r.db.Where("name IN ?", names).Find(&existing).Error; err != nil {
		return err
	}

	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[c.Name] = true
	}

	for _, name := range names {
		if present[name] {
			continue
		}
		if err := r.db.Create(&models.Category{Name: name}).Error; err != nil {
			if isDuplicate(err) {
				continue
			}
			return err
		}
	}
	return nil
}
