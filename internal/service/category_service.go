package service

import (
	"errors"

	"github.com/spendwise/internal/forms"
	"github.com/spendwise/internal/models"
	"github.com/spendwise/internal/repository"
)

const msgCategoryExists = "This category already exists."

// CategoryService handles the global category set
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns all categories ordered by name
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// Create adds a category by name, rejecting names that already exist
// (case-sensitive exact match)
func (s *CategoryService) Create(form *forms.CategoryForm) (*models.Category, forms.Errors, error) {
	exists, err := s.categoryRepo.ExistsByName(form.Name)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		errs := forms.Errors{}
		errs.Add("name", msgCategoryExists)
		return nil, errs, nil
	}

	category := &models.Category{Name: form.Name}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			errs := forms.Errors{}
			errs.Add("name", msgCategoryExists)
			return nil, errs, nil
		}
		return nil, nil, err
	}

	return category, nil, nil
}

// EnsureDefaults makes sure the seed categories exist. Run once at startup.
func (s *CategoryService) EnsureDefaults() error {
	return s.categoryRepo.EnsureDefaults(models.DefaultCategories)
}
