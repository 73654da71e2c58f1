package repositories

import (
	"fmt"
	"strings"

	"warehouse_backend/internal/models"
)

// CategoryRepository defines the interface for category storage.
// ItemCount on returned categories is counted from the items at read time.
type CategoryRepository interface {
	CreateCategory(executor Executor, category *models.Category) error
	GetCategoryByID(executor Executor, id string) (*models.Category, error)
	GetCategories(executor Executor) ([]models.Category, error)
	UpdateCategory(executor Executor, category *models.Category) error
}

type categoryRepository struct{}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func countItemsInCategory(st *memoryState, categoryID string) int {
	n := 0
	for _, item := range st.items {
		if item.CategoryID != nil && *item.CategoryID == categoryID {
			n++
		}
	}
	return n
}

// CreateCategory appends a category. Names are unique, ignoring case.
func (r *categoryRepository) CreateCategory(executor Executor, category *models.Category) error {
	return executor.write(func(st *memoryState) error {
		for _, existing := range st.categories {
			if existing.ID == category.ID || strings.EqualFold(existing.Name, category.Name) {
				return fmt.Errorf("%w: category %s", ErrDuplicateKey, category.Name)
			}
		}
		stored := *category
		stored.ItemCount = 0
		st.categories = append(st.categories, stored)
		return nil
	})
}

// GetCategoryByID retrieves a category by its id.
func (r *categoryRepository) GetCategoryByID(executor Executor, id string) (*models.Category, error) {
	var found *models.Category
	err := executor.read(func(st *memoryState) error {
		for _, c := range st.categories {
			if c.ID == id {
				c.ItemCount = countItemsInCategory(st, c.ID)
				found = &c
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetCategories lists categories in creation order.
func (r *categoryRepository) GetCategories(executor Executor) ([]models.Category, error) {
	categories := []models.Category{}
	err := executor.read(func(st *memoryState) error {
		for _, c := range st.categories {
			c.ItemCount = countItemsInCategory(st, c.ID)
			categories = append(categories, c)
		}
		return nil
	})
	return categories, err
}

// UpdateCategory replaces the stored category with the same id.
func (r *categoryRepository) UpdateCategory(executor Executor, category *models.Category) error {
	return executor.write(func(st *memoryState) error {
		idx := -1
		for i, existing := range st.categories {
			if existing.ID == category.ID {
				idx = i
				continue
			}
			if strings.EqualFold(existing.Name, category.Name) {
				return fmt.Errorf("%w: category %s", ErrDuplicateKey, category.Name)
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		stored := *category
		stored.ItemCount = 0
		st.categories[idx] = stored
		return nil
	})
}
