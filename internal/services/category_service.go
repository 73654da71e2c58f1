package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/pkg/utils"
)

// --- Custom Service Errors for Category ---
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category with this name already exists")
)

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#3B82F6"

// --- Category DTOs ---
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Color       string  `json:"color" validate:"omitempty,hexcolor,len=7"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitempty,hexcolor,len=7"`
}

// --- CategoryService Interface ---
type CategoryService interface {
	CreateCategory(req CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	UpdateCategory(id string, req UpdateCategoryRequest) (*models.Category, error)
}

type categoryService struct {
	store        *repositories.Store
	categoryRepo repositories.CategoryRepository
	now          func() time.Time
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(store *repositories.Store, categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{store: store, categoryRepo: categoryRepo, now: time.Now}
}

func (s *categoryService) CreateCategory(req CreateCategoryRequest) (*models.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	category := &models.Category{
		ID:          utils.GenerateID(),
		Name:        strings.TrimSpace(req.Name),
		Description: utils.NewNullString(utils.Deref(req.Description, "")),
		Color:       strings.ToUpper(req.Color),
		CreatedAt:   s.now(),
	}
	if category.Color == "" {
		category.Color = DefaultCategoryColor
	}
	if err := s.categoryRepo.CreateCategory(s.store, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return category, nil
}

func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetCategoryByID(s.store, id)
	if err != nil {
		return nil, translateNotFound(err, ErrCategoryNotFound, "getting category")
	}
	return category, nil
}

func (s *categoryService) GetCategories() ([]models.Category, error) {
	return s.categoryRepo.GetCategories(s.store)
}

func (s *categoryService) UpdateCategory(id string, req UpdateCategoryRequest) (*models.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var updated *models.Category
	err := s.store.Update(func(tx *repositories.Tx) error {
		category, err := s.categoryRepo.GetCategoryByID(tx, id)
		if err != nil {
			return translateNotFound(err, ErrCategoryNotFound, "getting category")
		}
		if req.Name != nil {
			if utils.IsEmpty(*req.Name) {
				return fmt.Errorf("%w: name cannot be empty", ErrValidation)
			}
			category.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			category.Description = utils.NewNullString(*req.Description)
		}
		if req.Color != nil {
			category.Color = strings.ToUpper(*req.Color)
		}
		if err := s.categoryRepo.UpdateCategory(tx, category); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrCategoryExists
			}
			return translateNotFound(err, ErrCategoryNotFound, "updating category")
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
