package handlers

import (
	"net/http"

	"warehouse_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// CategoryHandler holds the category service.
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(cs services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: cs}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if !bindJSON(c, &req, "CreateCategory") {
		return
	}
	category, err := h.categoryService.CreateCategory(req)
	if err != nil {
		respondServiceError(c, err, "CreateCategory: Error from categoryService.CreateCategory", "Failed to create category.")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		respondServiceError(c, err, "GetCategories: Error from categoryService.GetCategories", "Failed to fetch categories.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories, "total": len(categories)})
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	category, err := h.categoryService.GetCategoryByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetCategoryByID: Error from categoryService.GetCategoryByID for ID "+c.Param("id"), "Failed to fetch category.")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req services.UpdateCategoryRequest
	if !bindJSON(c, &req, "UpdateCategory") {
		return
	}
	category, err := h.categoryService.UpdateCategory(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateCategory: Error from categoryService.UpdateCategory for ID "+c.Param("id"), "Failed to update category.")
		return
	}
	c.JSON(http.StatusOK, category)
}
