package handlers

import (
	"errors"
	"net/http"

	"warehouse_backend/internal/services"
	"warehouse_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// serviceErrors maps service sentinels onto responses. The first match wins.
var serviceErrors = []errorMapping{
	{services.ErrItemNotFound, http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found."},
	{services.ErrSaleNotFound, http.StatusNotFound, utils.ErrCodeNotFound, "Sale not found."},
	{services.ErrCategoryNotFound, http.StatusNotFound, utils.ErrCodeNotFound, "Category not found."},
	{services.ErrLocationNotFound, http.StatusNotFound, utils.ErrCodeNotFound, "Location not found."},
	{services.ErrMemberNotFound, http.StatusNotFound, utils.ErrCodeNotFound, "Team member not found."},
	{services.ErrTaskNotFound, http.StatusNotFound, utils.ErrCodeNotFound, "Task not found."},
	{services.ErrQRHistoryNotFound, http.StatusNotFound, utils.ErrCodeNotFound, "QR history entry not found."},
	{services.ErrInsufficientStock, http.StatusConflict, utils.ErrCodeConflict, "Not enough stock for this sale."},
	{services.ErrCategoryExists, http.StatusConflict, utils.ErrCodeConflict, "A category with this name already exists."},
	{services.ErrLocationCodeExists, http.StatusConflict, utils.ErrCodeConflict, "Location code already exists."},
	{services.ErrTaskArchived, http.StatusConflict, utils.ErrCodeConflict, "Archived tasks cannot be changed."},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid email or password."},
	{services.ErrQREncode, http.StatusUnprocessableEntity, utils.ErrCodeUnprocessable, "Could not generate QR code."},
	{services.ErrQRDecode, http.StatusUnprocessableEntity, utils.ErrCodeUnprocessable, "Could not read a QR code from the image."},
	{services.ErrPersistenceDisabled, http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, "Persistence is not enabled."},
	{services.ErrValidation, http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed."},
}

// respondServiceError logs err and writes the matching API error.
func respondServiceError(c *gin.Context, err error, op, fallback string) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				utils.LogError(err, op)
			} else {
				utils.LogWarn(op, map[string]interface{}{"error": err.Error()})
			}
			utils.RespondWithError(c, utils.NewAPIError(m.status, m.code, m.message, err.Error()))
			return
		}
	}
	utils.LogError(err, op)
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, fallback, "Internal error"))
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogError(err, op+": Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return false
	}
	return true
}
