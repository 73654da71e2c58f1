package handlers

import (
	"errors"
	"net/http"

	"warehouse_backend/internal/middleware"
	"warehouse_backend/internal/services"
	"warehouse_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles team member login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, "Login") {
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		respondServiceError(c, err, "Login: Error from authService.Login", "Failed to login.")
		return
	}
	utils.LogInfo("Member logged in", map[string]interface{}{"member_id": authResp.Member.ID, "role": authResp.Member.Role})
	c.JSON(http.StatusOK, authResp)
}

// GetCurrentMember retrieves the profile of the currently authenticated member.
func (h *AuthHandler) GetCurrentMember(c *gin.Context) {
	memberID := c.GetString(middleware.ContextMemberID)
	if memberID == "" {
		utils.LogError(errors.New("memberID not found in context"), "GetCurrentMember: memberID not in context")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Member not authenticated.", "Missing member ID in context"))
		return
	}

	member, err := h.authService.GetProfile(memberID)
	if err != nil {
		respondServiceError(c, err, "GetCurrentMember: Error from authService.GetProfile", "Failed to fetch profile.")
		return
	}
	c.JSON(http.StatusOK, member)
}
