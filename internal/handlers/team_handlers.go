package handlers

import (
	"net/http"

	"warehouse_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// TeamHandler holds the team service.
type TeamHandler struct {
	teamService services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

func (h *TeamHandler) CreateMember(c *gin.Context) {
	var req services.CreateMemberRequest
	if !bindJSON(c, &req, "CreateMember") {
		return
	}
	member, err := h.teamService.CreateMember(req)
	if err != nil {
		respondServiceError(c, err, "CreateMember: Error from teamService.CreateMember", "Failed to create team member.")
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *TeamHandler) GetMembers(c *gin.Context) {
	members, err := h.teamService.GetMembers()
	if err != nil {
		respondServiceError(c, err, "GetMembers: Error from teamService.GetMembers", "Failed to fetch team members.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": members, "total": len(members)})
}

func (h *TeamHandler) GetMemberByID(c *gin.Context) {
	member, err := h.teamService.GetMemberByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetMemberByID: Error from teamService.GetMemberByID for ID "+c.Param("id"), "Failed to fetch team member.")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *TeamHandler) UpdateMemberStatus(c *gin.Context) {
	var req services.UpdateMemberStatusRequest
	if !bindJSON(c, &req, "UpdateMemberStatus") {
		return
	}
	member, err := h.teamService.UpdateMemberStatus(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateMemberStatus: Error from teamService.UpdateMemberStatus for ID "+c.Param("id"), "Failed to update team member status.")
		return
	}
	c.JSON(http.StatusOK, member)
}
