package handlers

import (
	"net/http"

	"warehouse_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SnapshotHandler holds the snapshot service.
type SnapshotHandler struct {
	snapshotService services.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(ss services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: ss}
}

func (h *SnapshotHandler) SaveSnapshot(c *gin.Context) {
	snap, err := h.snapshotService.SaveSnapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "SaveSnapshot: Error from snapshotService.SaveSnapshot", "Failed to save snapshot.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": snap.ID, "created_at": snap.CreatedAt})
}
