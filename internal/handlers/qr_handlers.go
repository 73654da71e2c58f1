package handlers

import (
	"net/http"

	"warehouse_backend/internal/services"
	"warehouse_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const maxScanUploadBytes = 10 << 20

// QRHandler holds the QR service.
type QRHandler struct {
	qrService services.QRService
}

// NewQRHandler creates a new QRHandler.
func NewQRHandler(qs services.QRService) *QRHandler {
	return &QRHandler{qrService: qs}
}

// Generate returns the rendered code as a data URL.
func (h *QRHandler) Generate(c *gin.Context) {
	var req services.GenerateQRRequest
	if !bindJSON(c, &req, "GenerateQR") {
		return
	}
	img, err := h.qrService.Generate(req)
	if err != nil {
		respondServiceError(c, err, "GenerateQR: Error from qrService.Generate", "Failed to generate QR code.")
		return
	}
	c.JSON(http.StatusCreated, img)
}

// GenerateImage returns the rendered code as raw image bytes.
func (h *QRHandler) GenerateImage(c *gin.Context) {
	var req services.GenerateQRRequest
	if !bindJSON(c, &req, "GenerateQRImage") {
		return
	}
	img, err := h.qrService.Generate(req)
	if err != nil {
		respondServiceError(c, err, "GenerateQRImage: Error from qrService.Generate", "Failed to generate QR code.")
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Bytes)
}

// Scan resolves text read by a scanner.
func (h *QRHandler) Scan(c *gin.Context) {
	var req services.ScanRequest
	if !bindJSON(c, &req, "ScanQR") {
		return
	}
	result, err := h.qrService.Scan(req)
	if err != nil {
		respondServiceError(c, err, "ScanQR: Error from qrService.Scan", "Failed to resolve scan.")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ScanImage reads the "image" multipart file and resolves the code in it.
func (h *QRHandler) ScanImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxScanUploadBytes)
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.LogWarn("ScanQRImage: missing image upload", map[string]interface{}{"error": err.Error()})
		utils.RespondValidationFailed(c, "multipart field 'image' is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.LogError(err, "ScanQRImage: Failed to open upload")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Could not read uploaded file.", err.Error()))
		return
	}
	defer file.Close()

	result, err := h.qrService.ScanImage(file)
	if err != nil {
		respondServiceError(c, err, "ScanQRImage: Error from qrService.ScanImage", "Failed to scan image.")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *QRHandler) GetHistory(c *gin.Context) {
	entries, err := h.qrService.GetHistory()
	if err != nil {
		respondServiceError(c, err, "GetQRHistory: Error from qrService.GetHistory", "Failed to fetch QR history.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries, "total": len(entries)})
}

func (h *QRHandler) DeleteHistoryEntry(c *gin.Context) {
	if err := h.qrService.DeleteHistoryEntry(c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteQRHistoryEntry: Error from qrService.DeleteHistoryEntry for ID "+c.Param("id"), "Failed to delete QR history entry.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QRHandler) ClearHistory(c *gin.Context) {
	if err := h.qrService.ClearHistory(); err != nil {
		respondServiceError(c, err, "ClearQRHistory: Error from qrService.ClearHistory", "Failed to clear QR history.")
		return
	}
	c.Status(http.StatusNoContent)
}
