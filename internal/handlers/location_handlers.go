package handlers

import (
	"net/http"

	"warehouse_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// LocationHandler holds the location and QR services.
type LocationHandler struct {
	locationService services.LocationService
	qrService       services.QRService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(ls services.LocationService, qs services.QRService) *LocationHandler {
	return &LocationHandler{locationService: ls, qrService: qs}
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req services.CreateLocationRequest
	if !bindJSON(c, &req, "CreateLocation") {
		return
	}
	location, err := h.locationService.CreateLocation(req)
	if err != nil {
		respondServiceError(c, err, "CreateLocation: Error from locationService.CreateLocation", "Failed to create location.")
		return
	}
	c.JSON(http.StatusCreated, location)
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations, err := h.locationService.GetLocations()
	if err != nil {
		respondServiceError(c, err, "GetLocations: Error from locationService.GetLocations", "Failed to fetch locations.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locations, "total": len(locations)})
}

// GetLocationByID returns the location with its stored items.
func (h *LocationHandler) GetLocationByID(c *gin.Context) {
	detail, err := h.locationService.GetLocationDetail(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetLocationByID: Error from locationService.GetLocationDetail for ID "+c.Param("id"), "Failed to fetch location.")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *LocationHandler) GetLocationQR(c *gin.Context) {
	img, err := h.qrService.LocationQR(c.Param("id"), qrOptionsFromQuery(c))
	if err != nil {
		respondServiceError(c, err, "GetLocationQR: Error from qrService.LocationQR for ID "+c.Param("id"), "Failed to generate QR code.")
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Bytes)
}
