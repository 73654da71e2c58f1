package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"warehouse_backend/internal/middleware"
	"warehouse_backend/internal/models"
	"warehouse_backend/internal/services"
	"warehouse_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory and QR services.
type InventoryHandler struct {
	inventoryService services.InventoryService
	qrService        services.QRService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService, qs services.QRService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is, qrService: qs}
}

// CreateItem handles the creation of a new inventory item.
// Besides JSON it accepts the add-item form as url-encoded or multipart fields,
// where unparseable numbers are read as zero.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req services.CreateItemRequest
	switch c.ContentType() {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		req = createItemRequestFromForm(c)
	default:
		if !bindJSON(c, &req, "CreateItem") {
			return
		}
	}

	item, err := h.inventoryService.CreateItem(req)
	if err != nil {
		respondServiceError(c, err, "CreateItem: Error from inventoryService.CreateItem", "Failed to create inventory item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func createItemRequestFromForm(c *gin.Context) services.CreateItemRequest {
	req := services.CreateItemRequest{
		Name:          c.PostForm("name"),
		Quantity:      utils.ParseIntOrZero(c.PostForm("quantity")),
		PurchasePrice: utils.ParseDecimalOrZero(c.PostForm("purchase_price")),
		PurchaseDate:  c.PostForm("purchase_date"),
		PurchasedFrom: c.PostForm("purchased_from"),
		SerialNumber:  utils.NewNullString(c.PostForm("serial_number")),
		CategoryID:    utils.NewNullString(c.PostForm("category_id")),
		LocationID:    utils.NewNullString(c.PostForm("location_id")),
	}
	if v, ok := c.GetPostForm("auto_serial"); ok {
		auto, err := strconv.ParseBool(v)
		if err == nil {
			req.AutoSerial = &auto
		}
	}
	if v := c.PostForm("min_stock_level"); v != "" {
		level := utils.ParseIntOrZero(v)
		req.MinStockLevel = &level
	}
	return req
}

const maxPageSize = 100

// GetItems handles listing inventory items with search, filters and pagination.
func (h *InventoryHandler) GetItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filters := models.ItemFilters{
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
		LocationID: c.Query("location_id"),
		Status:     models.ItemStatus(c.Query("status")),
		Page:       page,
		PageSize:   pageSize,
	}
	items, total, err := h.inventoryService.GetItems(filters)
	if err != nil {
		respondServiceError(c, err, "GetItems: Error from inventoryService.GetItems", "Failed to fetch inventory items.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetItemByID handles fetching a single inventory item.
func (h *InventoryHandler) GetItemByID(c *gin.Context) {
	item, err := h.inventoryService.GetItemByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetItemByID: Error from inventoryService.GetItemByID for ID "+c.Param("id"), "Failed to fetch inventory item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem handles replacing an inventory item.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req services.UpdateItemRequest
	if !bindJSON(c, &req, "UpdateItem") {
		return
	}
	item, err := h.inventoryService.UpdateItem(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateItem: Error from inventoryService.UpdateItem for ID "+c.Param("id"), "Failed to update inventory item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles deleting an inventory item.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.inventoryService.DeleteItem(c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteItem: Error from inventoryService.DeleteItem for ID "+c.Param("id"), "Failed to delete inventory item.")
		return
	}
	c.Status(http.StatusNoContent)
}

// SellItem handles selling a quantity of an item. The seller defaults to the logged-in member.
func (h *InventoryHandler) SellItem(c *gin.Context) {
	var req services.SellItemRequest
	if !bindJSON(c, &req, "SellItem") {
		return
	}
	if strings.TrimSpace(req.SellerID) == "" {
		req.SellerID = c.GetString(middleware.ContextMemberID)
	}

	result, err := h.inventoryService.SellItem(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "SellItem: Error from inventoryService.SellItem for ID "+c.Param("id"), "Failed to record sale.")
		return
	}
	utils.LogInfo("Item sold", map[string]interface{}{
		"item_id":  result.Item.ID,
		"quantity": result.Sale.QuantitySold,
		"left":     result.Item.Quantity,
		"status":   result.Item.Status,
	})
	c.JSON(http.StatusCreated, result)
}

// GetItemQR handles rendering an item's QR code as an image.
func (h *InventoryHandler) GetItemQR(c *gin.Context) {
	img, err := h.qrService.ItemQR(c.Param("id"), qrOptionsFromQuery(c))
	if err != nil {
		respondServiceError(c, err, "GetItemQR: Error from qrService.ItemQR for ID "+c.Param("id"), "Failed to generate QR code.")
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Bytes)
}

// GetSales handles listing sales, optionally for one item.
func (h *InventoryHandler) GetSales(c *gin.Context) {
	sales, err := h.inventoryService.GetSales(c.Query("item_id"))
	if err != nil {
		respondServiceError(c, err, "GetSales: Error from inventoryService.GetSales", "Failed to fetch sales.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sales, "total": len(sales)})
}

// GetSaleByID handles fetching a single sale.
func (h *InventoryHandler) GetSaleByID(c *gin.Context) {
	sale, err := h.inventoryService.GetSaleByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetSaleByID: Error from inventoryService.GetSaleByID for ID "+c.Param("id"), "Failed to fetch sale.")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// qrOptionsFromQuery reads rendering options from ?size=&margin=&ec=&dark=&light=&format=&quality=.
func qrOptionsFromQuery(c *gin.Context) services.QRImageOptions {
	opts := services.QRImageOptions{
		ErrorCorrection: strings.ToUpper(c.Query("ec")),
		Size:            utils.ParseIntOrZero(c.Query("size")),
		DarkColor:       c.Query("dark"),
		LightColor:      c.Query("light"),
		Format:          strings.ToLower(c.Query("format")),
		Quality:         utils.ParseIntOrZero(c.Query("quality")),
	}
	if v := c.Query("margin"); v != "" {
		margin := utils.ParseIntOrZero(v)
		opts.Margin = &margin
	}
	return opts
}
