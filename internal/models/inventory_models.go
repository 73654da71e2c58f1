package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus is the stock state of an inventory item.
type ItemStatus string

const (
	ItemStatusInStock    ItemStatus = "in-stock"
	ItemStatusLowStock   ItemStatus = "low-stock"
	ItemStatusOutOfStock ItemStatus = "out-of-stock"
	ItemStatusSold       ItemStatus = "sold"
	ItemStatusDamaged    ItemStatus = "damaged"
)

// DefaultMinStockLevel applies when an item has no minimum stock level set.
const DefaultMinStockLevel = 1

// InventoryItem is a stocked article held at a warehouse location.
type InventoryItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date"` // YYYY-MM-DD
	PurchasedFrom string          `json:"purchased_from"`
	SerialNumber  *string         `json:"serial_number,omitempty"`
	CategoryID    *string         `json:"category_id,omitempty"`
	LocationID    *string         `json:"location_id,omitempty"`
	Status        ItemStatus      `json:"status"`
	MinStockLevel *int            `json:"min_stock_level,omitempty"`
	InternalID    string          `json:"internal_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockStatusFor applies the quantity rule: none left is out-of-stock, at or below the
// minimum stock level (default 1) is low-stock, anything else is in-stock.
func StockStatusFor(quantity int, minStockLevel *int) ItemStatus {
	minLevel := DefaultMinStockLevel
	if minStockLevel != nil && *minStockLevel > 0 {
		minLevel = *minStockLevel
	}
	switch {
	case quantity <= 0:
		return ItemStatusOutOfStock
	case quantity <= minLevel:
		return ItemStatusLowStock
	default:
		return ItemStatusInStock
	}
}

// IsLowStockAlert reports whether the item counts towards dashboard low-stock alerts.
func (i InventoryItem) IsLowStockAlert() bool {
	return i.Status == ItemStatusLowStock || i.Status == ItemStatusOutOfStock
}

// StockValue is quantity times purchase price.
func (i InventoryItem) StockValue() decimal.Decimal {
	return i.PurchasePrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Category groups inventory items. ItemCount is computed on read.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Location is a node in the warehouse hierarchy (warehouse > zone > aisle > shelf > bin).
// CurrentUsage is computed on read from the items stored there.
type Location struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Level        int       `json:"level"`
	ParentID     *string   `json:"parent_id,omitempty"`
	Code         string    `json:"code"`
	Capacity     *int      `json:"capacity,omitempty"`
	CurrentUsage int       `json:"current_usage"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var locationLevelNames = map[int]string{
	1: "Warehouse",
	2: "Zone",
	3: "Aisle",
	4: "Shelf",
	5: "Bin",
}

// LocationLevelName returns the display name of a hierarchy level.
func LocationLevelName(level int) string {
	if name, ok := locationLevelNames[level]; ok {
		return name
	}
	return "Level " + strconv.Itoa(level)
}

// Utilization bands for a location's usage against its capacity.
const (
	UtilizationUnknown  = "unknown"
	UtilizationOK       = "ok"
	UtilizationWarning  = "warning"
	UtilizationCritical = "critical"
)

// UtilizationBand classifies usage: >=90% critical, >=70% warning, otherwise ok.
func (l Location) UtilizationBand() string {
	if l.Capacity == nil || *l.Capacity <= 0 {
		return UtilizationUnknown
	}
	pct := float64(l.CurrentUsage) / float64(*l.Capacity) * 100
	switch {
	case pct >= 90:
		return UtilizationCritical
	case pct >= 70:
		return UtilizationWarning
	default:
		return UtilizationOK
	}
}

// Sale records the sale of some quantity of an inventory item.
type Sale struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	QuantitySold    int             `json:"quantity_sold"`
	SoldPrice       decimal.Decimal `json:"sold_price"`
	Profit          decimal.Decimal `json:"profit"`
	SoldTo          string          `json:"sold_to"`
	SoldDate        time.Time       `json:"sold_date"`
	SellerName      string          `json:"seller_name"`
	SellerEmail     string          `json:"seller_email"`
	CustomerPhone   *string         `json:"customer_phone,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ItemFilters narrows an item listing.
type ItemFilters struct {
	Search     string
	CategoryID string
	LocationID string
	Status     ItemStatus
	Page       int
	PageSize   int
}

// LocationDetail is a location together with the items stored at it.
type LocationDetail struct {
	Location
	LevelName   string          `json:"level_name"`
	Utilization string          `json:"utilization"`
	Items       []InventoryItem `json:"items"`
}
