package models

import "github.com/shopspring/decimal"

// DashboardStats is the fold of the current items and sales.
//
// TotalProfit and SalesCount cover every sale ever recorded; MonthlyProfit and
// WeeklySales are restricted to the current calendar month and Monday-based week.
type DashboardStats struct {
	TotalItems     int             `json:"total_items"`
	TotalValue     decimal.Decimal `json:"total_value"`
	LowStockAlerts int             `json:"low_stock_alerts"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	SalesCount     int             `json:"sales_count"`
	MonthlyProfit  decimal.Decimal `json:"monthly_profit"`
	WeeklySales    int             `json:"weekly_sales"`
}

// RecentSale is a sale row enriched with the item name for the dashboard.
type RecentSale struct {
	Sale
	ItemName string `json:"item_name"`
}

// CategoryBreakdown is one category line on the dashboard.
type CategoryBreakdown struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	ItemCount  int    `json:"item_count"`
	Quantity   int    `json:"quantity"`
}

// DashboardSummary is everything the dashboard page shows.
type DashboardSummary struct {
	Stats         DashboardStats      `json:"stats"`
	RecentSales   []RecentSale        `json:"recent_sales"`
	Categories    []CategoryBreakdown `json:"categories"`
	LowStockItems []InventoryItem     `json:"low_stock_items"`
}
