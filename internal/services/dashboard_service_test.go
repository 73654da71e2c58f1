package services

import (
	"slices"
	"testing"
	"time"

	"warehouse_backend/internal/models"

	"github.com/shopspring/decimal"
)

func dashboardFixture() ([]models.InventoryItem, []models.Sale) {
	items := []models.InventoryItem{
		{ID: "laptop", Name: "Dell Laptop XPS 13", Quantity: 5, PurchasePrice: decimal.NewFromInt(1200), Status: models.ItemStatusInStock},
		{ID: "chair", Name: "Office Chair Ergonomic", Quantity: 1, PurchasePrice: decimal.NewFromInt(350), Status: models.ItemStatusLowStock},
		{ID: "mouse", Name: "Wireless Mouse Logitech", Quantity: 15, PurchasePrice: decimal.NewFromInt(45), Status: models.ItemStatusInStock},
		{ID: "drill", Name: "Drill", Quantity: 0, PurchasePrice: decimal.NewFromInt(80), Status: models.ItemStatusOutOfStock},
	}
	sales := []models.Sale{
		{ID: "s1", InventoryItemID: "laptop", SoldPrice: decimal.NewFromInt(2600), Profit: decimal.NewFromInt(200), SoldDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "s2", InventoryItemID: "mouse", SoldPrice: decimal.NewFromInt(108), Profit: decimal.NewFromInt(18), SoldDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "s3", InventoryItemID: "chair", SoldPrice: decimal.NewFromInt(420), Profit: decimal.NewFromInt(70), SoldDate: time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC)},
		{ID: "s4", InventoryItemID: "gone", SoldPrice: decimal.NewFromInt(100), Profit: decimal.NewFromInt(10), SoldDate: time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)},
	}
	return items, sales
}

func TestComputeDashboardStats(t *testing.T) {
	items, sales := dashboardFixture()
	stats := ComputeDashboardStats(items, sales, testNow)

	if stats.TotalItems != 21 {
		t.Errorf("TotalItems = %d, want 21", stats.TotalItems)
	}
	checkDecimal(t, "TotalValue", stats.TotalValue, "7025")
	if stats.LowStockAlerts != 2 {
		t.Errorf("LowStockAlerts = %d, want 2", stats.LowStockAlerts)
	}
	checkDecimal(t, "TotalSales", stats.TotalSales, "3228")
	checkDecimal(t, "TotalProfit", stats.TotalProfit, "298")
	checkDecimal(t, "MonthlyProfit", stats.MonthlyProfit, "288")
	if stats.SalesCount != 4 {
		t.Errorf("SalesCount = %d, want 4", stats.SalesCount)
	}
	if stats.WeeklySales != 2 {
		t.Errorf("WeeklySales = %d, want 2", stats.WeeklySales)
	}
}

func TestComputeDashboardStatsIgnoresOrder(t *testing.T) {
	items, sales := dashboardFixture()
	want := ComputeDashboardStats(items, sales, testNow)

	slices.Reverse(items)
	slices.Reverse(sales)
	got := ComputeDashboardStats(items, sales, testNow)

	if got.TotalItems != want.TotalItems || got.LowStockAlerts != want.LowStockAlerts ||
		got.SalesCount != want.SalesCount || got.WeeklySales != want.WeeklySales ||
		!got.TotalValue.Equal(want.TotalValue) || !got.TotalSales.Equal(want.TotalSales) ||
		!got.TotalProfit.Equal(want.TotalProfit) || !got.MonthlyProfit.Equal(want.MonthlyProfit) {
		t.Fatalf("stats depend on order: %+v vs %+v", got, want)
	}
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := ComputeDashboardStats(nil, nil, testNow)
	if stats.TotalItems != 0 || !stats.TotalValue.IsZero() || !stats.MonthlyProfit.IsZero() || stats.WeeklySales != 0 {
		t.Fatalf("empty stats = %+v", stats)
	}
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "2024-01-15"},
		{time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC), "2024-01-15"},
		{time.Date(2024, 1, 21, 23, 59, 0, 0, time.UTC), "2024-01-15"},
		{time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), "2024-02-26"},
	}
	for _, tt := range tests {
		start, end := weekBounds(tt.now)
		if got := start.Format(time.DateOnly); got != tt.want {
			t.Errorf("weekBounds(%s) start = %s, want %s", tt.now, got, tt.want)
		}
		if end.Sub(start) != 7*24*time.Hour {
			t.Errorf("week length = %s", end.Sub(start))
		}
	}
}

func TestDashboardSummary(t *testing.T) {
	env := newTestEnv(t)
	items, sales := dashboardFixture()
	category := "electronics"
	items[0].CategoryID = &category
	items[2].CategoryID = &category
	_ = env.categories.CreateCategory(env.store, &models.Category{ID: category, Name: "Electronics", Color: "#3B82F6"})
	for i := range items {
		_ = env.items.CreateItem(env.store, &items[i])
	}
	for i := range sales {
		_ = env.sales.CreateSale(env.store, &sales[i])
	}
	for i := 0; i < 3; i++ {
		extra := models.Sale{ID: "old" + string(rune('a'+i)), InventoryItemID: "mouse", SoldPrice: decimal.NewFromInt(1), Profit: decimal.Zero, SoldDate: time.Date(2023, 6, 1+i, 0, 0, 0, 0, time.UTC)}
		_ = env.sales.CreateSale(env.store, &extra)
	}

	summary, err := env.dashboardService().GetSummary()
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if len(summary.RecentSales) != 5 {
		t.Fatalf("recent sales = %d, want 5", len(summary.RecentSales))
	}
	if summary.RecentSales[0].ID != "s1" || summary.RecentSales[0].ItemName != "Dell Laptop XPS 13" {
		t.Errorf("most recent sale = %+v", summary.RecentSales[0])
	}
	if summary.RecentSales[3].ItemName != unknownItemName {
		t.Errorf("sale of deleted item named %q", summary.RecentSales[3].ItemName)
	}
	if len(summary.Categories) != 1 || summary.Categories[0].ItemCount != 2 || summary.Categories[0].Quantity != 20 {
		t.Errorf("categories = %+v", summary.Categories)
	}
	if len(summary.LowStockItems) != 2 || summary.LowStockItems[0].ID != "drill" {
		t.Errorf("low stock items = %+v", summary.LowStockItems)
	}
	if summary.Stats.SalesCount != 7 {
		t.Errorf("sales count = %d", summary.Stats.SalesCount)
	}
}

func checkDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
