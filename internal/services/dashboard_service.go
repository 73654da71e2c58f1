package services

import (
	"fmt"
	"sort"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	recentSalesLimit = 5
	unknownItemName  = "Unknown Item"
)

// DashboardService aggregates the dashboard figures from the current store contents.
type DashboardService interface {
	GetStats() (*models.DashboardStats, error)
	GetSummary() (*models.DashboardSummary, error)
}

type dashboardService struct {
	store        *repositories.Store
	itemRepo     repositories.ItemRepository
	saleRepo     repositories.SaleRepository
	categoryRepo repositories.CategoryRepository
	now          func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(
	store *repositories.Store,
	itemRepo repositories.ItemRepository,
	saleRepo repositories.SaleRepository,
	categoryRepo repositories.CategoryRepository,
) DashboardService {
	return &dashboardService{store: store, itemRepo: itemRepo, saleRepo: saleRepo, categoryRepo: categoryRepo, now: time.Now}
}

// ComputeDashboardStats folds items and sales into the dashboard figures.
// It depends only on its arguments, so the order of items and sales does not matter.
func ComputeDashboardStats(items []models.InventoryItem, sales []models.Sale, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{
		TotalValue:    decimal.Zero,
		TotalSales:    decimal.Zero,
		TotalProfit:   decimal.Zero,
		MonthlyProfit: decimal.Zero,
	}
	for _, item := range items {
		stats.TotalItems += item.Quantity
		stats.TotalValue = stats.TotalValue.Add(item.StockValue())
		if item.IsLowStockAlert() {
			stats.LowStockAlerts++
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	weekStart, weekEnd := weekBounds(now)
	for _, sale := range sales {
		stats.TotalSales = stats.TotalSales.Add(sale.SoldPrice)
		stats.TotalProfit = stats.TotalProfit.Add(sale.Profit)
		stats.SalesCount++

		soldAt := sale.SoldDate.In(now.Location())
		if !soldAt.Before(monthStart) && soldAt.Before(monthEnd) {
			stats.MonthlyProfit = stats.MonthlyProfit.Add(sale.Profit)
		}
		if !soldAt.Before(weekStart) && soldAt.Before(weekEnd) {
			stats.WeeklySales++
		}
	}
	return stats
}

// weekBounds returns the Monday 00:00 that starts the week containing now and the following Monday.
func weekBounds(now time.Time) (time.Time, time.Time) {
	offset := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 7)
}

func (s *dashboardService) GetStats() (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.store.View(func(tx *repositories.Tx) error {
		items, err := s.itemRepo.GetAllItems(tx)
		if err != nil {
			return fmt.Errorf("listing items: %w", err)
		}
		sales, err := s.saleRepo.GetSales(tx, "")
		if err != nil {
			return fmt.Errorf("listing sales: %w", err)
		}
		stats = ComputeDashboardStats(items, sales, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetSummary returns the stats plus recent sales, the category breakdown and the low-stock list.
func (s *dashboardService) GetSummary() (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{
		RecentSales:   []models.RecentSale{},
		Categories:    []models.CategoryBreakdown{},
		LowStockItems: []models.InventoryItem{},
	}
	err := s.store.View(func(tx *repositories.Tx) error {
		items, err := s.itemRepo.GetAllItems(tx)
		if err != nil {
			return fmt.Errorf("listing items: %w", err)
		}
		sales, err := s.saleRepo.GetSales(tx, "")
		if err != nil {
			return fmt.Errorf("listing sales: %w", err)
		}
		categories, err := s.categoryRepo.GetCategories(tx)
		if err != nil {
			return fmt.Errorf("listing categories: %w", err)
		}
		summary.Stats = ComputeDashboardStats(items, sales, s.now())

		names := make(map[string]string, len(items))
		quantities := make(map[string]int)
		for _, item := range items {
			names[item.ID] = item.Name
			if item.CategoryID != nil {
				quantities[*item.CategoryID] += item.Quantity
			}
			if item.IsLowStockAlert() {
				summary.LowStockItems = append(summary.LowStockItems, item)
			}
		}
		sort.SliceStable(summary.LowStockItems, func(i, j int) bool {
			return summary.LowStockItems[i].Quantity < summary.LowStockItems[j].Quantity
		})

		for i, sale := range sales {
			if i == recentSalesLimit {
				break
			}
			name, ok := names[sale.InventoryItemID]
			if !ok {
				name = unknownItemName
			}
			summary.RecentSales = append(summary.RecentSales, models.RecentSale{Sale: sale, ItemName: name})
		}

		for _, c := range categories {
			summary.Categories = append(summary.Categories, models.CategoryBreakdown{
				CategoryID: c.ID,
				Name:       c.Name,
				Color:      c.Color,
				ItemCount:  c.ItemCount,
				Quantity:   quantities[c.ID],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
