package services

import (
	"fmt"
	"io"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/pkg/utils"

	"github.com/xuri/excelize/v2"
)

const (
	InventorySheet = "Inventory"
	SalesSheet     = "Sales"
)

var (
	inventoryHeadings = []string{"Internal ID", "Name", "Serial Number", "Category", "Location", "Quantity", "Purchase Price", "Stock Value", "Status", "Min Stock Level", "Purchased From", "Purchase Date"}
	salesHeadings     = []string{"Sale ID", "Item", "Quantity", "Sold Price", "Profit", "Sold To", "Sold Date", "Seller", "Seller Email", "Customer Phone"}
)

// ReportService exports the warehouse as a spreadsheet.
type ReportService interface {
	ExportWorkbook(w io.Writer) error
}

type reportService struct {
	store        *repositories.Store
	itemRepo     repositories.ItemRepository
	saleRepo     repositories.SaleRepository
	categoryRepo repositories.CategoryRepository
	locationRepo repositories.LocationRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	store *repositories.Store,
	itemRepo repositories.ItemRepository,
	saleRepo repositories.SaleRepository,
	categoryRepo repositories.CategoryRepository,
	locationRepo repositories.LocationRepository,
) ReportService {
	return &reportService{store: store, itemRepo: itemRepo, saleRepo: saleRepo, categoryRepo: categoryRepo, locationRepo: locationRepo}
}

type reportData struct {
	items      []models.InventoryItem
	sales      []models.Sale
	categories map[string]string
	locations  map[string]string
}

func (s *reportService) load() (*reportData, error) {
	data := &reportData{categories: map[string]string{}, locations: map[string]string{}}
	err := s.store.View(func(tx *repositories.Tx) error {
		var err error
		if data.items, err = s.itemRepo.GetAllItems(tx); err != nil {
			return err
		}
		if data.sales, err = s.saleRepo.GetSales(tx, ""); err != nil {
			return err
		}
		categories, err := s.categoryRepo.GetCategories(tx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			data.categories[c.ID] = c.Name
		}
		locations, err := s.locationRepo.GetLocations(tx)
		if err != nil {
			return err
		}
		for _, l := range locations {
			data.locations[l.ID] = l.Name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading report data: %w", err)
	}
	return data, nil
}

// ExportWorkbook writes an xlsx workbook with an Inventory and a Sales sheet.
func (s *reportService) ExportWorkbook(w io.Writer) error {
	data, err := s.load()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(SalesSheet); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(data.items))
	for _, item := range data.items {
		rows = append(rows, []interface{}{
			item.InternalID,
			item.Name,
			utils.Deref(item.SerialNumber, ""),
			lookupName(data.categories, item.CategoryID),
			lookupName(data.locations, item.LocationID),
			item.Quantity,
			item.PurchasePrice.InexactFloat64(),
			item.StockValue().InexactFloat64(),
			string(item.Status),
			minStockOrDefault(item.MinStockLevel),
			item.PurchasedFrom,
			item.PurchaseDate,
		})
	}
	if err := writeSheet(f, InventorySheet, inventoryHeadings, rows); err != nil {
		return err
	}

	itemNames := make(map[string]string, len(data.items))
	for _, item := range data.items {
		itemNames[item.ID] = item.Name
	}
	rows = make([][]interface{}, 0, len(data.sales))
	for _, sale := range data.sales {
		name, ok := itemNames[sale.InventoryItemID]
		if !ok {
			name = unknownItemName
		}
		rows = append(rows, []interface{}{
			sale.ID,
			name,
			sale.QuantitySold,
			sale.SoldPrice.InexactFloat64(),
			sale.Profit.InexactFloat64(),
			sale.SoldTo,
			sale.SoldDate.Format(time.DateOnly),
			sale.SellerName,
			sale.SellerEmail,
			utils.Deref(sale.CustomerPhone, ""),
		})
	}
	if err := writeSheet(f, SalesSheet, salesHeadings, rows); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, headings []string, rows [][]interface{}) error {
	for col, h := range headings {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func lookupName(names map[string]string, id *string) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

func minStockOrDefault(level *int) int {
	if level == nil || *level <= 0 {
		return models.DefaultMinStockLevel
	}
	return *level
}
