// Package seed holds the demo data set a fresh warehouse starts with.
package seed

import (
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

// Snapshot builds the demo data set. adminPasswordHash, when non-empty, lets the seeded admin log in.
func Snapshot(adminPasswordHash string, now time.Time) *models.Snapshot {
	jan1 := day("2024-01-01")

	categories := []models.Category{
		{ID: utils.GenerateID(), Name: "Electronics", Description: ptr("Electronic devices and components"), Color: "#3B82F6", CreatedAt: jan1},
		{ID: utils.GenerateID(), Name: "Furniture", Description: ptr("Office and home furniture"), Color: "#10B981", CreatedAt: jan1},
		{ID: utils.GenerateID(), Name: "Office Supplies", Description: ptr("General office supplies and stationery"), Color: "#F59E0B", CreatedAt: jan1},
		{ID: utils.GenerateID(), Name: "Tools", Description: ptr("Hardware tools and equipment"), Color: "#EF4444", CreatedAt: jan1},
	}

	warehouseA := utils.GenerateID()
	zone1 := utils.GenerateID()
	locations := []models.Location{
		{ID: warehouseA, Name: "Warehouse A", Description: ptr("Main warehouse facility"), Level: 1, Code: "WH-A-001", Capacity: ptr(1000), CreatedAt: jan1, UpdatedAt: jan1},
		{ID: zone1, Name: "Zone 1", Description: ptr("Electronics zone"), Level: 2, ParentID: ptr(warehouseA), Code: "WH-A-Z1-001", Capacity: ptr(300), CreatedAt: jan1, UpdatedAt: jan1},
		{ID: utils.GenerateID(), Name: "Aisle A", Description: ptr("First aisle in Zone 1"), Level: 3, ParentID: ptr(zone1), Code: "WH-A-Z1-A1-001", Capacity: ptr(100), CreatedAt: jan1, UpdatedAt: jan1},
	}

	members := []models.SnapshotMember{
		{TeamMember: models.TeamMember{ID: utils.GenerateID(), Name: "John Smith", Email: "john.smith@company.com", Role: models.RoleAdmin, Department: "Management", Status: models.PresenceActive, CreatedAt: jan1}, PasswordHash: adminPasswordHash},
		{TeamMember: models.TeamMember{ID: utils.GenerateID(), Name: "Sarah Johnson", Email: "sarah.johnson@company.com", Role: models.RoleManager, Department: "Operations", Status: models.PresenceActive, CreatedAt: jan1}},
		{TeamMember: models.TeamMember{ID: utils.GenerateID(), Name: "Mike Davis", Email: "mike.davis@company.com", Role: models.RoleUser, Department: "Warehouse", Status: models.PresenceActive, CreatedAt: jan1}},
	}

	newItem := func(name string, qty int, price int64, purchased, from string, serial *string, category, location string, minLevel int) models.InventoryItem {
		at := day(purchased)
		return models.InventoryItem{
			ID:            utils.GenerateID(),
			Name:          name,
			Quantity:      qty,
			PurchasePrice: decimal.NewFromInt(price),
			PurchaseDate:  purchased,
			PurchasedFrom: from,
			SerialNumber:  serial,
			CategoryID:    ptr(category),
			LocationID:    ptr(location),
			Status:        models.StockStatusFor(qty, &minLevel),
			MinStockLevel: ptr(minLevel),
			InternalID:    utils.GenerateInternalID(now),
			CreatedAt:     at,
			UpdatedAt:     at,
		}
	}
	items := []models.InventoryItem{
		newItem("Dell Laptop XPS 13", 5, 1200, "2024-01-15", "Dell Direct", ptr("DL-XPS13-001"), categories[0].ID, locations[1].ID, 2),
		newItem("Office Chair Ergonomic", 1, 350, "2024-01-10", "Office Depot", nil, categories[1].ID, locations[0].ID, 3),
		newItem("Wireless Mouse Logitech", 15, 45, "2024-01-05", "Amazon", ptr("LG-M705-001"), categories[0].ID, locations[2].ID, 5),
	}

	sales := []models.Sale{
		{
			ID:              utils.GenerateID(),
			InventoryItemID: items[0].ID,
			QuantitySold:    2,
			SoldPrice:       decimal.NewFromInt(2600),
			Profit:          decimal.NewFromInt(200),
			SoldTo:          "Tech Startup Inc.",
			SoldDate:        day("2024-01-20"),
			SellerName:      members[0].Name,
			SellerEmail:     members[0].Email,
			CreatedAt:       day("2024-01-20"),
		},
	}

	tasks := []models.Task{
		{
			ID:          utils.GenerateID(),
			Title:       "Inventory Audit - Zone 1",
			Description: "Complete physical count of all items in Zone 1",
			Status:      models.TaskStatusInProgress,
			Priority:    models.TaskPriorityHigh,
			AssigneeID:  members[1].ID,
			DueDate:     "2024-02-01",
			Tags:        []string{"audit", "zone-1"},
			Comments:    []models.TaskComment{},
			CreatedAt:   day("2024-01-25"),
			UpdatedAt:   day("2024-01-25"),
		},
		{
			ID:          utils.GenerateID(),
			Title:       "Restock Office Chairs",
			Description: "Order new office chairs - running low on inventory",
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityMedium,
			AssigneeID:  members[2].ID,
			DueDate:     "2024-01-30",
			Tags:        []string{"restock"},
			Comments:    []models.TaskComment{},
			CreatedAt:   day("2024-01-26"),
			UpdatedAt:   day("2024-01-26"),
		},
	}

	return &models.Snapshot{
		Items:       items,
		Categories:  categories,
		Locations:   locations,
		Sales:       sales,
		Tasks:       tasks,
		TeamMembers: members,
		QRHistory:   []models.QRHistoryEntry{},
		CreatedAt:   now,
	}
}
