package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateLocationHierarchy(t *testing.T) {
	env := newTestEnv(t)
	svc := env.locationService()

	warehouse, err := svc.CreateLocation(CreateLocationRequest{Name: "Warehouse A", Level: 1, Code: strPtr("WH-A-001"), Capacity: intPtr(1000)})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	zone, err := svc.CreateLocation(CreateLocationRequest{Name: "Zone 1", Level: 2, ParentID: &warehouse.ID, Capacity: intPtr(10)})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	if !strings.HasPrefix(zone.Code, "LOC-ZON-L2-") {
		t.Errorf("generated code = %s", zone.Code)
	}

	tests := []struct {
		name string
		req  CreateLocationRequest
		want error
	}{
		{"parent at same level", CreateLocationRequest{Name: "Zone 2", Level: 2, ParentID: &zone.ID}, ErrInvalidParent},
		{"missing parent", CreateLocationRequest{Name: "Aisle", Level: 3, ParentID: strPtr("ghost")}, ErrInvalidParent},
		{"duplicate code", CreateLocationRequest{Name: "Other", Level: 1, Code: strPtr("WH-A-001")}, ErrLocationCodeExists},
		{"level zero", CreateLocationRequest{Name: "Nowhere", Level: 0}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateLocation(tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("CreateLocation = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLocationDetail(t *testing.T) {
	env := newTestEnv(t)
	svc := env.locationService()
	inventory := env.inventoryService()

	zone, err := svc.CreateLocation(CreateLocationRequest{Name: "Zone 1", Level: 2, Capacity: intPtr(10)})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	for _, qty := range []int{4, 5} {
		if _, err := inventory.CreateItem(CreateItemRequest{Name: "Box", Quantity: qty, PurchasePrice: decimal.NewFromInt(1), PurchasedFrom: "x", LocationID: &zone.ID}); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
	}

	detail, err := svc.GetLocationDetail(zone.ID)
	if err != nil {
		t.Fatalf("GetLocationDetail: %v", err)
	}
	if detail.CurrentUsage != 9 || detail.Utilization != "critical" || detail.LevelName != "Zone" || len(detail.Items) != 2 {
		t.Errorf("detail = usage %d band %s level %s items %d", detail.CurrentUsage, detail.Utilization, detail.LevelName, len(detail.Items))
	}
	if _, err := svc.GetLocationDetail("ghost"); !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("GetLocationDetail ghost = %v", err)
	}
}
