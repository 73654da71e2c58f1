package services

import (
	"testing"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
)

// Saturday; the surrounding week starts on Monday 2024-01-15.
var testNow = time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)

type testEnv struct {
	store      *repositories.Store
	items      repositories.ItemRepository
	categories repositories.CategoryRepository
	locations  repositories.LocationRepository
	sales      repositories.SaleRepository
	tasks      repositories.TaskRepository
	team       repositories.TeamRepository
	qrHistory  repositories.QRHistoryRepository
	now        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		store:      repositories.NewStore(),
		items:      repositories.NewItemRepository(),
		categories: repositories.NewCategoryRepository(),
		locations:  repositories.NewLocationRepository(),
		sales:      repositories.NewSaleRepository(),
		tasks:      repositories.NewTaskRepository(),
		team:       repositories.NewTeamRepository(),
		qrHistory:  repositories.NewQRHistoryRepository(),
		now:        testNow,
	}
}

func (e *testEnv) clock() time.Time { return e.now }

func (e *testEnv) inventoryService() *inventoryService {
	s := NewInventoryService(e.store, e.items, e.categories, e.locations, e.sales, e.team).(*inventoryService)
	s.now = e.clock
	return s
}

func (e *testEnv) taskService() *taskService {
	s := NewTaskService(e.store, e.tasks, e.team).(*taskService)
	s.now = e.clock
	return s
}

func (e *testEnv) dashboardService() *dashboardService {
	s := NewDashboardService(e.store, e.items, e.sales, e.categories).(*dashboardService)
	s.now = e.clock
	return s
}

func (e *testEnv) qrService() *qrService {
	s := NewQRService(e.store, e.items, e.locations, e.qrHistory).(*qrService)
	s.now = e.clock
	return s
}

func (e *testEnv) locationService() *locationService {
	s := NewLocationService(e.store, e.locations, e.items).(*locationService)
	s.now = e.clock
	return s
}

func (e *testEnv) addMember(t *testing.T, name string) *models.TeamMember {
	t.Helper()
	member, err := NewTeamService(e.store, e.team).CreateMember(CreateMemberRequest{Name: name, Email: "member@example.com"})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	return member
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
