package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/internal/seed"
	"warehouse_backend/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "router-test-secret-value"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	engine *gin.Engine
	store  *repositories.Store
	snap   *models.Snapshot
}

func newTestServer(t *testing.T, authEnabled bool) *testServer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	snap := seed.Snapshot(string(hash), time.Now())
	store := repositories.NewStore()
	store.Restore(snap)

	engine := gin.New()
	Setup(engine, Options{
		Store:           store,
		SnapshotService: services.NewSnapshotService(store, nil, nil),
		AuthEnabled:     authEnabled,
		JWTSecret:       testSecret,
		JWTExpiration:   time.Hour,
	})
	return &testServer{engine: engine, store: store, snap: snap}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body %s", w.Code, want, w.Body.String())
	}
}

func TestPing(t *testing.T) {
	s := newTestServer(t, false)
	w := s.do(t, http.MethodGet, "/ping", nil, "")
	expectStatus(t, w, http.StatusOK)
}

func TestItemsAndSales(t *testing.T) {
	s := newTestServer(t, false)
	laptop := s.snap.Items[0]
	seller := s.snap.TeamMembers[0]

	w := s.do(t, http.MethodGet, "/api/v1/items?search=dell", nil, "")
	expectStatus(t, w, http.StatusOK)
	var list struct {
		Data  []models.InventoryItem `json:"data"`
		Total int                    `json:"total"`
	}
	decode(t, w, &list)
	if list.Total != 1 || list.Data[0].ID != laptop.ID {
		t.Fatalf("search result = %+v", list)
	}

	w = s.do(t, http.MethodPost, "/api/v1/items/"+laptop.ID+"/sell", map[string]interface{}{"quantity": 4, "seller_id": seller.ID}, "")
	expectStatus(t, w, http.StatusCreated)
	var sold services.SaleResult
	decode(t, w, &sold)
	if sold.Item.Quantity != 1 || sold.Item.Status != models.ItemStatusLowStock {
		t.Errorf("item after sale = %d/%s", sold.Item.Quantity, sold.Item.Status)
	}

	w = s.do(t, http.MethodPost, "/api/v1/items/"+laptop.ID+"/sell", map[string]interface{}{"quantity": 2, "seller_id": seller.ID}, "")
	expectStatus(t, w, http.StatusConflict)

	w = s.do(t, http.MethodPost, "/api/v1/items/"+laptop.ID+"/sell", map[string]interface{}{"quantity": 1}, "")
	expectStatus(t, w, http.StatusBadRequest)

	w = s.do(t, http.MethodGet, "/api/v1/sales?item_id="+laptop.ID, nil, "")
	expectStatus(t, w, http.StatusOK)
	var sales struct {
		Total int `json:"total"`
	}
	decode(t, w, &sales)
	if sales.Total != 2 {
		t.Errorf("sales for laptop = %d, want seeded sale plus one", sales.Total)
	}

	w = s.do(t, http.MethodGet, "/api/v1/items/ghost", nil, "")
	expectStatus(t, w, http.StatusNotFound)
}

func TestItemPagingBounds(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/v1/items?page=922337203685477580&page_size=20", nil, "")
	expectStatus(t, w, http.StatusOK)
	var list struct {
		Data     []models.InventoryItem `json:"data"`
		Total    int                    `json:"total"`
		PageSize int                    `json:"page_size"`
	}
	decode(t, w, &list)
	if len(list.Data) != 0 || list.Total != len(s.snap.Items) {
		t.Fatalf("far page = %d items, total %d", len(list.Data), list.Total)
	}

	w = s.do(t, http.MethodGet, "/api/v1/items?page=2&page_size=9223372036854775807", nil, "")
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &list)
	if list.PageSize != 100 {
		t.Errorf("page_size = %d, want 100", list.PageSize)
	}
}

func TestCreateItemFromForm(t *testing.T) {
	s := newTestServer(t, false)
	form := url.Values{
		"name":           {"Cordless Drill"},
		"quantity":       {"abc"},
		"purchase_price": {"89.90"},
		"purchased_from": {"Hardware Store"},
		"auto_serial":    {"false"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	expectStatus(t, w, http.StatusCreated)

	var item models.InventoryItem
	decode(t, w, &item)
	if item.Quantity != 0 || item.Status != models.ItemStatusOutOfStock || item.SerialNumber != nil {
		t.Errorf("form item = %+v", item)
	}
	if item.PurchasePrice.String() != "89.9" {
		t.Errorf("purchase price = %s", item.PurchasePrice)
	}
}

func TestInvalidJSON(t *testing.T) {
	s := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	expectStatus(t, w, http.StatusBadRequest)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, w, &body)
	if body.Error.Code != "VALIDATION_FAILED" {
		t.Errorf("error code = %q", body.Error.Code)
	}
}

func TestTaskBoardFlow(t *testing.T) {
	s := newTestServer(t, false)
	task := s.snap.Tasks[0] // in-progress

	w := s.do(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/move", map[string]string{"over_id": "history"}, "")
	expectStatus(t, w, http.StatusOK)
	var ignored services.MoveResult
	decode(t, w, &ignored)
	if ignored.Moved {
		t.Fatal("drop onto history was applied")
	}

	w = s.do(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/move", map[string]string{"over_id": "done"}, "")
	expectStatus(t, w, http.StatusOK)
	var moved services.MoveResult
	decode(t, w, &moved)
	if !moved.Moved || moved.HistoryTask == nil {
		t.Fatalf("move to done = %+v", moved)
	}

	w = s.do(t, http.MethodGet, "/api/v1/tasks/board", nil, "")
	expectStatus(t, w, http.StatusOK)
	var board models.TaskBoard
	decode(t, w, &board)
	if len(board.Done) != 1 || len(board.Todo) != 1 || len(board.History) != 1 || len(board.History[0].Tasks) != 1 {
		t.Errorf("board = %d todo, %d done, %d history groups", len(board.Todo), len(board.Done), len(board.History))
	}

	w = s.do(t, http.MethodPut, "/api/v1/tasks/"+moved.HistoryTask.ID, map[string]string{"title": "x"}, "")
	expectStatus(t, w, http.StatusConflict)
}

func TestDashboardAndReports(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/v1/dashboard/stats", nil, "")
	expectStatus(t, w, http.StatusOK)
	var stats models.DashboardStats
	decode(t, w, &stats)
	if stats.TotalItems != 21 || stats.LowStockAlerts != 1 || stats.SalesCount != 1 {
		t.Errorf("stats = %+v", stats)
	}

	w = s.do(t, http.MethodGet, "/api/v1/reports/inventory.xlsx", nil, "")
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %s", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("workbook is not a zip archive")
	}
}

func TestQRScanRoute(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/v1/qr/scan", map[string]string{"data": "LG-M705-001"}, "")
	expectStatus(t, w, http.StatusOK)
	var res models.ScanResult
	decode(t, w, &res)
	if !res.Matched || res.Item == nil || res.Item.Name != "Wireless Mouse Logitech" {
		t.Fatalf("scan = %+v", res)
	}

	w = s.do(t, http.MethodGet, "/api/v1/locations/"+s.snap.Locations[0].ID+"/qr?size=200&format=png", nil, "")
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %s", ct)
	}

	w = s.do(t, http.MethodGet, "/api/v1/qr/history", nil, "")
	expectStatus(t, w, http.StatusOK)
	var history struct {
		Total int `json:"total"`
	}
	decode(t, w, &history)
	if history.Total != 1 {
		t.Errorf("history entries = %d, want 1", history.Total)
	}
}

func TestAuthEnabled(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/v1/items", nil, "")
	expectStatus(t, w, http.StatusUnauthorized)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "john.smith@company.com", "password": "wrong-password"}, "")
	expectStatus(t, w, http.StatusUnauthorized)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "john.smith@company.com", "password": "admin-password"}, "")
	expectStatus(t, w, http.StatusOK)
	var login services.AuthResponse
	decode(t, w, &login)
	adminToken := login.AccessToken

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, adminToken)
	expectStatus(t, w, http.StatusOK)

	w = s.do(t, http.MethodPost, "/api/v1/team-members", map[string]string{
		"name": "Temp Worker", "email": "temp@company.com", "role": "user", "password": "temp-password",
	}, adminToken)
	expectStatus(t, w, http.StatusCreated)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "temp@company.com", "password": "temp-password"}, "")
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &login)
	userToken := login.AccessToken

	itemID := s.snap.Items[2].ID
	w = s.do(t, http.MethodDelete, "/api/v1/items/"+itemID, nil, userToken)
	expectStatus(t, w, http.StatusForbidden)

	w = s.do(t, http.MethodPost, "/api/v1/items/"+itemID+"/sell", map[string]int{"quantity": 1}, userToken)
	expectStatus(t, w, http.StatusCreated)
	var sold services.SaleResult
	decode(t, w, &sold)
	if sold.Sale.SellerName != "Temp Worker" {
		t.Errorf("seller = %q, want the logged-in member", sold.Sale.SellerName)
	}

	w = s.do(t, http.MethodDelete, "/api/v1/items/"+itemID, nil, adminToken)
	expectStatus(t, w, http.StatusNoContent)

	w = s.do(t, http.MethodPost, "/api/v1/snapshots", nil, adminToken)
	expectStatus(t, w, http.StatusServiceUnavailable)
}
