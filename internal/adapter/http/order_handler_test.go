package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dineep4/QuickBite/configs"
	"github.com/Dineep4/QuickBite/internal/adapter/http/middleware"
	domain "github.com/Dineep4/QuickBite/internal/entity"
	"github.com/Dineep4/QuickBite/internal/usecase"
)

// memLedger is a minimal in-memory usecase.OrderLedger with the same
// per-day uniqueness behavior as the MySQL table.
type memLedger struct {
	mu     sync.Mutex
	orders []domain.Order
	taken  map[string]bool
}

func newMemLedger() *memLedger { return &memLedger{taken: map[string]bool{}} }

func (m *memLedger) Insert(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := o.OrderDate.Format("2006-01-02") + "#" + o.Token
	if m.taken[key] {
		return usecase.ErrDuplicateToken
	}
	m.taken[key] = true
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memLedger) ByStudent(_ context.Context, studentID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].StudentID == studentID {
			out = append(out, m.orders[i])
		}
	}
	return out, nil
}

func (m *memLedger) All(_ context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, 0, len(m.orders))
	for i := len(m.orders) - 1; i >= 0; i-- {
		out = append(out, m.orders[i])
	}
	return out, nil
}

func (m *memLedger) MaxTokenNumber(_ context.Context, day time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for _, o := range m.orders {
		if o.OrderDate.Equal(day) && o.TokenNumber > max {
			max = o.TokenNumber
		}
	}
	return max, nil
}

func (m *memLedger) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, usecase.ErrNotFound
}

func (m *memLedger) CountByDay(_ context.Context, day time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.orders {
		if o.OrderDate.Equal(day) {
			n++
		}
	}
	return n, nil
}

func (m *memLedger) CountByStatus(_ context.Context, status domain.Status) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type memCatalog struct{ items map[string]domain.MenuItem }

func (m *memCatalog) ItemsByID(_ context.Context, ids []string) (map[string]domain.MenuItem, error) {
	out := map[string]domain.MenuItem{}
	for _, id := range ids {
		if it, ok := m.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

type memMenuStore struct{ items map[string]domain.MenuItem }

func (m *memMenuStore) Insert(_ context.Context, item *domain.MenuItem) error {
	if m.items == nil {
		m.items = map[string]domain.MenuItem{}
	}
	m.items[item.ID] = *item
	return nil
}

func (m *memMenuStore) All(_ context.Context) ([]domain.MenuItem, error) {
	out := make([]domain.MenuItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *memMenuStore) Update(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	if _, ok := m.items[item.ID]; !ok {
		return nil, usecase.ErrNotFound
	}
	m.items[item.ID] = *item
	return item, nil
}

func (m *memMenuStore) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

type memContacts struct{ msgs []domain.ContactMessage }

func (m *memContacts) Insert(_ context.Context, msg *domain.ContactMessage) error {
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *memContacts) All(_ context.Context) ([]domain.ContactMessage, error) {
	return m.msgs, nil
}

func testConfig() configs.Config {
	var cfg configs.Config
	cfg.App.HTTPAddr = ":0"
	cfg.Staff.Username = "canteenadmin"
	cfg.Staff.Password = "staff@123"
	cfg.Staff.JWTSecret = "test-secret"
	cfg.Staff.TokenTTL = time.Hour
	return cfg
}

func newTestRouter(t *testing.T) (*gin.Engine, *memLedger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	ledger := newMemLedger()
	catalog := &memCatalog{items: map[string]domain.MenuItem{
		"1": {ID: "1", Name: "Veg Thali", Price: 50},
		"2": {ID: "2", Name: "Masala Dosa", Price: 30},
	}}

	place := usecase.NewPlaceOrder(ledger, catalog, nil, nil)
	orders := usecase.NewOrders(ledger, nil, nil)
	menu := usecase.NewMenu(&memMenuStore{}, nil)

	oh := NewOrderHandler(place, orders)
	mh := NewMenuHandler(menu)
	sh := NewStaffHandler(cfg)
	ch := NewContactHandler(&memContacts{})
	auth := middleware.NewStaffAuth(cfg)

	return NewRouter(oh, mh, sh, ch, auth), ledger
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func staffToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/staff/login",
		map[string]string{"username": "canteenadmin", "password": "staff@123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("staff login status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("no token in login response: %s", w.Body.String())
	}
	return resp.Token
}

func TestPlaceOrderEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	body := map[string]any{
		"studentId":   "s1",
		"studentName": "Ann",
		"items": []map[string]any{
			{"itemId": "1", "name": "tampered", "price": 1, "qty": 2},
			{"itemId": "2", "qty": 1},
		},
		"total": 999,
	}
	w := doJSON(t, r, http.MethodPost, "/orders/place", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		OK    bool         `json:"ok"`
		Order domain.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.OK {
		t.Error("ok = false")
	}
	if resp.Order.Total != 130 {
		t.Errorf("total = %v, want 130 (client total 999 ignored)", resp.Order.Total)
	}
	if resp.Order.Token != "QB-1" {
		t.Errorf("token = %q, want QB-1", resp.Order.Token)
	}
}

func TestPlaceOrderEndpoint_ValidationFailures(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{
			name: "missing student info",
			body: map[string]any{"items": []map[string]any{{"itemId": "1", "qty": 1}}, "total": 50},
			want: "missing student info",
		},
		{
			name: "no items",
			body: map[string]any{"studentId": "s1", "studentName": "Ann", "items": []map[string]any{}, "total": 50},
			want: "no items provided",
		},
		{
			name: "invalid total",
			body: map[string]any{"studentId": "s1", "studentName": "Ann", "items": []map[string]any{{"itemId": "1", "qty": 1}}},
			want: "invalid total",
		},
		{
			name: "no valid items",
			body: map[string]any{"studentId": "s1", "studentName": "Ann", "items": []map[string]any{{"itemId": "ghost", "qty": 1}}, "total": 50},
			want: "no valid items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/orders/place", tt.body, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var resp struct {
				OK    bool   `json:"ok"`
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.OK || resp.Error != tt.want {
				t.Errorf("resp = %+v, want error %q", resp, tt.want)
			}
		})
	}
}

func TestMyOrdersEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	place := map[string]any{
		"studentId": "s1", "studentName": "Ann",
		"items": []map[string]any{{"itemId": "1", "qty": 1}}, "total": 50,
	}
	doJSON(t, r, http.MethodPost, "/orders/place", place, "")
	place["studentId"] = "s2"
	doJSON(t, r, http.MethodPost, "/orders/place", place, "")

	w := doJSON(t, r, http.MethodGet, "/orders/me/s1", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		OK     bool           `json:"ok"`
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Orders) != 1 || resp.Orders[0].StudentID != "s1" {
		t.Errorf("orders = %+v, want exactly s1's order", resp.Orders)
	}
}

func TestAllOrdersEndpoint_RequiresStaffToken(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := doJSON(t, r, http.MethodGet, "/orders/all", nil, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("without token: status = %d, want 401", w.Code)
	}

	token := staffToken(t, r)
	if w := doJSON(t, r, http.MethodGet, "/orders/all", nil, token); w.Code != http.StatusOK {
		t.Fatalf("with token: status = %d", w.Code)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	r, ledger := newTestRouter(t)
	token := staffToken(t, r)

	doJSON(t, r, http.MethodPost, "/orders/place", map[string]any{
		"studentId": "s1", "studentName": "Ann",
		"items": []map[string]any{{"itemId": "1", "qty": 1}}, "total": 50,
	}, "")
	orderID := ledger.orders[0].ID

	t.Run("invalid status", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/orders/status/"+orderID,
			map[string]string{"status": "Eaten"}, token)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/orders/status/ghost",
			map[string]string{"status": "Ready"}, token)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("pending to ready", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/orders/status/"+orderID,
			map[string]string{"status": "Ready"}, token)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var resp struct {
			OK      bool         `json:"ok"`
			Updated domain.Order `json:"updated"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Updated.Status != domain.StatusReady {
			t.Errorf("status = %q, want Ready", resp.Updated.Status)
		}
	})
}

func TestStatsEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/orders/place", map[string]any{
		"studentId": "s1", "studentName": "Ann",
		"items": []map[string]any{{"itemId": "1", "qty": 1}}, "total": 50,
	}, "")

	w := doJSON(t, r, http.MethodGet, "/orders/stats/today", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("today: status = %d", w.Code)
	}
	var today struct {
		OK          bool `json:"ok"`
		TodayOrders int  `json:"todayOrders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &today); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if today.TodayOrders != 1 {
		t.Errorf("todayOrders = %d, want 1", today.TodayOrders)
	}

	w = doJSON(t, r, http.MethodGet, "/orders/stats/pending", nil, "")
	var pending struct {
		OK      bool `json:"ok"`
		Pending int  `json:"pending"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &pending); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pending.Pending != 1 {
		t.Errorf("pending = %d, want 1", pending.Pending)
	}
}

func TestStaffLogin_BadCredentials(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/staff/login",
		map[string]string{"username": "canteenadmin", "password": "wrong"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
