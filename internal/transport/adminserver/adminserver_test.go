package adminserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/soltiHQ/gridstore/engine"
	"github.com/soltiHQ/gridstore/internal/auth/jwt"
	"github.com/soltiHQ/gridstore/internal/credentials"
)

const testAdminPassword = "correct-horse-battery-staple"

func ordersConfig() engine.EntityConfig {
	return engine.EntityConfig{
		Name:  "orders",
		IDKey: engine.FieldIDKey("id"),
		Fields: []engine.FieldConfig{
			{Name: "id", Sort: engine.SortNatural},
			{Name: "total", Sort: engine.SortNatural},
			{Name: "placed_at", Sort: engine.SortDatetime},
		},
		Prefilters: []engine.PrefilterConfig{
			{Field: "", MaintainUnique: []string{"status"}},
			{Field: "status", MaintainUnique: []string{"customer_id"}},
		},
		Lookups: []string{"customer_id"},
	}
}

func order(id, status, customer string, total int64) engine.Record {
	return engine.Record{
		"id":          engine.String(id),
		"status":      engine.String(status),
		"customer_id": engine.String(customer),
		"total":       engine.Int(total),
	}
}

func newTestServer(t *testing.T) (*AdminServer, *jwt.Issuer) {
	t.Helper()
	eng := engine.New()
	cfg := ordersConfig()
	if err := eng.Warm(cfg, engine.WarmData{Records: []engine.Record{
		order("o1", "open", "c1", 10),
		order("o2", "closed", "c2", 20),
	}}); err != nil {
		t.Fatalf("warm: %v", err)
	}

	verifier := jwt.NewVerifier("gridstore-test", "gridstore-admin", []byte("test-secret"))
	issuer := jwt.NewIssuer("gridstore-test", "gridstore-admin", []byte("test-secret"), time.Minute)

	hash, err := credentials.Hash(testAdminPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	s := NewAdminServer(
		NewConfig(
			WithVerifier(verifier),
			WithIssuer(issuer),
			WithAdminPasswordHash(hash),
		),
		zerolog.Nop(),
		eng,
		map[string]engine.EntityConfig{"orders": cfg},
	)
	return s, issuer
}

func doRequest(t *testing.T, handler http.Handler, method, target, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetRecord_Found(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s.newRouter(), http.MethodGet, "/v1/orders/records/o1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["id"] != "o1" {
		t.Fatalf("id = %v, want o1", got["id"])
	}
}

func TestHandleGetRecord_NotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s.newRouter(), http.MethodGet, "/v1/orders/records/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandlePutRecord_RequiresAuth(t *testing.T) {
	s, _ := newTestServer(t)
	body, _ := json.Marshal(map[string]any{"id": "o3", "status": "open", "customer_id": "c3", "total": 5})
	rec := doRequest(t, s.newRouter(), http.MethodPut, "/v1/orders/records", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHandlePutRecord_WithValidToken(t *testing.T) {
	s, issuer := newTestServer(t)
	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	body, _ := json.Marshal(map[string]any{"id": "o3", "status": "open", "customer_id": "c3", "total": 5})
	rec := doRequest(t, s.newRouter(), http.MethodPut, "/v1/orders/records", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	got := doRequest(t, s.newRouter(), http.MethodGet, "/v1/orders/records/o3", "", nil)
	if got.Code != http.StatusOK {
		t.Fatalf("fetch after put: status = %d", got.Code)
	}
}

func TestHandleDropRecord_WithValidToken(t *testing.T) {
	s, issuer := newTestServer(t)
	token, _ := issuer.Issue("admin")

	rec := doRequest(t, s.newRouter(), http.MethodDelete, "/v1/orders/records/o1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	got := doRequest(t, s.newRouter(), http.MethodGet, "/v1/orders/records/o1", "", nil)
	if got.Code != http.StatusNotFound {
		t.Fatalf("status after drop = %d, want 404", got.Code)
	}
}

func TestHandleCreateView_FieldEquality(t *testing.T) {
	s, issuer := newTestServer(t)
	token, _ := issuer.Issue("admin")

	body, _ := json.Marshal(map[string]any{"field": "status", "value": "open"})
	rec := doRequest(t, s.newRouter(), http.MethodPost, "/v1/orders/views", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["fingerprint"] == "" || resp["fingerprint"] == nil {
		t.Fatalf("expected non-empty fingerprint, got %v", resp)
	}
}

func TestHandleUniques_AsMap(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s.newRouter(), http.MethodGet, "/v1/orders/uniques/status?as=map", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("entry count = %d, want 2, got %v", len(out), out)
	}
}

func TestHandlePage_Forward(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s.newRouter(), http.MethodGet, "/v1/orders/page?field=total&limit=1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var page struct {
		Records []map[string]any `json:"records"`
		HasNext bool             `json:"has_next"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(page.Records) != 1 || !page.HasNext {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestHandleStats(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s.newRouter(), http.MethodGet, "/v1/stats", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	s, _ := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"password": "not-it"})
	rec := doRequest(t, s.newRouter(), http.MethodPost, "/v1/login", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHandleLogin_CorrectPasswordIssuesUsableToken(t *testing.T) {
	s, _ := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"password": testAdminPassword})
	rec := doRequest(t, s.newRouter(), http.MethodPost, "/v1/login", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected non-empty token")
	}

	dropRec := doRequest(t, s.newRouter(), http.MethodDelete, "/v1/orders/records/o1", resp.Token, nil)
	if dropRec.Code != http.StatusOK {
		t.Fatalf("drop with issued token: status = %d, body = %s", dropRec.Code, dropRec.Body.String())
	}
}
