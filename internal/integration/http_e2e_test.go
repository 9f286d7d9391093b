//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	server "sosa_resort/internal/adapters/http_server"
	redisad "sosa_resort/internal/adapters/redis"
	"sosa_resort/internal/adapters/sosa"
	"sosa_resort/internal/app"
	"sosa_resort/internal/viewmodel"
)

// ---------- fake resort API ----------

type resortAPI struct {
	mu       sync.Mutex
	bookings map[string]string // id -> status
	hits     map[string]*int32
	down     atomic.Bool
}

func newResortAPI(t *testing.T) (*resortAPI, *httptest.Server) {
	t.Helper()
	a := &resortAPI{bookings: map[string]string{}, hits: map[string]*int32{}}
	ts := httptest.NewServer(http.HandlerFunc(a.serve))
	t.Cleanup(ts.Close)
	return a, ts
}

func (a *resortAPI) hit(key string) {
	a.mu.Lock()
	c, ok := a.hits[key]
	if !ok {
		c = new(int32)
		a.hits[key] = c
	}
	a.mu.Unlock()
	atomic.AddInt32(c, 1)
}

func (a *resortAPI) count(key string) int32 {
	a.mu.Lock()
	c, ok := a.hits[key]
	a.mu.Unlock()
	if !ok {
		return 0
	}
	return atomic.LoadInt32(c)
}

func (a *resortAPI) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	key := r.Method + " " + path
	a.hit(key)
	if a.down.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch {
	case key == "GET /health":
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	case key == "GET /public/cottages":
		_, _ = io.WriteString(w, `{"success":true,"message":"ok","data":[`+
			`{"id":1,"name":"Palm","price_per_night":850,"capacity":4,"status":"active","featured":true,"amenities":"wifi, pool"},`+
			`{"id":2,"name":"Lagoon","price_per_night":600,"capacity":2,"status":"active","amenities":["wifi"]}],`+
			`"pagination":{"current_page":1,"last_page":1,"per_page":15,"total":2}}`)
	case key == "GET /public/cottages/featured":
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":1,"name":"Palm","featured":true}]}`)
	case key == "GET /public/conferences/featured":
		_, _ = io.WriteString(w, `[{"id":9,"name":"Baobab Hall","featured":true}]`)
	case key == "GET /public/conferences":
		_, _ = io.WriteString(w, `{"current_page":1,"last_page":1,"per_page":15,"total":1,"data":[{"id":9,"name":"Baobab Hall","max_capacity":120}]}`)
	case key == "GET /public/testimonials":
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":1,"guest_name":"Kofi","rating":5,"is_approved":true,"is_featured":true},{"id":2,"guest_name":"Esi","rating":4,"is_approved":true}]}`)
	case key == "POST /bookings":
		a.mu.Lock()
		a.bookings["11"] = "pending"
		a.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":11,"cottage_id":1,"status":"pending","total_price":1700}}`)
	case key == "POST /bookings/11/confirm":
		a.mu.Lock()
		a.bookings["11"] = "confirmed"
		a.mu.Unlock()
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":11,"cottage_id":1,"status":"confirmed","total_price":1700}}`)
	case key == "POST /bookings/12/confirm":
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"success":false,"message":"The given data was invalid.","errors":{"status":["Booking cannot be confirmed."]}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"Resource not found"}`)
	}
}

// ---------- harness ----------

type harness struct {
	api    *resortAPI
	mr     *miniredis.Miniredis
	bff    *httptest.Server
	health *viewmodel.Health
}

func setup(t *testing.T) *harness {
	t.Helper()
	api, upstream := newResortAPI(t)
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	client, err := sosa.New(sosa.Config{
		BaseURL:  upstream.URL,
		RPS:      100,
		Timeout:  2 * time.Second,
		Cache:    redisad.NewWithClient(rc, "e2e:"),
		CacheTTL: time.Minute,
	})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	health := viewmodel.NewHealth(client, time.Minute)
	srv := server.New(2 * time.Second)
	srv.MountHandlers(&server.Handlers{Svc: app.NewServices(client), Cache: client, Health: health})
	bff := httptest.NewServer(srv.Mux())
	t.Cleanup(bff.Close)
	return &harness{api: api, mr: mr, bff: bff, health: health}
}

func (h *harness) call(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, h.bff.URL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func (h *harness) cachedKeys() []string {
	var out []string
	for _, k := range h.mr.Keys() {
		if strings.HasPrefix(k, "e2e:") {
			out = append(out, k)
		}
	}
	return out
}

// ---------- tests ----------

func TestE2E_CottagesServedFromRedisCache(t *testing.T) {
	h := setup(t)

	resp, body := h.call(t, http.MethodGet, "/v1/cottages", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
	var page struct {
		Data []struct {
			Name      string   `json:"name"`
			Amenities []string `json:"amenities"`
		} `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Data) != 2 || page.Pagination.Total != 2 {
		t.Fatalf("page = %+v", page)
	}
	if got := page.Data[0].Amenities; len(got) != 2 || got[1] != "pool" {
		t.Fatalf("amenities not normalized: %v", got)
	}
	if len(h.cachedKeys()) == 0 {
		t.Fatalf("nothing cached in redis")
	}

	h.call(t, http.MethodGet, "/v1/cottages", "")
	if n := h.api.count("GET /public/cottages"); n != 1 {
		t.Fatalf("want 1 upstream hit, got %d", n)
	}
}

func TestE2E_LaravelPaginatorIsNormalized(t *testing.T) {
	h := setup(t)
	resp, body := h.call(t, http.MethodGet, "/v1/conferences", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), `"Baobab Hall"`) || !strings.Contains(string(body), `"total":1`) {
		t.Fatalf("body = %s", body)
	}
}

func TestE2E_BookingFlowInvalidatesCache(t *testing.T) {
	h := setup(t)

	h.call(t, http.MethodGet, "/v1/cottages", "")
	if len(h.cachedKeys()) == 0 {
		t.Fatalf("precondition: cache should be warm")
	}

	body := `{"cottage_id":1,"check_in":"2025-03-01","check_out":"2025-03-03","guests":2,` +
		`"first_name":"Ama","last_name":"Mensah","email":"ama@example.com","phone":"+233200000000"}`
	resp, b := h.call(t, http.MethodPost, "/v1/bookings", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", resp.StatusCode, b)
	}
	if keys := h.cachedKeys(); len(keys) != 0 {
		t.Fatalf("cache should be empty after mutation, have %v", keys)
	}

	resp, b = h.call(t, http.MethodPost, "/v1/bookings/11/confirm", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(b), `"confirmed"`) {
		t.Fatalf("confirm status=%d body=%s", resp.StatusCode, b)
	}

	h.call(t, http.MethodGet, "/v1/cottages", "")
	if n := h.api.count("GET /public/cottages"); n != 2 {
		t.Fatalf("want a fresh upstream read after booking, got %d hits", n)
	}
}

func TestE2E_UpstreamValidationErrorPassesThrough(t *testing.T) {
	h := setup(t)
	resp, b := h.call(t, http.MethodPost, "/v1/bookings/12/confirm", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", resp.StatusCode, b)
	}
	var p struct {
		Detail string              `json:"detail"`
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(b, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Detail != "The given data was invalid." || len(p.Errors["status"]) != 1 {
		t.Fatalf("problem = %+v", p)
	}
}

func TestE2E_OverviewAndHealth(t *testing.T) {
	h := setup(t)

	if st := h.health.Check(context.Background()); st != viewmodel.StatusOnline {
		t.Fatalf("health = %s", st)
	}
	resp, b := h.call(t, http.MethodGet, "/v1/status", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(b), `"online"`) {
		t.Fatalf("status=%d body=%s", resp.StatusCode, b)
	}

	h.api.down.Store(true)
	if st := h.health.Check(context.Background()); st != viewmodel.StatusOffline {
		t.Fatalf("health = %s, want offline", st)
	}
	_, b = h.call(t, http.MethodGet, "/v1/status", "")
	if !strings.Contains(string(b), "API Connection Issue") {
		t.Fatalf("offline banner missing: %s", b)
	}
	h.api.down.Store(false)

	resp, b = h.call(t, http.MethodGet, "/v1/overview", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("overview status=%d body=%s", resp.StatusCode, b)
	}
	if !strings.Contains(string(b), `"Kofi"`) || !strings.Contains(string(b), `"Baobab Hall"`) {
		t.Fatalf("overview body = %s", b)
	}
}

func TestE2E_AdminForgetEndpoint(t *testing.T) {
	h := setup(t)
	h.call(t, http.MethodGet, "/v1/cottages", "")
	resp, b := h.call(t, http.MethodDelete, "/admin/cache?endpoint=/public/cottages", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(b), `"cleared":true`) {
		t.Fatalf("forget status=%d body=%s", resp.StatusCode, b)
	}
	if keys := h.cachedKeys(); len(keys) != 0 {
		t.Fatalf("key still cached: %v", keys)
	}
}
