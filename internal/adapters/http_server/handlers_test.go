package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	server "sosa_resort/internal/adapters/http_server"
	"sosa_resort/internal/adapters/memory"
	"sosa_resort/internal/adapters/sosa"
	"sosa_resort/internal/app"
	"sosa_resort/internal/viewmodel"
)

type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]string
	calls  map[string]int
	query  string
}

func newFakeAPI(t *testing.T, routes map[string]string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{routes: routes, calls: map[string]int{}}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/v1")
		f.mu.Lock()
		f.calls[key]++
		f.query = r.URL.RawQuery
		body, ok := f.routes[key]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"Cottage not found"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return f, ts
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func newBFF(t *testing.T, upstreamURL string) http.Handler {
	t.Helper()
	cl, err := sosa.New(sosa.Config{BaseURL: upstreamURL, RPS: 100, Timeout: time.Second, Cache: memory.New()})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	srv := server.New(time.Second)
	srv.MountHandlers(&server.Handlers{
		Svc:    app.NewServices(cl),
		Cache:  cl,
		Health: viewmodel.NewHealth(cl, time.Minute),
	})
	return srv.Mux()
}

func do(t *testing.T, h http.Handler, method, target, body string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCottageList_ForwardsFiltersAndSetsETag(t *testing.T) {
	f, ts := newFakeAPI(t, map[string]string{
		"GET /public/cottages": `{"success":true,"data":[{"id":1,"name":"Palm"}],"pagination":{"current_page":1,"last_page":1,"per_page":15,"total":1}}`,
	})
	h := newBFF(t, ts.URL)

	rr := do(t, h, http.MethodGet, "/v1/cottages?featured=true&min_capacity=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(f.query, "featured=true") || !strings.Contains(f.query, "min_capacity=2") {
		t.Fatalf("upstream query = %q", f.query)
	}
	etag := rr.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}

	rr2 := do(t, h, http.MethodGet, "/v1/cottages?featured=true&min_capacity=2", "", "If-None-Match", etag)
	if rr2.Code != http.StatusNotModified {
		t.Fatalf("want 304, got %d", rr2.Code)
	}
	if n := f.count("GET /public/cottages"); n != 1 {
		t.Fatalf("second call should be served from cache, upstream hits=%d", n)
	}
}

func TestCottageList_BadQuery(t *testing.T) {
	_, ts := newFakeAPI(t, nil)
	h := newBFF(t, ts.URL)

	rr := do(t, h, http.MethodGet, "/v1/cottages?min_price=cheap", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestCottage_NotFoundMapsTo404(t *testing.T) {
	_, ts := newFakeAPI(t, nil)
	h := newBFF(t, ts.URL)

	rr := do(t, h, http.MethodGet, "/v1/cottages/99", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rr.Code)
	}
	var p struct {
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Detail != "Cottage not found" {
		t.Fatalf("detail = %q", p.Detail)
	}
}

func TestCottage_InvalidID(t *testing.T) {
	_, ts := newFakeAPI(t, nil)
	h := newBFF(t, ts.URL)
	if rr := do(t, h, http.MethodGet, "/v1/cottages/abc", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rr.Code)
	}
}

func TestUpstreamDown_MapsTo502(t *testing.T) {
	_, ts := newFakeAPI(t, nil)
	ts.Close()
	h := newBFF(t, ts.URL)

	rr := do(t, h, http.MethodGet, "/v1/cottages/featured", "")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("want 502, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateBooking_ValidationNeverReachesUpstream(t *testing.T) {
	f, ts := newFakeAPI(t, map[string]string{"POST /bookings": `{"success":true,"data":{"id":7}}`})
	h := newBFF(t, ts.URL)

	rr := do(t, h, http.MethodPost, "/v1/bookings", `{"cottage_id":1,"check_in":"2025-01-10"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d", rr.Code)
	}
	var p struct {
		Errors map[string][]string `json:"errors"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &p)
	if len(p.Errors["check_out"]) == 0 {
		t.Fatalf("expected check_out field error, got %v", p.Errors)
	}
	if n := f.count("POST /bookings"); n != 0 {
		t.Fatalf("upstream called %d times", n)
	}
}

func TestCreateBooking_Created(t *testing.T) {
	_, ts := newFakeAPI(t, map[string]string{"POST /bookings": `{"success":true,"data":{"id":7,"status":"pending"}}`})
	h := newBFF(t, ts.URL)

	body := `{"cottage_id":1,"check_in":"2025-01-10","check_out":"2025-01-12","guests":2,` +
		`"first_name":"Ama","last_name":"Mensah","email":"ama@example.com","phone":"+233200000000"}`
	rr := do(t, h, http.MethodPost, "/v1/bookings", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("ETag") != "" {
		t.Fatalf("ETag only belongs on GET responses")
	}
}

func TestDeleteBooking_NoContent(t *testing.T) {
	_, ts := newFakeAPI(t, map[string]string{"DELETE /bookings/3": `{"success":true,"message":"deleted"}`})
	h := newBFF(t, ts.URL)
	if rr := do(t, h, http.MethodDelete, "/v1/bookings/3", ""); rr.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", rr.Code)
	}
}

func TestUnknownBodyField_Rejected(t *testing.T) {
	_, ts := newFakeAPI(t, nil)
	h := newBFF(t, ts.URL)
	rr := do(t, h, http.MethodPost, "/v1/cottages/1/availability", `{"check_in":"2025-01-10","nope":1}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rr.Code)
	}
}

func TestConferencesByCapacity_RequiresAttendees(t *testing.T) {
	_, ts := newFakeAPI(t, map[string]string{"GET /public/conferences/capacity": `{"success":true,"data":[]}`})
	h := newBFF(t, ts.URL)
	if rr := do(t, h, http.MethodGet, "/v1/conferences/capacity", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/v1/conferences/capacity?attendees=40", ""); rr.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rr.Code)
	}
}

func TestAdminCache_ClearAndForget(t *testing.T) {
	f, ts := newFakeAPI(t, map[string]string{"GET /public/cottages/featured": `{"success":true,"data":[{"id":1}]}`})
	h := newBFF(t, ts.URL)

	do(t, h, http.MethodGet, "/v1/cottages/featured", "")
	do(t, h, http.MethodGet, "/v1/cottages/featured", "")
	if n := f.count("GET /public/cottages/featured"); n != 1 {
		t.Fatalf("want 1 upstream hit, got %d", n)
	}

	rr := do(t, h, http.MethodDelete, "/admin/cache?endpoint=/public/cottages/featured", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"cleared":true`) {
		t.Fatalf("forget: %d %s", rr.Code, rr.Body.String())
	}
	do(t, h, http.MethodGet, "/v1/cottages/featured", "")
	if n := f.count("GET /public/cottages/featured"); n != 2 {
		t.Fatalf("want 2 upstream hits after forget, got %d", n)
	}

	if rr := do(t, h, http.MethodPost, "/admin/cache/clear", ""); rr.Code != http.StatusOK {
		t.Fatalf("clear: %d", rr.Code)
	}
	do(t, h, http.MethodGet, "/v1/cottages/featured", "")
	if n := f.count("GET /public/cottages/featured"); n != 3 {
		t.Fatalf("want 3 upstream hits after clear, got %d", n)
	}

	if rr := do(t, h, http.MethodDelete, "/admin/cache", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("missing endpoint: want 400, got %d", rr.Code)
	}
}

func TestStatus_ReportsChecking(t *testing.T) {
	_, ts := newFakeAPI(t, nil)
	h := newBFF(t, ts.URL)
	rr := do(t, h, http.MethodGet, "/v1/status", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"checking"`) {
		t.Fatalf("body = %s", rr.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newFakeAPI(t, nil)
	h := newBFF(t, ts.URL)
	if rr := do(t, h, http.MethodGet, "/healthz", ""); rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rr.Code, rr.Body.String())
	}
}
