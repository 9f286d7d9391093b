// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"sosa_resort/internal/adapters/sosa"
	"sosa_resort/internal/app"
	"sosa_resort/internal/domain"
	"sosa_resort/internal/viewmodel"
)

// CacheAdmin is the manual side of the response cache.
type CacheAdmin interface {
	ClearCache(ctx context.Context) sosa.CacheResult
	ForgetEndpoint(ctx context.Context, endpoint string) sosa.CacheResult
}

type Handlers struct {
	Svc    *app.Services
	Cache  CacheAdmin
	Health *viewmodel.Health
}

type problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail,omitempty"`
	Code   string              `json:"error_code,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/overview", h.overview)
		r.Get("/status", h.status)

		r.Route("/cottages", func(r chi.Router) {
			r.Get("/", h.listCottages)
			r.Get("/featured", h.featuredCottages)
			r.Get("/{id}", h.getCottage)
			r.Post("/{id}/availability", h.cottageAvailability)
		})
		r.Route("/activities", func(r chi.Router) {
			r.Get("/", h.listActivities)
			r.Get("/available/{date}", h.availableActivities)
			r.Get("/{id}", h.getActivity)
		})
		r.Route("/conferences", func(r chi.Router) {
			r.Get("/", h.listConferences)
			r.Get("/featured", h.featuredConferences)
			r.Get("/capacity", h.conferencesByCapacity)
			r.Get("/{id}", h.getConference)
			r.Post("/{id}/availability", h.conferenceAvailability)
			r.Post("/{id}/price", h.conferencePrice)
		})
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", h.createBooking)
			r.Get("/{id}", h.getBooking)
			r.Put("/{id}", h.updateBooking)
			r.Post("/{id}/confirm", h.confirmBooking)
			r.Post("/{id}/cancel", h.cancelBooking)
			r.Delete("/{id}", h.deleteBooking)
		})
		r.Route("/conference-bookings", func(r chi.Router) {
			r.Post("/", h.createConferenceBooking)
			r.Get("/{id}", h.getConferenceBooking)
			r.Put("/{id}", h.updateConferenceBooking)
			r.Post("/{id}/confirm", h.confirmConferenceBooking)
			r.Post("/{id}/cancel", h.cancelConferenceBooking)
			r.Delete("/{id}", h.deleteConferenceBooking)
		})
		r.Get("/testimonials", h.listTestimonials)
		r.Get("/testimonials/featured", h.featuredTestimonials)
		r.Post("/testimonials", h.submitTestimonial)
		r.Get("/gallery", h.listGallery)
		r.Get("/menu", h.listMenu)
		r.Get("/menu/featured", h.featuredMenu)
	})

	s.mux.Post("/admin/cache/clear", h.clearCache)
	s.mux.Delete("/admin/cache", h.forgetEndpoint)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the client's error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsCanceled(err) && r.Context().Err() != nil {
		return // client went away
	}
	ae, ok := domain.AsAPIError(err)
	if !ok {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unclassified error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", domain.MsgUnexpected)
		return
	}
	p := problem{Type: "about:blank", Detail: ae.Message, Code: ae.ErrorCode, Errors: ae.Errors}
	switch ae.Kind {
	case domain.KindNetwork, domain.KindRequest:
		p.Status = http.StatusBadGateway
	case domain.KindNotFound:
		p.Status = http.StatusNotFound
	default:
		p.Status = ae.Status
	}
	if p.Status < 400 || p.Status > 599 {
		p.Status = http.StatusInternalServerError
	}
	p.Title = http.StatusText(p.Status)
	writeProblemBody(w, p)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers GETs with an ETag and honors If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", domain.MsgUnexpected)
		return
	}
	if r.Method == http.MethodGet && etag != "" {
		// If client already has this version, short-circuit.
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func respond[T any](w http.ResponseWriter, r *http.Request, v T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

func query[F any](w http.ResponseWriter, r *http.Request) (F, bool) {
	var f F
	if err := bindQuery(r.URL.Query(), &f); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return f, false
	}
	return f, true
}

// ---- home / status ----

func (h *Handlers) overview(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.Overview(r.Context())
	respond(w, r, v, err)
}

func (h *Handlers) status(w http.ResponseWriter, r *http.Request) {
	if h.Health == nil {
		writeProblem(w, http.StatusNotImplemented, "Not Implemented", "health monitor disabled")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, r, http.StatusOK, h.Health.Snapshot())
}

// ---- cottages ----

func (h *Handlers) listCottages(w http.ResponseWriter, r *http.Request) {
	f, ok := query[domain.CottageFilters](w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Cottages.List(r.Context(), f)
	respond(w, r, v, err)
}

func (h *Handlers) featuredCottages(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.Cottages.Featured(r.Context())
	respond(w, r, v, err)
}

func (h *Handlers) getCottage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Cottages.Get(r.Context(), id)
	respond(w, r, v, err)
}

func (h *Handlers) cottageAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req domain.AvailabilityCheckRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.Svc.Cottages.CheckAvailability(r.Context(), id, req)
	respond(w, r, v, err)
}

// ---- activities ----

func (h *Handlers) listActivities(w http.ResponseWriter, r *http.Request) {
	f, ok := query[domain.ActivityFilters](w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Activities.List(r.Context(), f)
	respond(w, r, v, err)
}

func (h *Handlers) availableActivities(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.Activities.AvailableOn(r.Context(), chi.URLParam(r, "date"))
	respond(w, r, v, err)
}

func (h *Handlers) getActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Activities.Get(r.Context(), id)
	respond(w, r, v, err)
}

// ---- conferences ----

func (h *Handlers) listConferences(w http.ResponseWriter, r *http.Request) {
	f, ok := query[domain.ConferenceFilters](w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Conferences.List(r.Context(), f)
	respond(w, r, v, err)
}

func (h *Handlers) featuredConferences(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.Conferences.Featured(r.Context())
	respond(w, r, v, err)
}

func (h *Handlers) conferencesByCapacity(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("attendees"))
	if err != nil || n <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid attendees", "attendees must be a positive integer")
		return
	}
	v, err := h.Svc.Conferences.ByCapacity(r.Context(), n)
	respond(w, r, v, err)
}

func (h *Handlers) getConference(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Conferences.Get(r.Context(), id)
	respond(w, r, v, err)
}

func (h *Handlers) conferenceAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req domain.ConferenceAvailabilityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.Svc.Conferences.CheckAvailability(r.Context(), id, req)
	respond(w, r, v, err)
}

func (h *Handlers) conferencePrice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req domain.CalculatePriceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.Svc.Conferences.CalculatePrice(r.Context(), id, req)
	respond(w, r, v, err)
}

// ---- bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.Svc.Bookings.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, v)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Bookings.Get(r.Context(), id)
	respond(w, r, v, err)
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.Svc.Bookings.Update(r.Context(), id, req)
	respond(w, r, v, err)
}

func (h *Handlers) confirmBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Bookings.Confirm(r.Context(), id)
	respond(w, r, v, err)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Bookings.Cancel(r.Context(), id)
	respond(w, r, v, err)
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Bookings.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- conference bookings ----

func (h *Handlers) createConferenceBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateConferenceBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.Svc.ConferenceBookings.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, v)
}

func (h *Handlers) getConferenceBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Svc.ConferenceBookings.Get(r.Context(), id)
	respond(w, r, v, err)
}

func (h *Handlers) updateConferenceBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateConferenceBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.Svc.ConferenceBookings.Update(r.Context(), id, req)
	respond(w, r, v, err)
}

func (h *Handlers) confirmConferenceBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Svc.ConferenceBookings.Confirm(r.Context(), id)
	respond(w, r, v, err)
}

func (h *Handlers) cancelConferenceBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Svc.ConferenceBookings.Cancel(r.Context(), id)
	respond(w, r, v, err)
}

func (h *Handlers) deleteConferenceBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.ConferenceBookings.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- content ----

func (h *Handlers) listTestimonials(w http.ResponseWriter, r *http.Request) {
	f, ok := query[domain.TestimonialFilters](w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Testimonials.List(r.Context(), f)
	respond(w, r, v, err)
}

func (h *Handlers) featuredTestimonials(w http.ResponseWriter, r *http.Request) {
	limit := 3
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l < 0 || l > 50 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 0 and 50")
			return
		}
		limit = l
	}
	v, err := h.Svc.Testimonials.Featured(r.Context(), limit)
	respond(w, r, v, err)
}

func (h *Handlers) submitTestimonial(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitTestimonialRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.Svc.Testimonials.Submit(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, v)
}

func (h *Handlers) listGallery(w http.ResponseWriter, r *http.Request) {
	f, ok := query[domain.GalleryFilters](w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Gallery.List(r.Context(), f)
	respond(w, r, v, err)
}

func (h *Handlers) listMenu(w http.ResponseWriter, r *http.Request) {
	f, ok := query[domain.MenuFilters](w, r)
	if !ok {
		return
	}
	v, err := h.Svc.Restaurant.Menu(r.Context(), f)
	respond(w, r, v, err)
}

func (h *Handlers) featuredMenu(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.Restaurant.Featured(r.Context())
	respond(w, r, v, err)
}

// ---- cache admin ----

type cacheResult struct {
	Op      string `json:"op"`
	Key     string `json:"key,omitempty"`
	Cleared bool   `json:"cleared"`
	Error   string `json:"error,omitempty"`
}

func toCacheResult(res sosa.CacheResult) cacheResult {
	out := cacheResult{Op: res.Op, Key: res.Key, Cleared: res.OK()}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

func (h *Handlers) clearCache(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, toCacheResult(h.Cache.ClearCache(r.Context())))
}

func (h *Handlers) forgetEndpoint(w http.ResponseWriter, r *http.Request) {
	ep := r.URL.Query().Get("endpoint")
	if ep == "" {
		writeProblem(w, http.StatusBadRequest, "Missing endpoint", "endpoint query parameter is required")
		return
	}
	writeJSON(w, r, http.StatusOK, toCacheResult(h.Cache.ForgetEndpoint(r.Context(), ep)))
}
