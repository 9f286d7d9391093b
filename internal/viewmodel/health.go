package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"sosa_resort/internal/adapters/observability"
)

type Status string

const (
	StatusChecking Status = "checking"
	StatusOnline   Status = "online"
	StatusOffline  Status = "offline"
)

const (
	DefaultHealthInterval = 30 * time.Second

	healthPath   = "/health"
	fallbackPath = "/public/cottages?per_page=1"
)

// Prober issues uncached requests.
type Prober interface {
	Probe(ctx context.Context, path string) error
}

type Banner struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type HealthSnapshot struct {
	Status    Status    `json:"status"`
	Label     string    `json:"label"`
	CheckedAt time.Time `json:"checked_at,omitempty"`
	Banner    *Banner   `json:"banner,omitempty"`
}

// Health tracks whether the API is reachable.
type Health struct {
	mu        sync.Mutex
	p         Prober
	interval  time.Duration
	status    Status
	checkedAt time.Time
}

func NewHealth(p Prober, interval time.Duration) *Health {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &Health{p: p, interval: interval, status: StatusChecking}
}

// Check probes the health endpoint, falling back to a minimal public list.
func (h *Health) Check(ctx context.Context) Status {
	err := h.p.Probe(ctx, healthPath)
	if err != nil {
		err = h.p.Probe(ctx, fallbackPath)
	}
	st := StatusOnline
	if err != nil {
		st = StatusOffline
		log.Warn().Err(err).Msg("api is offline")
	}
	h.mu.Lock()
	h.status, h.checkedAt = st, time.Now()
	h.mu.Unlock()
	observability.SetOnline(st == StatusOnline)
	return st
}

// Run checks once, then re-checks every interval while offline, until ctx is done.
func (h *Health) Run(ctx context.Context) {
	h.Check(ctx)
	t := time.NewTicker(h.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if h.Status() == StatusOffline {
				h.Check(ctx)
			}
		}
	}
}

func (h *Health) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

var offlineBanner = Banner{
	Title:   "API Connection Issue",
	Message: "Unable to connect to the server. Some features may not work properly. We're attempting to reconnect...",
}

// Banner is shown only while the API is offline.
func (h *Health) Banner() (Banner, bool) {
	if h.Status() != StatusOffline {
		return Banner{}, false
	}
	return offlineBanner, true
}

func (h *Health) Snapshot() HealthSnapshot {
	h.mu.Lock()
	s := HealthSnapshot{Status: h.status, CheckedAt: h.checkedAt}
	h.mu.Unlock()
	s.Label = Label(s.Status)
	if s.Status == StatusOffline {
		b := offlineBanner
		s.Banner = &b
	}
	return s
}

// Label is the short indicator text for s.
func Label(s Status) string {
	switch s {
	case StatusOnline:
		return "Connected"
	case StatusOffline:
		return "Disconnected"
	default:
		return "Checking..."
	}
}
