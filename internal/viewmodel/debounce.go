package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"sosa_resort/internal/domain"
)

const DefaultDebounce = 500 * time.Millisecond

// Debouncer runs the latest scheduled function once input has been quiet
// for the delay. Scheduling again drops the pending run and cancels the
// context of one already running.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	cancel context.CancelFunc
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger(ctx context.Context, fn func(context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() {
		defer cancel()
		fn(ctx)
	})
}

// Stop drops any pending run and cancels a running one.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// ---- availability ----

type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, id int64, req domain.AvailabilityCheckRequest) (domain.Availability, error)
}

type AvailabilityState struct {
	Checking  bool   `json:"checking"`
	Available *bool  `json:"available"` // nil until a check completes
	Message   string `json:"message,omitempty"`
}

const (
	msgUnavailable      = "This cottage is not available for the selected dates. Please choose different dates."
	msgAvailabilityFail = "Failed to check availability. Please try again."
)

// AvailabilityWatcher re-checks a cottage's availability whenever the
// selection changes, debounced.
type AvailabilityWatcher struct {
	mu       sync.Mutex
	svc      AvailabilityChecker
	deb      *Debouncer
	notifier Notifier
	state    AvailabilityState
	onChange func(AvailabilityState)
	seq      uint64 // bumped per scheduled check and on Stop
}

func NewAvailabilityWatcher(svc AvailabilityChecker, delay time.Duration, n Notifier) *AvailabilityWatcher {
	return &AvailabilityWatcher{svc: svc, deb: NewDebouncer(delay), notifier: n}
}

// OnChange registers fn to receive every completed check.
func (w *AvailabilityWatcher) OnChange(fn func(AvailabilityState)) {
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// Select records the current selection. Incomplete selections schedule nothing.
func (w *AvailabilityWatcher) Select(ctx context.Context, cottageID int64, checkIn, checkOut string) {
	if cottageID == 0 || checkIn == "" || checkOut == "" {
		w.Stop()
		return
	}
	req := domain.AvailabilityCheckRequest{CheckIn: checkIn, CheckOut: checkOut}
	w.mu.Lock()
	w.seq++
	run := w.seq
	w.mu.Unlock()
	w.deb.Trigger(ctx, func(ctx context.Context) { w.check(ctx, run, cottageID, req) })
}

func (w *AvailabilityWatcher) State() AvailabilityState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Stop drops pending and running checks and clears the in-progress flag.
func (w *AvailabilityWatcher) Stop() {
	w.deb.Stop()
	w.mu.Lock()
	w.seq++
	w.state.Checking = false
	w.mu.Unlock()
}

func (w *AvailabilityWatcher) check(ctx context.Context, run uint64, id int64, req domain.AvailabilityCheckRequest) {
	w.mu.Lock()
	if w.seq != run {
		w.mu.Unlock()
		return
	}
	w.state = AvailabilityState{Checking: true}
	w.mu.Unlock()

	res, err := w.svc.CheckAvailability(ctx, id, req)
	if ctx.Err() != nil {
		w.mu.Lock()
		if w.seq == run {
			w.state.Checking = false
		}
		w.mu.Unlock()
		return
	}
	if err != nil {
		log.Warn().Err(err).Int64("cottage_id", id).Msg("availability check failed")
		if w.set(run, AvailabilityState{Message: msgAvailabilityFail}) {
			Deliver(w.notifier, errorNotice(msgAvailabilityFail))
		}
		return
	}
	st := AvailabilityState{Available: &res.Available, Message: res.Message}
	if !res.Available && st.Message == "" {
		st.Message = msgUnavailable
	}
	if w.set(run, st) && !res.Available {
		Deliver(w.notifier, Notice{Kind: NoticeError, Title: "Not Available", Message: st.Message})
	}
}

// set publishes a finished check unless a newer one took over.
func (w *AvailabilityWatcher) set(run uint64, st AvailabilityState) bool {
	w.mu.Lock()
	if w.seq != run {
		w.mu.Unlock()
		return false
	}
	w.state = st
	fn := w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn(st)
	}
	return true
}

// ---- conference price ----

type PriceCalculator interface {
	CalculatePrice(ctx context.Context, id int64, req domain.CalculatePriceRequest) (domain.PriceQuote, error)
}

type PriceSelection struct {
	ConferenceID int64
	BookingDate  string
	BookingType  domain.BookingType
	StartTime    string // HH:MM, required for hourly
	EndTime      string
}

type PriceState struct {
	Calculating bool     `json:"calculating"`
	Price       *float64 `json:"price"`
}

// PriceQuoter recomputes a conference quote whenever the selection changes, debounced.
type PriceQuoter struct {
	mu       sync.Mutex
	svc      PriceCalculator
	deb      *Debouncer
	state    PriceState
	onChange func(PriceState)
	seq      uint64
}

func NewPriceQuoter(svc PriceCalculator, delay time.Duration) *PriceQuoter {
	return &PriceQuoter{svc: svc, deb: NewDebouncer(delay)}
}

func (q *PriceQuoter) OnChange(fn func(PriceState)) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

func (q *PriceQuoter) Select(ctx context.Context, s PriceSelection) {
	if s.ConferenceID == 0 || s.BookingDate == "" || s.BookingType == "" {
		q.Stop()
		return
	}
	req := domain.CalculatePriceRequest{BookingType: s.BookingType}
	if s.BookingType == domain.BookingHourly {
		if s.StartTime == "" || s.EndTime == "" {
			q.Stop()
			return
		}
		h, err := domain.DurationHours(s.StartTime, s.EndTime)
		if err != nil {
			log.Warn().Err(err).Msg("invalid conference times")
			q.Stop()
			return
		}
		req.DurationHours = &h
	}
	q.mu.Lock()
	q.seq++
	run := q.seq
	q.mu.Unlock()
	q.deb.Trigger(ctx, func(ctx context.Context) { q.quote(ctx, run, s.ConferenceID, req) })
}

func (q *PriceQuoter) State() PriceState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Stop drops pending and running quotes and clears the in-progress flag.
func (q *PriceQuoter) Stop() {
	q.deb.Stop()
	q.mu.Lock()
	q.seq++
	q.state.Calculating = false
	q.mu.Unlock()
}

func (q *PriceQuoter) quote(ctx context.Context, run uint64, id int64, req domain.CalculatePriceRequest) {
	q.mu.Lock()
	if q.seq != run {
		q.mu.Unlock()
		return
	}
	q.state.Calculating = true
	q.mu.Unlock()

	res, err := q.svc.CalculatePrice(ctx, id, req)
	if ctx.Err() != nil {
		q.mu.Lock()
		if q.seq == run {
			q.state.Calculating = false
		}
		q.mu.Unlock()
		return
	}
	st := PriceState{}
	if err != nil {
		log.Error().Err(err).Int64("conference_id", id).Msg("failed to calculate price")
	} else if total, ok := res.Total(); ok {
		st.Price = &total
	}

	q.mu.Lock()
	if q.seq != run {
		q.mu.Unlock()
		return
	}
	q.state = st
	fn := q.onChange
	q.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
