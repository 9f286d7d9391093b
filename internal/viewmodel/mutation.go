package viewmodel

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"sosa_resort/internal/domain"
)

// Mutation tracks loading and error for one family of write operations.
type Mutation struct {
	mu       sync.Mutex
	loading  bool
	errMsg   string
	notifier Notifier
}

type MutationState struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

func (m *Mutation) State() MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MutationState{Loading: m.loading, Error: m.errMsg}
}

// Outcome holds the notices shown after a mutation.
type Outcome struct {
	Success string // shown under the "Success" title
	Failure string // used when the error carries no message
}

// Do runs fn under m. The error is recorded, shown and returned unchanged.
func Do[T any](ctx context.Context, m *Mutation, o Outcome, fn func(context.Context) (T, error)) (T, error) {
	m.mu.Lock()
	m.loading, m.errMsg = true, ""
	m.mu.Unlock()

	v, err := fn(ctx)

	m.mu.Lock()
	m.loading = false
	if err != nil {
		msg := domain.Message(err, o.Failure)
		m.errMsg = msg
		m.mu.Unlock()
		log.Error().Err(err).Msg(o.Failure)
		Deliver(m.notifier, errorNotice(msg))
		return v, err
	}
	m.mu.Unlock()
	Deliver(m.notifier, Notice{Kind: NoticeSuccess, Title: "Success", Message: o.Success})
	return v, nil
}

type BookingAPI interface {
	Create(ctx context.Context, req domain.CreateBookingRequest) (domain.Booking, error)
	Confirm(ctx context.Context, id int64) (domain.Booking, error)
	Cancel(ctx context.Context, id int64) (domain.Booking, error)
}

type BookingActions struct {
	Mutation
	svc BookingAPI
}

func NewBookingActions(svc BookingAPI, n Notifier) *BookingActions {
	return &BookingActions{Mutation: Mutation{notifier: n}, svc: svc}
}

func (a *BookingActions) Create(ctx context.Context, req domain.CreateBookingRequest) (domain.Booking, error) {
	return Do(ctx, &a.Mutation, Outcome{"Booking created successfully!", "Failed to create booking"},
		func(ctx context.Context) (domain.Booking, error) { return a.svc.Create(ctx, req) })
}

func (a *BookingActions) Confirm(ctx context.Context, id int64) (domain.Booking, error) {
	return Do(ctx, &a.Mutation, Outcome{"Booking confirmed successfully!", "Failed to confirm booking"},
		func(ctx context.Context) (domain.Booking, error) { return a.svc.Confirm(ctx, id) })
}

func (a *BookingActions) Cancel(ctx context.Context, id int64) (domain.Booking, error) {
	return Do(ctx, &a.Mutation, Outcome{"Booking cancelled successfully!", "Failed to cancel booking"},
		func(ctx context.Context) (domain.Booking, error) { return a.svc.Cancel(ctx, id) })
}

type ConferenceBookingAPI interface {
	Create(ctx context.Context, req domain.CreateConferenceBookingRequest) (domain.ConferenceBooking, error)
	Confirm(ctx context.Context, id int64) (domain.ConferenceBooking, error)
	Cancel(ctx context.Context, id int64) (domain.ConferenceBooking, error)
}

type ConferenceBookingActions struct {
	Mutation
	svc ConferenceBookingAPI
}

func NewConferenceBookingActions(svc ConferenceBookingAPI, n Notifier) *ConferenceBookingActions {
	return &ConferenceBookingActions{Mutation: Mutation{notifier: n}, svc: svc}
}

func (a *ConferenceBookingActions) Create(ctx context.Context, req domain.CreateConferenceBookingRequest) (domain.ConferenceBooking, error) {
	return Do(ctx, &a.Mutation, Outcome{"Conference booking created successfully!", "Failed to create conference booking"},
		func(ctx context.Context) (domain.ConferenceBooking, error) { return a.svc.Create(ctx, req) })
}

func (a *ConferenceBookingActions) Confirm(ctx context.Context, id int64) (domain.ConferenceBooking, error) {
	return Do(ctx, &a.Mutation, Outcome{"Conference booking confirmed successfully!", "Failed to confirm conference booking"},
		func(ctx context.Context) (domain.ConferenceBooking, error) { return a.svc.Confirm(ctx, id) })
}

func (a *ConferenceBookingActions) Cancel(ctx context.Context, id int64) (domain.ConferenceBooking, error) {
	return Do(ctx, &a.Mutation, Outcome{"Conference booking cancelled successfully!", "Failed to cancel conference booking"},
		func(ctx context.Context) (domain.ConferenceBooking, error) { return a.svc.Cancel(ctx, id) })
}

type TestimonialAPI interface {
	Submit(ctx context.Context, req domain.SubmitTestimonialRequest) (domain.Testimonial, error)
}

type TestimonialSubmitter struct {
	Mutation
	svc TestimonialAPI
}

func NewTestimonialSubmitter(svc TestimonialAPI, n Notifier) *TestimonialSubmitter {
	return &TestimonialSubmitter{Mutation: Mutation{notifier: n}, svc: svc}
}

func (s *TestimonialSubmitter) Submit(ctx context.Context, req domain.SubmitTestimonialRequest) (domain.Testimonial, error) {
	return Do(ctx, &s.Mutation, Outcome{"Thank you for your testimonial! It will be reviewed shortly.", "Failed to submit testimonial"},
		func(ctx context.Context) (domain.Testimonial, error) { return s.svc.Submit(ctx, req) })
}
