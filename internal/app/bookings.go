package app

import (
	"context"
	"net/http"

	"sosa_resort/internal/domain"
)

type BookingService struct {
	base
	path string
}

func (s *BookingService) Create(ctx context.Context, req domain.CreateBookingRequest) (domain.Booking, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Booking{}, err
	}
	return send[domain.Booking](ctx, s.base, http.MethodPost, s.path, req)
}

func (s *BookingService) Get(ctx context.Context, id int64) (domain.Booking, error) {
	return item[domain.Booking](ctx, s.base, idPath(s.path, id))
}

func (s *BookingService) Update(ctx context.Context, id int64, req domain.UpdateBookingRequest) (domain.Booking, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Booking{}, err
	}
	return send[domain.Booking](ctx, s.base, http.MethodPut, idPath(s.path, id), req)
}

func (s *BookingService) Confirm(ctx context.Context, id int64) (domain.Booking, error) {
	return send[domain.Booking](ctx, s.base, http.MethodPost, idPath(s.path, id, "confirm"), nil)
}

func (s *BookingService) Cancel(ctx context.Context, id int64) (domain.Booking, error) {
	return send[domain.Booking](ctx, s.base, http.MethodPost, idPath(s.path, id, "cancel"), nil)
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	_, err := s.api.Delete(ctx, idPath(s.path, id))
	return err
}

type ConferenceBookingService struct {
	base
	path string
}

func (s *ConferenceBookingService) Create(ctx context.Context, req domain.CreateConferenceBookingRequest) (domain.ConferenceBooking, error) {
	if err := domain.Validate(req); err != nil {
		return domain.ConferenceBooking{}, err
	}
	return send[domain.ConferenceBooking](ctx, s.base, http.MethodPost, s.path, req)
}

func (s *ConferenceBookingService) Get(ctx context.Context, id int64) (domain.ConferenceBooking, error) {
	return item[domain.ConferenceBooking](ctx, s.base, idPath(s.path, id))
}

func (s *ConferenceBookingService) Update(ctx context.Context, id int64, req domain.UpdateConferenceBookingRequest) (domain.ConferenceBooking, error) {
	if err := domain.Validate(req); err != nil {
		return domain.ConferenceBooking{}, err
	}
	return send[domain.ConferenceBooking](ctx, s.base, http.MethodPut, idPath(s.path, id), req)
}

func (s *ConferenceBookingService) Confirm(ctx context.Context, id int64) (domain.ConferenceBooking, error) {
	return send[domain.ConferenceBooking](ctx, s.base, http.MethodPost, idPath(s.path, id, "confirm"), nil)
}

func (s *ConferenceBookingService) Cancel(ctx context.Context, id int64) (domain.ConferenceBooking, error) {
	return send[domain.ConferenceBooking](ctx, s.base, http.MethodPost, idPath(s.path, id, "cancel"), nil)
}

func (s *ConferenceBookingService) Delete(ctx context.Context, id int64) error {
	_, err := s.api.Delete(ctx, idPath(s.path, id))
	return err
}
