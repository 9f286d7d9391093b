package app

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sosa_resort/internal/domain"
)

const conferencesPath = "/public/conferences"

type ConferenceService struct{ base }

func (s *ConferenceService) List(ctx context.Context, f domain.ConferenceFilters) (domain.PaginatedResponse[domain.Conference], error) {
	return list[domain.Conference](ctx, s.base, conferencesPath, f, "Conferences retrieved successfully")
}

func (s *ConferenceService) Page(ctx context.Context, f domain.ConferenceFilters, page int) (domain.PaginatedResponse[domain.Conference], error) {
	f.Page = page
	return s.List(ctx, f)
}

func (s *ConferenceService) Get(ctx context.Context, id int64) (domain.Conference, error) {
	return item[domain.Conference](ctx, s.base, idPath(conferencesPath, id))
}

func (s *ConferenceService) Featured(ctx context.Context) ([]domain.Conference, error) {
	return items[domain.Conference](ctx, s.base, conferencesPath+"/featured", nil)
}

func (s *ConferenceService) CheckAvailability(ctx context.Context, id int64, req domain.ConferenceAvailabilityRequest) (domain.Availability, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Availability{}, err
	}
	return send[domain.Availability](ctx, s.base, http.MethodPost, idPath(conferencesPath, id, "check-availability"), req)
}

// ByCapacity lists facilities that seat at least attendees.
func (s *ConferenceService) ByCapacity(ctx context.Context, attendees int) ([]domain.Conference, error) {
	return items[domain.Conference](ctx, s.base, conferencesPath+"/capacity", url.Values{"attendees": {strconv.Itoa(attendees)}})
}

func (s *ConferenceService) CalculatePrice(ctx context.Context, id int64, req domain.CalculatePriceRequest) (domain.PriceQuote, error) {
	if err := domain.Validate(req); err != nil {
		return domain.PriceQuote{}, err
	}
	return send[domain.PriceQuote](ctx, s.base, http.MethodPost, idPath(conferencesPath, id, "calculate-price"), req)
}
