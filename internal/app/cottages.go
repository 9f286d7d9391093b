package app

import (
	"context"
	"net/http"

	"sosa_resort/internal/domain"
)

const (
	cottagesPath = "/public/cottages"
	msgCottages  = "Cottages retrieved successfully"
)

type CottageService struct{ base }

func (s *CottageService) List(ctx context.Context, f domain.CottageFilters) (domain.PaginatedResponse[domain.Cottage], error) {
	return list[domain.Cottage](ctx, s.base, cottagesPath, f, msgCottages)
}

// Page fetches one page with otherwise unchanged filters.
func (s *CottageService) Page(ctx context.Context, f domain.CottageFilters, page int) (domain.PaginatedResponse[domain.Cottage], error) {
	f.Page = page
	return s.List(ctx, f)
}

func (s *CottageService) Get(ctx context.Context, id int64) (domain.Cottage, error) {
	return item[domain.Cottage](ctx, s.base, idPath(cottagesPath, id))
}

func (s *CottageService) Featured(ctx context.Context) ([]domain.Cottage, error) {
	return items[domain.Cottage](ctx, s.base, cottagesPath+"/featured", nil)
}

func (s *CottageService) CheckAvailability(ctx context.Context, id int64, req domain.AvailabilityCheckRequest) (domain.Availability, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Availability{}, err
	}
	return send[domain.Availability](ctx, s.base, http.MethodPost, idPath(cottagesPath, id, "check-availability"), req)
}

func (s *CottageService) Search(ctx context.Context, term string, f domain.CottageFilters) (domain.PaginatedResponse[domain.Cottage], error) {
	f.Search = term
	return s.List(ctx, f)
}
