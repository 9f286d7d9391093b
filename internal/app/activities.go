package app

import (
	"context"
	"net/url"

	"sosa_resort/internal/domain"
)

const activitiesPath = "/public/activities"

type ActivityService struct{ base }

func (s *ActivityService) List(ctx context.Context, f domain.ActivityFilters) (domain.PaginatedResponse[domain.Activity], error) {
	return list[domain.Activity](ctx, s.base, activitiesPath, f, "Activities retrieved successfully")
}

func (s *ActivityService) Page(ctx context.Context, f domain.ActivityFilters, page int) (domain.PaginatedResponse[domain.Activity], error) {
	f.Page = page
	return s.List(ctx, f)
}

func (s *ActivityService) Get(ctx context.Context, id int64) (domain.Activity, error) {
	return item[domain.Activity](ctx, s.base, idPath(activitiesPath, id))
}

// AvailableOn lists activities bookable on date (YYYY-MM-DD).
func (s *ActivityService) AvailableOn(ctx context.Context, date string) ([]domain.Activity, error) {
	return items[domain.Activity](ctx, s.base, activitiesPath+"/available/"+url.PathEscape(date), nil)
}

func (s *ActivityService) ByDifficulty(ctx context.Context, d domain.Difficulty) (domain.PaginatedResponse[domain.Activity], error) {
	return s.List(ctx, domain.ActivityFilters{Difficulty: d})
}
