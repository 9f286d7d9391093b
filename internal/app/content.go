package app

import (
	"context"
	"net/http"

	"sosa_resort/internal/domain"
)

type TestimonialService struct{ base }

func (s *TestimonialService) List(ctx context.Context, f domain.TestimonialFilters) (domain.PaginatedResponse[domain.Testimonial], error) {
	return list[domain.Testimonial](ctx, s.base, "/public/testimonials", f, "Testimonials retrieved successfully")
}

func (s *TestimonialService) Page(ctx context.Context, f domain.TestimonialFilters, page int) (domain.PaginatedResponse[domain.Testimonial], error) {
	f.Page = page
	return s.List(ctx, f)
}

// Featured keeps approved, featured testimonials from the first page, at most limit (0 = all).
func (s *TestimonialService) Featured(ctx context.Context, limit int) ([]domain.Testimonial, error) {
	all, err := s.List(ctx, domain.TestimonialFilters{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Testimonial, 0, len(all.Data))
	for _, t := range all.Data {
		if t.IsApproved && t.IsFeatured {
			out = append(out, t)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *TestimonialService) Submit(ctx context.Context, req domain.SubmitTestimonialRequest) (domain.Testimonial, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Testimonial{}, err
	}
	return send[domain.Testimonial](ctx, s.base, http.MethodPost, "/testimonials/submit", req)
}

type GalleryService struct{ base }

func (s *GalleryService) List(ctx context.Context, f domain.GalleryFilters) (domain.PaginatedResponse[domain.GalleryItem], error) {
	return list[domain.GalleryItem](ctx, s.base, "/public/galleries", f, "Galleries retrieved successfully")
}

func (s *GalleryService) Page(ctx context.Context, f domain.GalleryFilters, page int) (domain.PaginatedResponse[domain.GalleryItem], error) {
	f.Page = page
	return s.List(ctx, f)
}

func (s *GalleryService) ByCategory(ctx context.Context, category string) (domain.PaginatedResponse[domain.GalleryItem], error) {
	return s.List(ctx, domain.GalleryFilters{Category: category, IsActive: ptr(true)})
}

type RestaurantService struct{ base }

func (s *RestaurantService) Menu(ctx context.Context, f domain.MenuFilters) (domain.PaginatedResponse[domain.MenuItem], error) {
	return list[domain.MenuItem](ctx, s.base, "/public/restaurant-menu", f, "Menu items retrieved successfully")
}

func (s *RestaurantService) Page(ctx context.Context, f domain.MenuFilters, page int) (domain.PaginatedResponse[domain.MenuItem], error) {
	f.Page = page
	return s.Menu(ctx, f)
}

func (s *RestaurantService) ByCategory(ctx context.Context, category string) (domain.PaginatedResponse[domain.MenuItem], error) {
	return s.Menu(ctx, domain.MenuFilters{Category: category, IsAvailable: ptr(true)})
}

func (s *RestaurantService) Featured(ctx context.Context) ([]domain.MenuItem, error) {
	res, err := s.Menu(ctx, domain.MenuFilters{IsFeatured: ptr(true), IsAvailable: ptr(true)})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func ptr[T any](v T) *T { return &v }
