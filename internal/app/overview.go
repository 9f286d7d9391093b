package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"sosa_resort/internal/domain"
)

// Overview is what the home page shows.
type Overview struct {
	Cottages     []domain.Cottage     `json:"featured_cottages"`
	Conferences  []domain.Conference  `json:"featured_conferences"`
	Testimonials []domain.Testimonial `json:"featured_testimonials"`
}

const overviewTestimonials = 3

// Overview fetches the home page sections concurrently. The first failure
// cancels the rest.
func (s *Services) Overview(ctx context.Context) (Overview, error) {
	var out Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.Cottages.Featured(ctx)
		out.Cottages = v
		return err
	})
	g.Go(func() error {
		v, err := s.Conferences.Featured(ctx)
		out.Conferences = v
		return err
	})
	g.Go(func() error {
		v, err := s.Testimonials.Featured(ctx, overviewTestimonials)
		out.Testimonials = v
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}
