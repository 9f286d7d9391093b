package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"sosa_resort/internal/adapters/sosa"
	"sosa_resort/internal/app"
	"sosa_resort/internal/domain"
)

func cacheCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Manage the response cache"}
	cmd.AddCommand(cacheClearCmd(r))
	cmd.AddCommand(cacheWarmCmd(r))
	cmd.AddCommand(cachePurgeCmd(r))
	return cmd
}

// purger is implemented by stores that keep expired rows until swept.
type purger interface {
	Purge(ctx context.Context) (int64, error)
}

func cachePurgeCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete expired entries from the SQL cache store",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			if env.Cache == nil {
				return fmt.Errorf("response caching is off")
			}
			p, ok := env.Cache.(purger)
			if !ok {
				return fmt.Errorf("cache driver %T has no expired rows to purge", env.Cache)
			}
			n, err := p.Purge(cmd.Context())
			if err != nil {
				return fmt.Errorf("cache purge: %w", err)
			}
			log.Info().Int64("rows", n).Msg("cache purged")
			if r.json {
				return r.writeJSON(map[string]any{"op": "purge", "removed": n})
			}
			fmt.Fprintf(r.out, "Purged %d expired entries.\n", n)
			return nil
		},
	}
}

func cacheClearCmd(r *runner) *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached response, or one endpoint with --endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			var res sosa.CacheResult
			if endpoint != "" {
				res = env.Client.ForgetEndpoint(cmd.Context(), endpoint)
			} else {
				res = env.Client.ClearCache(cmd.Context())
			}
			if res.Err != nil {
				return fmt.Errorf("cache %s: %w", res.Op, res.Err)
			}
			if r.json {
				return r.writeJSON(map[string]any{"op": res.Op, "key": res.Key, "cleared": true})
			}
			if endpoint != "" {
				fmt.Fprintf(r.out, "Forgot %s.\n", res.Key)
				return nil
			}
			fmt.Fprintln(r.out, "Cache cleared.")
			return nil
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Only forget this endpoint, e.g. /public/cottages?per_page=1")
	return cmd
}

type warmTarget struct {
	name  string
	fetch func(ctx context.Context, s *app.Services) error
}

// warmTargets are the reads the public pages make on first paint.
var warmTargets = []warmTarget{
	{"cottages", func(ctx context.Context, s *app.Services) error {
		_, err := s.Cottages.List(ctx, domain.CottageFilters{})
		return err
	}},
	{"cottages/featured", func(ctx context.Context, s *app.Services) error {
		_, err := s.Cottages.Featured(ctx)
		return err
	}},
	{"activities", func(ctx context.Context, s *app.Services) error {
		_, err := s.Activities.List(ctx, domain.ActivityFilters{})
		return err
	}},
	{"conferences", func(ctx context.Context, s *app.Services) error {
		_, err := s.Conferences.List(ctx, domain.ConferenceFilters{})
		return err
	}},
	{"conferences/featured", func(ctx context.Context, s *app.Services) error {
		_, err := s.Conferences.Featured(ctx)
		return err
	}},
	{"testimonials", func(ctx context.Context, s *app.Services) error {
		_, err := s.Testimonials.List(ctx, domain.TestimonialFilters{})
		return err
	}},
	{"gallery", func(ctx context.Context, s *app.Services) error {
		_, err := s.Gallery.List(ctx, domain.GalleryFilters{})
		return err
	}},
	{"menu", func(ctx context.Context, s *app.Services) error {
		_, err := s.Restaurant.Menu(ctx, domain.MenuFilters{})
		return err
	}},
	{"menu/featured", func(ctx context.Context, s *app.Services) error {
		_, err := s.Restaurant.Featured(ctx)
		return err
	}},
}

type warmResult struct {
	Target   string `json:"target"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

func cacheWarmCmd(r *runner) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Prefetch the public listings into the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers <= 0 {
				workers = 1
			}
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			results := warm(cmd.Context(), env.Svc, workers)
			if r.json {
				return r.writeJSON(results)
			}
			failed := 0
			for _, res := range results {
				status := "ok"
				if !res.OK {
					status = "FAILED: " + res.Error
					failed++
				}
				fmt.Fprintf(r.out, "%-22s %s (%s)\n", res.Target, status, res.Duration)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d targets failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent requests")
	return cmd
}

func warm(ctx context.Context, svc *app.Services, workers int) []warmResult {
	sem := semaphore.NewWeighted(int64(workers))
	results := make([]warmResult, len(warmTargets))
	var wg sync.WaitGroup

	for i, t := range warmTargets {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = warmResult{Target: t.name, Error: err.Error()}
			continue
		}
		wg.Add(1)
		go func(i int, t warmTarget) {
			defer wg.Done()
			defer sem.Release(1)
			start := time.Now()
			err := t.fetch(ctx, svc)
			res := warmResult{Target: t.name, OK: err == nil, Duration: time.Since(start).Round(time.Millisecond).String()}
			if err != nil {
				res.Error = domain.Message(err, domain.MsgUnexpected)
				log.Warn().Err(err).Str("target", t.name).Msg("cache warm failed")
			}
			results[i] = res
		}(i, t)
	}
	wg.Wait()
	return results
}
