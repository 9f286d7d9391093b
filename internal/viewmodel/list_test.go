package viewmodel_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sosa_resort/internal/domain"
	"sosa_resort/internal/viewmodel"
)

type filters struct {
	Category string `json:"category,omitempty"`
}

type recorder struct {
	mu      sync.Mutex
	notices []viewmodel.Notice
}

func (r *recorder) Notify(n viewmodel.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return nil
}

func (r *recorder) all() []viewmodel.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]viewmodel.Notice(nil), r.notices...)
}

func page(n, current, last int) domain.PaginatedResponse[int] {
	data := make([]int, n)
	for i := range data {
		data[i] = (current-1)*n + i + 1
	}
	return domain.PaginatedResponse[int]{
		Success:    true,
		Data:       data,
		Pagination: domain.Pagination{CurrentPage: current, LastPage: last, PerPage: n, Total: n * last},
	}
}

func TestList_LoadMoreOnLastPageIsNoop(t *testing.T) {
	var calls int32
	l := viewmodel.NewList("cottages", func(ctx context.Context, f filters, p int) (domain.PaginatedResponse[int], error) {
		atomic.AddInt32(&calls, 1)
		return page(3, 1, 1), nil
	}, nil)
	ctx := context.Background()

	if err := l.SetFilters(ctx, filters{}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := l.LoadMore(ctx); err != nil {
		t.Fatalf("load more: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected no request for load more on last page, got %d calls", got)
	}
	if s := l.Snapshot(); len(s.Items) != 3 || s.State != viewmodel.StateSuccess {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
}

func TestList_LoadMoreAppendsNextPage(t *testing.T) {
	var pages []int
	l := viewmodel.NewList("gallery", func(ctx context.Context, f filters, p int) (domain.PaginatedResponse[int], error) {
		pages = append(pages, p)
		return page(2, p, 3), nil
	}, nil)
	ctx := context.Background()

	_ = l.SetFilters(ctx, filters{})
	_ = l.LoadMore(ctx)
	_ = l.LoadMore(ctx)
	_ = l.LoadMore(ctx) // last page reached

	s := l.Snapshot()
	if len(pages) != 3 || pages[1] != 2 || pages[2] != 3 {
		t.Fatalf("unexpected page requests: %v", pages)
	}
	if len(s.Items) != 6 || s.Items[5] != 6 || s.Pagination.CurrentPage != 3 {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
}

func TestList_SetFiltersReloadsOnlyOnChange(t *testing.T) {
	var seen []filters
	l := viewmodel.NewList("menu items", func(ctx context.Context, f filters, p int) (domain.PaginatedResponse[int], error) {
		seen = append(seen, f)
		return page(1, 1, 1), nil
	}, nil)
	ctx := context.Background()

	_ = l.SetFilters(ctx, filters{Category: "mains"})
	_ = l.SetFilters(ctx, filters{Category: "mains"})
	_ = l.SetFilters(ctx, filters{Category: "drinks"})
	_ = l.Refresh(ctx)

	if len(seen) != 3 || seen[1].Category != "drinks" || seen[2].Category != "drinks" {
		t.Fatalf("unexpected fetches: %+v", seen)
	}
}

func TestList_FailureResetsAndNotifies(t *testing.T) {
	fail := false
	rec := &recorder{}
	l := viewmodel.NewList("cottages", func(ctx context.Context, f filters, p int) (domain.PaginatedResponse[int], error) {
		if fail {
			return domain.PaginatedResponse[int]{}, errors.New("boom")
		}
		return page(2, 1, 1), nil
	}, rec)
	ctx := context.Background()

	_ = l.Refresh(ctx)
	fail = true
	if err := l.Refresh(ctx); err == nil {
		t.Fatalf("expected error")
	}

	s := l.Snapshot()
	if s.State != viewmodel.StateError || len(s.Items) != 0 || s.Error != "Failed to fetch cottages" {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
	n := rec.all()
	if len(n) != 1 || n[0].Kind != viewmodel.NoticeError || n[0].Message != "Failed to fetch cottages" {
		t.Fatalf("unexpected notices: %+v", n)
	}
}

func TestList_APIErrorMessageWins(t *testing.T) {
	l := viewmodel.NewList("cottages", func(ctx context.Context, f filters, p int) (domain.PaginatedResponse[int], error) {
		return domain.PaginatedResponse[int]{}, domain.NewNetworkError(errors.New("dial tcp: refused"))
	}, nil)

	_ = l.Refresh(context.Background())
	if s := l.Snapshot(); s.Error != domain.MsgNoResponse {
		t.Fatalf("unexpected error text: %q", s.Error)
	}
}

func TestList_SupersededResultIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	l := viewmodel.NewList("activities", func(ctx context.Context, f filters, p int) (domain.PaginatedResponse[int], error) {
		if f.Category == "slow" {
			close(started)
			<-ctx.Done()
			return page(9, 1, 1), nil // late and stale
		}
		return page(2, 1, 1), nil
	}, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- l.SetFilters(ctx, filters{Category: "slow"}) }()
	<-started
	if err := l.SetFilters(ctx, filters{Category: "fast"}); err != nil {
		t.Fatalf("fast load: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("superseded load was not canceled")
	}
	if s := l.Snapshot(); len(s.Items) != 2 || s.State != viewmodel.StateSuccess {
		t.Fatalf("stale result leaked: %+v", s)
	}
}
