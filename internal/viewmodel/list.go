package viewmodel

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"sosa_resort/internal/domain"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// PageFetcher loads one page of a filtered collection.
type PageFetcher[T, F any] func(ctx context.Context, filters F, page int) (domain.PaginatedResponse[T], error)

type ListSnapshot[T any] struct {
	State      State              `json:"-"`
	Items      []T                `json:"items"`
	Pagination *domain.Pagination `json:"pagination"`
	Loading    bool               `json:"loading"`
	Error      string             `json:"error,omitempty"`
}

// List holds one paginated collection and the filters that produced it.
// Every load supersedes the previous one: its context is canceled and its
// result, if it still arrives, is discarded.
type List[T, F any] struct {
	mu       sync.Mutex
	fetch    PageFetcher[T, F]
	label    string
	notifier Notifier

	filters F
	sig     string
	loaded  bool

	state  State
	items  []T
	pag    *domain.Pagination
	errMsg string

	gen    uint64
	cancel context.CancelFunc
}

// NewList builds a list; label names the collection in the default error,
// e.g. "cottages" gives "Failed to fetch cottages".
func NewList[T, F any](label string, fetch PageFetcher[T, F], n Notifier) *List[T, F] {
	return &List[T, F]{fetch: fetch, label: label, notifier: n, items: []T{}}
}

// SetFilters loads page 1 when f differs from the current filters, or when
// nothing has been loaded yet.
func (l *List[T, F]) SetFilters(ctx context.Context, f F) error {
	sig := signature(f)
	l.mu.Lock()
	if l.loaded && sig == l.sig {
		l.mu.Unlock()
		return nil
	}
	l.filters, l.sig = f, sig
	l.mu.Unlock()
	return l.load(ctx, false)
}

// Refresh reloads page 1 with the current filters.
func (l *List[T, F]) Refresh(ctx context.Context) error { return l.load(ctx, false) }

// LoadMore appends the next page. It is a no-op on the last page or while a
// load is in flight.
func (l *List[T, F]) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	ok := l.pag != nil && l.pag.HasNext() && l.state != StateLoading
	l.mu.Unlock()
	if !ok {
		return nil
	}
	return l.load(ctx, true)
}

func (l *List[T, F]) Snapshot() ListSnapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := ListSnapshot[T]{
		State:   l.state,
		Items:   append([]T(nil), l.items...),
		Loading: l.state == StateLoading,
		Error:   l.errMsg,
	}
	if s.Items == nil {
		s.Items = []T{}
	}
	if l.pag != nil {
		p := *l.pag
		s.Pagination = &p
	}
	return s
}

func (l *List[T, F]) load(ctx context.Context, appendPage bool) error {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.gen++
	gen := l.gen
	l.cancel = cancel
	filters := l.filters
	page := 1
	if appendPage {
		page = l.pag.CurrentPage + 1
	}
	l.state = StateLoading
	l.errMsg = ""
	l.loaded = true
	l.mu.Unlock()

	res, err := l.fetch(ctx, filters, page)

	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		cancel()
		return nil // superseded
	}
	l.cancel = nil
	cancel()
	if err != nil && domain.IsCanceled(err) {
		// the caller went away; not a failure worth showing
		l.state = StateIdle
		if l.pag != nil {
			l.state = StateSuccess
		}
		l.mu.Unlock()
		return err
	}
	if err != nil {
		msg := domain.Message(err, "Failed to fetch "+l.label)
		l.state, l.errMsg = StateError, msg
		if !appendPage {
			l.items = []T{}
		}
		l.mu.Unlock()
		log.Error().Err(err).Str("list", l.label).Int("page", page).Msg("fetch failed")
		Deliver(l.notifier, errorNotice(msg))
		return err
	}
	if appendPage {
		l.items = append(l.items, res.Data...)
	} else {
		l.items = append([]T{}, res.Data...)
	}
	p := res.Pagination
	l.pag = &p
	l.state = StateSuccess
	l.mu.Unlock()
	return nil
}

// signature is the structural identity of a filter value.
func signature(f any) string {
	b, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	return string(b)
}
