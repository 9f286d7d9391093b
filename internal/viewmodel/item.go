package viewmodel

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"sosa_resort/internal/domain"
)

type ItemSnapshot[T any] struct {
	Value    T      `json:"value"`
	Loaded   bool   `json:"loaded"`
	Loading  bool   `json:"loading"`
	NotFound bool   `json:"not_found"`
	Error    string `json:"error,omitempty"`
}

// Item holds one fetched value: a single entity or a small unpaginated
// collection such as the featured cottages.
type Item[T any] struct {
	mu       sync.Mutex
	fetch    func(ctx context.Context) (T, error)
	failMsg  string
	notifier Notifier

	val      T
	loaded   bool
	loading  bool
	notFound bool
	errMsg   string

	gen    uint64
	cancel context.CancelFunc
}

// NewItem builds an item; failMsg is used when the error carries no message.
func NewItem[T any](failMsg string, fetch func(ctx context.Context) (T, error), n Notifier) *Item[T] {
	return &Item[T]{fetch: fetch, failMsg: failMsg, notifier: n}
}

func (i *Item[T]) Load(ctx context.Context) error {
	i.mu.Lock()
	if i.cancel != nil {
		i.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	i.gen++
	gen := i.gen
	i.cancel = cancel
	i.loading, i.errMsg, i.notFound = true, "", false
	i.mu.Unlock()

	v, err := i.fetch(ctx)

	i.mu.Lock()
	defer cancel()
	if gen != i.gen {
		i.mu.Unlock()
		return nil
	}
	i.cancel = nil
	i.loading = false
	if err != nil {
		var zero T
		msg := domain.Message(err, i.failMsg)
		i.val, i.loaded, i.errMsg, i.notFound = zero, false, msg, domain.IsNotFound(err)
		i.mu.Unlock()
		log.Error().Err(err).Msg(i.failMsg)
		Deliver(i.notifier, errorNotice(msg))
		return err
	}
	i.val, i.loaded = v, true
	i.mu.Unlock()
	return nil
}

func (i *Item[T]) Snapshot() ItemSnapshot[T] {
	i.mu.Lock()
	defer i.mu.Unlock()
	return ItemSnapshot[T]{Value: i.val, Loaded: i.loaded, Loading: i.loading, NotFound: i.notFound, Error: i.errMsg}
}
