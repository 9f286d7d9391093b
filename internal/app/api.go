package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sosa_resort/internal/adapters/sosa"
	"sosa_resort/internal/domain"
)

// API is the slice of the HTTP client the services need.
type API interface {
	Get(ctx context.Context, path string, params url.Values) (sosa.Payload, error)
	Post(ctx context.Context, path string, body any) (sosa.Payload, error)
	Put(ctx context.Context, path string, body any) (sosa.Payload, error)
	Delete(ctx context.Context, path string) (sosa.Payload, error)
}

type base struct {
	api API
	now func() time.Time
}

// Services groups every resource service over one client.
type Services struct {
	Cottages           *CottageService
	Activities         *ActivityService
	Conferences        *ConferenceService
	Bookings           *BookingService
	ConferenceBookings *ConferenceBookingService
	Testimonials       *TestimonialService
	Gallery            *GalleryService
	Restaurant         *RestaurantService
}

func NewServices(api API) *Services {
	b := base{api: api, now: time.Now}
	return &Services{
		Cottages:           &CottageService{b},
		Activities:         &ActivityService{b},
		Conferences:        &ConferenceService{b},
		Bookings:           &BookingService{base: b, path: "/bookings"},
		ConferenceBookings: &ConferenceBookingService{base: b, path: "/conference-bookings"},
		Testimonials:       &TestimonialService{b},
		Gallery:            &GalleryService{b},
		Restaurant:         &RestaurantService{b},
	}
}

// ---- shared plumbing ----

func list[T any](ctx context.Context, b base, path string, filters any, message string) (domain.PaginatedResponse[T], error) {
	params, err := Params(filters)
	if err != nil {
		return domain.PaginatedResponse[T]{}, err
	}
	p, err := b.api.Get(ctx, path, params)
	if err != nil {
		return domain.PaginatedResponse[T]{}, err
	}
	return sosa.DecodeList[T](p, message, b.now())
}

// items is list without the envelope, for endpoints that return a plain collection.
func items[T any](ctx context.Context, b base, path string, params url.Values) ([]T, error) {
	p, err := b.api.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	out, err := sosa.DecodeList[T](p, "", b.now())
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func item[T any](ctx context.Context, b base, path string) (T, error) {
	p, err := b.api.Get(ctx, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return sosa.DecodeItem[T](p)
}

func send[T any](ctx context.Context, b base, method, path string, body any) (T, error) {
	var (
		p   sosa.Payload
		err error
	)
	switch method {
	case http.MethodPost:
		p, err = b.api.Post(ctx, path, body)
	case http.MethodPut:
		p, err = b.api.Put(ctx, path, body)
	default:
		err = domain.NewRequestError(fmt.Errorf("unsupported method %s", method))
	}
	var zero T
	if err != nil {
		return zero, err
	}
	return sosa.DecodeItem[T](p)
}

func idPath(prefix string, id int64, suffix ...string) string {
	p := prefix + "/" + strconv.FormatInt(id, 10)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// Params flattens a filter struct into query parameters using its json
// tags. Fields dropped by omitempty never reach the query string.
func Params(filters any) (url.Values, error) {
	if filters == nil {
		return nil, nil
	}
	b, err := json.Marshal(filters)
	if err != nil {
		return nil, domain.NewRequestError(fmt.Errorf("encode filters: %w", err))
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, domain.NewRequestError(fmt.Errorf("encode filters: %w", err))
	}
	q := url.Values{}
	for k, v := range m {
		switch t := v.(type) {
		case nil:
		case string:
			q.Set(k, t)
		case bool:
			q.Set(k, strconv.FormatBool(t))
		case float64:
			q.Set(k, strconv.FormatFloat(t, 'f', -1, 64))
		default:
			q.Set(k, fmt.Sprint(t))
		}
	}
	return q, nil
}
