package sosa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"sosa_resort/internal/domain"
)

// Shape is how a list endpoint laid out its items on the wire.
type Shape int

const (
	ShapeUnknown   Shape = iota
	ShapeBareArray       // [...]
	ShapeWrapped         // {"data": [...]} without pagination
	ShapePaginated       // items plus a pagination block or Laravel paginator fields
	ShapeEmpty           // null or empty body
)

func (s Shape) String() string {
	switch s {
	case ShapeBareArray:
		return "bare_array"
	case ShapeWrapped:
		return "wrapped"
	case ShapePaginated:
		return "paginated"
	case ShapeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

type listWrapper struct {
	Data        json.RawMessage    `json:"data"`
	Pagination  *domain.Pagination `json:"pagination"`
	Meta        *domain.Meta       `json:"meta"`
	Message     string             `json:"message"`
	CurrentPage *int               `json:"current_page"`
	LastPage    int                `json:"last_page"`
	PerPage     int                `json:"per_page"`
	Total       int                `json:"total"`
	From        *int               `json:"from"`
	To          *int               `json:"to"`
}

func (w listWrapper) paginator() *domain.Pagination {
	if w.CurrentPage == nil {
		return nil
	}
	p := &domain.Pagination{
		CurrentPage: *w.CurrentPage,
		LastPage:    w.LastPage,
		PerPage:     w.PerPage,
		Total:       w.Total,
	}
	if w.From != nil {
		p.From = *w.From
	}
	if w.To != nil {
		p.To = *w.To
	}
	return p
}

// DetectShape classifies a list payload without decoding its items.
func DetectShape(p Payload) Shape {
	data := bytes.TrimSpace(p.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return ShapeEmpty
	case data[0] == '[':
		if p.Pagination != nil {
			return ShapePaginated
		}
		return ShapeBareArray
	case data[0] == '{':
		var w listWrapper
		if err := json.Unmarshal(data, &w); err != nil {
			return ShapeUnknown
		}
		inner := bytes.TrimSpace(w.Data)
		if len(inner) == 0 || inner[0] != '[' {
			return ShapeUnknown
		}
		if w.Pagination != nil || w.CurrentPage != nil || p.Pagination != nil {
			return ShapePaginated
		}
		return ShapeWrapped
	}
	return ShapeUnknown
}

// DecodeList turns any accepted list layout into a PaginatedResponse.
// Missing pagination becomes a single complete page and missing meta is
// synthesized from now. message is used when the API sent none.
func DecodeList[T any](p Payload, message string, now time.Time) (domain.PaginatedResponse[T], error) {
	out := domain.PaginatedResponse[T]{Success: true, Message: message, Data: []T{}}
	if p.Message != "" {
		out.Message = p.Message
	}

	var (
		items []byte
		pag   = p.Pagination
		meta  = p.Meta
	)
	switch shape := DetectShape(p); shape {
	case ShapeEmpty:
	case ShapeBareArray, ShapePaginated, ShapeWrapped:
		data := bytes.TrimSpace(p.Data)
		if data[0] == '[' {
			items = data
			break
		}
		var w listWrapper
		_ = json.Unmarshal(data, &w) // validated by DetectShape
		items = w.Data
		if w.Pagination != nil {
			pag = w.Pagination
		} else if pp := w.paginator(); pp != nil && pag == nil {
			pag = pp
		}
		if w.Meta != nil && meta == nil {
			meta = w.Meta
		}
		if w.Message != "" && p.Message == "" {
			out.Message = w.Message
		}
	default:
		return out, domain.NewRequestError(fmt.Errorf("decode list: %w", errUnexpectedShape))
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &out.Data); err != nil {
			return out, domain.NewRequestError(fmt.Errorf("decode list items: %w", err))
		}
		if out.Data == nil {
			out.Data = []T{}
		}
	}
	if pag != nil {
		out.Pagination = *pag
	} else {
		out.Pagination = domain.SinglePage(len(out.Data))
	}
	if meta != nil {
		out.Meta = *meta
	} else {
		out.Meta = domain.DefaultMeta(now)
	}
	return out, nil
}

// DecodeItem decodes a single entity. A nested {"data": {...}} left by a
// non-enveloped response is unwrapped first.
func DecodeItem[T any](p Payload) (T, error) {
	var v T
	data := bytes.TrimSpace(p.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return v, domain.NewRequestError(fmt.Errorf("decode item: %w", errUnexpectedShape))
	}
	if data[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(data, &probe); err == nil {
			if inner, ok := probe["data"]; ok {
				if _, hasID := probe["id"]; !hasID {
					if t := bytes.TrimSpace(inner); len(t) > 0 && t[0] == '{' {
						data = t
					}
				}
			}
		}
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, domain.NewRequestError(fmt.Errorf("decode item: %w", err))
	}
	return v, nil
}
