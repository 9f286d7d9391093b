package domain

import "time"

type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// HasNext reports whether a page after CurrentPage exists.
func (p Pagination) HasNext() bool { return p.CurrentPage < p.LastPage }

type Meta struct {
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// PaginatedResponse is the uniform list envelope every list call returns,
// whatever shape the API used on the wire.
type PaginatedResponse[T any] struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Meta       Meta       `json:"meta"`
}

// SinglePage describes n items delivered as one complete page.
func SinglePage(n int) Pagination {
	from := 1
	if n == 0 {
		from = 0
	}
	return Pagination{CurrentPage: 1, LastPage: 1, PerPage: n, Total: n, From: from, To: n}
}

// DefaultMeta is attached when the API sent no meta block.
func DefaultMeta(now time.Time) Meta {
	return Meta{Timestamp: now.UTC().Format(time.RFC3339), Version: "v1"}
}
