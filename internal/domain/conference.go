package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Conference struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	Description       string   `json:"description"`
	RoomType          string   `json:"room_type"`
	MinCapacity       int      `json:"min_capacity"`
	MaxCapacity       int      `json:"max_capacity"`
	PricePerHour      float64  `json:"price_per_hour"`
	PriceHalfDay      float64  `json:"price_half_day"`
	PriceFullDay      float64  `json:"price_full_day"`
	Status            Status   `json:"status"`
	Featured          bool     `json:"featured"`
	IsAvailable       bool     `json:"is_available"`
	CateringAvailable bool     `json:"catering_available"`
	Amenities         []string `json:"amenities"`
	Equipment         []string `json:"equipment"`
	Images            []string `json:"images"`
	DisplayOrder      int      `json:"display_order"`
	CreatedAt         string   `json:"created_at,omitempty"`
	UpdatedAt         string   `json:"updated_at,omitempty"`
	DeletedAt         *string  `json:"deleted_at,omitempty"`
}

type ConferenceFilters struct {
	Search            string `json:"search,omitempty"`
	Status            Status `json:"status,omitempty"`
	Featured          *bool  `json:"featured,omitempty"`
	MinAttendees      *int   `json:"min_attendees,omitempty"`
	RoomType          string `json:"room_type,omitempty"`
	CateringAvailable *bool  `json:"catering_available,omitempty"`
	ActiveOnly        *bool  `json:"active_only,omitempty"`
	Sort              string `json:"sort,omitempty"`
	PerPage           int    `json:"per_page,omitempty"`
	Page              int    `json:"page,omitempty"`
}

type ConferenceAvailabilityRequest struct {
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
}

type BookingType string

const (
	BookingHourly  BookingType = "hourly"
	BookingHalfDay BookingType = "half_day"
	BookingFullDay BookingType = "full_day"
)

type CalculatePriceRequest struct {
	BookingType   BookingType `json:"booking_type" validate:"required,oneof=hourly half_day full_day"`
	DurationHours *float64    `json:"duration_hours,omitempty"`
}

// PriceQuote is returned by the price endpoint, which names the total either way.
type PriceQuote struct {
	TotalPrice  *float64           `json:"total_price,omitempty"`
	TotalAmount *float64           `json:"total_amount,omitempty"`
	Breakdown   map[string]float64 `json:"breakdown,omitempty"`
}

// Total prefers total_price and falls back to total_amount.
func (q PriceQuote) Total() (float64, bool) {
	if q.TotalPrice != nil {
		return *q.TotalPrice, true
	}
	if q.TotalAmount != nil {
		return *q.TotalAmount, true
	}
	return 0, false
}

// DurationHours returns the hours between two "HH:MM" clock values.
func DurationHours(start, end string) (float64, error) {
	s, err := clockHours(start)
	if err != nil {
		return 0, err
	}
	e, err := clockHours(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

func clockHours(v string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", v)
	}
	return float64(h) + float64(m)/60, nil
}
