package domain

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusInactive    Status = "inactive"
)

type Cottage struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PricePerNight float64   `json:"price_per_night"`
	Capacity      int       `json:"capacity"`
	Status        Status    `json:"status"`
	Featured      bool      `json:"featured"`
	Images        []string  `json:"images"`
	Amenities     Amenities `json:"amenities"`
	CreatedAt     string    `json:"created_at,omitempty"`
	UpdatedAt     string    `json:"updated_at,omitempty"`
}

// StayPrice is the nightly rate times the number of nights between the two dates.
func (c Cottage) StayPrice(checkIn, checkOut time.Time) float64 {
	return c.PricePerNight * float64(Nights(checkIn, checkOut))
}

// Nights counts started days between check-in and check-out; never negative.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

type CottageFilters struct {
	Search      string   `json:"search,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	MinCapacity *int     `json:"min_capacity,omitempty"`
	Sort        string   `json:"sort,omitempty"`
	PerPage     int      `json:"per_page,omitempty"`
	Page        int      `json:"page,omitempty"`
}

type AvailabilityCheckRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Amenities accepts either a comma separated string or a list on the wire.
type Amenities []string

func (a *Amenities) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = NormalizeAmenities(v)
	return nil
}

// NormalizeAmenities flattens the shapes the API uses for amenities into a list.
func NormalizeAmenities(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		if t == "" {
			return []string{}
		}
		if !strings.Contains(t, ",") {
			return []string{t}
		}
		out := []string{}
		for _, part := range strings.Split(t, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
