package domain

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type Booking struct {
	ID              int64         `json:"id"`
	CottageID       int64         `json:"cottage_id"`
	UserID          *int64        `json:"user_id,omitempty"`
	CheckInDate     string        `json:"check_in_date"`
	CheckOutDate    string        `json:"check_out_date"`
	NumberOfGuests  int           `json:"number_of_guests"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"status"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	Cottage         *Cottage      `json:"cottage,omitempty"`
	CreatedAt       string        `json:"created_at,omitempty"`
	UpdatedAt       string        `json:"updated_at,omitempty"`
}

type CreateBookingRequest struct {
	CottageID       int64  `json:"cottage_id" validate:"required,gt=0"`
	UserID          *int64 `json:"user_id,omitempty"`
	CheckIn         string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests          int    `json:"guests" validate:"required,min=1"`
	FirstName       string `json:"first_name,omitempty" validate:"required"`
	LastName        string `json:"last_name,omitempty" validate:"required"`
	Email           string `json:"email,omitempty" validate:"required,email"`
	Phone           string `json:"phone,omitempty" validate:"required"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

type ConferenceBooking struct {
	ID                  int64         `json:"id"`
	ConferenceID        int64         `json:"conference_id"`
	CustomerName        string        `json:"customer_name"`
	CustomerEmail       string        `json:"customer_email"`
	CustomerPhone       string        `json:"customer_phone"`
	BookingDate         string        `json:"booking_date"`
	StartTime           string        `json:"start_time"`
	EndTime             string        `json:"end_time"`
	BookingType         BookingType   `json:"booking_type"`
	NumberOfAttendees   int           `json:"number_of_attendees"`
	CateringRequired    bool          `json:"catering_required"`
	SpecialRequirements string        `json:"special_requirements,omitempty"`
	TotalPrice          float64       `json:"total_price"`
	Status              BookingStatus `json:"status"`
	Conference          *Conference   `json:"conference,omitempty"`
	CreatedAt           string        `json:"created_at,omitempty"`
	UpdatedAt           string        `json:"updated_at,omitempty"`
}

type CreateConferenceBookingRequest struct {
	ConferenceID        int64       `json:"conference_id" validate:"required,gt=0"`
	CustomerName        string      `json:"customer_name" validate:"required"`
	CustomerEmail       string      `json:"customer_email" validate:"required,email"`
	CustomerPhone       string      `json:"customer_phone" validate:"required"`
	BookingDate         string      `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime           string      `json:"start_time" validate:"required"`
	EndTime             string      `json:"end_time" validate:"required"`
	BookingType         BookingType `json:"booking_type" validate:"required,oneof=hourly half_day full_day"`
	NumberOfAttendees   int         `json:"number_of_attendees" validate:"required,min=1"`
	TotalAmount         float64     `json:"total_amount"`
	CateringRequired    bool        `json:"catering_required"`
	SpecialRequirements string      `json:"special_requirements,omitempty"`
}

// UpdateBookingRequest is a partial update; nil fields are left unchanged.
type UpdateBookingRequest struct {
	CheckIn         *string `json:"check_in,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOut        *string `json:"check_out,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Guests          *int    `json:"guests,omitempty" validate:"omitempty,min=1"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

type UpdateConferenceBookingRequest struct {
	BookingDate         *string      `json:"booking_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime           *string      `json:"start_time,omitempty"`
	EndTime             *string      `json:"end_time,omitempty"`
	BookingType         *BookingType `json:"booking_type,omitempty" validate:"omitempty,oneof=hourly half_day full_day"`
	NumberOfAttendees   *int         `json:"number_of_attendees,omitempty" validate:"omitempty,min=1"`
	CateringRequired    *bool        `json:"catering_required,omitempty"`
	SpecialRequirements *string      `json:"special_requirements,omitempty"`
}
