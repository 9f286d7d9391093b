package domain

type Difficulty string

const (
	DifficultyBeginner    Difficulty = "beginner"
	DifficultyEasy        Difficulty = "easy"
	DifficultyMedium      Difficulty = "medium"
	DifficultyChallenging Difficulty = "challenging"
	DifficultyHard        Difficulty = "hard"
	DifficultyExpert      Difficulty = "expert"
)

type Activity struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	DurationMinutes int        `json:"duration_minutes"`
	Difficulty      Difficulty `json:"difficulty"`
	IsAvailable     bool       `json:"is_available"`
	MaxParticipants int        `json:"max_participants"`
	Image           string     `json:"image"`
	CreatedAt       string     `json:"created_at,omitempty"`
	UpdatedAt       string     `json:"updated_at,omitempty"`
}

type ActivityFilters struct {
	Search      string     `json:"search,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	Available   *bool      `json:"available,omitempty"`
	MaxPrice    *float64   `json:"max_price,omitempty"`
	MaxDuration *int       `json:"max_duration,omitempty"`
	Sort        string     `json:"sort,omitempty"`
	PerPage     int        `json:"per_page,omitempty"`
	Page        int        `json:"page,omitempty"`
}

type Testimonial struct {
	ID         int64   `json:"id"`
	GuestName  string  `json:"guest_name"`
	GuestTitle string  `json:"guest_title,omitempty"`
	GuestImage string  `json:"guest_image,omitempty"`
	Rating     int     `json:"rating"`
	Content    string  `json:"content"`
	IsApproved bool    `json:"is_approved"`
	IsFeatured bool    `json:"is_featured"`
	BookingID  *int64  `json:"booking_id,omitempty"`
	CreatedAt  string  `json:"created_at,omitempty"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
	DeletedAt  *string `json:"deleted_at,omitempty"`
}

type TestimonialFilters struct {
	IsApproved *bool `json:"is_approved,omitempty"`
	IsFeatured *bool `json:"is_featured,omitempty"`
	PerPage    int   `json:"per_page,omitempty"`
	Page       int   `json:"page,omitempty"`
}

type SubmitTestimonialRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email,omitempty" validate:"omitempty,email"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comment       string `json:"comment" validate:"required"`
}

type GalleryItem struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ImagePath    string `json:"image_path"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

type GalleryFilters struct {
	Category string `json:"category,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
	PerPage  int    `json:"per_page,omitempty"`
	Page     int    `json:"page,omitempty"`
}

type MenuItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImagePath   string   `json:"image_path,omitempty"`
	IsAvailable bool     `json:"is_available"`
	IsFeatured  bool     `json:"is_featured"`
	Allergens   []string `json:"allergens,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

type MenuFilters struct {
	Category    string `json:"category,omitempty"`
	IsAvailable *bool  `json:"is_available,omitempty"`
	IsFeatured  *bool  `json:"is_featured,omitempty"`
	PerPage     int    `json:"per_page,omitempty"`
	Page        int    `json:"page,omitempty"`
}
