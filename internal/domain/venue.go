package domain

import "time"

// Venue represents a bookable venue
type Venue struct {
	ID          string
	Name        string
	Description string
	Location    string
	Capacity    int
	ImageURL    string
	Amenities   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VenueUpdate частичное обновление площадки (nil - поле не меняется)
type VenueUpdate struct {
	Name        *string
	Description *string
	Location    *string
	Capacity    *int
	ImageURL    *string
	Amenities   []string
}

// IsEmpty возвращает true, если обновление не меняет ни одного поля
func (u VenueUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Location == nil &&
		u.Capacity == nil && u.ImageURL == nil && u.Amenities == nil
}
