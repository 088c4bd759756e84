package update_venue

// UpdateVenueRequest HTTP request model, nil-поле не меняется
type UpdateVenueRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Capacity    *int     `json:"capacity,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}
