package create_venue

// CreateVenueRequest HTTP request model
type CreateVenueRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Capacity    int      `json:"capacity,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}
