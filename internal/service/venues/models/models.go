package models

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Request модели

// CreateVenueRequest запрос на создание площадки
type CreateVenueRequest struct {
	UserID      string   `json:"userId"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Capacity    int      `json:"capacity,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}

// ToDomainVenue конвертирует request в domain модель
func (r *CreateVenueRequest) ToDomainVenue() *domain.Venue {
	return &domain.Venue{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Capacity:    r.Capacity,
		ImageURL:    r.ImageURL,
		Amenities:   r.Amenities,
	}
}

// UpdateVenueRequest запрос на частичное обновление площадки
// nil-поле не меняется
type UpdateVenueRequest struct {
	UserID      string   `json:"userId"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Capacity    *int     `json:"capacity,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}

// ToDomainUpdate конвертирует request в domain модель частичного обновления
func (r *UpdateVenueRequest) ToDomainUpdate() domain.VenueUpdate {
	return domain.VenueUpdate{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Capacity:    r.Capacity,
		ImageURL:    r.ImageURL,
		Amenities:   r.Amenities,
	}
}

// Response модели

// VenueResponse ответ с данными площадки
type VenueResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Capacity    int      `json:"capacity,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VenueListResponse ответ со списком площадок
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

// Методы конвертации

// FromDomainVenue конвертирует domain модель в DTO
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}

	return &VenueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Location:    v.Location,
		Capacity:    v.Capacity,
		ImageURL:    v.ImageURL,
		Amenities:   v.Amenities,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// FromDomainVenueList конвертирует список domain моделей в DTO
func FromDomainVenueList(venues []*domain.Venue) *VenueListResponse {
	if venues == nil {
		return &VenueListResponse{
			Venues: []VenueResponse{},
		}
	}

	resp := &VenueListResponse{
		Venues: make([]VenueResponse, len(venues)),
	}

	for i, venue := range venues {
		if venueResp := FromDomainVenue(venue); venueResp != nil {
			resp.Venues[i] = *venueResp
		}
	}

	return resp
}
