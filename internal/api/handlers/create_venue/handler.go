package create_venue

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/venues"
	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgForbidden          = "access denied"
	msgUserNotFound       = "user not found"
	msgNameRequired       = "venue name is required"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /venues - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	venue, err := h.service.Create(r.Context(), &models.CreateVenueRequest{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Capacity:    req.Capacity,
		ImageURL:    req.ImageURL,
		Amenities:   req.Amenities,
	})
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrAccessDenied):
			h.logger.Warn("POST /venues - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, venues.ErrUserNotFound):
			h.logger.Warn("POST /venues - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("POST /venues - Invalid input: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgNameRequired)

		default:
			h.logger.Error("POST /venues - Failed to create venue: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues - Venue created successfully: venue_id=%s, user_id=%s", venue.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, venue)
}
