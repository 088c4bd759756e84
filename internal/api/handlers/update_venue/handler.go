package update_venue

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

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
	msgNotFound           = "venue not found"
	msgEmptyUpdate        = "at least one field must be set"
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

// Handle PATCH /api/v1/venues/{venueId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID := vars["venueId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /venues/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /venues/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	venue, err := h.service.Update(r.Context(), venueID, &models.UpdateVenueRequest{
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
		case errors.Is(err, venues.ErrVenueNotFound):
			h.logger.Warn("PATCH /venues/{id} - Venue not found: venue_id=%s", venueID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, venues.ErrAccessDenied):
			h.logger.Warn("PATCH /venues/{id} - Access denied: venue_id=%s, user_id=%s", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, venues.ErrUserNotFound):
			h.logger.Warn("PATCH /venues/{id} - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("PATCH /venues/{id} - Empty update: venue_id=%s", venueID)
			handlers.RespondBadRequest(w, msgEmptyUpdate)

		default:
			h.logger.Error("PATCH /venues/{id} - Failed to update venue: venue_id=%s, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /venues/{id} - Venue updated successfully: venue_id=%s, user_id=%s", venueID, userID)
	handlers.RespondJSON(w, http.StatusOK, venue)
}
