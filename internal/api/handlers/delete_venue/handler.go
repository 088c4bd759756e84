package delete_venue

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/venues"
)

const (
	msgMissingUserID     = "missing user ID"
	msgForbidden         = "access denied"
	msgUserNotFound      = "user not found"
	msgNotFound          = "venue not found"
	msgHasActiveBookings = "venue has active bookings and cannot be deleted"
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

// Handle DELETE /api/v1/venues/{venueId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID := vars["venueId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /venues/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), venueID, userID); err != nil {
		switch {
		case errors.Is(err, venues.ErrVenueNotFound):
			h.logger.Warn("DELETE /venues/{id} - Venue not found: venue_id=%s", venueID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, venues.ErrAccessDenied):
			h.logger.Warn("DELETE /venues/{id} - Access denied: venue_id=%s, user_id=%s", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, venues.ErrUserNotFound):
			h.logger.Warn("DELETE /venues/{id} - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, venues.ErrHasActiveBookings):
			h.logger.Warn("DELETE /venues/{id} - Venue has active bookings: venue_id=%s", venueID)
			handlers.RespondConflict(w, msgHasActiveBookings)

		default:
			h.logger.Error("DELETE /venues/{id} - Failed to delete venue: venue_id=%s, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /venues/{id} - Venue deleted successfully: venue_id=%s, user_id=%s", venueID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
