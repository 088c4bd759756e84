package get_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

const (
	msgMissingUserID = "missing user ID"
	msgForbidden     = "access denied"
	msgUserNotFound  = "user not found"
	msgInvalidFilter = "invalid filter parameters"
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?venueId=&userId=&date=&status=&includeInactive=
// Список всех бронирований с фильтрацией, только для администраторов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetBookingsRequest{RequesterID: userID}

	query := r.URL.Query()
	if venueID := query.Get("venueId"); venueID != "" {
		req.VenueID = &venueID
	}
	if targetUserID := query.Get("userId"); targetUserID != "" {
		req.UserID = &targetUserID
	}
	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid date filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /bookings - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Retrieved %d bookings: user_id=%s", len(result.Bookings), userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
