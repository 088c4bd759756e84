package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-VenueService/internal/usecase/check_availability"
)

const (
	msgInvalidQuery    = "invalid query parameters, expected date=YYYY-MM-DD with session or startTime/endTime"
	msgInvalidSchedule = "a valid session or a startTime/endTime pair is required"
	msgVenueNotFound   = "venue not found"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/availability?date=2024-05-20&startTime=11:00&endTime=13:00
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID := vars["venueId"]

	req, err := parseQuery(venueID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidSchedule),
			errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/availability - Invalid schedule: venue_id=%s", venueID)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, checkAvailability.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/availability - Venue not found: venue_id=%s", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		default:
			h.logger.Error("GET /venues/{id}/availability - Failed to check availability: venue_id=%s, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/availability - venue_id=%s, available=%t", venueID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
