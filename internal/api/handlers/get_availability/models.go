package get_availability

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-VenueService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VenueID   string `json:"venueId"`
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// parseQuery собирает запрос use case из query-параметров
func parseQuery(venueID string, query url.Values) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		VenueID: venueID,
		Date:    date,
	}

	if sessionStr := query.Get("session"); sessionStr != "" {
		session := domain.SessionSlot(sessionStr)
		req.Session = &session
	}

	if startStr := query.Get("startTime"); startStr != "" {
		start, err := types.NewTimeStringFromString(startStr)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}
	if endStr := query.Get("endTime"); endStr != "" {
		end, err := types.NewTimeStringFromString(endStr)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		VenueID:   resp.VenueID,
		Date:      resp.Date.Format(domain.DateFormat),
		Available: resp.Available,
	}
}
