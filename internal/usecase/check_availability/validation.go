package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID == "" {
		return fmt.Errorf("%w: venueID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// buildSchedule собирает валидное расписание из запроса
func buildSchedule(req *Request) (domain.Schedule, error) {
	hasStart := req.StartTime != nil
	hasEnd := req.EndTime != nil

	if hasStart || hasEnd {
		if !hasStart || !hasEnd {
			return domain.Schedule{}, fmt.Errorf("%w: startTime and endTime must be provided together", ErrInvalidSchedule)
		}
		schedule, err := domain.NewTimeRangeSchedule(*req.StartTime, *req.EndTime)
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		return schedule, nil
	}

	if req.Session != nil {
		schedule, err := domain.NewSessionSchedule(*req.Session)
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		return schedule, nil
	}

	return domain.Schedule{}, fmt.Errorf("%w: either session or startTime/endTime is required", ErrInvalidSchedule)
}
