package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.VenueID == "" {
		return fmt.Errorf("%w: venueID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	if req.Purpose == "" {
		return fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}

	if len(req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose exceeds %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	return nil
}

// buildSchedule собирает валидное расписание из запроса
// Некорректное расписание - отдельная ошибка, отличимая от конфликта слота:
// клиент должен исправить запрос, а не выбирать другое время
func buildSchedule(req *Request) (domain.Schedule, error) {
	hasStart := req.StartTime != nil
	hasEnd := req.EndTime != nil

	// Точная пара: обе границы обязательны
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
