package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

// UseCase use case проверки доступности слота
// Это read-only операция: без блокировок и транзакций, вердикт справочный.
// Гарантию отсутствия гонки дает только create_booking
type UseCase struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, venueRepo VenueRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: venue=%s, date=%s",
		req.VenueID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных и расписания
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	schedule, err := buildSchedule(req)
	if err != nil {
		uc.logger.Warn("CheckAvailability: schedule validation failed: %v", err)
		return nil, err
	}

	candidate, err := schedule.Interval()
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to resolve validated schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}

	// 2. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CheckAvailability: venue id=%s not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get venue id=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Активные бронирования площадки на эту дату
	filter := domain.BookingsFilter{
		VenueID:         ptr.Ptr(req.VenueID),
		Date:            ptr.Ptr(req.Date),
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Ищем пересечение интервалов
	available := !hasConflict(candidate, bookings, uc.logger)

	uc.logger.Info("CheckAvailability: venue=%s, date=%s, interval=[%d,%d) -> available=%t",
		req.VenueID, req.Date.Format(domain.DateFormat), candidate.Start, candidate.End, available)

	return &Response{
		VenueID:   req.VenueID,
		Date:      req.Date,
		Available: available,
	}, nil
}

// hasConflict проверяет пересечение кандидата с существующими бронированиями
// Неактивные записи и записи с неразрешимым расписанием не блокируют слот
func hasConflict(candidate domain.Interval, bookings []*domain.Booking, log Logger) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		existing, err := b.Interval()
		if err != nil {
			log.Warn("hasConflict: skipping booking id=%s with unresolvable schedule: %v", b.ID, err)
			continue
		}

		if candidate.Overlaps(existing) {
			return true
		}
	}

	return false
}
