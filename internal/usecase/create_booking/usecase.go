package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	userClient "github.com/m04kA/SMC-VenueService/internal/integrations/userservice"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	userClient  UserServiceClient
	publisher   EventPublisher
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	userClient UserServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		userClient:  userClient,
		publisher:   publisher,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности слота и вставка выполняются в одной сериализуемой
// транзакции с блокировкой строк площадки на дату (FOR UPDATE) - два
// параллельных запроса на пересекающийся интервал не могут оба пройти проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, venue=%s, date=%s",
		req.UserID, req.VenueID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем расписание (некорректное расписание отклоняется до проверки слота)
	schedule, err := buildSchedule(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	candidate, err := schedule.Interval()
	if err != nil {
		// Валидное расписание всегда приводится к интервалу
		uc.logger.Error("CreateBooking: failed to resolve validated schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}

	// 3. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%s not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Получаем пользователя (имя денормализуется в бронирование)
	user, err := uc.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%s not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 5. Проверка слота + вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Все активные бронирования площадки на эту дату, с блокировкой строк
		filter := domain.BookingsFilter{
			VenueID:         ptr.Ptr(req.VenueID),
			Date:            ptr.Ptr(req.Date),
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			// Fail closed: при ошибке чтения заявка не допускается
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.2. Проверяем пересечение интервалов
		if hasConflict(candidate, bookings, uc.logger) {
			uc.logger.Warn("CreateBooking: slot conflict for venue=%s, date=%s, interval=[%d,%d)",
				req.VenueID, req.Date.Format(domain.DateFormat), candidate.Start, candidate.End)
			return ErrSlotConflict
		}

		// 5.3. Создаем бронирование в статусе PENDING
		booking := &domain.Booking{
			VenueID:  req.VenueID,
			UserID:   req.UserID,
			UserName: user.Name,
			Date:     req.Date,
			Schedule: schedule,
			Purpose:  req.Purpose,
			Status:   domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 6. Публикуем событие (best-effort, сбой публикации не отменяет бронирование)
	if err := uc.publisher.BookingCreated(ctx, result); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish booking.created for id=%s: %v", result.ID, err)
	}

	return toResponse(result), nil
}
