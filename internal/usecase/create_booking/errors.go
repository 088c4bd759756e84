package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrInvalidSchedule возвращается, когда в запросе нет ни валидной сессии,
	// ни полной пары startTime/endTime, либо startTime >= endTime
	ErrInvalidSchedule = errors.New("create_booking: invalid schedule")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным
	// бронированием той же площадки на ту же дату
	ErrSlotConflict = errors.New("create_booking: slot is already reserved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Сюда же попадают ошибки чтения бронирований: при недоступном хранилище
	// заявка не допускается (fail closed)
	ErrInternal = errors.New("create_booking: internal error")
)
