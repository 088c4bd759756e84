package check_availability

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("check_availability: venue not found")

	// ErrInvalidSchedule возвращается, когда запрос не содержит ни валидной
	// сессии, ни полной пары startTime/endTime, либо startTime >= endTime.
	// Некорректное расписание никогда не трактуется как "свободно" или "занято"
	ErrInvalidSchedule = errors.New("check_availability: invalid schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Ошибка чтения бронирований не превращается в вердикт - она отличима
	// от "занято", чтобы клиент мог повторить запрос
	ErrInternal = errors.New("check_availability: internal error")
)
