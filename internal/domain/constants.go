package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Session slot boundaries, minutes since local midnight
const (
	MorningStart   = 8 * 60  // 08:00
	MorningEnd     = 12 * 60 // 12:00
	AfternoonStart = 13 * 60 // 13:00
	AfternoonEnd   = 17 * 60 // 17:00
	EveningStart   = 18 * 60 // 18:00
	EveningEnd     = 22 * 60 // 22:00
)

// Business validation constants
const (
	MaxPurposeLength            = 500
	MaxCancellationReasonLength = 500
	MaxVenueNameLength          = 200
	MaxLocationLength           = 200
)

// InactiveStatuses список статусов, не блокирующих новые бронирования
// Используется при фильтрации в проверке доступности слота
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
}

// ActiveStatuses список статусов, резервирующих слот
// PENDING блокирует слот наравне с APPROVED: заявка резервирует время
// уже на этапе подачи, до решения администратора
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}
