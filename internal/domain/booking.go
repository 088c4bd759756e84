package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusApproved  BookingStatus = "APPROVED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// IsValid returns true for a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// Booking represents a venue reservation request
type Booking struct {
	ID      string
	VenueID string
	UserID  string

	// Denormalized at creation time for history views
	UserName string

	// Calendar day, timezone-naive (only year/month/day are meaningful)
	Date time.Time

	Schedule

	Purpose string
	Status  BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still reserves its slot
// (PENDING reserves the slot provisionally, the same as APPROVED)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// IsInert returns true if the booking never blocks new admissions
func (b *Booking) IsInert() bool {
	return b.Status == StatusRejected || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled by its owner or an admin
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending
}

// CanTransitionTo returns true if the status transition is allowed.
// PENDING is the only non-terminal state: it may move to APPROVED, REJECTED
// or CANCELLED; every other state is terminal
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	if b.Status != StatusPending {
		return false
	}
	switch target {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	VenueID         *string        // Фильтр по площадке (опционально)
	UserID          *string        // Фильтр по пользователю (опционально)
	Date            *time.Time     // Фильтр по дате (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отклонённые и отменённые бронирования
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
