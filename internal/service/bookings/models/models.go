package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             string `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение истории бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetBookingsRequest запрос на получение бронирований с фильтрацией
// Доступно только администраторам
type GetBookingsRequest struct {
	RequesterID     string     `json:"requesterId"`
	VenueID         *string    `json:"venueId,omitempty"`         // Фильтр по площадке (опционально)
	UserID          *string    `json:"userId,omitempty"`          // Фильтр по пользователю (опционально)
	Date            *time.Time `json:"date,omitempty"`            // Фильтр по дате (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отклонённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		VenueID:         r.VenueID,
		UserID:          r.UserID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID      string `json:"id"`
	VenueID string `json:"venueId"`
	UserID  string `json:"userId"`

	// Денормализованные данные
	UserName string `json:"userName"`

	Date      string  `json:"date"`                // "2024-05-20"
	Session   *string `json:"session,omitempty"`   // "MORNING" / "AFTERNOON" / "EVENING" / "FULL_DAY"
	StartTime *string `json:"startTime,omitempty"` // "11:00"
	EndTime   *string `json:"endTime,omitempty"`   // "13:00"

	Purpose string `json:"purpose,omitempty"`
	Status  string `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		VenueID:            b.VenueID,
		UserID:             b.UserID,
		UserName:           b.UserName,
		Date:               b.Date.Format(domain.DateFormat),
		Purpose:            b.Purpose,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.Session != nil {
		session := string(*b.Session)
		resp.Session = &session
	}
	if b.StartTime != nil {
		start := b.StartTime.String()
		resp.StartTime = &start
	}
	if b.EndTime != nil {
		end := b.EndTime.String()
		resp.EndTime = &end
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
