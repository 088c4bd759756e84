package events

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Routing keys событий жизненного цикла бронирования
const (
	RKBookingCreated   = "booking.created"
	RKBookingApproved  = "booking.approved"
	RKBookingRejected  = "booking.rejected"
	RKBookingCancelled = "booking.cancelled"
)

// BookingEvent payload события бронирования
// Несет достаточно данных для нотификаций без обратного похода в сервис
type BookingEvent struct {
	BookingID string `json:"booking_id"`
	VenueID   string `json:"venue_id"`
	UserID    string `json:"user_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Session   string `json:"session,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Status    string `json:"status"`
	OccuredAt int64  `json:"occurred_at"` // unix seconds
}

// NewBookingEvent собирает payload события из domain модели
func NewBookingEvent(b *domain.Booking, now time.Time) BookingEvent {
	event := BookingEvent{
		BookingID: b.ID,
		VenueID:   b.VenueID,
		UserID:    b.UserID,
		Date:      b.Date.Format(domain.DateFormat),
		Status:    string(b.Status),
		OccuredAt: now.Unix(),
	}

	if b.Session != nil {
		event.Session = string(*b.Session)
	}
	if b.StartTime != nil {
		event.StartTime = b.StartTime.String()
	}
	if b.EndTime != nil {
		event.EndTime = b.EndTime.String()
	}

	return event
}

// JSONPublisher публикует JSON сообщения по routing key (реализуется pkg/mq)
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

// Publisher публикует события жизненного цикла бронирований
type Publisher struct {
	mq JSONPublisher
}

// NewPublisher создает publisher поверх MQ соединения
func NewPublisher(mq JSONPublisher) *Publisher {
	return &Publisher{mq: mq}
}

// BookingCreated публикует событие создания бронирования
func (p *Publisher) BookingCreated(ctx context.Context, b *domain.Booking) error {
	return p.mq.PublishJSON(ctx, RKBookingCreated, NewBookingEvent(b, time.Now()))
}

// BookingStatusChanged публикует событие смены статуса (approved/rejected/cancelled)
func (p *Publisher) BookingStatusChanged(ctx context.Context, b *domain.Booking) error {
	var key string
	switch b.Status {
	case domain.StatusApproved:
		key = RKBookingApproved
	case domain.StatusRejected:
		key = RKBookingRejected
	case domain.StatusCancelled:
		key = RKBookingCancelled
	default:
		// Для прочих статусов событие не публикуется
		return nil
	}
	return p.mq.PublishJSON(ctx, key, NewBookingEvent(b, time.Now()))
}

// NoopPublisher заглушка, когда публикация событий выключена в конфигурации
type NoopPublisher struct{}

// BookingCreated ничего не делает
func (NoopPublisher) BookingCreated(ctx context.Context, b *domain.Booking) error {
	return nil
}

// BookingStatusChanged ничего не делает
func (NoopPublisher) BookingStatusChanged(ctx context.Context, b *domain.Booking) error {
	return nil
}
