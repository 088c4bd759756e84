package create_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

// Request модель запроса на создание бронирования
// Расписание задается ЛИБО легаси-сессией, ЛИБО точной парой startTime/endTime
type Request struct {
	UserID    string              // ID пользователя (из заголовка аутентификации)
	VenueID   string              // ID площадки
	Date      time.Time           // Дата бронирования (без времени)
	Session   *domain.SessionSlot // Легаси-сессия (опционально)
	StartTime *types.TimeString   // Точное время начала (опционально, вместе с EndTime)
	EndTime   *types.TimeString   // Точное время конца (опционально, вместе со StartTime)
	Purpose   string              // Цель бронирования
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string              // ID созданного бронирования
	VenueID   string              // ID площадки
	UserID    string              // ID пользователя
	UserName  string              // Имя пользователя (денормализовано)
	Date      time.Time           // Дата бронирования
	Session   *domain.SessionSlot // Сессия, если бронирование по сессии
	StartTime *types.TimeString   // Время начала, если точное расписание
	EndTime   *types.TimeString   // Время конца, если точное расписание
	Purpose   string              // Цель бронирования
	Status    string              // Статус (всегда PENDING при создании)
	CreatedAt time.Time           // Время создания
	UpdatedAt time.Time           // Время обновления
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:        b.ID,
		VenueID:   b.VenueID,
		UserID:    b.UserID,
		UserName:  b.UserName,
		Date:      b.Date,
		Session:   b.Session,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Purpose:   b.Purpose,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
