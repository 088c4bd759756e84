package check_availability

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

// Request модель запроса проверки доступности слота
type Request struct {
	VenueID   string              // ID площадки
	Date      time.Time           // Дата (без времени)
	Session   *domain.SessionSlot // Легаси-сессия (опционально)
	StartTime *types.TimeString   // Точное время начала (опционально, вместе с EndTime)
	EndTime   *types.TimeString   // Точное время конца (опционально, вместе со StartTime)
}

// Response вердикт проверки доступности
type Response struct {
	VenueID   string    // ID площадки
	Date      time.Time // Запрошенная дата
	Available bool      // true - интервал свободен
}
