package create_booking

import "github.com/m04kA/SMC-VenueService/internal/domain"

// hasConflict проверяет пересечение кандидата с существующими бронированиями.
//
// Репозиторий уже отфильтровал бронирования по площадке, дате и неактивным
// статусам, но предикат применяется здесь повторно: корректность допуска не
// должна зависеть от деталей выборки.
//
// Хранимые записи, которые не приводятся к интервалу, пропускаются с warning -
// битая запись не должна ни ронять проверку, ни ложно блокировать слот
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
