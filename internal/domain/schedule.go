package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/pkg/types"
)

var (
	// ErrUnresolvableSchedule возвращается, когда расписание нельзя привести
	// к временному интервалу (нет ни сессии, ни полной пары startTime/endTime)
	ErrUnresolvableSchedule = errors.New("domain: schedule cannot be resolved to a time interval")

	// ErrInvalidSession возвращается при неизвестном значении сессии
	ErrInvalidSession = errors.New("domain: invalid session slot")

	// ErrInvalidTimeRange возвращается, когда startTime не раньше endTime
	ErrInvalidTimeRange = errors.New("domain: start time must be before end time")
)

// SessionSlot легаси-представление времени бронирования: фиксированный блок дня
// Новые клиенты передают точную пару startTime/endTime, но исторические записи
// и старые клиенты продолжают использовать сессии
type SessionSlot string

const (
	SessionMorning   SessionSlot = "MORNING"
	SessionAfternoon SessionSlot = "AFTERNOON"
	SessionEvening   SessionSlot = "EVENING"
	SessionFullDay   SessionSlot = "FULL_DAY"
)

// IsValid возвращает true для известного значения сессии
func (s SessionSlot) IsValid() bool {
	switch s {
	case SessionMorning, SessionAfternoon, SessionEvening, SessionFullDay:
		return true
	default:
		return false
	}
}

// Interval возвращает канонический интервал сессии
func (s SessionSlot) Interval() (Interval, error) {
	switch s {
	case SessionMorning:
		return Interval{Start: MorningStart, End: MorningEnd}, nil
	case SessionAfternoon:
		return Interval{Start: AfternoonStart, End: AfternoonEnd}, nil
	case SessionEvening:
		return Interval{Start: EveningStart, End: EveningEnd}, nil
	case SessionFullDay:
		return Interval{Start: MorningStart, End: EveningEnd}, nil
	default:
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidSession, string(s))
	}
}

// Interval канонический полуинтервал [Start, End) в минутах от локальной полуночи
type Interval struct {
	Start int
	End   int
}

// Overlaps возвращает true, если интервалы действительно пересекаются.
// Граничные случаи (конец одного равен началу другого) пересечением НЕ считаются:
// бронирования "впритык" допустимы
//
// Примеры:
// - [660,780) и [480,720) → пересекаются (660 < 720 и 780 > 480)
// - [720,780) и [480,720) → не пересекаются (720 < 720 ложно)
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Schedule расписание бронирования: одно из двух представлений
// - легаси: Session (фиксированный блок дня)
// - точное: StartTime + EndTime (обе границы обязательны)
// Валидные значения создаются через NewSessionSchedule / NewTimeRangeSchedule;
// записи, прочитанные из хранилища, могут оказаться неразрешимыми - Interval()
// вернет ErrUnresolvableSchedule, и вызывающая сторона пропускает такую запись
type Schedule struct {
	Session   *SessionSlot
	StartTime *types.TimeString
	EndTime   *types.TimeString
}

// NewSessionSchedule создает расписание по легаси-сессии
func NewSessionSchedule(slot SessionSlot) (Schedule, error) {
	if !slot.IsValid() {
		return Schedule{}, fmt.Errorf("%w: %q", ErrInvalidSession, string(slot))
	}
	return Schedule{Session: &slot}, nil
}

// NewTimeRangeSchedule создает расписание по точной паре времени
// Требует start < end (пустые и "перевернутые" интервалы не допускаются)
func NewTimeRangeSchedule(start, end types.TimeString) (Schedule, error) {
	if err := start.Validate(); err != nil {
		return Schedule{}, err
	}
	if err := end.Validate(); err != nil {
		return Schedule{}, err
	}
	if !start.IsBefore(end) {
		return Schedule{}, fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, start, end)
	}
	return Schedule{StartTime: &start, EndTime: &end}, nil
}

// HasTimeRange возвращает true, если задана точная пара startTime/endTime
func (s Schedule) HasTimeRange() bool {
	return s.StartTime != nil && s.EndTime != nil
}

// HasSession возвращает true, если задана легаси-сессия
func (s Schedule) HasSession() bool {
	return s.Session != nil
}

// Interval приводит расписание к каноническому интервалу [start, end)
// в минутах от локальной полуночи.
// Точная пара имеет приоритет над сессией, если заданы оба представления
func (s Schedule) Interval() (Interval, error) {
	if s.HasTimeRange() {
		start, err := s.StartTime.Minutes()
		if err != nil {
			return Interval{}, fmt.Errorf("%w: %v", ErrUnresolvableSchedule, err)
		}
		end, err := s.EndTime.Minutes()
		if err != nil {
			return Interval{}, fmt.Errorf("%w: %v", ErrUnresolvableSchedule, err)
		}
		return Interval{Start: start, End: end}, nil
	}

	if s.HasSession() {
		interval, err := s.Session.Interval()
		if err != nil {
			return Interval{}, fmt.Errorf("%w: %v", ErrUnresolvableSchedule, err)
		}
		return interval, nil
	}

	return Interval{}, ErrUnresolvableSchedule
}
