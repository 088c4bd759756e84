package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}

	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.VenueID != nil && b.VenueID != *filter.VenueID {
			continue
		}
		if filter.Date != nil && !domain.SameDay(b.Date, *filter.Date) {
			continue
		}
		if !filter.IncludeInactive && b.IsInert() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeVenueRepo struct {
	venues map[string]*domain.Venue
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, venueRepo.ErrVenueNotFound
	}
	return v, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, bookings ...*domain.Booking) *UseCase {
	t.Helper()
	venues := &fakeVenueRepo{venues: map[string]*domain.Venue{
		"v1": {ID: "v1", Name: "Skyline Boardroom"},
	}}
	return NewUseCase(&fakeBookingRepo{bookings: bookings}, venues, nopLogger{})
}

func morningBooking(t *testing.T, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	schedule, err := domain.NewSessionSchedule(domain.SessionMorning)
	require.NoError(t, err)
	return &domain.Booking{
		ID:       "b1",
		VenueID:  "v1",
		UserID:   "u1",
		Date:     testDate,
		Schedule: schedule,
		Status:   status,
	}
}

func rangeRequest(start, end string) *Request {
	return &Request{
		VenueID:   "v1",
		Date:      testDate,
		StartTime: ptr.Ptr(types.TimeString(start)),
		EndTime:   ptr.Ptr(types.TimeString(end)),
	}
}

// Сценарий из продуктовых требований: существующее MORNING [480,720),
// кандидат 11:00-13:00 [660,780) пересекается, кандидат 12:00-13:00 [720,780) - нет
func TestExecute_MorningOverlapScenario(t *testing.T) {
	uc := newTestUseCase(t, morningBooking(t, domain.StatusApproved))

	resp, err := uc.Execute(context.Background(), rangeRequest("11:00", "13:00"))
	require.NoError(t, err)
	assert.False(t, resp.Available)

	resp, err = uc.Execute(context.Background(), rangeRequest("12:00", "13:00"))
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_PendingBlocks(t *testing.T) {
	uc := newTestUseCase(t, morningBooking(t, domain.StatusPending))

	resp, err := uc.Execute(context.Background(), rangeRequest("11:00", "13:00"))
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestExecute_InertStatusesDoNotBlock(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusRejected, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			uc := newTestUseCase(t, morningBooking(t, status))

			resp, err := uc.Execute(context.Background(), &Request{
				VenueID: "v1",
				Date:    testDate,
				Session: ptr.Ptr(domain.SessionMorning),
			})
			require.NoError(t, err)
			assert.True(t, resp.Available)
		})
	}
}

func TestExecute_IdempotentRead(t *testing.T) {
	uc := newTestUseCase(t, morningBooking(t, domain.StatusApproved))

	first, err := uc.Execute(context.Background(), rangeRequest("11:00", "13:00"))
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), rangeRequest("11:00", "13:00"))
	require.NoError(t, err)

	assert.Equal(t, first.Available, second.Available)
}

func TestExecute_SessionCandidateAgainstPreciseBooking(t *testing.T) {
	precise, err := domain.NewTimeRangeSchedule("08:00", "12:00")
	require.NoError(t, err)

	uc := newTestUseCase(t, &domain.Booking{
		ID: "b1", VenueID: "v1", UserID: "u1", Date: testDate,
		Schedule: precise, Status: domain.StatusApproved,
	})

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID: "v1",
		Date:    testDate,
		Session: ptr.Ptr(domain.SessionMorning),
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestExecute_InvalidSchedule(t *testing.T) {
	uc := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{VenueID: "v1", Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = uc.Execute(context.Background(), rangeRequest("13:00", "11:00"))
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := newTestUseCase(t)

	req := rangeRequest("10:00", "11:00")
	req.VenueID = "missing"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_FetchErrorIsNotAVerdict(t *testing.T) {
	venues := &fakeVenueRepo{venues: map[string]*domain.Venue{"v1": {ID: "v1"}}}
	uc := NewUseCase(&fakeBookingRepo{err: errors.New("connection refused")}, venues, nopLogger{})

	_, err := uc.Execute(context.Background(), rangeRequest("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrInternal)
}
