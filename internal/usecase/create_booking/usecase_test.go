package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/integrations/userservice"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

// --- фейки контрактов ---

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	listErr   error
	createErr error
	created   []*domain.Booking
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
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

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = "booking-new"
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = append(f.created, b)
	f.bookings = append(f.bookings, b)
	return b, nil
}

type fakeVenueRepo struct {
	venues map[string]*domain.Venue
	err    error
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.venues[id]
	if !ok {
		return nil, venueRepo.ErrVenueNotFound
	}
	return v, nil
}

type fakeUserClient struct {
	users map[string]*userservice.User
}

func (f *fakeUserClient) GetUser(_ context.Context, id string) (*userservice.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return u, nil
}

type fakePublisher struct {
	created int
	err     error
}

func (f *fakePublisher) BookingCreated(_ context.Context, _ *domain.Booking) error {
	f.created++
	return f.err
}

// fakeTxManager выполняет fn без реальной транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

var testDate = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

func existingBooking(id, venueID string, status domain.BookingStatus, schedule domain.Schedule) *domain.Booking {
	return &domain.Booking{
		ID:       id,
		VenueID:  venueID,
		UserID:   "u1",
		UserName: "Alex Rivera",
		Date:     testDate,
		Schedule: schedule,
		Purpose:  "Team sync",
		Status:   status,
	}
}

func morningSession(t *testing.T) domain.Schedule {
	t.Helper()
	s, err := domain.NewSessionSchedule(domain.SessionMorning)
	require.NoError(t, err)
	return s
}

func newTestUseCase(repo *fakeBookingRepo) (*UseCase, *fakeBookingRepo, *fakePublisher, *fakeTxManager) {
	venues := &fakeVenueRepo{venues: map[string]*domain.Venue{
		"v1": {ID: "v1", Name: "Skyline Boardroom"},
		"v2": {ID: "v2", Name: "Innovation Hub"},
	}}
	users := &fakeUserClient{users: map[string]*userservice.User{
		"u1": {ID: "u1", Name: "Alex Rivera", Role: userservice.RoleUser},
	}}
	publisher := &fakePublisher{}
	tx := &fakeTxManager{}

	return NewUseCase(repo, venues, users, publisher, tx, nopLogger{}), repo, publisher, tx
}

func timeRangeRequest(start, end string) *Request {
	return &Request{
		UserID:    "u1",
		VenueID:   "v1",
		Date:      testDate,
		StartTime: ptr.Ptr(types.TimeString(start)),
		EndTime:   ptr.Ptr(types.TimeString(end)),
		Purpose:   "Workshop",
	}
}

// --- тесты ---

func TestExecute_CreatesPendingBooking(t *testing.T) {
	uc, repo, publisher, tx := newTestUseCase(&fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), timeRangeRequest("10:00", "12:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "booking-new", resp.ID)
	assert.Equal(t, "Alex Rivera", resp.UserName)
	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.StatusPending, repo.created[0].Status)
	assert.Equal(t, 1, publisher.created)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_RejectsOverlap(t *testing.T) {
	// Существующее MORNING [480,720), кандидат 11:00-13:00 [660,780) - пересекаются
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		existingBooking("b1", "v1", domain.StatusApproved, morningSession(t)),
	}}
	uc, repo, publisher, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), timeRangeRequest("11:00", "13:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, repo.created)
	assert.Zero(t, publisher.created)
}

func TestExecute_PendingBlocksSlot(t *testing.T) {
	// PENDING резервирует слот так же, как APPROVED
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		existingBooking("b1", "v1", domain.StatusPending, morningSession(t)),
	}}
	uc, _, _, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), timeRangeRequest("11:00", "13:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_AdmitsBackToBack(t *testing.T) {
	// Кандидат начинается ровно в конце существующего - пересечения нет
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		existingBooking("b1", "v1", domain.StatusApproved, morningSession(t)),
	}}
	uc, _, _, _ := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), timeRangeRequest("12:00", "13:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_InertStatusesNeverBlock(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusRejected, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeBookingRepo{bookings: []*domain.Booking{
				existingBooking("b1", "v1", status, morningSession(t)),
			}}
			uc, _, _, _ := newTestUseCase(repo)

			// Тот же интервал, что и у неактивного бронирования
			_, err := uc.Execute(context.Background(), &Request{
				UserID:  "u1",
				VenueID: "v1",
				Date:    testDate,
				Session: ptr.Ptr(domain.SessionMorning),
				Purpose: "Retro",
			})
			require.NoError(t, err)
		})
	}
}

func TestExecute_SessionAndTimeRangeEquivalence(t *testing.T) {
	// Легаси MORNING и точное 08:00-12:00 отображаются в один интервал [480,720)
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		existingBooking("b1", "v1", domain.StatusApproved, morningSession(t)),
	}}
	uc, _, _, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), timeRangeRequest("08:00", "12:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// И наоборот: существующее точное время блокирует сессию
	precise, err := domain.NewTimeRangeSchedule("08:00", "12:00")
	require.NoError(t, err)
	repo2 := &fakeBookingRepo{bookings: []*domain.Booking{
		existingBooking("b2", "v1", domain.StatusApproved, precise),
	}}
	uc2, _, _, _ := newTestUseCase(repo2)

	_, err = uc2.Execute(context.Background(), &Request{
		UserID:  "u1",
		VenueID: "v1",
		Date:    testDate,
		Session: ptr.Ptr(domain.SessionMorning),
		Purpose: "Demo",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_CrossVenueIndependence(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		existingBooking("b1", "v2", domain.StatusApproved, morningSession(t)),
	}}
	uc, _, _, _ := newTestUseCase(repo)

	// Тот же интервал на другой площадке - конфликта нет
	_, err := uc.Execute(context.Background(), timeRangeRequest("08:00", "12:00"))
	require.NoError(t, err)
}

func TestExecute_CrossDateIndependence(t *testing.T) {
	other := existingBooking("b1", "v1", domain.StatusApproved, morningSession(t))
	other.Date = testDate.AddDate(0, 0, 1)

	repo := &fakeBookingRepo{bookings: []*domain.Booking{other}}
	uc, _, _, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), timeRangeRequest("08:00", "12:00"))
	require.NoError(t, err)
}

func TestExecute_SkipsUnresolvableStoredBooking(t *testing.T) {
	// Битая запись (нет ни сессии, ни времени) не блокирует и не роняет проверку
	broken := existingBooking("b1", "v1", domain.StatusApproved, domain.Schedule{})

	repo := &fakeBookingRepo{bookings: []*domain.Booking{broken}}
	uc, _, _, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), timeRangeRequest("08:00", "12:00"))
	require.NoError(t, err)
}

func TestExecute_MalformedSchedule(t *testing.T) {
	uc, _, _, _ := newTestUseCase(&fakeBookingRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"no schedule at all", &Request{UserID: "u1", VenueID: "v1", Date: testDate, Purpose: "x"}},
		{"only startTime", &Request{UserID: "u1", VenueID: "v1", Date: testDate, Purpose: "x",
			StartTime: ptr.Ptr(types.TimeString("10:00"))}},
		{"only endTime", &Request{UserID: "u1", VenueID: "v1", Date: testDate, Purpose: "x",
			EndTime: ptr.Ptr(types.TimeString("12:00"))}},
		{"start equals end", timeRangeRequest("10:00", "10:00")},
		{"start after end", timeRangeRequest("14:00", "10:00")},
		{"unknown session", &Request{UserID: "u1", VenueID: "v1", Date: testDate, Purpose: "x",
			Session: ptr.Ptr(domain.SessionSlot("LUNCH"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
			// Некорректное расписание отличимо от конфликта слота
			assert.NotErrorIs(t, err, ErrSlotConflict)
		})
	}
}

func TestExecute_FailsClosedOnFetchError(t *testing.T) {
	repo := &fakeBookingRepo{listErr: errors.New("connection refused")}
	uc, repo, _, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), timeRangeRequest("10:00", "12:00"))

	// Ошибка чтения не допускает заявку и отличима от конфликта
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, repo.created)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase(&fakeBookingRepo{})

	req := timeRangeRequest("10:00", "12:00")
	req.VenueID = "missing"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase(&fakeBookingRepo{})

	req := timeRangeRequest("10:00", "12:00")
	req.UserID = "ghost"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	uc, repo, publisher, _ := newTestUseCase(&fakeBookingRepo{})
	publisher.err = errors.New("broker down")

	resp, err := uc.Execute(context.Background(), timeRangeRequest("10:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, "booking-new", resp.ID)
	require.Len(t, repo.created, 1)
}
