package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueService/internal/integrations/userservice"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking

	cancelledID     string
	cancelledReason string
	updatedID       string
	updatedStatus   domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.VenueID != nil && b.VenueID != *filter.VenueID {
			continue
		}
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && b.IsInert() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id string, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledID = id
	f.cancelledReason = reason
	return nil
}

type fakeUserClient struct {
	users map[string]*userservice.User
}

func (f *fakeUserClient) GetUser(_ context.Context, userID string) (*userservice.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return u, nil
}

type fakePublisher struct {
	published []*domain.Booking
}

func (f *fakePublisher) BookingStatusChanged(_ context.Context, b *domain.Booking) error {
	f.published = append(f.published, b)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newBooking(id, userID string, status domain.BookingStatus) *domain.Booking {
	schedule, _ := domain.NewSessionSchedule(domain.SessionMorning)
	return &domain.Booking{
		ID:       id,
		VenueID:  "v1",
		UserID:   userID,
		UserName: "Alex Rivera",
		Date:     time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		Schedule: schedule,
		Status:   status,
	}
}

func newTestService(repo *fakeBookingRepo) (*Service, *fakePublisher) {
	users := &fakeUserClient{users: map[string]*userservice.User{
		"owner": {ID: "owner", Name: "Alex Rivera", Role: userservice.RoleUser},
		"other": {ID: "other", Name: "Sam Lee", Role: userservice.RoleUser},
		"admin": {ID: "admin", Name: "Dana Cole", Role: userservice.RoleAdmin},
	}}
	publisher := &fakePublisher{}
	return NewService(repo, users, publisher, nopLogger{}), publisher
}

func TestGetByID_OwnerAndAdminAccess(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"b1": newBooking("b1", "owner", domain.StatusPending),
	}}
	svc, _ := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), "b1", "owner")
	require.NoError(t, err)
	assert.Equal(t, "b1", resp.ID)

	_, err = svc.GetByID(context.Background(), "b1", "admin")
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "b1", "other")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(&fakeBookingRepo{bookings: map[string]*domain.Booking{}})

	_, err := svc.GetByID(context.Background(), "missing", "owner")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBookings_AdminOnly(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"b1": newBooking("b1", "owner", domain.StatusPending),
		"b2": newBooking("b2", "other", domain.StatusCancelled),
	}}
	svc, _ := newTestService(repo)

	_, err := svc.GetBookings(context.Background(), &models.GetBookingsRequest{RequesterID: "owner"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetBookings(context.Background(), &models.GetBookingsRequest{RequesterID: "admin"})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = svc.GetBookings(context.Background(), &models.GetBookingsRequest{
		RequesterID:     "admin",
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestUpdateStatus_AdminApproves(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"b1": newBooking("b1", "owner", domain.StatusPending),
	}}
	svc, publisher := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), "b1", &models.UpdateStatusRequest{
		UserID: "admin",
		Status: "APPROVED",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, repo.updatedStatus)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, domain.StatusApproved, publisher.published[0].Status)
}

func TestUpdateStatus_NonAdminDenied(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"b1": newBooking("b1", "owner", domain.StatusPending),
	}}
	svc, _ := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), "b1", &models.UpdateStatusRequest{
		UserID: "owner",
		Status: "APPROVED",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.updatedID)
}

func TestUpdateStatus_TerminalStatesLocked(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
				"b1": newBooking("b1", "owner", status),
			}}
			svc, _ := newTestService(repo)

			err := svc.UpdateStatus(context.Background(), "b1", &models.UpdateStatusRequest{
				UserID: "admin",
				Status: "APPROVED",
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"b1": newBooking("b1", "owner", domain.StatusPending),
	}}
	svc, _ := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), "b1", &models.UpdateStatusRequest{
		UserID: "admin",
		Status: "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel_OwnerCancelsPending(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"b1": newBooking("b1", "owner", domain.StatusPending),
	}}
	svc, publisher := newTestService(repo)

	err := svc.Cancel(context.Background(), "b1", &models.CancelBookingRequest{
		UserID:             "owner",
		CancellationReason: "plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", repo.cancelledID)
	assert.Equal(t, "plans changed", repo.cancelledReason)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, domain.StatusCancelled, publisher.published[0].Status)
}

func TestCancel_AdminCancelsForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"b1": newBooking("b1", "owner", domain.StatusPending),
	}}
	svc, _ := newTestService(repo)

	err := svc.Cancel(context.Background(), "b1", &models.CancelBookingRequest{UserID: "admin"})
	assert.NoError(t, err)
}

func TestCancel_ForeignBookingDenied(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"b1": newBooking("b1", "owner", domain.StatusPending),
	}}
	svc, _ := newTestService(repo)

	err := svc.Cancel(context.Background(), "b1", &models.CancelBookingRequest{UserID: "other"})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelledID)
}

func TestCancel_NonPendingCannotBeCancelled(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
				"b1": newBooking("b1", "owner", status),
			}}
			svc, _ := newTestService(repo)

			err := svc.Cancel(context.Background(), "b1", &models.CancelBookingRequest{UserID: "owner"})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestGetUserBookings_FiltersByStatus(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"b1": newBooking("b1", "owner", domain.StatusPending),
		"b2": newBooking("b2", "owner", domain.StatusCancelled),
		"b3": newBooking("b3", "other", domain.StatusPending),
	}}
	svc, _ := newTestService(repo)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: "owner"})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	status := "PENDING"
	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: "owner",
		Status: &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "b1", resp.Bookings[0].ID)
}
