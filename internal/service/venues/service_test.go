package venues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/integrations/userservice"
	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

type fakeVenueRepo struct {
	venues    map[string]*domain.Venue
	deletedID string
}

func (f *fakeVenueRepo) Create(_ context.Context, v *domain.Venue) (*domain.Venue, error) {
	created := *v
	created.ID = "v-new"
	f.venues[created.ID] = &created
	return &created, nil
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, venueRepo.ErrVenueNotFound
	}
	return v, nil
}

func (f *fakeVenueRepo) List(_ context.Context) ([]*domain.Venue, error) {
	result := make([]*domain.Venue, 0, len(f.venues))
	for _, v := range f.venues {
		result = append(result, v)
	}
	return result, nil
}

func (f *fakeVenueRepo) Update(_ context.Context, id string, update domain.VenueUpdate) error {
	v, ok := f.venues[id]
	if !ok {
		return venueRepo.ErrVenueNotFound
	}
	if update.Name != nil {
		v.Name = *update.Name
	}
	if update.Capacity != nil {
		v.Capacity = *update.Capacity
	}
	return nil
}

func (f *fakeVenueRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.venues[id]; !ok {
		return venueRepo.ErrVenueNotFound
	}
	delete(f.venues, id)
	f.deletedID = id
	return nil
}

type fakeBookingRepo struct {
	activeVenues map[string]bool
}

func (f *fakeBookingRepo) HasActiveForVenue(_ context.Context, venueID string) (bool, error) {
	return f.activeVenues[venueID], nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(activeVenues map[string]bool) (*Service, *fakeVenueRepo) {
	venues := &fakeVenueRepo{venues: map[string]*domain.Venue{
		"v1": {ID: "v1", Name: "Skyline Boardroom", Capacity: 12},
	}}
	users := &fakeUserClient{users: map[string]*userservice.User{
		"user":  {ID: "user", Name: "Alex Rivera", Role: userservice.RoleUser},
		"admin": {ID: "admin", Name: "Dana Cole", Role: userservice.RoleAdmin},
	}}
	bookingRepo := &fakeBookingRepo{activeVenues: activeVenues}
	return NewService(venues, bookingRepo, users, nopLogger{}), venues
}

func TestCreate_AdminOnly(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Create(context.Background(), &models.CreateVenueRequest{
		UserID: "user",
		Name:   "Rooftop Terrace",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.Create(context.Background(), &models.CreateVenueRequest{
		UserID: "admin",
		Name:   "Rooftop Terrace",
	})
	require.NoError(t, err)
	assert.Equal(t, "v-new", resp.ID)
	assert.Equal(t, "Rooftop Terrace", resp.Name)
}

func TestCreate_EmptyName(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Create(context.Background(), &models.CreateVenueRequest{
		UserID: "admin",
		Name:   "   ",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_PartialUpdate(t *testing.T) {
	svc, repo := newTestService(nil)

	resp, err := svc.Update(context.Background(), "v1", &models.UpdateVenueRequest{
		UserID:   "admin",
		Capacity: ptr.Ptr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Capacity)
	assert.Equal(t, "Skyline Boardroom", repo.venues["v1"].Name)
}

func TestUpdate_EmptyUpdateRejected(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Update(context.Background(), "v1", &models.UpdateVenueRequest{UserID: "admin"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_GuardedByActiveBookings(t *testing.T) {
	svc, repo := newTestService(map[string]bool{"v1": true})

	err := svc.Delete(context.Background(), "v1", "admin")
	assert.ErrorIs(t, err, ErrHasActiveBookings)
	assert.Empty(t, repo.deletedID)
}

func TestDelete_NoActiveBookings(t *testing.T) {
	svc, repo := newTestService(nil)

	err := svc.Delete(context.Background(), "v1", "admin")
	require.NoError(t, err)
	assert.Equal(t, "v1", repo.deletedID)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newTestService(nil)

	err := svc.Delete(context.Background(), "missing", "admin")
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestDelete_AdminOnly(t *testing.T) {
	svc, _ := newTestService(nil)

	err := svc.Delete(context.Background(), "v1", "user")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService(nil)

	resp, err := svc.GetByID(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "Skyline Boardroom", resp.Name)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestList(t *testing.T) {
	svc, _ := newTestService(nil)

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Venues, 1)
}
