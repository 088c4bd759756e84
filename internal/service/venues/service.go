package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	userClient "github.com/m04kA/SMC-VenueService/internal/integrations/userservice"
	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
)

// Service сервис для работы с площадками
type Service struct {
	venueRepo   VenueRepository
	bookingRepo BookingRepository
	userClient  UserServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(
	venueRepo VenueRepository,
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		venueRepo:   venueRepo,
		bookingRepo: bookingRepo,
		userClient:  userClient,
		logger:      logger,
	}
}

// List возвращает все площадки, доступно всем аутентифицированным пользователям
func (s *Service) List(ctx context.Context) (*models.VenueListResponse, error) {
	s.logger.Info("List: fetching all venues")

	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d venues", len(venues))
	return models.FromDomainVenueList(venues), nil
}

// GetByID получает площадку по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.VenueResponse, error) {
	s.logger.Info("GetByID: fetching venue id=%s", id)

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetByID: venue id=%s not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetByID: repository error for venue id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVenue(venue), nil
}

// Create создает новую площадку, доступно только администраторам
func (s *Service) Create(ctx context.Context, req *models.CreateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Create: creating venue name=%s by user=%s", req.Name, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		s.logger.Warn("Create: empty venue name from user=%s", req.UserID)
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	venue, err := s.venueRepo.Create(ctx, req.ToDomainVenue())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created venue id=%s", venue.ID)
	return models.FromDomainVenue(venue), nil
}

// Update частично обновляет площадку, доступно только администраторам
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Update: updating venue id=%s by user=%s", id, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	update := req.ToDomainUpdate()
	if update.IsEmpty() {
		s.logger.Warn("Update: empty update for venue id=%s", id)
		return nil, fmt.Errorf("%w: at least one field must be set", ErrInvalidInput)
	}

	if err := s.venueRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("Update: venue id=%s not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Update: repository error for venue id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to re-fetch venue id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated venue id=%s", id)
	return models.FromDomainVenue(venue), nil
}

// Delete удаляет площадку, доступно только администраторам
// Площадка с активными (PENDING или APPROVED) бронированиями не удаляется
func (s *Service) Delete(ctx context.Context, id string, userID string) error {
	s.logger.Info("Delete: deleting venue id=%s by user=%s", id, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	// Проверяем существование площадки до проверки бронирований,
	// чтобы отличать 404 от 409
	if _, err := s.venueRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("Delete: venue id=%s not found", id)
			return ErrVenueNotFound
		}
		s.logger.Error("Delete: repository error for venue id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	hasActive, err := s.bookingRepo.HasActiveForVenue(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to check active bookings for venue id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to check bookings: %v", ErrInternal, err)
	}
	if hasActive {
		s.logger.Warn("Delete: venue id=%s has active bookings", id)
		return ErrHasActiveBookings
	}

	if err := s.venueRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("Delete: venue id=%s not found during deletion", id)
			return ErrVenueNotFound
		}
		s.logger.Error("Delete: repository error for venue id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted venue id=%s", id)
	return nil
}

// checkAdminAccess проверяет, что пользователь является администратором
func (s *Service) checkAdminAccess(ctx context.Context, userID string) error {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("checkAdminAccess: user id=%s not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkAdminAccess: failed to get user id=%s: %v", userID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user=%s is not an administrator", userID)
		return ErrAccessDenied
	}

	return nil
}
