package update_venue

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
)

type VenueService interface {
	Update(ctx context.Context, id string, req *models.UpdateVenueRequest) (*models.VenueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
