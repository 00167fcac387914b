package rides

import (
	"context"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/camride/camride/services/rides RideRepo

// RideRepo defines the ride repository interface. Every status change
// is a conditional update keyed on the expected current status, so two
// racing writers cannot both win.
type RideRepo interface {
	CreateRide(ctx context.Context, ride *models.Ride) error
	GetRideByID(ctx context.Context, id uuid.UUID) (*models.Ride, error)

	// listings
	ListPendingRides(ctx context.Context, limit int) ([]models.Ride, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, status *models.RideStatus) ([]models.Ride, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID, status *models.RideStatus) ([]models.Ride, error)

	// lifecycle transitions
	AcceptRide(ctx context.Context, rideID, driverID uuid.UUID) error
	StartRide(ctx context.Context, rideID, driverID uuid.UUID) error
	CompleteRide(ctx context.Context, ride *models.Ride, req *models.CompleteRideRequest) error
	CancelRide(ctx context.Context, rideID uuid.UUID, cancelledBy models.Role, reason *string) error

	// rating
	RateRide(ctx context.Context, rideID, driverID uuid.UUID, rating int, review *string) error
}
