package rides

import (
	"context"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/camride/camride/services/rides RideUC

// RideUC represents the ride usecase interface
type RideUC interface {
	// booking
	BookRide(ctx context.Context, studentID uuid.UUID, req *models.BookRideRequest) (*models.Ride, error)
	ListAvailableRides(ctx context.Context) ([]models.Ride, error)

	// lifecycle
	AcceptRide(ctx context.Context, driverID, rideID uuid.UUID) (*models.Ride, error)
	StartRide(ctx context.Context, driverID, rideID uuid.UUID) (*models.Ride, error)
	CompleteRide(ctx context.Context, driverID, rideID uuid.UUID, req *models.CompleteRideRequest) (*models.Ride, error)
	CancelRide(ctx context.Context, callerID uuid.UUID, role models.Role, rideID uuid.UUID, req *models.CancelRideRequest) (*models.Ride, error)

	// rating
	RateRide(ctx context.Context, studentID, rideID uuid.UUID, req *models.RateRideRequest) (*models.Ride, error)

	// history
	GetRide(ctx context.Context, callerID uuid.UUID, role models.Role, rideID uuid.UUID) (*models.Ride, error)
	ListStudentRides(ctx context.Context, studentID uuid.UUID, status *models.RideStatus) ([]models.Ride, error)
	ListDriverRides(ctx context.Context, driverID uuid.UUID, status *models.RideStatus) ([]models.Ride, error)
}

// DriverDirectory exposes the driver lookups the ride flow needs.
// Satisfied by the accounts repository.
type DriverDirectory interface {
	GetDriverByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
}

// BalanceReader exposes the wallet lookup used for the booking
// pre-check on wallet-paid rides. Satisfied by the wallet repository.
type BalanceReader interface {
	GetWalletByUser(ctx context.Context, userID uuid.UUID, role models.Role) (*models.Wallet, error)
}
