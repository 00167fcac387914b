package usecase

import (
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/services/rides"
)

// availableRidesLimit caps the open rides shown to drivers.
const availableRidesLimit = 20

type RideUC struct {
	rideRepo rides.RideRepo
	rideGW   rides.RideGW
	drivers  rides.DriverDirectory
	balances rides.BalanceReader
	cfg      *models.Config
}

// NewRideUC creates a new ride usecase instance
func NewRideUC(
	rideRepo rides.RideRepo,
	rideGW rides.RideGW,
	drivers rides.DriverDirectory,
	balances rides.BalanceReader,
	cfg *models.Config,
) *RideUC {
	return &RideUC{
		rideRepo: rideRepo,
		rideGW:   rideGW,
		drivers:  drivers,
		balances: balances,
		cfg:      cfg,
	}
}
