package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/camride/camride/internal/pkg/database"
	"github.com/camride/camride/internal/pkg/models"
)

// FareLedger moves a ride's fare from the student to the driver within
// the caller's transaction. Satisfied by the wallet repository.
type FareLedger interface {
	TransferForRideTx(ctx context.Context, tx *sqlx.Tx, rideID, studentID, driverID uuid.UUID, amount float64) error
}

// RideRepo implements the ride repository on PostgreSQL
type RideRepo struct {
	cfg    *models.Config
	db     *sqlx.DB
	ledger FareLedger
}

// NewRideRepo creates a new ride repository instance
func NewRideRepo(cfg *models.Config, client *database.PostgresClient, ledger FareLedger) *RideRepo {
	return &RideRepo{
		cfg:    cfg,
		db:     client.GetDB(),
		ledger: ledger,
	}
}
