package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/models"
)

// rideRow flattens the pickup and dropoff locations for sqlx scanning.
type rideRow struct {
	models.Ride
	PickupAddress  string  `db:"pickup_address"`
	PickupLat      float64 `db:"pickup_lat"`
	PickupLng      float64 `db:"pickup_lng"`
	DropoffAddress string  `db:"dropoff_address"`
	DropoffLat     float64 `db:"dropoff_lat"`
	DropoffLng     float64 `db:"dropoff_lng"`
}

func (row *rideRow) toRide() models.Ride {
	ride := row.Ride
	ride.Pickup = models.Location{
		Address:   row.PickupAddress,
		Latitude:  row.PickupLat,
		Longitude: row.PickupLng,
	}
	ride.Dropoff = models.Location{
		Address:   row.DropoffAddress,
		Latitude:  row.DropoffLat,
		Longitude: row.DropoffLng,
	}
	return ride
}

const rideColumns = `
	id, student_id, driver_id,
	pickup_address, pickup_lat, pickup_lng,
	dropoff_address, dropoff_lat, dropoff_lng,
	fare, payment_method, status,
	estimated_distance, estimated_duration, actual_distance, actual_duration,
	start_time, end_time, rating, review,
	cancelled_by, cancellation_reason, created_at, updated_at
`

// CreateRide inserts a new pending ride
func (r *RideRepo) CreateRide(ctx context.Context, ride *models.Ride) error {
	ride.ID = uuid.New()
	ride.Status = models.RideStatusPending
	now := time.Now()
	ride.CreatedAt = now
	ride.UpdatedAt = now

	row := rideRow{
		Ride:           *ride,
		PickupAddress:  ride.Pickup.Address,
		PickupLat:      ride.Pickup.Latitude,
		PickupLng:      ride.Pickup.Longitude,
		DropoffAddress: ride.Dropoff.Address,
		DropoffLat:     ride.Dropoff.Latitude,
		DropoffLng:     ride.Dropoff.Longitude,
	}

	query := `
		INSERT INTO rides (id, student_id,
			pickup_address, pickup_lat, pickup_lng,
			dropoff_address, dropoff_lat, dropoff_lng,
			fare, payment_method, status,
			estimated_distance, estimated_duration, created_at, updated_at
		) VALUES (:id, :student_id,
			:pickup_address, :pickup_lat, :pickup_lng,
			:dropoff_address, :dropoff_lat, :dropoff_lng,
			:fare, :payment_method, :status,
			:estimated_distance, :estimated_duration, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, &row); err != nil {
		return fmt.Errorf("failed to insert ride: %w", err)
	}
	return nil
}

// GetRideByID retrieves a ride by ID
func (r *RideRepo) GetRideByID(ctx context.Context, id uuid.UUID) (*models.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	var row rideRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}
	ride := row.toRide()
	return &ride, nil
}

// ListPendingRides returns the newest unassigned rides up to limit
func (r *RideRepo) ListPendingRides(ctx context.Context, limit int) ([]models.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.selectRides(ctx, query, models.RideStatusPending, limit)
}

// ListByStudent returns a student's rides, newest first, optionally
// narrowed to one status
func (r *RideRepo) ListByStudent(ctx context.Context, studentID uuid.UUID, status *models.RideStatus) ([]models.Ride, error) {
	return r.listByParticipant(ctx, "student_id", studentID, status)
}

// ListByDriver returns a driver's rides, newest first, optionally
// narrowed to one status
func (r *RideRepo) ListByDriver(ctx context.Context, driverID uuid.UUID, status *models.RideStatus) ([]models.Ride, error) {
	return r.listByParticipant(ctx, "driver_id", driverID, status)
}

func (r *RideRepo) listByParticipant(ctx context.Context, column string, participantID uuid.UUID, status *models.RideStatus) ([]models.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides
		WHERE ` + column + ` = $1
	`
	args := []interface{}{participantID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	return r.selectRides(ctx, query, args...)
}

// AcceptRide claims a pending ride for a driver. The status guard in
// the WHERE clause makes the claim first-wins under concurrency.
func (r *RideRepo) AcceptRide(ctx context.Context, rideID, driverID uuid.UUID) error {
	query := `
		UPDATE rides
		SET status = $1, driver_id = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		models.RideStatusAccepted, driverID, time.Now(), rideID, models.RideStatusPending)
	if err != nil {
		return fmt.Errorf("failed to accept ride: %w", err)
	}
	return checkTransition(result, errs.ErrRideNotPending)
}

// StartRide moves an accepted ride to ongoing and stamps the start time
func (r *RideRepo) StartRide(ctx context.Context, rideID, driverID uuid.UUID) error {
	now := time.Now()
	query := `
		UPDATE rides
		SET status = $1, start_time = $2, updated_at = $2
		WHERE id = $3 AND driver_id = $4 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		models.RideStatusOngoing, now, rideID, driverID, models.RideStatusAccepted)
	if err != nil {
		return fmt.Errorf("failed to start ride: %w", err)
	}
	return checkTransition(result, errs.ErrInvalidTransition)
}

// CompleteRide finishes an ongoing ride. For wallet-paid rides the fare
// transfer happens in the same transaction as the status change, so an
// insufficient balance rolls everything back and the ride stays
// ongoing. The driver's ride counter is bumped in the same transaction.
func (r *RideRepo) CompleteRide(ctx context.Context, ride *models.Ride, req *models.CompleteRideRequest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if ride.PaymentMethod == models.PaymentMethodWallet {
		if err = r.ledger.TransferForRideTx(ctx, tx, ride.ID, ride.StudentID, *ride.DriverID, ride.Fare); err != nil {
			return err
		}
	}

	now := time.Now()
	query := `
		UPDATE rides
		SET status = $1, end_time = $2, actual_distance = $3, actual_duration = $4, updated_at = $2
		WHERE id = $5 AND driver_id = $6 AND status = $7
	`
	result, err := tx.ExecContext(ctx, query,
		models.RideStatusCompleted, now, req.ActualDistance, req.ActualDuration,
		ride.ID, *ride.DriverID, models.RideStatusOngoing)
	if err != nil {
		return fmt.Errorf("failed to complete ride: %w", err)
	}
	if err = checkTransition(result, errs.ErrInvalidTransition); err != nil {
		return err
	}

	counterQuery := `UPDATE drivers SET total_rides = total_rides + 1, updated_at = $1 WHERE id = $2`
	if _, err = tx.ExecContext(ctx, counterQuery, now, *ride.DriverID); err != nil {
		return fmt.Errorf("failed to update ride counter: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CancelRide moves a non-terminal ride to cancelled, recording who
// cancelled and why
func (r *RideRepo) CancelRide(ctx context.Context, rideID uuid.UUID, cancelledBy models.Role, reason *string) error {
	query := `
		UPDATE rides
		SET status = $1, cancelled_by = $2, cancellation_reason = $3, updated_at = $4
		WHERE id = $5 AND status IN ($6, $7, $8)
	`
	result, err := r.db.ExecContext(ctx, query,
		models.RideStatusCancelled, cancelledBy, reason, time.Now(), rideID,
		models.RideStatusPending, models.RideStatusAccepted, models.RideStatusOngoing)
	if err != nil {
		return fmt.Errorf("failed to cancel ride: %w", err)
	}
	return checkTransition(result, errs.ErrInvalidTransition)
}

// RateRide stores the rating once and refreshes the driver's average
// in the same transaction. The rating IS NULL guard makes a second
// rating attempt lose.
func (r *RideRepo) RateRide(ctx context.Context, rideID, driverID uuid.UUID, rating int, review *string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	query := `
		UPDATE rides
		SET rating = $1, review = $2, updated_at = $3
		WHERE id = $4 AND status = $5 AND rating IS NULL
	`
	result, err := tx.ExecContext(ctx, query,
		rating, review, now, rideID, models.RideStatusCompleted)
	if err != nil {
		return fmt.Errorf("failed to rate ride: %w", err)
	}
	if err = checkTransition(result, errs.ErrAlreadyRated); err != nil {
		return err
	}

	avgQuery := `
		UPDATE drivers
		SET rating = (
			SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)
			FROM rides
			WHERE driver_id = $1 AND rating IS NOT NULL
		), updated_at = $2
		WHERE id = $1
	`
	if _, err = tx.ExecContext(ctx, avgQuery, driverID, now); err != nil {
		return fmt.Errorf("failed to refresh driver rating: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *RideRepo) selectRides(ctx context.Context, query string, args ...interface{}) ([]models.Ride, error) {
	var rows []rideRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}

	rideList := make([]models.Ride, 0, len(rows))
	for i := range rows {
		rideList = append(rideList, rows[i].toRide())
	}
	return rideList, nil
}

func checkTransition(result sql.Result, guardErr error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return guardErr
	}
	return nil
}
