package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/logger"
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/internal/utils"
)

// BookRide creates a pending ride for a student. Wallet-paid rides get
// an advisory balance check up front; the binding check happens again
// at completion inside the transfer transaction.
func (uc *RideUC) BookRide(ctx context.Context, studentID uuid.UUID, req *models.BookRideRequest) (*models.Ride, error) {
	if req.Fare <= 0 {
		return nil, errs.Validation("fare must be greater than zero")
	}
	if !req.PaymentMethod.Valid() {
		return nil, errs.Validation("payment method must be Cash or Wallet")
	}
	if req.PickupLocation.Address == "" || req.DropoffLocation.Address == "" {
		return nil, errs.Validation("pickup and dropoff addresses are required")
	}
	if !utils.ValidateCoordinates(req.PickupLocation.Latitude, req.PickupLocation.Longitude) ||
		!utils.ValidateCoordinates(req.DropoffLocation.Latitude, req.DropoffLocation.Longitude) {
		return nil, errs.Validation("invalid coordinates")
	}

	if req.PaymentMethod == models.PaymentMethodWallet {
		wallet, err := uc.balances.GetWalletByUser(ctx, studentID, models.RoleStudent)
		if err != nil {
			return nil, err
		}
		if wallet.Balance < req.Fare {
			return nil, errs.ErrInsufficientBalance
		}
	}

	ride := &models.Ride{
		StudentID:         studentID,
		Pickup:            req.PickupLocation,
		Dropoff:           req.DropoffLocation,
		Fare:              req.Fare,
		PaymentMethod:     req.PaymentMethod,
		EstimatedDistance: req.EstimatedDistance,
		EstimatedDuration: req.EstimatedDuration,
	}

	if err := uc.rideRepo.CreateRide(ctx, ride); err != nil {
		return nil, err
	}

	uc.publish(ctx, uc.rideGW.PublishRideBooked, ride)

	logger.Info("Ride booked",
		logger.String("ride_id", ride.ID.String()),
		logger.String("student_id", studentID.String()),
		logger.Float64("fare", ride.Fare))
	return ride, nil
}

// ListAvailableRides returns the newest pending rides for drivers to
// pick from
func (uc *RideUC) ListAvailableRides(ctx context.Context) ([]models.Ride, error) {
	return uc.rideRepo.ListPendingRides(ctx, availableRidesLimit)
}

// AcceptRide lets an available driver claim a pending ride. When two
// drivers race, the conditional update in the repository picks one
// winner and the loser gets ErrRideNotPending.
func (uc *RideUC) AcceptRide(ctx context.Context, driverID, rideID uuid.UUID) (*models.Ride, error) {
	driver, err := uc.drivers.GetDriverByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !driver.IsAvailable {
		return nil, errs.ErrDriverUnavailable
	}

	if err := uc.rideRepo.AcceptRide(ctx, rideID, driverID); err != nil {
		// distinguish a missing ride from a lost race
		if _, getErr := uc.rideRepo.GetRideByID(ctx, rideID); getErr != nil {
			return nil, getErr
		}
		return nil, err
	}

	ride, err := uc.rideRepo.GetRideByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, uc.rideGW.PublishRideAccepted, ride)

	logger.Info("Ride accepted",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", driverID.String()))
	return ride, nil
}

// StartRide moves the assigned driver's accepted ride to ongoing
func (uc *RideUC) StartRide(ctx context.Context, driverID, rideID uuid.UUID) (*models.Ride, error) {
	ride, err := uc.rideRepo.GetRideByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID == nil || *ride.DriverID != driverID {
		return nil, errs.ErrUnauthorizedRide
	}

	if err := uc.rideRepo.StartRide(ctx, rideID, driverID); err != nil {
		return nil, err
	}

	ride, err = uc.rideRepo.GetRideByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, uc.rideGW.PublishRideStarted, ride)

	logger.Info("Ride started",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", driverID.String()))
	return ride, nil
}

// CompleteRide finishes an ongoing ride. For wallet-paid rides the fare
// moves from the student to the driver atomically with the status
// change; if the balance no longer covers the fare the ride stays
// ongoing and the driver can retry after the student tops up.
func (uc *RideUC) CompleteRide(ctx context.Context, driverID, rideID uuid.UUID, req *models.CompleteRideRequest) (*models.Ride, error) {
	ride, err := uc.rideRepo.GetRideByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID == nil || *ride.DriverID != driverID {
		return nil, errs.ErrUnauthorizedRide
	}
	if ride.Status != models.RideStatusOngoing {
		return nil, errs.ErrInvalidTransition
	}

	if err := uc.rideRepo.CompleteRide(ctx, ride, req); err != nil {
		return nil, err
	}

	ride, err = uc.rideRepo.GetRideByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, uc.rideGW.PublishRideCompleted, ride)

	logger.Info("Ride completed",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", driverID.String()),
		logger.String("payment_method", string(ride.PaymentMethod)))
	return ride, nil
}

// CancelRide moves a non-terminal ride to cancelled. Students may
// cancel their own rides; drivers only rides assigned to them.
func (uc *RideUC) CancelRide(ctx context.Context, callerID uuid.UUID, role models.Role, rideID uuid.UUID, req *models.CancelRideRequest) (*models.Ride, error) {
	ride, err := uc.rideRepo.GetRideByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleStudent:
		if ride.StudentID != callerID {
			return nil, errs.ErrUnauthorizedRide
		}
	case models.RoleDriver:
		if ride.DriverID == nil || *ride.DriverID != callerID {
			return nil, errs.ErrUnauthorizedRide
		}
	default:
		return nil, errs.ErrUnauthorizedRide
	}

	if ride.Status == models.RideStatusCompleted {
		return nil, errs.ErrAlreadyCompleted
	}
	if ride.Status.Terminal() {
		return nil, errs.ErrInvalidTransition
	}

	reason := "No reason provided"
	if req != nil && req.Reason != "" {
		reason = req.Reason
	}

	if err := uc.rideRepo.CancelRide(ctx, rideID, role, &reason); err != nil {
		return nil, err
	}

	ride, err = uc.rideRepo.GetRideByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, uc.rideGW.PublishRideCancelled, ride)

	logger.Info("Ride cancelled",
		logger.String("ride_id", rideID.String()),
		logger.String("cancelled_by", string(role)))
	return ride, nil
}

// RateRide records a student's one-time rating of a completed ride and
// refreshes the driver's average.
func (uc *RideUC) RateRide(ctx context.Context, studentID, rideID uuid.UUID, req *models.RateRideRequest) (*models.Ride, error) {
	if !utils.ValidateRating(req.Rating) {
		return nil, errs.ErrInvalidRating
	}

	ride, err := uc.rideRepo.GetRideByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.StudentID != studentID {
		return nil, errs.ErrUnauthorizedRide
	}
	if ride.Status != models.RideStatusCompleted {
		return nil, errs.ErrNotCompleted
	}
	if ride.Rating != nil {
		return nil, errs.ErrAlreadyRated
	}

	if err := uc.rideRepo.RateRide(ctx, rideID, *ride.DriverID, req.Rating, req.Review); err != nil {
		return nil, err
	}

	return uc.rideRepo.GetRideByID(ctx, rideID)
}

// GetRide returns a ride to one of its participants
func (uc *RideUC) GetRide(ctx context.Context, callerID uuid.UUID, role models.Role, rideID uuid.UUID) (*models.Ride, error) {
	ride, err := uc.rideRepo.GetRideByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleStudent:
		if ride.StudentID != callerID {
			return nil, errs.ErrUnauthorizedRide
		}
	case models.RoleDriver:
		if ride.DriverID == nil || *ride.DriverID != callerID {
			return nil, errs.ErrUnauthorizedRide
		}
	default:
		return nil, errs.ErrUnauthorizedRide
	}
	return ride, nil
}

// ListStudentRides returns the caller's ride history, newest first,
// optionally filtered by status
func (uc *RideUC) ListStudentRides(ctx context.Context, studentID uuid.UUID, status *models.RideStatus) ([]models.Ride, error) {
	if status != nil && !status.Valid() {
		return nil, errs.Validation("unknown ride status")
	}
	return uc.rideRepo.ListByStudent(ctx, studentID, status)
}

// ListDriverRides returns the caller's ride history, newest first,
// optionally filtered by status
func (uc *RideUC) ListDriverRides(ctx context.Context, driverID uuid.UUID, status *models.RideStatus) ([]models.Ride, error) {
	if status != nil && !status.Valid() {
		return nil, errs.Validation("unknown ride status")
	}
	return uc.rideRepo.ListByDriver(ctx, driverID, status)
}

func (uc *RideUC) publish(ctx context.Context, fn func(context.Context, *models.RideEvent) error, ride *models.Ride) {
	event := &models.RideEvent{
		RideID:        ride.ID.String(),
		StudentID:     ride.StudentID.String(),
		Status:        ride.Status,
		Fare:          ride.Fare,
		PaymentMethod: ride.PaymentMethod,
		OccurredAt:    time.Now(),
	}
	if ride.DriverID != nil {
		event.DriverID = ride.DriverID.String()
	}
	if err := fn(ctx, event); err != nil {
		logger.Warn("Failed to publish ride event",
			logger.String("ride_id", event.RideID),
			logger.String("status", string(event.Status)),
			logger.Err(err))
	}
}
