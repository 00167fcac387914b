package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/services/rides/mocks"
)

type rideUCDeps struct {
	rideRepo *mocks.MockRideRepo
	rideGW   *mocks.MockRideGW
	drivers  *mocks.MockDriverDirectory
	balances *mocks.MockBalanceReader
}

func setupRideUCTest(t *testing.T) (*RideUC, rideUCDeps, func()) {
	ctrl := gomock.NewController(t)

	deps := rideUCDeps{
		rideRepo: mocks.NewMockRideRepo(ctrl),
		rideGW:   mocks.NewMockRideGW(ctrl),
		drivers:  mocks.NewMockDriverDirectory(ctrl),
		balances: mocks.NewMockBalanceReader(ctrl),
	}
	uc := NewRideUC(deps.rideRepo, deps.rideGW, deps.drivers, deps.balances, &models.Config{})

	return uc, deps, ctrl.Finish
}

func bookRequest(method models.PaymentMethod) *models.BookRideRequest {
	return &models.BookRideRequest{
		PickupLocation:  models.Location{Address: "Main Gate", Latitude: 6.5244, Longitude: 3.3792},
		DropoffLocation: models.Location{Address: "Faculty of Science", Latitude: 6.5170, Longitude: 3.3900},
		Fare:            150,
		PaymentMethod:   method,
	}
}

func TestBookRide_CashSkipsBalanceCheck(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	studentID := uuid.New()

	// no GetWalletByUser expectation: a cash booking must not touch the wallet
	deps.rideRepo.EXPECT().CreateRide(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ride *models.Ride) error {
			ride.ID = uuid.New()
			ride.Status = models.RideStatusPending
			return nil
		})
	deps.rideGW.EXPECT().PublishRideBooked(gomock.Any(), gomock.Any()).Return(nil)

	ride, err := uc.BookRide(context.Background(), studentID, bookRequest(models.PaymentMethodCash))

	assert.NoError(t, err)
	assert.Equal(t, models.RideStatusPending, ride.Status)
	assert.Equal(t, studentID, ride.StudentID)
}

func TestBookRide_WalletInsufficientBalance(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	studentID := uuid.New()

	deps.balances.EXPECT().GetWalletByUser(gomock.Any(), studentID, models.RoleStudent).
		Return(&models.Wallet{Balance: 100}, nil)

	_, err := uc.BookRide(context.Background(), studentID, bookRequest(models.PaymentMethodWallet))

	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
}

func TestBookRide_InvalidFare(t *testing.T) {
	uc, _, finish := setupRideUCTest(t)
	defer finish()

	req := bookRequest(models.PaymentMethodCash)
	req.Fare = 0

	_, err := uc.BookRide(context.Background(), uuid.New(), req)

	assert.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestBookRide_PublishFailureDoesNotFailBooking(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	deps.rideRepo.EXPECT().CreateRide(gomock.Any(), gomock.Any()).Return(nil)
	deps.rideGW.EXPECT().PublishRideBooked(gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	_, err := uc.BookRide(context.Background(), uuid.New(), bookRequest(models.PaymentMethodCash))

	assert.NoError(t, err)
}

func TestAcceptRide_DriverUnavailable(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	driverID := uuid.New()

	deps.drivers.EXPECT().GetDriverByID(gomock.Any(), driverID).
		Return(&models.Driver{ID: driverID, IsAvailable: false}, nil)

	_, err := uc.AcceptRide(context.Background(), driverID, uuid.New())

	assert.ErrorIs(t, err, errs.ErrDriverUnavailable)
}

func TestAcceptRide_LostRaceSurfacesNotPending(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	driverID := uuid.New()
	rideID := uuid.New()
	otherDriver := uuid.New()

	deps.drivers.EXPECT().GetDriverByID(gomock.Any(), driverID).
		Return(&models.Driver{ID: driverID, IsAvailable: true}, nil)
	deps.rideRepo.EXPECT().AcceptRide(gomock.Any(), rideID, driverID).
		Return(errs.ErrRideNotPending)
	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, DriverID: &otherDriver, Status: models.RideStatusAccepted}, nil)

	_, err := uc.AcceptRide(context.Background(), driverID, rideID)

	assert.ErrorIs(t, err, errs.ErrRideNotPending)
}

func TestAcceptRide_RideNotFound(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	driverID := uuid.New()
	rideID := uuid.New()

	deps.drivers.EXPECT().GetDriverByID(gomock.Any(), driverID).
		Return(&models.Driver{ID: driverID, IsAvailable: true}, nil)
	deps.rideRepo.EXPECT().AcceptRide(gomock.Any(), rideID, driverID).
		Return(errs.ErrRideNotPending)
	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(nil, errs.ErrRideNotFound)

	_, err := uc.AcceptRide(context.Background(), driverID, rideID)

	assert.ErrorIs(t, err, errs.ErrRideNotFound)
}

func TestStartRide_WrongDriver(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	assigned := uuid.New()
	rideID := uuid.New()

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, DriverID: &assigned, Status: models.RideStatusAccepted}, nil)

	_, err := uc.StartRide(context.Background(), uuid.New(), rideID)

	assert.ErrorIs(t, err, errs.ErrUnauthorizedRide)
}

func TestCompleteRide_NotOngoing(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	driverID := uuid.New()
	rideID := uuid.New()

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, DriverID: &driverID, Status: models.RideStatusAccepted}, nil)

	_, err := uc.CompleteRide(context.Background(), driverID, rideID, &models.CompleteRideRequest{})

	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestCompleteRide_InsufficientBalanceLeavesRideOngoing(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	driverID := uuid.New()
	rideID := uuid.New()
	ride := &models.Ride{
		ID:            rideID,
		StudentID:     uuid.New(),
		DriverID:      &driverID,
		Fare:          200,
		PaymentMethod: models.PaymentMethodWallet,
		Status:        models.RideStatusOngoing,
	}

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).Return(ride, nil)
	deps.rideRepo.EXPECT().CompleteRide(gomock.Any(), ride, gomock.Any()).
		Return(errs.ErrInsufficientBalance)
	// no PublishRideCompleted expectation: the ride never completed

	_, err := uc.CompleteRide(context.Background(), driverID, rideID, &models.CompleteRideRequest{})

	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
}

func TestCompleteRide_WalletSuccess(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	driverID := uuid.New()
	rideID := uuid.New()
	ongoing := &models.Ride{
		ID:            rideID,
		StudentID:     uuid.New(),
		DriverID:      &driverID,
		Fare:          200,
		PaymentMethod: models.PaymentMethodWallet,
		Status:        models.RideStatusOngoing,
	}
	completed := *ongoing
	completed.Status = models.RideStatusCompleted

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).Return(ongoing, nil)
	deps.rideRepo.EXPECT().CompleteRide(gomock.Any(), ongoing, gomock.Any()).Return(nil)
	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).Return(&completed, nil)
	deps.rideGW.EXPECT().PublishRideCompleted(gomock.Any(), gomock.Any()).Return(nil)

	ride, err := uc.CompleteRide(context.Background(), driverID, rideID, &models.CompleteRideRequest{})

	assert.NoError(t, err)
	assert.Equal(t, models.RideStatusCompleted, ride.Status)
}

func TestCancelRide_CompletedRide(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	studentID := uuid.New()
	rideID := uuid.New()

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, StudentID: studentID, Status: models.RideStatusCompleted}, nil)

	_, err := uc.CancelRide(context.Background(), studentID, models.RoleStudent, rideID, nil)

	assert.ErrorIs(t, err, errs.ErrAlreadyCompleted)
}

func TestCancelRide_StudentCancelsOwnPendingRide(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	studentID := uuid.New()
	rideID := uuid.New()
	pending := &models.Ride{ID: rideID, StudentID: studentID, Status: models.RideStatusPending}
	cancelled := *pending
	cancelled.Status = models.RideStatusCancelled

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).Return(pending, nil)
	deps.rideRepo.EXPECT().CancelRide(gomock.Any(), rideID, models.RoleStudent, gomock.Any()).Return(nil)
	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).Return(&cancelled, nil)
	deps.rideGW.EXPECT().PublishRideCancelled(gomock.Any(), gomock.Any()).Return(nil)

	ride, err := uc.CancelRide(context.Background(), studentID, models.RoleStudent, rideID,
		&models.CancelRideRequest{Reason: "found another ride"})

	assert.NoError(t, err)
	assert.Equal(t, models.RideStatusCancelled, ride.Status)
}

func TestCancelRide_DriverNotAssigned(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	assigned := uuid.New()
	rideID := uuid.New()

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, StudentID: uuid.New(), DriverID: &assigned, Status: models.RideStatusAccepted}, nil)

	_, err := uc.CancelRide(context.Background(), uuid.New(), models.RoleDriver, rideID, nil)

	assert.ErrorIs(t, err, errs.ErrUnauthorizedRide)
}

func TestRateRide_InvalidRating(t *testing.T) {
	uc, _, finish := setupRideUCTest(t)
	defer finish()

	_, err := uc.RateRide(context.Background(), uuid.New(), uuid.New(),
		&models.RateRideRequest{Rating: 6})

	assert.ErrorIs(t, err, errs.ErrInvalidRating)
}

func TestRateRide_NotCompleted(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	studentID := uuid.New()
	rideID := uuid.New()
	driverID := uuid.New()

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, StudentID: studentID, DriverID: &driverID, Status: models.RideStatusOngoing}, nil)

	_, err := uc.RateRide(context.Background(), studentID, rideID,
		&models.RateRideRequest{Rating: 5})

	assert.ErrorIs(t, err, errs.ErrNotCompleted)
}

func TestRateRide_AlreadyRated(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	studentID := uuid.New()
	rideID := uuid.New()
	driverID := uuid.New()
	existing := 4

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, StudentID: studentID, DriverID: &driverID,
			Status: models.RideStatusCompleted, Rating: &existing}, nil)

	_, err := uc.RateRide(context.Background(), studentID, rideID,
		&models.RateRideRequest{Rating: 5})

	assert.ErrorIs(t, err, errs.ErrAlreadyRated)
}

func TestRateRide_Success(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	studentID := uuid.New()
	rideID := uuid.New()
	driverID := uuid.New()
	completed := &models.Ride{ID: rideID, StudentID: studentID, DriverID: &driverID,
		Status: models.RideStatusCompleted}
	rating := 5
	rated := *completed
	rated.Rating = &rating

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).Return(completed, nil)
	deps.rideRepo.EXPECT().RateRide(gomock.Any(), rideID, driverID, 5, gomock.Any()).Return(nil)
	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).Return(&rated, nil)

	ride, err := uc.RateRide(context.Background(), studentID, rideID,
		&models.RateRideRequest{Rating: 5})

	assert.NoError(t, err)
	assert.Equal(t, 5, *ride.Rating)
}

func TestListStudentRides_StatusFilter(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	studentID := uuid.New()
	completed := models.RideStatusCompleted

	deps.rideRepo.EXPECT().ListByStudent(gomock.Any(), studentID, &completed).
		Return([]models.Ride{{Status: models.RideStatusCompleted}}, nil)

	rideList, err := uc.ListStudentRides(context.Background(), studentID, &completed)

	assert.NoError(t, err)
	assert.Len(t, rideList, 1)
}

func TestListStudentRides_UnknownStatus(t *testing.T) {
	uc, _, finish := setupRideUCTest(t)
	defer finish()

	bogus := models.RideStatus("teleporting")

	_, err := uc.ListStudentRides(context.Background(), uuid.New(), &bogus)

	assert.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestGetRide_AssignedDriverAllowed(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	rideID := uuid.New()
	driverID := uuid.New()

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, StudentID: uuid.New(), DriverID: &driverID, Status: models.RideStatusAccepted}, nil)

	ride, err := uc.GetRide(context.Background(), driverID, models.RoleDriver, rideID)

	assert.NoError(t, err)
	assert.Equal(t, rideID, ride.ID)
}

func TestGetRide_UnassignedDriverDenied(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	rideID := uuid.New()

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, StudentID: uuid.New(), Status: models.RideStatusPending}, nil)

	_, err := uc.GetRide(context.Background(), uuid.New(), models.RoleDriver, rideID)

	assert.ErrorIs(t, err, errs.ErrUnauthorizedRide)
}

func TestGetRide_OtherDriverDenied(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	rideID := uuid.New()
	assignedDriver := uuid.New()

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, StudentID: uuid.New(), DriverID: &assignedDriver, Status: models.RideStatusOngoing}, nil)

	_, err := uc.GetRide(context.Background(), uuid.New(), models.RoleDriver, rideID)

	assert.ErrorIs(t, err, errs.ErrUnauthorizedRide)
}

func TestGetRide_StrangerStudentDenied(t *testing.T) {
	uc, deps, finish := setupRideUCTest(t)
	defer finish()

	rideID := uuid.New()

	deps.rideRepo.EXPECT().GetRideByID(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, StudentID: uuid.New(), Status: models.RideStatusPending}, nil)

	_, err := uc.GetRide(context.Background(), uuid.New(), models.RoleStudent, rideID)

	assert.ErrorIs(t, err, errs.ErrUnauthorizedRide)
}
