package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/logger"
	"github.com/camride/camride/internal/pkg/models"
)

// GetStudentProfile returns a student's profile
func (uc *AccountUC) GetStudentProfile(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return uc.accountRepo.GetStudentByID(ctx, id)
}

// GetDriverProfile returns a driver's profile
func (uc *AccountUC) GetDriverProfile(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	return uc.accountRepo.GetDriverByID(ctx, id)
}

// UpdateStudentProfile applies the non-nil fields of the request
func (uc *AccountUC) UpdateStudentProfile(ctx context.Context, id uuid.UUID, req *models.UpdateStudentProfileRequest) (*models.Student, error) {
	student, err := uc.accountRepo.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.PhoneNo != nil {
		student.PhoneNo = *req.PhoneNo
	}
	if req.ProfileImage != nil {
		student.ProfileImage = req.ProfileImage
	}

	if err := uc.accountRepo.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateDriverProfile applies the non-nil fields of the request,
// including vehicle details
func (uc *AccountUC) UpdateDriverProfile(ctx context.Context, id uuid.UUID, req *models.UpdateDriverProfileRequest) (*models.Driver, error) {
	driver, err := uc.accountRepo.GetDriverByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		driver.FullName = *req.FullName
	}
	if req.PhoneNo != nil {
		driver.PhoneNo = *req.PhoneNo
	}
	if req.ProfileImage != nil {
		driver.ProfileImage = req.ProfileImage
	}
	if req.LicenseNumber != nil {
		driver.LicenseNumber = req.LicenseNumber
	}
	if req.VehicleMake != nil {
		driver.VehicleInfo.Make = req.VehicleMake
	}
	if req.VehicleModel != nil {
		driver.VehicleInfo.Model = req.VehicleModel
	}
	if req.VehiclePlate != nil {
		driver.VehicleInfo.PlateNumber = req.VehiclePlate
	}
	if req.VehicleColor != nil {
		driver.VehicleInfo.Color = req.VehicleColor
	}
	if req.VehicleYear != nil {
		driver.VehicleInfo.Year = req.VehicleYear
	}

	if err := uc.accountRepo.UpdateDriver(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// SetDriverAvailability toggles whether the driver shows up as able to
// accept rides
func (uc *AccountUC) SetDriverAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	if err := uc.accountRepo.SetDriverAvailability(ctx, id, available); err != nil {
		return err
	}
	logger.Info("Driver availability updated",
		logger.String("driver_id", id.String()),
		logger.Bool("is_available", available))
	return nil
}
