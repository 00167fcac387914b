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

// driverRow flattens the nested vehicle info for sqlx scanning.
type driverRow struct {
	models.Driver
	VehicleMake  *string `db:"vehicle_make"`
	VehicleModel *string `db:"vehicle_model"`
	VehiclePlate *string `db:"vehicle_plate"`
	VehicleColor *string `db:"vehicle_color"`
	VehicleYear  *int    `db:"vehicle_year"`
}

func (row *driverRow) toDriver() *models.Driver {
	driver := row.Driver
	driver.VehicleInfo = models.VehicleInfo{
		Make:        row.VehicleMake,
		Model:       row.VehicleModel,
		PlateNumber: row.VehiclePlate,
		Color:       row.VehicleColor,
		Year:        row.VehicleYear,
	}
	return &driver
}

const driverColumns = `
	id, full_name, email, phone_no, password, is_verified,
	otp_code, otp_expires_at, profile_image, license_number,
	vehicle_make, vehicle_model, vehicle_plate, vehicle_color, vehicle_year,
	is_available, rating, total_rides, created_at, updated_at
`

// CreateDriver inserts a driver together with their wallet. Both rows
// commit or roll back as one unit.
func (r *AccountRepo) CreateDriver(ctx context.Context, driver *models.Driver) error {
	driver.ID = uuid.New()
	now := time.Now()
	driver.CreatedAt = now
	driver.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := driverRow{
		Driver:       *driver,
		VehicleMake:  driver.VehicleInfo.Make,
		VehicleModel: driver.VehicleInfo.Model,
		VehiclePlate: driver.VehicleInfo.PlateNumber,
		VehicleColor: driver.VehicleInfo.Color,
		VehicleYear:  driver.VehicleInfo.Year,
	}

	query := `
		INSERT INTO drivers (id, full_name, email, phone_no, password,
			is_verified, otp_code, otp_expires_at, license_number,
			vehicle_make, vehicle_model, vehicle_plate, vehicle_color, vehicle_year,
			is_available, rating, total_rides, created_at, updated_at
		) VALUES (:id, :full_name, :email, :phone_no, :password,
			:is_verified, :otp_code, :otp_expires_at, :license_number,
			:vehicle_make, :vehicle_model, :vehicle_plate, :vehicle_color, :vehicle_year,
			:is_available, :rating, :total_rides, :created_at, :updated_at)
	`
	if _, err = tx.NamedExecContext(ctx, query, &row); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicateAccount
		}
		return fmt.Errorf("failed to insert driver: %w", err)
	}

	if err = r.wallets.CreateWalletTx(ctx, tx, driver.ID, models.RoleDriver); err != nil {
		return fmt.Errorf("failed to provision wallet: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetDriverByID retrieves a driver by ID
func (r *AccountRepo) GetDriverByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	var row driverRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return row.toDriver(), nil
}

// GetDriverByEmail retrieves a driver by email
func (r *AccountRepo) GetDriverByEmail(ctx context.Context, email string) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE email = $1`

	var row driverRow
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return row.toDriver(), nil
}

// UpdateDriver persists profile and vehicle changes for a driver
func (r *AccountRepo) UpdateDriver(ctx context.Context, driver *models.Driver) error {
	driver.UpdatedAt = time.Now()

	row := driverRow{
		Driver:       *driver,
		VehicleMake:  driver.VehicleInfo.Make,
		VehicleModel: driver.VehicleInfo.Model,
		VehiclePlate: driver.VehicleInfo.PlateNumber,
		VehicleColor: driver.VehicleInfo.Color,
		VehicleYear:  driver.VehicleInfo.Year,
	}

	query := `
		UPDATE drivers
		SET full_name = :full_name,
			phone_no = :phone_no,
			profile_image = :profile_image,
			license_number = :license_number,
			vehicle_make = :vehicle_make,
			vehicle_model = :vehicle_model,
			vehicle_plate = :vehicle_plate,
			vehicle_color = :vehicle_color,
			vehicle_year = :vehicle_year,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, &row)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}

// SetDriverAvailability toggles the availability flag for a driver
func (r *AccountRepo) SetDriverAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `UPDATE drivers SET is_available = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}
