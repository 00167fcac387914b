package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies which identity collection an account belongs to.
type Role string

const (
	RoleStudent Role = "student"
	RoleDriver  Role = "driver"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleDriver
}

// Student represents a rider account
type Student struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FullName     string     `json:"fullname" db:"full_name"`
	MatricNo     string     `json:"matric_no" db:"matric_no"`
	Email        string     `json:"email" db:"email"`
	PhoneNo      string     `json:"phone_no" db:"phone_no"`
	Password     string     `json:"-" db:"password"`
	IsVerified   bool       `json:"is_verified" db:"is_verified"`
	OTPCode      *string    `json:"-" db:"otp_code"`
	OTPExpiresAt *time.Time `json:"-" db:"otp_expires_at"`
	ProfileImage *string    `json:"profile_image,omitempty" db:"profile_image"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// VehicleInfo describes a driver's vehicle
type VehicleInfo struct {
	Make        *string `json:"make" db:"vehicle_make"`
	Model       *string `json:"model" db:"vehicle_model"`
	PlateNumber *string `json:"plate_number" db:"vehicle_plate"`
	Color       *string `json:"color" db:"vehicle_color"`
	Year        *int    `json:"year" db:"vehicle_year"`
}

// Driver represents a driver account
type Driver struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	FullName      string      `json:"fullname" db:"full_name"`
	Email         string      `json:"email" db:"email"`
	PhoneNo       string      `json:"phone_no" db:"phone_no"`
	Password      string      `json:"-" db:"password"`
	IsVerified    bool        `json:"is_verified" db:"is_verified"`
	OTPCode       *string     `json:"-" db:"otp_code"`
	OTPExpiresAt  *time.Time  `json:"-" db:"otp_expires_at"`
	ProfileImage  *string     `json:"profile_image,omitempty" db:"profile_image"`
	LicenseNumber *string     `json:"license_number,omitempty" db:"license_number"`
	VehicleInfo   VehicleInfo `json:"vehicle_info"`
	IsAvailable   bool        `json:"is_available" db:"is_available"`
	Rating        float64     `json:"rating" db:"rating"`
	TotalRides    int         `json:"total_rides" db:"total_rides"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// RegisterStudentRequest is the payload for student registration
type RegisterStudentRequest struct {
	Email    string `json:"email"`
	MatricNo string `json:"matric_no"`
	FullName string `json:"fullname"`
	Password string `json:"password"`
	PhoneNo  string `json:"phone_no"`
}

// RegisterDriverRequest is the payload for driver registration
type RegisterDriverRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Password string `json:"password"`
	PhoneNo  string `json:"phone_no"`
}

// VerifyEmailRequest is the payload for OTP verification
type VerifyEmailRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResendOTPRequest is the payload for requesting a fresh OTP
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// LoginRequest is the payload for authentication. Students may supply
// either email or matric number.
type LoginRequest struct {
	Email    string `json:"email"`
	MatricNo string `json:"matric_no"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	ExpiresAt int64     `json:"expires_at"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
}

// UpdateStudentProfileRequest carries optional profile changes
type UpdateStudentProfileRequest struct {
	FullName     *string `json:"fullname"`
	PhoneNo      *string `json:"phone_no"`
	ProfileImage *string `json:"profile_image"`
}

// UpdateDriverProfileRequest carries optional profile changes
type UpdateDriverProfileRequest struct {
	FullName      *string `json:"fullname"`
	PhoneNo       *string `json:"phone_no"`
	ProfileImage  *string `json:"profile_image"`
	LicenseNumber *string `json:"license_number"`
	VehicleMake   *string `json:"vehicle_make"`
	VehicleModel  *string `json:"vehicle_model"`
	VehiclePlate  *string `json:"vehicle_plate"`
	VehicleColor  *string `json:"vehicle_color"`
	VehicleYear   *int    `json:"vehicle_year"`
}

// SetAvailabilityRequest toggles a driver's availability flag
type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}
