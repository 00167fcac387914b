package models

import (
	"time"

	"github.com/google/uuid"
)

// RideStatus represents the status of a ride
type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusOngoing   RideStatus = "ongoing"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Terminal reports whether no further status transition is possible.
func (s RideStatus) Terminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// Valid reports whether the status is a known lifecycle state.
func (s RideStatus) Valid() bool {
	switch s {
	case RideStatusPending, RideStatusAccepted, RideStatusOngoing, RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod represents how a ride fare is settled
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodWallet PaymentMethod = "Wallet"
)

// Valid reports whether the payment method is supported.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodWallet
}

// Location represents a pickup or dropoff point
type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Ride represents a ride record
type Ride struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	StudentID          uuid.UUID     `json:"student_id" db:"student_id"`
	DriverID           *uuid.UUID    `json:"driver_id" db:"driver_id"`
	Pickup             Location      `json:"pickup_location"`
	Dropoff            Location      `json:"dropoff_location"`
	Fare               float64       `json:"fare" db:"fare"`
	PaymentMethod      PaymentMethod `json:"payment_method" db:"payment_method"`
	Status             RideStatus    `json:"status" db:"status"`
	EstimatedDistance  *float64      `json:"estimated_distance" db:"estimated_distance"`
	EstimatedDuration  *float64      `json:"estimated_duration" db:"estimated_duration"`
	ActualDistance     *float64      `json:"actual_distance" db:"actual_distance"`
	ActualDuration     *float64      `json:"actual_duration" db:"actual_duration"`
	StartTime          *time.Time    `json:"start_time" db:"start_time"`
	EndTime            *time.Time    `json:"end_time" db:"end_time"`
	Rating             *int          `json:"rating" db:"rating"`
	Review             *string       `json:"review" db:"review"`
	CancelledBy        *Role         `json:"cancelled_by" db:"cancelled_by"`
	CancellationReason *string       `json:"cancellation_reason" db:"cancellation_reason"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
}

// BookRideRequest is the payload for booking a ride
type BookRideRequest struct {
	PickupLocation    Location      `json:"pickup_location"`
	DropoffLocation   Location      `json:"dropoff_location"`
	Fare              float64       `json:"fare"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	EstimatedDistance *float64      `json:"estimated_distance"`
	EstimatedDuration *float64      `json:"estimated_duration"`
}

// CompleteRideRequest carries the actuals recorded at drop-off
type CompleteRideRequest struct {
	ActualDistance *float64 `json:"actual_distance"`
	ActualDuration *float64 `json:"actual_duration"`
}

// CancelRideRequest carries an optional cancellation reason
type CancelRideRequest struct {
	Reason string `json:"reason"`
}

// RateRideRequest is the payload for rating a completed ride
type RateRideRequest struct {
	Rating int     `json:"rating"`
	Review *string `json:"review"`
}

// RideEvent is published on ride lifecycle transitions. Delivery is
// best-effort; consumers send rider/driver emails.
type RideEvent struct {
	RideID        string        `json:"ride_id"`
	StudentID     string        `json:"student_id"`
	DriverID      string        `json:"driver_id,omitempty"`
	Status        RideStatus    `json:"status"`
	Fare          float64       `json:"fare"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	OccurredAt    time.Time     `json:"occurred_at"`
}
