package constants

// NATS subjects
const (
	// Notification events (consumed by the mailer worker; best-effort)
	SubjectNotifyOTP   = "notify.otp"
	SubjectNotifyLogin = "notify.login"

	// Ride lifecycle events
	SubjectRideBooked    = "ride.booked"
	SubjectRideAccepted  = "ride.accepted"
	SubjectRideStarted   = "ride.started"
	SubjectRideCompleted = "ride.completed"
	SubjectRideCancelled = "ride.cancelled"
)
