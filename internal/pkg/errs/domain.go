package errs

// Sentinel errors for the guards of the account, wallet and ride
// components. Compare with errors.Is.
var (
	// Accounts
	ErrDuplicateAccount  = Conflict("account already registered")
	ErrAccountNotFound   = NotFound("account not found")
	ErrAlreadyVerified   = Conflict("email already verified")
	ErrInvalidOTP        = Validation("invalid OTP")
	ErrOTPExpired        = Validation("OTP expired")
	ErrNotVerified       = Forbidden("email not verified")
	ErrInvalidCredential = Unauthorized("incorrect password")

	// Wallet
	ErrWalletNotFound      = NotFound("wallet not found")
	ErrInsufficientBalance = Conflict("insufficient wallet balance")

	// Rides
	ErrRideNotFound      = NotFound("ride not found")
	ErrRideNotPending    = Conflict("ride is no longer pending")
	ErrInvalidTransition = Conflict("invalid ride status transition")
	ErrDriverUnavailable = Conflict("driver must be available to accept rides")
	ErrAlreadyCompleted  = Conflict("cannot cancel a completed ride")
	ErrNotCompleted      = Conflict("can only rate completed rides")
	ErrAlreadyRated      = Conflict("ride has already been rated")
	ErrInvalidRating     = Validation("rating must be between 1 and 5")
	ErrUnauthorizedRide  = Forbidden("not allowed to act on this ride")
)
