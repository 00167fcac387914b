package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	matricNoRegex = regexp.MustCompile(`^[A-Za-z0-9/\-]{4,20}$`)
	plateNoRegex  = regexp.MustCompile(`^[A-Za-z0-9 \-]{2,15}$`)
)

// ValidateEmail checks whether the given string is a well-formed email address
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if len(email) < 5 || len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// ValidateMatricNo checks whether the given string is a plausible
// matriculation number (alphanumeric with optional separators)
func ValidateMatricNo(matricNo string) bool {
	return matricNoRegex.MatchString(strings.TrimSpace(matricNo))
}

// ValidatePlateNumber checks whether the given string is a plausible
// vehicle plate number
func ValidatePlateNumber(plateNo string) bool {
	return plateNoRegex.MatchString(strings.TrimSpace(plateNo))
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) bool {
	return len(password) >= 6
}

// ValidateRating checks that a ride rating is within the allowed range
func ValidateRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// ValidateCoordinates checks latitude and longitude bounds
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
