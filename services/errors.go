package services

import "errors"

// Common service-level errors
var (
	// Auth errors
	ErrSignInInProgress = errors.New("sign-in already in progress")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidUserInfo  = errors.New("invalid user information")
	ErrNotSignedIn      = errors.New("not signed in")

	// Lookup errors
	ErrUserNotFound = errors.New("user not found")
	ErrPlanNotFound = errors.New("no plan for this day")
)
