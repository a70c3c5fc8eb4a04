package service

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrCapacityExceeded      = errors.New("event is fully booked")
	ErrDuplicateRegistration = errors.New("user is already registered for this event")
	ErrAlreadyAttended       = errors.New("registration is already marked as attended")
	ErrNotAttended           = errors.New("registration is not marked as attended")
	ErrInvalidAttendanceKey  = errors.New("invalid attendance key")
	ErrNoAttendanceKey       = errors.New("no attendance key has been generated for this event")
	ErrDateInPast            = errors.New("event date must be today or in the future")
	ErrInvalidCategory       = errors.New("invalid event category")
	ErrEmailTaken            = errors.New("user with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEventNotFull          = errors.New("event still has spots remaining")
)

// CapacityBelowDemandError rejects a capacity reduction below the number of
// active registrations; the message names the current count so the organiser
// knows the floor.
type CapacityBelowDemandError struct {
	Registered int
}

func (e *CapacityBelowDemandError) Error() string {
	return fmt.Sprintf("cannot reduce max participants below current registrations (%d)", e.Registered)
}
