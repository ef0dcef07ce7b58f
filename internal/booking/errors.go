package booking

import "errors"

var (
	// ErrNotFound is returned when no booking carries the given appointment id
	ErrNotFound = errors.New("appointment not found")

	// ErrCapacityExceeded is returned when a doctor's daily booking cap is reached
	ErrCapacityExceeded = errors.New("daily booking capacity exceeded")

	// ErrDoctorNotFound is returned when a booking references a doctor absent
	// from the schedule catalog. This is a data problem, not user input.
	ErrDoctorNotFound = errors.New("doctor not present in schedule catalog")

	// ErrSlotUnavailable is returned when the requested date and time do not
	// map to a currently bookable slot for the doctor.
	ErrSlotUnavailable = errors.New("requested slot is not available")
)
