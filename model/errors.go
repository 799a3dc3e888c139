package model

import (
	"github.com/pkg/errors"
)

var (
	// ValidationError is the common cause for configuration content errors.
	ValidationError = errors.New("validation failed")
	// PinConflictError is the cause of errors where two roles are mapped
	// onto the same physical pin.
	PinConflictError = errors.New("pin conflict")
	// InvalidPinError is the cause of errors where a role is mapped onto
	// a pin outside the valid range.
	InvalidPinError = errors.New("invalid pin")
	// ConfigurationAbsentError is the cause of errors where no board or
	// machine selection resolves to a known configuration.
	ConfigurationAbsentError = errors.New("configuration absent")
)

// IsPinConflict returns true if the given error is caused by a pin conflict.
func IsPinConflict(err error) bool {
	return errors.Cause(err) == PinConflictError
}

// IsInvalidPin returns true if the given error is caused by an out of range pin.
func IsInvalidPin(err error) bool {
	return errors.Cause(err) == InvalidPinError
}

// IsConfigurationAbsent returns true if the given error is caused by a
// missing configuration selection.
func IsConfigurationAbsent(err error) bool {
	return errors.Cause(err) == ConfigurationAbsentError
}

// IsValidation returns true if the given error is caused by any of the
// configuration validation errors.
func IsValidation(err error) bool {
	switch errors.Cause(err) {
	case ValidationError, PinConflictError, InvalidPinError, ConfigurationAbsentError:
		return true
	default:
		return false
	}
}
