package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrInmateNotFound  = fmt.Errorf("%w: inmate", ErrNotFound)
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)

	// Validation errors
	ErrMissingFeature        = errors.New("required feature missing")
	ErrOutOfRange            = errors.New("feature value out of documented range")
	ErrInvalidCount          = errors.New("invalid inmate count")
	ErrUnknownTask           = errors.New("unknown prediction task")
	ErrUnknownGroup          = errors.New("unknown suitability group")
	ErrUnknownRecommendation = errors.New("unknown release recommendation")

	// Artifact errors (non-fatal: callers fall back to statistical scoring)
	ErrArtifactMissing = errors.New("model artifact not found")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewMissingFeatureError(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingFeature, field)
}

func NewOutOfRangeError(field string, value float64, lo, hi float64) error {
	return fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrOutOfRange, field, value, lo, hi)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFeature) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrInvalidCount) ||
		errors.Is(err, ErrUnknownTask) ||
		errors.Is(err, ErrUnknownGroup) ||
		errors.Is(err, ErrUnknownRecommendation)
}

func IsArtifactMissing(err error) bool {
	return errors.Is(err, ErrArtifactMissing)
}
