package errors

import "math"

// ValidateFraction checks that v lies in [0, 1].
// The name identifies the offending setting in the returned error.
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "%s must be in [0, 1], got %v", name, v)
	}
	return nil
}

// ValidateRate checks that v lies in (0, 1].
// Elitism rates use this stricter range: a zero rate would keep no parents.
func ValidateRate(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "%s must be in (0, 1], got %v", name, v)
	}
	return nil
}

// ValidateMin checks that v is at least lo.
func ValidateMin(name string, v, lo int) error {
	if v < lo {
		return New(ErrCodeInvalidConfig, "%s must be at least %d, got %d", name, lo, v)
	}
	return nil
}
