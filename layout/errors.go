package layout

import "errors"

// Sentinel errors returned by the package.
var (
	// ErrInvalidConfig is returned when a HeightConfig fails validation.
	ErrInvalidConfig = errors.New("layout: invalid height config")

	// ErrLayoutViolation is wrapped by every problem reported by Verify.
	ErrLayoutViolation = errors.New("layout: violation")
)
