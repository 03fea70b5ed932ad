package border

import "errors"

var (
	// ErrInvalidJob wraps validation failures of a Job.
	ErrInvalidJob = errors.New("invalid border job")
	// ErrInvalidDimensions is returned for non-positive frame or interior sizes.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")
	// ErrNoFrames is returned when the input decodes to zero frames.
	ErrNoFrames = errors.New("no frames decoded")
)
