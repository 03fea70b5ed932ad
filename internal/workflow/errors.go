package workflow

import "errors"

var (
	// ErrConfirmationRequired is returned while the user has not confirmed
	// that the external conversion finished.
	ErrConfirmationRequired = errors.New("conversion not confirmed")
	// ErrOutputMissing is returned when the converter output is absent and no
	// manually located file was supplied. The machine stays in
	// StateVerifyingOutput so the caller can retry with Input.LocatedFile.
	ErrOutputMissing = errors.New("converted output not found")
	// ErrTerminal is returned when Advance is called on Done or Failed.
	ErrTerminal = errors.New("workflow finished; reset to start again")
)

// ErrCancelled is returned by Run when the user backs out at a confirmation.
var ErrCancelled = errors.New("workflow cancelled")
