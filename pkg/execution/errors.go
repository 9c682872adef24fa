package execution

import "errors"

var (
	// ErrUnknownStepType means a step's type maps to no responder. Plans
	// that pass models validation never carry one; this guards hand-built
	// plans.
	ErrUnknownStepType = errors.New("no responder for step type")
)
