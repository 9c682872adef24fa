package models

import "errors"

// Structural plan validation errors.
var (
	ErrEmptySteps        = errors.New("plan has no steps")
	ErrTooManySteps      = errors.New("plan exceeds step limit")
	ErrDuplicateStepID   = errors.New("duplicate step id")
	ErrUnknownStepType   = errors.New("unknown step type")
	ErrSelfDependency    = errors.New("step depends on itself")
	ErrForwardDependency = errors.New("step depends on a later or unknown step")
)
