package entity

import "errors"

// Domain errors
var (
	// Orchestrator errors
	ErrInvalidAction       = errors.New("invalid action")
	ErrInvalidHistory      = errors.New("conversation history has no answered question")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrUnsupportedProvider = errors.New("unsupported llm provider")

	// Session errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("action is not allowed in the current view")
	ErrRequestInFlight   = errors.New("another request is in flight for this session")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
