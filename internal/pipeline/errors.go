package pipeline

import "errors"

// Seed validation errors
var (
	ErrEmptySeed          = errors.New("seed has no pipelines")
	ErrDuplicatePipeline  = errors.New("duplicate pipeline id")
	ErrDuplicateStage     = errors.New("duplicate stage id")
	ErrDuplicateDeal      = errors.New("duplicate deal id")
	ErrMissingID          = errors.New("missing id")
	ErrStageMismatch      = errors.New("deal stage does not match its holding stage")
	ErrInvalidProbability = errors.New("probability must be between 0 and 100")
)
