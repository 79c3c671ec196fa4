package deal

import "errors"

// Deal-related errors
var (
	// Validation errors
	ErrEmptyName     = errors.New("deal name cannot be empty")
	ErrNameTooLong   = errors.New("deal name cannot exceed 255 characters")
	ErrInvalidDealID = errors.New("invalid deal ID")
	ErrInvalidAge    = errors.New("deal age cannot be negative")

	// Business logic errors
	ErrDealNotFound     = errors.New("deal not found")
	ErrStageNotFound    = errors.New("stage not found")
	ErrPipelineNotFound = errors.New("pipeline not found")
	ErrStaleMove        = errors.New("deal is no longer at the dragged position")
)

// Movement-related errors
var (
	// ErrAlreadyFirstStage indicates that the deal is already in the first stage
	ErrAlreadyFirstStage = errors.New("deal is already in the first stage")

	// ErrAlreadyLastStage indicates that the deal is already in the last stage
	ErrAlreadyLastStage = errors.New("deal is already in the last stage")

	// ErrAlreadyFirstDeal indicates that the deal is already at the top of the stage
	ErrAlreadyFirstDeal = errors.New("deal is already at the top of the stage")

	// ErrAlreadyLastDeal indicates that the deal is already at the bottom of the stage
	ErrAlreadyLastDeal = errors.New("deal is already at the bottom of the stage")

	// ErrNotInActivePipeline indicates the deal lives in a pipeline that is not selected
	ErrNotInActivePipeline = errors.New("deal is not in the selected pipeline")
)
