package models

import "errors"

// Errors shared by every layer that handles pipeline data
var (
	ErrInvalidPriority    = errors.New("priority must be one of low, medium, high")
	ErrInvalidProbability = errors.New("probability must be between 0 and 100")
	ErrNegativeValue      = errors.New("deal value cannot be negative")
)
