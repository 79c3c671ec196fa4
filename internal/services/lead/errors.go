package lead

import "errors"

// Lead-related validation errors. These are raised before any webhook call.
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrInvalidDomain    = errors.New("domain is not valid")
	ErrEmptyBlacklist   = errors.New("provide an email or a domain to blacklist")
	ErrEmptyKeyword     = errors.New("search keyword cannot be empty")
	ErrEmptyLocation    = errors.New("search location cannot be empty")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 500")
	ErrMessageTooLong   = errors.New("follow-up message cannot exceed 1000 characters")
	ErrDueDateInThePast = errors.New("follow-up date cannot be in the past")
)
