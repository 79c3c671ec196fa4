package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/dealboard/internal/auth"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	accountservice "github.com/thenoetrevino/dealboard/internal/services/account"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	leadservice "github.com/thenoetrevino/dealboard/internal/services/lead"
	"github.com/thenoetrevino/dealboard/internal/session"
	"github.com/thenoetrevino/dealboard/internal/webhook"
)

// UsageError marks bad flags or arguments
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// Usagef builds a UsageError
func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// CommandError is returned from RunE once the failure has been reported to
// the user. main turns it into the process exit code.
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string { return e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return ExitError
}

// Reported reports whether err has already been printed by a formatter
func Reported(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

// Classify picks the machine-readable code, exit code and suggestion for err
func Classify(err error) (code string, exit int, suggestion string) {
	var (
		usageErr      *UsageError
		validationErr *webhook.ValidationError
		networkErr    *webhook.NetworkError
		apiErr        *auth.APIError
	)

	switch {
	case errors.As(err, &usageErr):
		return "INVALID_USAGE", ExitUsage, ""

	case errors.Is(err, dealservice.ErrDealNotFound):
		return "DEAL_NOT_FOUND", ExitNotFound, "List deals with: dealboard pipeline show"
	case errors.Is(err, dealservice.ErrStageNotFound):
		return "STAGE_NOT_FOUND", ExitNotFound, "List stages with: dealboard pipeline show"
	case errors.Is(err, dealservice.ErrPipelineNotFound):
		return "PIPELINE_NOT_FOUND", ExitNotFound, "List pipelines with: dealboard pipeline list"
	case errors.Is(err, dealservice.ErrStaleMove):
		return "STALE_MOVE", ExitDataErr, ""

	case isSeedError(err):
		return "INVALID_SEED", ExitDataErr, "Check the board.seed_file in your config"
	case errors.Is(err, webhook.ErrMalformedResponse):
		return "MALFORMED_RESPONSE", ExitDataErr, ""

	case errors.As(err, &validationErr):
		if strings.HasSuffix(validationErr.Field, " url") {
			return "WEBHOOK_NOT_CONFIGURED", ExitValidation, "Set the webhook URL with: dealboard setup --webhook-base=<url>"
		}
		return "VALIDATION_ERROR", ExitValidation, ""
	case isValidationError(err):
		return "VALIDATION_ERROR", ExitValidation, ""
	case isMoveError(err):
		return "INVALID_MOVE", ExitValidation, ""

	case errors.Is(err, accountservice.ErrNotSignedIn),
		errors.Is(err, session.ErrNoSession),
		errors.Is(err, session.ErrExpired),
		errors.Is(err, session.ErrTampered):
		return "NOT_SIGNED_IN", ExitUsage, "Sign in with: dealboard auth login --email <email>"
	case errors.Is(err, accountservice.ErrIdentityDisabled):
		return "IDENTITY_DISABLED", ExitUsage, "Set identity.url and identity.anon_key in the config file"

	case errors.As(err, &networkErr):
		return "NETWORK_ERROR", ExitError, networkErr.UserMessage()
	case errors.As(err, &apiErr):
		return "AUTH_ERROR", ExitError, ""
	}

	return "ERROR", ExitError, ""
}

func isSeedError(err error) bool {
	for _, target := range []error{
		pipeline.ErrEmptySeed,
		pipeline.ErrDuplicatePipeline,
		pipeline.ErrDuplicateStage,
		pipeline.ErrDuplicateDeal,
		pipeline.ErrMissingID,
		pipeline.ErrStageMismatch,
		pipeline.ErrInvalidProbability,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isValidationError(err error) bool {
	for _, target := range []error{
		dealservice.ErrEmptyName,
		dealservice.ErrNameTooLong,
		dealservice.ErrInvalidDealID,
		dealservice.ErrInvalidAge,
		models.ErrInvalidPriority,
		models.ErrInvalidProbability,
		models.ErrNegativeValue,
		leadservice.ErrEmptyEmail,
		leadservice.ErrInvalidEmail,
		leadservice.ErrInvalidDomain,
		leadservice.ErrEmptyBlacklist,
		leadservice.ErrEmptyKeyword,
		leadservice.ErrEmptyLocation,
		leadservice.ErrInvalidLimit,
		leadservice.ErrMessageTooLong,
		leadservice.ErrDueDateInThePast,
		accountservice.ErrPasswordTooShort,
		accountservice.ErrPasswordMismatch,
		auth.ErrMissingEmail,
		auth.ErrMissingPassword,
		auth.ErrMissingToken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isMoveError(err error) bool {
	return errors.Is(err, dealservice.ErrAlreadyFirstStage) ||
		errors.Is(err, dealservice.ErrAlreadyLastStage) ||
		errors.Is(err, dealservice.ErrAlreadyFirstDeal) ||
		errors.Is(err, dealservice.ErrAlreadyLastDeal) ||
		errors.Is(err, dealservice.ErrNotInActivePipeline)
}

// Fail reports err through the formatter and returns a CommandError carrying
// the matching exit code
func (f *OutputFormatter) Fail(err error) error {
	if err == nil {
		return nil
	}
	if Reported(err) {
		return err
	}
	code, exit, suggestion := Classify(err)
	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestion); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &CommandError{Code: exit, Err: err}
}
