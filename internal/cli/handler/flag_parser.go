// Package handler provides flag parsing utilities
package handler

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// PipelineEnv names the variable consulted when --pipeline is not given
const PipelineEnv = "DEALBOARD_PIPELINE"

// dateLayouts are the accepted --due formats
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// FlagParser provides common flag extraction patterns. Every error it
// returns is a usage error.
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParsePipelineID reads --pipeline, falling back to DEALBOARD_PIPELINE.
// An empty result means the selected pipeline.
func (p *FlagParser) ParsePipelineID() types.PipelineID {
	if p.cmd.Flags().Lookup("pipeline") != nil {
		if id, _ := p.cmd.Flags().GetString("pipeline"); strings.TrimSpace(id) != "" {
			return types.PipelineID(strings.TrimSpace(id))
		}
	}
	return types.PipelineID(strings.TrimSpace(os.Getenv(PipelineEnv)))
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", cli.Usagef("failed to parse %s flag: %v", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", cli.Usagef("%s is required", flagName)
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", cli.Usagef("failed to parse %s flag: %v", flagName, err)
	}
	return strings.TrimSpace(value), nil
}

// ParseInt extracts a required positive int flag
func (p *FlagParser) ParseInt(flagName string) (int, error) {
	value, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, cli.Usagef("failed to parse %s flag: %v", flagName, err)
	}
	if value <= 0 {
		return 0, cli.Usagef("%s must be greater than 0", flagName)
	}
	return value, nil
}

// ParseIntOptional extracts an optional int flag
func (p *FlagParser) ParseIntOptional(flagName string) (int, error) {
	value, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, cli.Usagef("failed to parse %s flag: %v", flagName, err)
	}
	return value, nil
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	value, err := p.cmd.Flags().GetBool(flagName)
	if err != nil {
		return false, cli.Usagef("failed to parse %s flag: %v", flagName, err)
	}
	return value, nil
}

// ParseDecimal extracts a non-negative money amount
func (p *FlagParser) ParseDecimal(flagName string) (decimal.Decimal, error) {
	raw, err := p.ParseString(flagName)
	if err != nil {
		return decimal.Zero, err
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, cli.Usagef("%s must be a number, got %q", flagName, raw)
	}
	if value.IsNegative() {
		return decimal.Zero, cli.Usagef("%s cannot be negative", flagName)
	}
	return value, nil
}

// ParsePriority extracts a priority flag. Empty means unset.
func (p *FlagParser) ParsePriority(flagName string) (models.Priority, error) {
	raw, err := p.ParseStringOptional(flagName)
	if err != nil || raw == "" {
		return "", err
	}
	priority, err := models.ParsePriority(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", flagName, err)
	}
	return priority, nil
}

// ParseDate extracts an optional date or timestamp in local time. The zero
// time means unset.
func (p *FlagParser) ParseDate(flagName string) (time.Time, error) {
	raw, err := p.ParseStringOptional(flagName)
	if err != nil || raw == "" {
		return time.Time{}, err
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, cli.Usagef("%s must look like 2006-01-02 or 2006-01-02T15:04, got %q", flagName, raw)
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
