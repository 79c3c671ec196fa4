package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/app"
	clipkg "github.com/thenoetrevino/dealboard/internal/cli"
)

// Result holds everything a command wrote
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// ExitCode is the process exit code main would use for this run
func (r Result) ExitCode() int {
	return clipkg.ExitCode(r.Err)
}

// ExecuteCLICommand executes a CLI command with a test app instance and
// returns its stdout. The app is injected through the context so commands
// reuse the test database instead of opening their own.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	res := Run(t, testApp, cmd, args)
	return res.Stdout, res.Err
}

// Run executes a CLI command with a test app and captures both streams
func Run(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) Result {
	t.Helper()
	return RunWithContext(t, context.Background(), testApp, cmd, args)
}

// RunWithContext executes a CLI command with a specific context and test app
func RunWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) Result {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctxWithApp := clipkg.WithApp(ctx, testApp)

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctxWithApp)
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// DecodeData unmarshals the data field of a --json success envelope into v
func DecodeData(t *testing.T, output string, v any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(output), &envelope); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got: %s", output)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("Failed to decode data: %v\nOutput: %s", err, output)
	}
}

// ErrorCode pulls error.code out of a --json failure envelope
func ErrorCode(t *testing.T, output string) string {
	t.Helper()

	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(output), &envelope); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	if envelope.Success {
		t.Fatalf("expected failure envelope, got: %s", output)
	}
	return envelope.Error.Code
}
