package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Mock Types for Testing
// ============================================================================

type mockDataWithID struct {
	ID   string
	Name string
}

func (m mockDataWithID) GetID() string {
	return m.ID
}

type mockDataWithoutID struct {
	Name  string
	Value int
}

type mockRenderer struct {
	Lines []string
}

func (m mockRenderer) Render(w io.Writer) error {
	for _, line := range m.Lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newTestFormatter(jsonOutput, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &OutputFormatter{JSON: jsonOutput, Quiet: quiet, Out: &out, Err: &errOut}, &out, &errOut
}

// ============================================================================
// Success Method Tests
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		validate func(t *testing.T, data any)
	}{
		{
			name: "map data",
			data: map[string]any{"test": "value", "number": float64(42)},
			validate: func(t *testing.T, data any) {
				dataMap := data.(map[string]any)
				assert.Equal(t, "value", dataMap["test"])
			},
		},
		{
			name: "struct with ID",
			data: mockDataWithID{ID: "d-1", Name: "Test"},
			validate: func(t *testing.T, data any) {
				dataMap := data.(map[string]any)
				assert.Equal(t, "Test", dataMap["Name"])
			},
		},
		{
			name: "string data",
			data: "simple string",
			validate: func(t *testing.T, data any) {
				assert.Equal(t, "simple string", data)
			},
		},
		{
			name: "nil data",
			data: nil,
			validate: func(t *testing.T, data any) {
				assert.Nil(t, data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter, out, _ := newTestFormatter(true, false)
			require.NoError(t, formatter.Success(tt.data))

			var result map[string]any
			require.NoError(t, json.Unmarshal(out.Bytes(), &result), "output: %s", out.String())
			assert.Equal(t, true, result["success"])
			tt.validate(t, result["data"])
		})
	}
}

func TestOutputFormatter_Success_QuietWithID(t *testing.T) {
	formatter, out, _ := newTestFormatter(false, true)
	require.NoError(t, formatter.Success(mockDataWithID{ID: "deal-7", Name: "Test"}))
	assert.Equal(t, "deal-7\n", out.String())
}

type mockList []string

func (m mockList) GetIDs() []string { return m }

func TestOutputFormatter_Success_QuietList(t *testing.T) {
	formatter, out, _ := newTestFormatter(false, true)
	require.NoError(t, formatter.Success(mockList{"sales", "partnerships"}))
	assert.Equal(t, "sales\npartnerships\n", out.String())
}

func TestOutputFormatter_Success_QuietWithoutIDFallsThrough(t *testing.T) {
	formatter, out, _ := newTestFormatter(false, true)
	require.NoError(t, formatter.Success(mockDataWithoutID{Name: "x", Value: 3}))
	assert.Contains(t, out.String(), "Name:x")
}

func TestOutputFormatter_Success_Human(t *testing.T) {
	t.Run("renderer", func(t *testing.T) {
		formatter, out, _ := newTestFormatter(false, false)
		require.NoError(t, formatter.Success(mockRenderer{Lines: []string{"one", "two"}}))
		assert.Equal(t, "one\ntwo\n", out.String())
	})

	t.Run("string", func(t *testing.T) {
		formatter, out, _ := newTestFormatter(false, false)
		require.NoError(t, formatter.Success("done"))
		assert.Equal(t, "done\n", out.String())
	})

	t.Run("nil prints nothing", func(t *testing.T) {
		formatter, out, _ := newTestFormatter(false, false)
		require.NoError(t, formatter.Success(nil))
		assert.Empty(t, out.String())
	})
}

// ============================================================================
// Error Method Tests
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	formatter, out, errOut := newTestFormatter(true, false)
	require.NoError(t, formatter.ErrorWithSuggestion("DEAL_NOT_FOUND", "deal not found", "try list"))

	var result struct {
		Success bool `json:"success"`
		Error   struct {
			Code       string `json:"code"`
			Message    string `json:"message"`
			Suggestion string `json:"suggestion"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "DEAL_NOT_FOUND", result.Error.Code)
	assert.Equal(t, "deal not found", result.Error.Message)
	assert.Equal(t, "try list", result.Error.Suggestion)
	assert.Empty(t, errOut.String())
}

func TestOutputFormatter_Error_JSONOmitsEmptySuggestion(t *testing.T) {
	formatter, out, _ := newTestFormatter(true, false)
	require.NoError(t, formatter.Error("ERROR", "boom"))
	assert.NotContains(t, out.String(), "suggestion")
}

func TestOutputFormatter_Error_HumanGoesToStderr(t *testing.T) {
	formatter, out, errOut := newTestFormatter(false, false)
	require.NoError(t, formatter.ErrorWithSuggestion("ERROR", "boom", "retry"))

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error: boom")
	assert.Contains(t, errOut.String(), "Suggestion: retry")
}
