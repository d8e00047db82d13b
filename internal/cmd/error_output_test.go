package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/mdfmt/internal/output"
)

func TestValidateErrorFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"auto", false},
		{"text", false},
		{"json", false},
		{"yaml", false},
		{"AUTO", false},
		{" json ", false},
		{"xml", true},
		{"ndjson", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := validateErrorFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateErrorFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestEffectiveErrorFormat(t *testing.T) {
	tests := []struct {
		name         string
		errorFormat  string
		outputFormat output.Format
		want         string
	}{
		{"empty defaults to text", "", output.FormatText, "text"},
		{"auto with json output", "auto", output.FormatJSON, "json"},
		{"auto with ndjson output", "auto", output.FormatNDJSON, "json"},
		{"auto with yaml output", "auto", output.FormatYAML, "yaml"},
		{"auto with table output", "auto", output.FormatTable, "text"},
		{"explicit json overrides", "json", output.FormatText, "json"},
		{"explicit text overrides", "text", output.FormatJSON, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithErrorFormat(context.Background(), tt.errorFormat)
			ctx = output.WithFormat(ctx, tt.outputFormat)

			if got := effectiveErrorFormat(ctx); got != tt.want {
				t.Errorf("effectiveErrorFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildErrorEnvelope(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantType     string
		wantCategory string
	}{
		{"generic error", errors.New("something went wrong"), "error", "system"},
		{"not found", InputNotFoundError{Path: "a.md"}, "not_found", "user"},
		{"validation", ValidationError{Message: "bad flag"}, "validation", "user"},
		{"unformatted", UnformattedError{Count: 3}, "unformatted", "user"},
		{"wrapped validation", fmt.Errorf("load: %w", ValidationError{Message: "bad"}), "validation", "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildErrorEnvelope(tt.err)

			errMap, ok := result["error"].(map[string]interface{})
			if !ok {
				t.Fatal("expected 'error' map in result")
			}
			if errMap["message"] != tt.err.Error() {
				t.Errorf("message = %v, want %v", errMap["message"], tt.err.Error())
			}
			if errMap["type"] != tt.wantType {
				t.Errorf("type = %v, want %v", errMap["type"], tt.wantType)
			}
			if errMap["category"] != tt.wantCategory {
				t.Errorf("category = %v, want %v", errMap["category"], tt.wantCategory)
			}
		})
	}
}

func TestBuildErrorEnvelopeDetails(t *testing.T) {
	errMap := buildErrorEnvelope(InputNotFoundError{Path: "a.md"})["error"].(map[string]interface{})
	if errMap["path"] != "a.md" {
		t.Errorf("path = %v", errMap["path"])
	}

	errMap = buildErrorEnvelope(UnformattedError{Count: 4})["error"].(map[string]interface{})
	if errMap["count"] != 4 {
		t.Errorf("count = %v", errMap["count"])
	}
}

func TestPrintCommandError_Nil(t *testing.T) {
	errBuf := &bytes.Buffer{}
	ctx := withIO(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, errBuf)

	printCommandError(ctx, nil)

	if errBuf.Len() != 0 {
		t.Errorf("expected no output for nil error, got %q", errBuf.String())
	}
}

func TestPrintCommandError_Text(t *testing.T) {
	errBuf := &bytes.Buffer{}
	ctx := withIO(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, errBuf)
	ctx = WithErrorFormat(ctx, "text")

	printCommandError(ctx, errors.New("test error message"))

	if got := strings.TrimSpace(errBuf.String()); got != "test error message" {
		t.Errorf("expected %q, got %q", "test error message", got)
	}
}

func TestPrintCommandError_JSON(t *testing.T) {
	errBuf := &bytes.Buffer{}
	ctx := withIO(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, errBuf)
	ctx = WithErrorFormat(ctx, "json")

	printCommandError(ctx, InputNotFoundError{Path: "x.md"})

	var result map[string]interface{}
	if err := json.Unmarshal(errBuf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	errMap, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected 'error' map in output")
	}
	if errMap["message"] != "file doesn't exist: x.md" {
		t.Errorf("message = %v", errMap["message"])
	}
}

func TestPrintCommandError_YAML(t *testing.T) {
	errBuf := &bytes.Buffer{}
	ctx := withIO(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, errBuf)
	ctx = WithErrorFormat(ctx, "yaml")

	printCommandError(ctx, ValidationError{Message: "validation failed"})

	var result map[string]interface{}
	if err := yaml.Unmarshal(errBuf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse YAML output: %v", err)
	}
	errMap, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected 'error' map in output")
	}
	if errMap["type"] != "validation" {
		t.Errorf("type = %v, want 'validation'", errMap["type"])
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("boom"), 1},
		{InputNotFoundError{Path: "a"}, 1},
		{UnformattedError{Count: 1}, 2},
		{fmt.Errorf("wrapped: %w", UnformattedError{Count: 2}), 2},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUnformattedErrorMessage(t *testing.T) {
	if got := (UnformattedError{Count: 1}).Error(); got != "1 file is not formatted" {
		t.Errorf("got %q", got)
	}
	if got := (UnformattedError{Count: 3}).Error(); got != "3 files are not formatted" {
		t.Errorf("got %q", got)
	}
}
