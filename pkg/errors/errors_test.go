package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CategoryParse, CodeNotListShaped, "payload is not a list")

	if err.Category != CategoryParse || err.Code != CodeNotListShaped {
		t.Errorf("Unexpected category/code: %s/%s", err.Category, err.Code)
	}
	if len(err.StackTrace) == 0 {
		t.Error("Expected a captured stack trace")
	}
	if !strings.Contains(err.Error(), "[parse/not_list_shaped]") {
		t.Errorf("Expected category/code prefix in message, got %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(cause, CategoryFile, CodeFileNotFound, "could not read snapshot")

	if err.Cause != cause {
		t.Error("Expected cause to be preserved")
	}
	if err.Unwrap() != cause {
		t.Error("Expected Unwrap to return the cause")
	}
	if !strings.Contains(err.Error(), "underlying failure") {
		t.Errorf("Expected cause in message, got %q", err.Error())
	}

	if Wrap(nil, CategoryFile, CodeFileNotFound, "x") != nil {
		t.Error("Expected wrapping nil to yield nil")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		expected int
	}{
		{CategoryFile, 2},
		{CategoryParse, 3},
		{CategoryValidation, 4},
		{CategoryConfiguration, 4},
		{CategoryAnalysis, 5},
		{CategoryInternal, 5},
		{ErrorCategory("other"), 1},
	}

	for _, tt := range tests {
		err := New(tt.category, CodeUnexpectedError, "test")
		if code := err.GetExitCode(); code != tt.expected {
			t.Errorf("Expected exit code %d for %s, got %d", tt.expected, tt.category, code)
		}
	}
}

func TestWithContextAndSuggestion(t *testing.T) {
	err := New(CategoryFile, CodeFileNotFound, "missing").
		WithContext("file_path", "/tmp/x.json").
		WithSuggestion("check the path")

	if err.Context["file_path"] != "/tmp/x.json" {
		t.Errorf("Expected context entry, got %+v", err.Context)
	}
	if err.Suggestion != "check the path" {
		t.Errorf("Expected suggestion, got %q", err.Suggestion)
	}
}

func TestFileError(t *testing.T) {
	err := FileError(CodeFileNotFound, "/data/q2.json", nil)

	if err.Category != CategoryFile {
		t.Errorf("Expected file category, got %s", err.Category)
	}
	if !strings.Contains(err.Message, "/data/q2.json") {
		t.Errorf("Expected path in message, got %q", err.Message)
	}
	if err.Suggestion == "" {
		t.Error("Expected a remediation suggestion")
	}
	if err.Context["file_path"] != "/data/q2.json" {
		t.Errorf("Expected file_path context, got %+v", err.Context)
	}
}

func TestParseErrorNotListShaped(t *testing.T) {
	err := ParseError(CodeNotListShaped, "q2.json", nil)

	if err.GetExitCode() != 3 {
		t.Errorf("Expected exit code 3, got %d", err.GetExitCode())
	}
	if !strings.Contains(err.Message, "not a list of holdings") {
		t.Errorf("Unexpected message: %q", err.Message)
	}
}

func TestAsEngineError(t *testing.T) {
	engineErr := New(CategoryParse, CodeInvalidFormat, "bad format")

	if extracted, ok := AsEngineError(engineErr); !ok || extracted != engineErr {
		t.Error("Expected direct extraction")
	}

	wrapped := fmt.Errorf("outer: %w", engineErr)
	if extracted, ok := AsEngineError(wrapped); !ok || extracted != engineErr {
		t.Error("Expected extraction through a wrap chain")
	}

	if _, ok := AsEngineError(fmt.Errorf("plain")); ok {
		t.Error("Expected plain errors not to extract")
	}
	if _, ok := AsEngineError(nil); ok {
		t.Error("Expected nil not to extract")
	}
}

func TestWrapIfNeeded(t *testing.T) {
	engineErr := New(CategoryFile, CodeFileNotFound, "missing")
	if result := WrapIfNeeded(engineErr, CategoryInternal, CodeUnexpectedError, "x"); result != engineErr {
		t.Error("Expected existing EngineError to pass through unwrapped")
	}

	plain := fmt.Errorf("plain")
	result := WrapIfNeeded(plain, CategoryInternal, CodeUnexpectedError, "wrapped")
	if result.Category != CategoryInternal || result.Cause != plain {
		t.Errorf("Expected plain error to be wrapped, got %+v", result)
	}

	if WrapIfNeeded(nil, CategoryInternal, CodeUnexpectedError, "x") != nil {
		t.Error("Expected nil to stay nil")
	}
}
