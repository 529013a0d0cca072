package cmd

import (
	"fmt"
	"testing"

	"github.com/spergel/new-finance-sub001/pkg/errors"
)

func TestHandleErrorNil(t *testing.T) {
	handler := NewCLIErrorHandler()
	if code := handler.HandleError(nil); code != 0 {
		t.Errorf("Expected exit code 0 for nil error, got %d", code)
	}
}

func TestHandleErrorEngineError(t *testing.T) {
	handler := NewCLIErrorHandler()

	tests := []struct {
		err      *errors.EngineError
		expected int
	}{
		{errors.FileError(errors.CodeFileNotFound, "/tmp/x.json", nil), 2},
		{errors.ParseError(errors.CodeNotListShaped, "x.json", nil), 3},
		{errors.ConfigurationError(errors.CodeInvalidConfig, "epsilon", -1, nil), 4},
		{errors.InternalError(errors.CodeUnexpectedError, "diff", nil), 5},
	}

	for _, tt := range tests {
		if code := handler.HandleError(tt.err); code != tt.expected {
			t.Errorf("Expected exit code %d for %s, got %d", tt.expected, tt.err.Category, code)
		}
	}
}

func TestHandleErrorGeneric(t *testing.T) {
	handler := NewCLIErrorHandler()

	if code := handler.HandleError(fmt.Errorf("something failed")); code != 1 {
		t.Errorf("Expected exit code 1 for generic error, got %d", code)
	}

	if code := handler.HandleError(fmt.Errorf("open x: no such file or directory")); code != 2 {
		t.Errorf("Expected exit code 2 for file-not-found text, got %d", code)
	}

	if code := handler.HandleError(fmt.Errorf("open x: permission denied")); code != 2 {
		t.Errorf("Expected exit code 2 for permission text, got %d", code)
	}
}
