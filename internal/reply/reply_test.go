package reply

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := New(IoError, "disk full")

	if got := err.Error(); got != "IoError : disk full" {
		t.Errorf("Expected 'IoError : disk full', got %q", got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(NetworkError, cause, "download interrupted")

	if !errors.Is(err, cause) {
		t.Error("Expected wrapped error to match its cause with errors.Is")
	}

	if got := err.Error(); got != "NetworkError : download interrupted: connection reset" {
		t.Errorf("Unexpected message: %q", got)
	}
}

func TestTypeOf(t *testing.T) {
	if got := TypeOf(New(ValidationError, "bad index")); got != ValidationError {
		t.Errorf("Expected ValidationError, got %s", got)
	}

	// categorized error buried under plain wrapping is still found
	wrapped := fmt.Errorf("stage failed: %w", New(ExternalError, "encoder died"))
	if got := TypeOf(wrapped); got != ExternalError {
		t.Errorf("Expected ExternalError, got %s", got)
	}

	if got := TypeOf(errors.New("plain")); got != AppError {
		t.Errorf("Expected AppError for uncategorized error, got %s", got)
	}
}

func TestIsType(t *testing.T) {
	err := New(NotFound, "missing")

	if !IsType(err, NotFound) {
		t.Error("Expected IsType to match NotFound")
	}
	if IsType(err, ServerError) {
		t.Error("Expected IsType to reject ServerError")
	}
}

func TestFromStatus(t *testing.T) {
	cases := []struct {
		code int
		want ErrorType
	}{
		{401, Unauthorized},
		{403, Unauthorized},
		{404, NotFound},
		{409, Conflict},
		{400, ValidationError},
		{418, ValidationError},
		{500, ServerError},
		{503, ServerError},
		{200, AppError},
	}

	for _, c := range cases {
		if got := FromStatus(c.code); got != c.want {
			t.Errorf("FromStatus(%d): expected %s, got %s", c.code, c.want, got)
		}
	}
}
