package errors

import (
	"errors"
	"fmt"
	"testing"
)

// wireError stands in for the typed errors of the zx package.
type wireError struct{ code Code }

func (e *wireError) Error() string { return "wire 2 is occupied" }
func (e *wireError) Code() Code    { return e.code }

func TestErrorString(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidFormat, "unknown format %q", "gif"), `INVALID_FORMAT: unknown format "gif"`},
		{Wrap(ErrCodeInvalidPath, cause, "write %s", "cx.tex"), "INVALID_PATH: write cx.tex: permission denied"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	wrapped := Wrap(ErrCodeInternal, cause, "render")
	if !errors.Is(wrapped, cause) || errors.Unwrap(wrapped) != cause {
		t.Error("Wrap should keep the cause in the chain")
	}
}

func TestCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   Code
		client bool
	}{
		{"coded", New(ErrCodeInvalidArgument, "control and target must differ"), ErrCodeInvalidArgument, true},
		{"coder", &wireError{code: ErrCodeWireState}, ErrCodeWireState, true},
		{"coder behind fmt", fmt.Errorf("build gadget(ZQ,0): %w", &wireError{code: ErrCodeInvalidPauli}), ErrCodeInvalidPauli, true},
		{"outer code wins", Wrap(ErrCodeInternal, &wireError{code: ErrCodeWireState}, "render"), ErrCodeInternal, false},
		{"lookup", New(ErrCodeNotFound, "vertex 9"), ErrCodeNotFound, true},
		{"unsupported", New(ErrCodeUnsupported, "pdf"), ErrCodeUnsupported, false},
		{"plain", errors.New("boom"), "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %s) = false", tt.code)
			}
			if Is(tt.err, ErrCodeInvalidConfig) {
				t.Error("Is() matched an unrelated code")
			}
			if got := IsClientError(tt.err); got != tt.client {
				t.Errorf("IsClientError() = %v, want %v", got, tt.client)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "unknown gate kind %q", "ccx")); got != `unknown gate kind "ccx"` {
		t.Errorf("UserMessage(*Error) = %q", got)
	}
	if got := UserMessage(&wireError{}); got != "wire 2 is occupied" {
		t.Errorf("UserMessage(coder) = %q", got)
	}
}
