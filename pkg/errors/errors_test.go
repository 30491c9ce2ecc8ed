package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "delta must be positive, got %g", -1.0)

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidConfig)
	}
	if !strings.Contains(err.Error(), "delta must be positive") {
		t.Errorf("Error() = %q, missing message", err.Error())
	}
	if !strings.Contains(err.Error(), string(ErrCodeInvalidConfig)) {
		t.Errorf("Error() = %q, missing code", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "read preset %s", "deepening.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"MatchingCode", New(ErrCodeNumericDomain, "log of non-positive"), ErrCodeNumericDomain, true},
		{"DifferentCode", New(ErrCodeNumericDomain, "log of non-positive"), ErrCodeInvalidConfig, false},
		{"WrappedInFmt", fmt.Errorf("step 3: %w", New(ErrCodeDegenerateSelection, "zero mass")), ErrCodeDegenerateSelection, true},
		{"PlainError", stderrors.New("plain"), ErrCodeInternal, false},
		{"Nil", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidPreset, "unknown preset")); got != ErrCodeInvalidPreset {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInvalidPreset)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode = %q, want empty", got)
	}
}
