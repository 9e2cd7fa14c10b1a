package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeInvalidInput, "order is not a permutation"),
			expected: "[INVALID_INPUT] order is not a permutation",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodeParseError, "parse failed", errors.New("unexpected token")),
			expected: "[PARSE_ERROR] parse failed: unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodeInternal, "list ranking failed", underlying)

	unwrapped := err.Unwrap()
	assert.Equal(t, underlying, unwrapped)
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeParseError, "error 1")
	err2 := New(CodeParseError, "error 2")
	err3 := New(CodeInvalidInput, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestIsParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "parse error",
			err:      ErrParseError,
			expected: true,
		},
		{
			name:     "wrapped parse error",
			err:      Wrap(CodeParseError, "bad line", errors.New("strconv")),
			expected: true,
		},
		{
			name:     "other error",
			err:      ErrInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsParseError(tt.err))
		})
	}
}

func TestIsNotSpanning(t *testing.T) {
	assert.True(t, IsNotSpanning(ErrNotSpanning))
	assert.False(t, IsNotSpanning(ErrParseError))
}

func TestIsInternal(t *testing.T) {
	assert.True(t, IsInternal(ErrInternal))
	assert.False(t, IsInternal(ErrParseError))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeParseError, "bad format"),
			expected: CodeParseError,
		},
		{
			name:     "wrapped app error",
			err:      Wrap(CodeInvalidInput, "bad n", errors.New("inner")),
			expected: CodeInvalidInput,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: CodeUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeIOError, "could not open graph file"),
			expected: "could not open graph file",
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "standard error",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.err))
		})
	}
}
