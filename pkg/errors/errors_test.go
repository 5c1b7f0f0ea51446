package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNodes, "expected %d nodes, got %d", 2, 1)

	if err.Code != ErrCodeNodes {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNodes)
	}

	if err.Message != "expected 2 nodes, got 1" {
		t.Errorf("Message = %v, want %v", err.Message, "expected 2 nodes, got 1")
	}

	expected := "NODES: expected 2 nodes, got 1"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidFormat, cause, "decode circuit")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeMask, "test"),
			code:     ErrCodeMask,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMask, "test"),
			code:     ErrCodePortCount,
			expected: false,
		},
		{
			name:     "outer code of wrapped error",
			err:      Wrap(ErrCodeInvalidFormat, New(ErrCodeNodes, "inner"), "outer"),
			code:     ErrCodeInvalidFormat,
			expected: true,
		},
		{
			name:     "inner code of wrapped error",
			err:      Wrap(ErrCodeInvalidFormat, New(ErrCodeNodes, "inner"), "outer"),
			code:     ErrCodeNodes,
			expected: true,
		},
		{
			name:     "fmt wrapped error",
			err:      fmt.Errorf("load: %w", New(ErrCodeCyclicModel, "a -> a")),
			code:     ErrCodeCyclicModel,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeNodes,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeNodes,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeFrozenSubckt, "test"),
			expected: ErrCodeFrozenSubckt,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeNodes, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "wrapped Error",
			err:      Wrap(ErrCodeInvalidFormat, New(ErrCodeNodes, "bad nodes"), "instance 3"),
			expected: "instance 3: bad nodes",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInput(t *testing.T) {
	if !IsInput(New(ErrCodeMask, "x")) {
		t.Error("IsInput(MASK) = false, want true")
	}
	if IsInput(New(ErrCodeNotFound, "x")) {
		t.Error("IsInput(NOT_FOUND) = true, want false")
	}
	if IsInput(errors.New("plain")) {
		t.Error("IsInput(plain) = true, want false")
	}
}
