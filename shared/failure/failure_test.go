package failure_test

import (
	"context"
	"errors"
	"fmt"
	"larisa/shared/failure"
	"net/http"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequest",
			err:     failure.BadRequest(errors.New("validation failed")),
			code:    http.StatusBadRequest,
			message: "validation failed",
		},
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("minPrice is required"),
			code:    http.StatusBadRequest,
			message: "minPrice is required",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("Not Authorized"),
			code:    http.StatusUnauthorized,
			message: "Not Authorized",
		},
		{
			name:    "InternalError",
			err:     failure.InternalError(errors.New("database connection failed")),
			code:    http.StatusInternalServerError,
			message: "database connection failed",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("room not found"),
			code:    http.StatusNotFound,
			message: "room not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("room is not available"),
			code:    http.StatusConflict,
			message: "room is not available",
		},
		{
			name:    "Forbidden",
			err:     failure.Forbidden("Access denied"),
			code:    http.StatusForbidden,
			message: "Access denied",
		},
		{
			name:    "Timeout",
			err:     failure.Timeout("database timeout"),
			code:    http.StatusGatewayTimeout,
			message: "database timeout",
		},
		{
			name:    "PaymentProvider",
			err:     failure.PaymentProvider(errors.New("card_declined")),
			code:    http.StatusBadGateway,
			message: "payment provider error: card_declined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message to be %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestNilConstructors(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.PaymentProvider(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestFromContext(t *testing.T) {
	deadline := fmt.Errorf("query rooms: %w", context.DeadlineExceeded)

	if code := failure.GetCode(failure.FromContext(deadline, "timeout")); code != http.StatusGatewayTimeout {
		t.Errorf("expected code to be %d, got %d", http.StatusGatewayTimeout, code)
	}

	other := errors.New("syntax error")
	if err := failure.FromContext(other, "timeout"); err != other {
		t.Errorf("expected the original error back, got %v", err)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to book room: %w", failure.NotFound("room not found")),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", failure.Conflict("busy"))

	if !failure.Is(err, http.StatusConflict) {
		t.Error("expected conflict to be detected through wrapping")
	}

	if failure.Is(err, http.StatusNotFound) {
		t.Error("expected conflict not to match not found")
	}
}
