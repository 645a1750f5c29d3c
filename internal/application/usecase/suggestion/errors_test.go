package suggestion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode domainerror.SuggestionErrorCode
	}{
		// Timeout/cancellation errors
		{"context deadline exceeded", context.DeadlineExceeded, domainerror.ErrCodeSuggestionTimeout},
		{"context canceled", context.Canceled, domainerror.ErrCodeSuggestionTimeout},
		{"wrapped deadline", fmt.Errorf("generate: %w", context.DeadlineExceeded), domainerror.ErrCodeSuggestionTimeout},
		// Rate limiting errors
		{"rate limit error", errors.New("rate limit exceeded"), domainerror.ErrCodeSuggestionRateLimited},
		{"quota error", errors.New("quota exceeded"), domainerror.ErrCodeSuggestionRateLimited},
		{"429 status code", errors.New("HTTP 429: too many requests"), domainerror.ErrCodeSuggestionRateLimited},
		{"resource exhausted", errors.New("resource exhausted"), domainerror.ErrCodeSuggestionRateLimited},
		// Authentication errors
		{"401 unauthorized", errors.New("401 unauthorized"), domainerror.ErrCodeSuggestionAuth},
		{"403 forbidden", errors.New("403 forbidden"), domainerror.ErrCodeSuggestionAuth},
		{"invalid api key", errors.New("invalid api key"), domainerror.ErrCodeSuggestionAuth},
		// Network/connection errors
		{"connection refused", errors.New("connection refused"), domainerror.ErrCodeSuggestionProviderDown},
		{"dial error", errors.New("dial tcp: i/o"), domainerror.ErrCodeSuggestionProviderDown},
		{"503 status code", errors.New("HTTP 503"), domainerror.ErrCodeSuggestionProviderDown},
		// Parse errors
		{"parse error", errors.New("failed to parse response"), domainerror.ErrCodeSuggestionInvalidOutput},
		{"json error", errors.New("invalid json"), domainerror.ErrCodeSuggestionInvalidOutput},
		// Unknown errors
		{"unknown error", errors.New("something unexpected happened"), domainerror.ErrCodeSuggestionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyError(tt.err)

			if result.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, result.Code)
			}
			if result.Message != errorMessages[tt.expectedCode] {
				t.Errorf("expected message %q, got %q", errorMessages[tt.expectedCode], result.Message)
			}
			if !errors.Is(result, domainerror.ErrSuggestionFailed) {
				t.Error("expected result to wrap ErrSuggestionFailed")
			}
		})
	}
}

func TestClassifyError_KeepsCodedErrors(t *testing.T) {
	coded := domainerror.NewSuggestionError(domainerror.ErrCodeSuggestionUnavailable, "off", domainerror.ErrSuggestionUnavailable)

	result := classifyError(fmt.Errorf("wrap: %w", coded))

	if result != coded {
		t.Errorf("expected the original error to be returned, got %v", result)
	}
}
