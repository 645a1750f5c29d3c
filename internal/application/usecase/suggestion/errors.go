package suggestion

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

var errorMessages = map[domainerror.SuggestionErrorCode]string{
	domainerror.ErrCodeSuggestionAuth:          "The suggestion service is misconfigured. Please contact support.",
	domainerror.ErrCodeSuggestionRateLimited:   "Too many suggestion requests. Wait a few minutes and try again.",
	domainerror.ErrCodeSuggestionTimeout:       "Generating suggestions took too long. Try again.",
	domainerror.ErrCodeSuggestionProviderDown:  "The suggestion service is temporarily unavailable. Try again later.",
	domainerror.ErrCodeSuggestionInvalidOutput: "The suggestion service returned an unreadable answer. Try again.",
	domainerror.ErrCodeSuggestionFailed:        "Failed to generate checkpoint suggestions. Try again.",
}

// classifyError maps a provider failure to a coded SuggestionError.
func classifyError(err error) *domainerror.SuggestionError {
	var sugErr *domainerror.SuggestionError
	if errors.As(err, &sugErr) {
		return sugErr
	}

	code := classifyCode(err)
	return domainerror.NewSuggestionError(code, errorMessages[code], errors.Join(domainerror.ErrSuggestionFailed, err))
}

func classifyCode(err error) domainerror.SuggestionErrorCode {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domainerror.ErrCodeSuggestionTimeout
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case containsAny(errStr, "rate limit", "quota", "429", "resource exhausted"):
		return domainerror.ErrCodeSuggestionRateLimited
	case containsAny(errStr, "401", "403", "invalid api key", "unauthorized", "authentication"):
		return domainerror.ErrCodeSuggestionAuth
	case containsAny(errStr, "connection", "network", "dial", "timeout", "unavailable", "503"):
		return domainerror.ErrCodeSuggestionProviderDown
	case containsAny(errStr, "parse", "json", "unmarshal", "decode"):
		return domainerror.ErrCodeSuggestionInvalidOutput
	}
	return domainerror.ErrCodeSuggestionFailed
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
