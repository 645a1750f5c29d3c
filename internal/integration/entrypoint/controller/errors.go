package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/integration/entrypoint/dto"
	"github.com/productivity-app/backend/internal/integration/entrypoint/middleware"
)

// handleError maps typed domain errors to HTTP responses. Anything unrecognised
// is logged and reported as a 500 without leaking details.
func handleError(ctx *gin.Context, err error) {
	var (
		authErr       *domainerror.AuthError
		userErr       *domainerror.UserError
		goalErr       *domainerror.GoalError
		checkpointErr *domainerror.CheckpointError
		buddyErr      *domainerror.BuddyError
		suggestionErr *domainerror.SuggestionError
	)

	switch {
	case errors.As(err, &authErr):
		writeError(ctx, authStatus(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.As(err, &userErr):
		writeError(ctx, userStatus(userErr.Code), userErr.Message, string(userErr.Code))
	case errors.As(err, &goalErr):
		writeError(ctx, goalStatus(goalErr.Code), goalErr.Message, string(goalErr.Code))
	case errors.As(err, &checkpointErr):
		writeError(ctx, checkpointStatus(checkpointErr.Code), checkpointErr.Message, string(checkpointErr.Code))
	case errors.As(err, &buddyErr):
		writeError(ctx, buddyStatus(buddyErr.Code), buddyErr.Message, string(buddyErr.Code))
	case errors.As(err, &suggestionErr):
		writeError(ctx, suggestionStatus(suggestionErr.Code), suggestionErr.Message, string(suggestionErr.Code))
	case errors.Is(err, domainerror.ErrUserNotFound):
		writeError(ctx, http.StatusNotFound, "User not found", string(domainerror.ErrCodeProfileNotFound))
	default:
		slog.Error("Unhandled request error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		writeError(ctx, http.StatusInternalServerError, "An internal error occurred", "")
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.NewErrorResponse(message, code))
}

// currentUserID returns the authenticated user or writes a 401.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		writeError(ctx, http.StatusUnauthorized, "User not authenticated", string(domainerror.ErrCodeMissingToken))
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path parameter or writes a 400 with the given code.
func pathUUID(ctx *gin.Context, name, label, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid "+label+" ID format", code)
		return uuid.Nil, false
	}
	return id, true
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists, domainerror.ErrCodeUsernameExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword, domainerror.ErrCodeInvalidEmail, domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeRevokedToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func userStatus(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeProfileNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeForbiddenProfileAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeProfileEmailExists, domainerror.ErrCodeProfileUsernameExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidProfileEmail, domainerror.ErrCodeInvalidProfileID:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func goalStatus(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidGoalPeriod,
		domainerror.ErrCodeMissingGoalFields,
		domainerror.ErrCodeInvalidGoalStatus,
		domainerror.ErrCodeInvalidProgress:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func checkpointStatus(code domainerror.CheckpointErrorCode) int {
	switch code {
	case domainerror.ErrCodeCheckpointNotFound, domainerror.ErrCodeCheckpointGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedCheckpointAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidCheckpointStatus, domainerror.ErrCodeMissingCheckpointFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func buddyStatus(code domainerror.BuddyErrorCode) int {
	switch code {
	case domainerror.ErrCodeBuddyRequestExists, domainerror.ErrCodeRequestNotPending:
		return http.StatusConflict
	case domainerror.ErrCodeSelfBuddyRequest,
		domainerror.ErrCodeMissingBuddyFields,
		domainerror.ErrCodeInvalidBuddyStatus:
		return http.StatusBadRequest
	case domainerror.ErrCodeRequesterNotFound,
		domainerror.ErrCodeReceiverNotFound,
		domainerror.ErrCodeBuddyRequestNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotRequestReceiver, domainerror.ErrCodeUnauthorizedBuddyAccess:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func suggestionStatus(code domainerror.SuggestionErrorCode) int {
	switch code {
	case domainerror.ErrCodeSuggestionUnavailable, domainerror.ErrCodeSuggestionProviderDown:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeSuggestionRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeSuggestionTimeout:
		return http.StatusGatewayTimeout
	case domainerror.ErrCodeSuggestionAuth,
		domainerror.ErrCodeSuggestionFailed,
		domainerror.ErrCodeSuggestionInvalidOutput:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
