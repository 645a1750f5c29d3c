package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productivity-app/backend/internal/application/usecase/user"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/integration/entrypoint/dto"
	"github.com/productivity-app/backend/internal/integration/entrypoint/middleware"
)

// UserController handles profile endpoints.
type UserController struct {
	getUseCase    *user.GetUserUseCase
	updateUseCase *user.UpdateUserUseCase
	deleteUseCase *user.DeleteUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getUseCase *user.GetUserUseCase,
	updateUseCase *user.UpdateUserUseCase,
	deleteUseCase *user.DeleteUserUseCase,
) *UserController {
	return &UserController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Get handles GET /users/:id requests.
func (c *UserController) Get(ctx *gin.Context) {
	if _, ok := currentUserID(ctx); !ok {
		return
	}
	userID, ok := pathUUID(ctx, "id", "user", string(domainerror.ErrCodeInvalidProfileID))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), user.GetUserInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Update handles PUT /users/:id requests.
func (c *UserController) Update(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	userID, ok := pathUUID(ctx, "id", "user", string(domainerror.ErrCodeInvalidProfileID))
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), user.UpdateUserInput{
		ActorID:  actorID,
		UserID:   userID,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Delete handles DELETE /users/:id requests. The user's goals, checkpoints and
// buddy requests are removed with the account.
func (c *UserController) Delete(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	userID, ok := pathUUID(ctx, "id", "user", string(domainerror.ErrCodeInvalidProfileID))
	if !ok {
		return
	}
	claims, _ := middleware.GetClaimsFromContext(ctx)

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), user.DeleteUserInput{
		ActorID: actorID,
		UserID:  userID,
		Claims:  claims,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
