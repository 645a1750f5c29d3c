package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/usecase/checkpoint"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/integration/entrypoint/dto"
)

// CheckpointController handles checkpoint endpoints.
type CheckpointController struct {
	listUseCase   *checkpoint.ListCheckpointsUseCase
	createUseCase *checkpoint.CreateCheckpointUseCase
	updateUseCase *checkpoint.UpdateCheckpointUseCase
	deleteUseCase *checkpoint.DeleteCheckpointUseCase
}

// NewCheckpointController creates a new checkpoint controller instance.
func NewCheckpointController(
	listUseCase *checkpoint.ListCheckpointsUseCase,
	createUseCase *checkpoint.CreateCheckpointUseCase,
	updateUseCase *checkpoint.UpdateCheckpointUseCase,
	deleteUseCase *checkpoint.DeleteCheckpointUseCase,
) *CheckpointController {
	return &CheckpointController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /checkpoints requests, optionally filtered by ?goalId=.
func (c *CheckpointController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	input := checkpoint.ListCheckpointsInput{UserID: userID}
	if raw := ctx.Query("goalId"); raw != "" {
		goalID, err := uuid.Parse(raw)
		if err != nil {
			writeError(ctx, http.StatusBadRequest, "Invalid goal ID format", string(domainerror.ErrCodeMissingCheckpointFields))
			return
		}
		input.GoalID = &goalID
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCheckpointListResponse(output.Checkpoints))
}

// Create handles POST /checkpoints requests.
func (c *CheckpointController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCheckpointRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingCheckpointFields))
		return
	}

	goalID, err := uuid.Parse(req.GoalID)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "goalId is required", string(domainerror.ErrCodeMissingCheckpointFields))
		return
	}

	input := checkpoint.CreateCheckpointInput{
		UserID:      userID,
		GoalID:      goalID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := entity.CheckpointStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCheckpointResponse(output.Checkpoint))
}

// Update handles PUT /checkpoints/:id requests. Absent fields are left unchanged.
func (c *CheckpointController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	checkpointID, ok := pathUUID(ctx, "id", "checkpoint", string(domainerror.ErrCodeMissingCheckpointFields))
	if !ok {
		return
	}

	var req dto.UpdateCheckpointRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingCheckpointFields))
		return
	}

	input := checkpoint.UpdateCheckpointInput{
		CheckpointID: checkpointID,
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
	}
	if req.Status != nil {
		status := entity.CheckpointStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCheckpointResponse(output.Checkpoint))
}

// Delete handles DELETE /checkpoints/:id requests.
func (c *CheckpointController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	checkpointID, ok := pathUUID(ctx, "id", "checkpoint", string(domainerror.ErrCodeMissingCheckpointFields))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), checkpoint.DeleteCheckpointInput{
		CheckpointID: checkpointID,
		UserID:       userID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
