package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/usecase/goal"
	"github.com/productivity-app/backend/internal/application/usecase/suggestion"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/integration/entrypoint/dto"
)

// GoalController handles goal endpoints.
type GoalController struct {
	listUseCase     *goal.ListGoalsUseCase
	createUseCase   *goal.CreateGoalUseCase
	getUseCase      *goal.GetGoalUseCase
	updateUseCase   *goal.UpdateGoalUseCase
	deleteUseCase   *goal.DeleteGoalUseCase
	completeUseCase *goal.CompleteGoalUseCase
	suggestUseCase  *suggestion.SuggestCheckpointsUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	completeUseCase *goal.CompleteGoalUseCase,
	suggestUseCase *suggestion.SuggestCheckpointsUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		getUseCase:      getUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		completeUseCase: completeUseCase,
		suggestUseCase:  suggestUseCase,
	}
}

func goalIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	return pathUUID(ctx, name, "goal", string(domainerror.ErrCodeMissingGoalFields))
}

// ListByUser handles GET /goals/user/:userId requests.
func (c *GoalController) ListByUser(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	userID, ok := pathUUID(ctx, "userId", "user", string(domainerror.ErrCodeInvalidProfileID))
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		ActorID: actorID,
		UserID:  userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals/:id requests, where id is the owning user.
func (c *GoalController) Create(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	userID, ok := pathUUID(ctx, "id", "user", string(domainerror.ErrCodeInvalidProfileID))
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	input := goal.CreateGoalInput{
		ActorID:     actorID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Status != nil {
		status := entity.GoalStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := goalIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Update handles PUT /goals/:id requests. Absent fields are left unchanged.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := goalIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:      goalID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Progress:    req.Progress,
	}
	if req.Status != nil {
		status := entity.GoalStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := goalIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		GoalID: goalID,
		UserID: userID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Complete handles POST /goals/:id/complete requests.
func (c *GoalController) Complete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := goalIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.completeUseCase.Execute(ctx.Request.Context(), goal.CompleteGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Suggest handles POST /goals/:id/suggestions requests.
func (c *GoalController) Suggest(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := goalIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), suggestion.SuggestCheckpointsInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	response := dto.SuggestionListResponse{
		GoalID:      goalID.String(),
		Suggestions: make([]dto.SuggestionResponse, 0, len(output.Suggestions)),
	}
	for _, s := range output.Suggestions {
		response.Suggestions = append(response.Suggestions, dto.SuggestionResponse{
			Title:       s.Title,
			Description: s.Description,
			DueDate:     s.DueDate,
		})
	}
	ctx.JSON(http.StatusOK, response)
}
