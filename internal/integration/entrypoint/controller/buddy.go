package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/usecase/buddy"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/integration/entrypoint/dto"
)

// BuddyController handles buddy request endpoints.
type BuddyController struct {
	listUseCase    *buddy.ListRequestsUseCase
	sendUseCase    *buddy.SendRequestUseCase
	respondUseCase *buddy.RespondRequestUseCase
}

// NewBuddyController creates a new buddy controller instance.
func NewBuddyController(
	listUseCase *buddy.ListRequestsUseCase,
	sendUseCase *buddy.SendRequestUseCase,
	respondUseCase *buddy.RespondRequestUseCase,
) *BuddyController {
	return &BuddyController{
		listUseCase:    listUseCase,
		sendUseCase:    sendUseCase,
		respondUseCase: respondUseCase,
	}
}

// List handles GET /buddies requests: every request the caller sent or received.
func (c *BuddyController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	c.list(ctx, userID, userID, buddy.ViewAll)
}

// Pending handles GET /buddies/pending/:userId requests.
func (c *BuddyController) Pending(ctx *gin.Context) {
	c.listForPathUser(ctx, buddy.ViewPending)
}

// Sent handles GET /buddies/sent/:userId requests.
func (c *BuddyController) Sent(ctx *gin.Context) {
	c.listForPathUser(ctx, buddy.ViewSent)
}

// Accepted handles GET /buddies/accepted/:userId requests.
func (c *BuddyController) Accepted(ctx *gin.Context) {
	c.listForPathUser(ctx, buddy.ViewAccepted)
}

func (c *BuddyController) listForPathUser(ctx *gin.Context, view buddy.ListView) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	userID, ok := pathUUID(ctx, "userId", "user", string(domainerror.ErrCodeInvalidProfileID))
	if !ok {
		return
	}
	c.list(ctx, actorID, userID, view)
}

func (c *BuddyController) list(ctx *gin.Context, actorID, userID uuid.UUID, view buddy.ListView) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), buddy.ListRequestsInput{
		ActorID: actorID,
		UserID:  userID,
		View:    view,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBuddyRequestListResponse(output.Requests))
}

// Create handles POST /buddies requests.
func (c *BuddyController) Create(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateBuddyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingBuddyFields))
		return
	}

	input := buddy.SendRequestInput{ActorID: actorID}
	if req.ReceiverID != "" {
		receiverID, err := uuid.Parse(req.ReceiverID)
		if err != nil {
			writeError(ctx, http.StatusBadRequest, "Invalid receiver ID format", string(domainerror.ErrCodeMissingBuddyFields))
			return
		}
		input.ReceiverID = receiverID
	}
	if req.RequesterID != "" {
		requesterID, err := uuid.Parse(req.RequesterID)
		if err != nil {
			writeError(ctx, http.StatusBadRequest, "Invalid requester ID format", string(domainerror.ErrCodeMissingBuddyFields))
			return
		}
		input.RequesterID = requesterID
	}

	output, err := c.sendUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBuddyRequestResponse(output.Request))
}

// Update handles PUT /buddies/:id requests with body {"status": "ACCEPTED"|"REJECTED"}.
func (c *BuddyController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	requestID, ok := pathUUID(ctx, "id", "buddy request", string(domainerror.ErrCodeMissingBuddyFields))
	if !ok {
		return
	}

	var req dto.UpdateBuddyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "status is required", string(domainerror.ErrCodeInvalidBuddyStatus))
		return
	}

	output, err := c.respondUseCase.Execute(ctx.Request.Context(), buddy.RespondRequestInput{
		RequestID: requestID,
		UserID:    userID,
		Status:    entity.BuddyRequestStatus(req.Status),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBuddyRequestResponse(output.Request))
}
