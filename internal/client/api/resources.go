package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

// RegisterRequest holds the fields for a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate is a partial profile update.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// GoalCreate holds the fields for a new goal.
type GoalCreate struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StartDate   valueobject.Date  `json:"startDate"`
	EndDate     valueobject.Date  `json:"endDate"`
	Status      *model.GoalStatus `json:"status,omitempty"`
}

// GoalUpdate is a partial goal update. Nil fields are left unchanged.
type GoalUpdate struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	StartDate   *valueobject.Date `json:"startDate,omitempty"`
	EndDate     *valueobject.Date `json:"endDate,omitempty"`
	Status      *model.GoalStatus `json:"status,omitempty"`
	Progress    *int              `json:"progress,omitempty"`
}

// CheckpointCreate holds the fields for a new checkpoint.
type CheckpointCreate struct {
	GoalID      uuid.UUID               `json:"goalId"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	DueDate     valueobject.Date        `json:"dueDate"`
	Status      *model.CheckpointStatus `json:"status,omitempty"`
}

// CheckpointUpdate is a partial checkpoint update.
type CheckpointUpdate struct {
	Title       *string                 `json:"title,omitempty"`
	Description *string                 `json:"description,omitempty"`
	DueDate     *valueobject.Date       `json:"dueDate,omitempty"`
	Status      *model.CheckpointStatus `json:"status,omitempty"`
}

// Users groups the /users endpoints.
type Users struct {
	client *Client
}

// Login exchanges credentials for a token and stores it in the session.
func (u *Users) Login(ctx context.Context, request LoginRequest) (*LoginResponse, error) {
	var response LoginResponse
	if err := u.client.do(ctx, http.MethodPost, "/users/login", false, request, &response); err != nil {
		return nil, err
	}
	if err := u.client.session.SignIn(response.Token, response.User.ID); err != nil {
		return nil, err
	}
	return &response, nil
}

// Register creates an account. It does not sign in.
func (u *Users) Register(ctx context.Context, request RegisterRequest) (*model.User, error) {
	var user model.User
	if err := u.client.do(ctx, http.MethodPost, "/users/register", false, request, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the token on the server and clears the session. The local
// session is cleared even when the server call fails.
func (u *Users) Logout(ctx context.Context) error {
	err := u.client.do(ctx, http.MethodPost, "/users/logout", true, nil, nil)
	if clearErr := u.client.session.SignOut(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

func (u *Users) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := u.client.do(ctx, http.MethodGet, "/users/"+id.String(), true, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*model.User, error) {
	var user model.User
	if err := u.client.do(ctx, http.MethodPut, "/users/"+id.String(), true, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the account. Deleting the signed-in user also clears the session.
func (u *Users) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.client.do(ctx, http.MethodDelete, "/users/"+id.String(), true, nil, nil); err != nil {
		return err
	}
	if current, ok := u.client.session.UserID(); ok && current == id {
		return u.client.session.SignOut()
	}
	return nil
}

// Goals groups the /goals endpoints.
type Goals struct {
	client *Client
}

func (g *Goals) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	var goals []model.Goal
	if err := g.client.do(ctx, http.MethodGet, "/goals/user/"+userID.String(), true, nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// Create adds a goal owned by userID.
func (g *Goals) Create(ctx context.Context, userID uuid.UUID, request GoalCreate) (*model.Goal, error) {
	var goal model.Goal
	if err := g.client.do(ctx, http.MethodPost, "/goals/"+userID.String(), true, request, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (g *Goals) Get(ctx context.Context, id uuid.UUID) (*model.Goal, error) {
	var goal model.Goal
	if err := g.client.do(ctx, http.MethodGet, "/goals/"+id.String(), true, nil, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (g *Goals) Update(ctx context.Context, id uuid.UUID, update GoalUpdate) (*model.Goal, error) {
	var goal model.Goal
	if err := g.client.do(ctx, http.MethodPut, "/goals/"+id.String(), true, update, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (g *Goals) Delete(ctx context.Context, id uuid.UUID) error {
	return g.client.do(ctx, http.MethodDelete, "/goals/"+id.String(), true, nil, nil)
}

// Complete marks the goal COMPLETED with progress 100.
func (g *Goals) Complete(ctx context.Context, id uuid.UUID) (*model.Goal, error) {
	var goal model.Goal
	if err := g.client.do(ctx, http.MethodPost, "/goals/"+id.String()+"/complete", true, nil, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// Suggest asks the service to propose checkpoints for the goal.
func (g *Goals) Suggest(ctx context.Context, id uuid.UUID) (*model.SuggestionList, error) {
	var list model.SuggestionList
	if err := g.client.do(ctx, http.MethodPost, "/goals/"+id.String()+"/suggestions", true, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Checkpoints groups the /checkpoints endpoints.
type Checkpoints struct {
	client *Client
}

// List returns the caller's checkpoints, restricted to goalID unless it is uuid.Nil.
func (c *Checkpoints) List(ctx context.Context, goalID uuid.UUID) ([]model.Checkpoint, error) {
	path := "/checkpoints"
	if goalID != uuid.Nil {
		path += "?" + url.Values{"goalId": {goalID.String()}}.Encode()
	}
	var checkpoints []model.Checkpoint
	if err := c.client.do(ctx, http.MethodGet, path, true, nil, &checkpoints); err != nil {
		return nil, err
	}
	return checkpoints, nil
}

func (c *Checkpoints) Create(ctx context.Context, request CheckpointCreate) (*model.Checkpoint, error) {
	var checkpoint model.Checkpoint
	if err := c.client.do(ctx, http.MethodPost, "/checkpoints", true, request, &checkpoint); err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func (c *Checkpoints) Update(ctx context.Context, id uuid.UUID, update CheckpointUpdate) (*model.Checkpoint, error) {
	var checkpoint model.Checkpoint
	if err := c.client.do(ctx, http.MethodPut, "/checkpoints/"+id.String(), true, update, &checkpoint); err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func (c *Checkpoints) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.do(ctx, http.MethodDelete, "/checkpoints/"+id.String(), true, nil, nil)
}

// Buddies groups the /buddies endpoints.
type Buddies struct {
	client *Client
}

// List returns every request the caller sent or received.
func (b *Buddies) List(ctx context.Context) ([]model.BuddyRequest, error) {
	return b.list(ctx, "/buddies")
}

// Create sends a buddy request to receiverID.
func (b *Buddies) Create(ctx context.Context, receiverID uuid.UUID) (*model.BuddyRequest, error) {
	body := map[string]string{"receiverId": receiverID.String()}
	var request model.BuddyRequest
	if err := b.client.do(ctx, http.MethodPost, "/buddies", true, body, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Update answers a pending request with ACCEPTED or REJECTED.
func (b *Buddies) Update(ctx context.Context, id uuid.UUID, status model.BuddyRequestStatus) (*model.BuddyRequest, error) {
	body := map[string]string{"status": string(status)}
	var request model.BuddyRequest
	if err := b.client.do(ctx, http.MethodPut, "/buddies/"+id.String(), true, body, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Pending returns requests waiting for userID to answer.
func (b *Buddies) Pending(ctx context.Context, userID uuid.UUID) ([]model.BuddyRequest, error) {
	return b.list(ctx, "/buddies/pending/"+userID.String())
}

// Sent returns pending requests userID has sent.
func (b *Buddies) Sent(ctx context.Context, userID uuid.UUID) ([]model.BuddyRequest, error) {
	return b.list(ctx, "/buddies/sent/"+userID.String())
}

// Accepted returns accepted requests on either side.
func (b *Buddies) Accepted(ctx context.Context, userID uuid.UUID) ([]model.BuddyRequest, error) {
	return b.list(ctx, "/buddies/accepted/"+userID.String())
}

func (b *Buddies) list(ctx context.Context, path string) ([]model.BuddyRequest, error) {
	var requests []model.BuddyRequest
	if err := b.client.do(ctx, http.MethodGet, path, true, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
