//go:build integration

package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/client/api"
	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/client/mutation"
	"github.com/productivity-app/backend/internal/client/query"
	"github.com/productivity-app/backend/internal/client/session"
	"github.com/productivity-app/backend/internal/client/viewmodel"
	"github.com/productivity-app/backend/test/integration/mock"
)

const clientStaleTime = time.Minute

// clientApp is the client stack a scenario drives.
type clientApp struct {
	session       *session.Session
	client        *api.Client
	cache         *query.Cache
	goals         query.Typed[[]model.Goal]
	buddies       query.Typed[[]model.BuddyRequest]
	mutations     *mutation.Orchestrator
	notifier      *recordingNotifier
	confirmer     *answeringConfirmer
	loginRequired atomic.Int32

	lastGoals    []model.Goal
	lastErr      error
	lastMutation *mutation.Mutation
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Success(message string) { n.record("success: " + message) }
func (n *recordingNotifier) Error(message string)   { n.record("error: " + message) }

func (n *recordingNotifier) record(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type answeringConfirmer struct {
	answer bool
	asked  int
}

func (c *answeringConfirmer) Confirm(string) bool {
	c.asked++
	return c.answer
}

func registerClientSteps(ctx *godog.ScenarioContext, t *testContext) {
	// Remote setup
	ctx.Given(`^the remote API responds to "([^"]*)" "([^"]*)" with status (\d+) and body:$`, t.theRemoteAPIRespondsWith)
	ctx.Given(`^call (\d+) to "([^"]*)" "([^"]*)" responds with status (\d+) and body:$`, t.callRespondsWith)
	ctx.Given(`^a client signed in with token "([^"]*)" as user "([^"]*)"$`, t.aClientSignedIn)
	ctx.Given(`^the user answers "(yes|no)" to confirmations$`, t.theUserAnswers)

	// Client actions
	ctx.When(`^the client loads goals for user "([^"]*)"$`, t.theClientLoadsGoals)
	ctx.When(`^(\d+) goal loads for user "([^"]*)" run concurrently$`, t.goalLoadsRunConcurrently)
	ctx.When(`^the clock advances by "([^"]*)"$`, t.theClockAdvancesBy)
	ctx.When(`^the client completes goal "([^"]*)"$`, t.theClientCompletesGoal)
	ctx.When(`^the client changes goal "([^"]*)" to "([^"]*)"$`, t.theClientChangesGoal)
	ctx.When(`^the client deletes goal "([^"]*)"$`, t.theClientDeletesGoal)
	ctx.When(`^the client accepts buddy request "([^"]*)"$`, t.theClientAcceptsBuddyRequest)

	// Client assertions
	ctx.Then(`^the client should hold (\d+) goals?$`, t.theClientShouldHoldGoals)
	ctx.Then(`^cached goal (\d+) should have status "([^"]*)"$`, t.cachedGoalShouldHaveStatus)
	ctx.Then(`^the client load should fail with kind "([^"]*)"$`, t.theClientLoadShouldFailWithKind)
	ctx.Then(`^the remote API should have received (\d+) "([^"]*)" requests? to "([^"]*)"$`, t.theRemoteShouldHaveReceived)
	ctx.Then(`^request (\d+) to "([^"]*)" "([^"]*)" should carry header "([^"]*)" with "([^"]*)"$`, t.requestShouldCarryHeader)
	ctx.Then(`^request (\d+) to "([^"]*)" "([^"]*)" should have body field "([^"]*)" with "([^"]*)"$`, t.requestShouldHaveBodyField)
	ctx.Then(`^the session should be signed out$`, t.theSessionShouldBeSignedOut)
	ctx.Then(`^the login prompt should have been shown (\d+) times?$`, t.theLoginPromptShouldHaveBeenShown)
	ctx.Then(`^the mutation should end "([^"]*)"$`, t.theMutationShouldEnd)
	ctx.Then(`^the notifications should be:$`, t.theNotificationsShouldBe)
	ctx.Then(`^the dashboard should show (\d+) goals?, (\d+) active and (\d+) pending buddy requests?$`, t.theDashboardShouldShow)
}

func (t *testContext) remoteAPI() *mock.ApiMock {
	if t.remote == nil {
		t.remote = mock.NewApiServer()
		t.remote.Start()
	}
	return t.remote
}

func (t *testContext) theRemoteAPIRespondsWith(method, path string, status int, body *godog.DocString) error {
	return t.script(-1, method, path, status, body)
}

func (t *testContext) callRespondsWith(call int, method, path string, status int, body *godog.DocString) error {
	return t.script(call-1, method, path, status, body)
}

func (t *testContext) script(index int, method, path string, status int, body *godog.DocString) error {
	var payload any
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("invalid response body: %w", err)
	}
	t.remoteAPI().SetResponse(index, method, path, status, payload)
	return nil
}

func (t *testContext) aClientSignedIn(token, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	sess, err := session.New(session.NewMemoryStore(session.State{Token: token, UserID: id.String()}))
	if err != nil {
		return err
	}
	client, err := api.NewClient(api.Config{BaseURL: t.remoteAPI().GetUrl(), Timeout: 5 * time.Second}, sess)
	if err != nil {
		return err
	}

	cache := query.New(query.WithStaleTime(clientStaleTime), query.WithClock(t.timeMock))
	app := &clientApp{
		session:   sess,
		client:    client,
		cache:     cache,
		goals:     query.NewTyped[[]model.Goal](cache),
		buddies:   query.NewTyped[[]model.BuddyRequest](cache),
		notifier:  &recordingNotifier{},
		confirmer: &answeringConfirmer{},
	}
	app.mutations = mutation.New(mutation.ServicesFor(client), cache, app.notifier, app.confirmer)
	sess.OnInvalidate(func() { app.loginRequired.Add(1) })
	t.app = app
	return nil
}

func (t *testContext) clientApp() (*clientApp, error) {
	if t.app == nil {
		return nil, errors.New("no client signed in")
	}
	return t.app, nil
}

func (t *testContext) theUserAnswers(answer string) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	app.confirmer.answer = answer == "yes"
	return nil
}

func (t *testContext) loadGoals(ctx context.Context, app *clientApp, userID uuid.UUID) (query.TypedSnapshot[[]model.Goal], error) {
	key := query.Key{Family: query.Goals, Scope: userID.String()}
	return app.goals.Fetch(ctx, key, func(ctx context.Context) ([]model.Goal, error) {
		return app.client.Goals().ListByUser(ctx, userID)
	})
}

func (t *testContext) theClientLoadsGoals(userID string) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	snap, err := t.loadGoals(context.Background(), app, id)
	app.lastGoals = snap.Data
	app.lastErr = err
	return nil
}

func (t *testContext) goalLoadsRunConcurrently(count int, userID string) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	errs := make(chan error, count)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := t.loadGoals(context.Background(), app, id); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	return <-errs
}

func (t *testContext) theClockAdvancesBy(duration string) error {
	d, err := time.ParseDuration(duration)
	if err != nil {
		return err
	}
	t.timeMock.Advance(d)
	return nil
}

func (t *testContext) runMutation(run func(ctx context.Context, app *clientApp) (*mutation.Mutation, error)) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	app.lastMutation, app.lastErr = run(context.Background(), app)
	return nil
}

func (t *testContext) theClientCompletesGoal(goalID string) error {
	id, err := uuid.Parse(goalID)
	if err != nil {
		return err
	}
	return t.runMutation(func(ctx context.Context, app *clientApp) (*mutation.Mutation, error) {
		return app.mutations.CompleteGoal(ctx, id)
	})
}

func (t *testContext) theClientChangesGoal(goalID, status string) error {
	id, err := uuid.Parse(goalID)
	if err != nil {
		return err
	}
	target, err := model.ParseGoalStatus(status)
	if err != nil {
		return err
	}
	return t.runMutation(func(ctx context.Context, app *clientApp) (*mutation.Mutation, error) {
		return app.mutations.ChangeGoalStatus(ctx, id, target)
	})
}

func (t *testContext) theClientDeletesGoal(goalID string) error {
	id, err := uuid.Parse(goalID)
	if err != nil {
		return err
	}
	return t.runMutation(func(ctx context.Context, app *clientApp) (*mutation.Mutation, error) {
		return app.mutations.DeleteGoal(ctx, id)
	})
}

func (t *testContext) theClientAcceptsBuddyRequest(requestID string) error {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return err
	}
	return t.runMutation(func(ctx context.Context, app *clientApp) (*mutation.Mutation, error) {
		return app.mutations.RespondToBuddyRequest(ctx, id, true)
	})
}

func (t *testContext) theClientShouldHoldGoals(count int) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	if len(app.lastGoals) != count {
		return fmt.Errorf("expected %d goals, got %d (err: %v)", count, len(app.lastGoals), app.lastErr)
	}
	return nil
}

func (t *testContext) cachedGoalShouldHaveStatus(position int, status string) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	if position < 1 || position > len(app.lastGoals) {
		return fmt.Errorf("no goal at position %d in %v", position, app.lastGoals)
	}
	if got := string(app.lastGoals[position-1].Status); got != status {
		return fmt.Errorf("expected status %s, got %s", status, got)
	}
	return nil
}

func (t *testContext) theClientLoadShouldFailWithKind(kind string) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	if app.lastErr == nil {
		return errors.New("expected the load to fail")
	}
	if got := api.KindOf(app.lastErr).String(); got != kind {
		return fmt.Errorf("expected kind %s, got %s (%v)", kind, got, app.lastErr)
	}
	return nil
}

func (t *testContext) theRemoteShouldHaveReceived(count int, method, path string) error {
	if got := t.remoteAPI().RequestCount(method, path); got != count {
		return fmt.Errorf("expected %d %s %s requests, got %d", count, method, path, got)
	}
	return nil
}

func (t *testContext) requestShouldCarryHeader(call int, method, path, header, value string) error {
	headers := t.remoteAPI().GetRequestHeaders(method, path, call-1)
	if headers == nil {
		return fmt.Errorf("no request %d to %s %s", call, method, path)
	}
	if headers[header] != value {
		return fmt.Errorf("expected header %s=%q, got %q", header, value, headers[header])
	}
	return nil
}

func (t *testContext) requestShouldHaveBodyField(call int, method, path, field, value string) error {
	body := t.remoteAPI().GetRequestBody(method, path, call-1)
	if body == nil {
		return fmt.Errorf("no request %d to %s %s", call, method, path)
	}
	if got := fmt.Sprint(getFieldValue(body, field)); got != value {
		return fmt.Errorf("expected body field %s=%q, got %q", field, value, got)
	}
	return nil
}

func (t *testContext) theSessionShouldBeSignedOut() error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	if app.session.Authenticated() {
		return fmt.Errorf("session still holds token %q", app.session.Token())
	}
	return nil
}

func (t *testContext) theLoginPromptShouldHaveBeenShown(count int) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	if got := int(app.loginRequired.Load()); got != count {
		return fmt.Errorf("expected login prompt %d times, got %d", count, got)
	}
	return nil
}

func (t *testContext) theMutationShouldEnd(state string) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	if app.lastMutation == nil {
		return fmt.Errorf("no mutation ran (err: %v)", app.lastErr)
	}
	if got := app.lastMutation.State().String(); got != state {
		return fmt.Errorf("expected mutation %s, got %s (err: %v)", state, got, app.lastErr)
	}
	return nil
}

func (t *testContext) theNotificationsShouldBe(expected *godog.DocString) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	var want []string
	for _, line := range strings.Split(strings.TrimSpace(expected.Content), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			want = append(want, line)
		}
	}
	got := app.notifier.all()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		return fmt.Errorf("expected notifications %q, got %q", want, got)
	}
	return nil
}

func (t *testContext) theDashboardShouldShow(total, active, pending int) error {
	app, err := t.clientApp()
	if err != nil {
		return err
	}
	userID, ok := app.session.UserID()
	if !ok {
		return errors.New("session has no user")
	}
	ctx := context.Background()

	goals, err := t.loadGoals(ctx, app, userID)
	if err != nil {
		return err
	}
	requests, err := app.buddies.Fetch(ctx, query.Key{Family: query.BuddyRequests, Scope: userID.String()}, func(ctx context.Context) ([]model.BuddyRequest, error) {
		return app.client.Buddies().List(ctx)
	})
	if err != nil {
		return err
	}

	stats, err := viewmodel.NewDashboardStats(goals.Data, requests.Data)
	if err != nil {
		return err
	}
	if stats.TotalGoals != total || stats.Active != active || stats.PendingBuddyRequests != pending {
		return fmt.Errorf("expected %d/%d/%d, got %+v", total, active, pending, stats)
	}
	return nil
}
