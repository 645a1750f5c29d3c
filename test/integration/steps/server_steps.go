//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/productivity-app/backend/test/integration/mock"
)

func registerServerSteps(ctx *godog.ScenarioContext, t *testContext) {
	// Background steps
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)

	// Setup steps
	ctx.Given(`^a user "([^"]*)" exists$`, t.aUserExists)
	ctx.Given(`^I am logged in as "([^"]*)"$`, t.iAmLoggedInAs)
	ctx.Given(`^"([^"]*)" has a goal "([^"]*)" from "([^"]*)" to "([^"]*)"$`, t.userHasAGoal)
	ctx.Given(`^the goal has a checkpoint "([^"]*)" due "([^"]*)"$`, t.theGoalHasACheckpoint)
	ctx.Given(`^"([^"]*)" sent a buddy request to "([^"]*)"$`, t.userSentABuddyRequest)

	// Header steps
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.When(`^the email worker processes the queue$`, t.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response should contain (\d+) items?$`, t.theResponseShouldContainItems)

	// Storage assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^redis should hold (\d+) revoked tokens?$`, t.redisShouldHoldRevokedTokens)
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) aUserExists(name string) error {
	email := name + "@example.com"
	body := fmt.Sprintf(`{"username": %q, "email": %q, "password": %q}`, name, email, testUserPassword)
	if err := t.executeRequest(http.MethodPost, "/users/register", []byte(body), ""); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("register %s: status %d (body: %v)", name, t.response.status, t.response.body)
	}
	id, err := uuid.Parse(fmt.Sprint(getFieldValue(t.response.body, "id")))
	if err != nil {
		return err
	}
	t.users[name] = &testUser{id: id, email: email}
	t.ids["user:"+name] = id
	return nil
}

func (t *testContext) login(name string) (*testUser, error) {
	user, ok := t.users[name]
	if !ok {
		if err := t.aUserExists(name); err != nil {
			return nil, err
		}
		user = t.users[name]
	}
	if user.token != "" {
		return user, nil
	}

	body := fmt.Sprintf(`{"email": %q, "password": %q}`, user.email, testUserPassword)
	if err := t.executeRequest(http.MethodPost, "/users/login", []byte(body), ""); err != nil {
		return nil, err
	}
	if t.response.status != http.StatusOK {
		return nil, fmt.Errorf("login %s: status %d (body: %v)", name, t.response.status, t.response.body)
	}
	user.token = fmt.Sprint(getFieldValue(t.response.body, "token"))
	return user, nil
}

func (t *testContext) iAmLoggedInAs(name string) error {
	user, err := t.login(name)
	if err != nil {
		return err
	}
	t.accessToken = user.token
	t.ids["user_id"] = user.id
	return nil
}

// as sends a request with the named user's token and expects want.
func (t *testContext) as(name, method, path, body string, want int) error {
	user, err := t.login(name)
	if err != nil {
		return err
	}
	if err := t.executeRequest(method, path, []byte(body), user.token); err != nil {
		return err
	}
	if t.response.status != want {
		return fmt.Errorf("%s %s: expected %d, got %d (body: %v)", method, path, want, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) captureID(name string) error {
	id, err := uuid.Parse(fmt.Sprint(getFieldValue(t.response.body, "id")))
	if err != nil {
		return fmt.Errorf("response has no id: %v", t.response.body)
	}
	t.ids[name] = id
	return nil
}

func (t *testContext) userHasAGoal(name, title, start, end string) error {
	user, err := t.login(name)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(`{"title": %q, "description": "", "startDate": %q, "endDate": %q}`, title, start, end)
	if err := t.as(name, http.MethodPost, "/goals/"+user.id.String(), body, http.StatusCreated); err != nil {
		return err
	}
	t.goalOwner = name
	return t.captureID("goal_id")
}

func (t *testContext) theGoalHasACheckpoint(title, due string) error {
	goalID, ok := t.ids["goal_id"]
	if !ok {
		return errors.New("no goal created yet")
	}
	body := fmt.Sprintf(`{"goalId": %q, "title": %q, "description": "", "dueDate": %q}`, goalID, title, due)
	if err := t.as(t.goalOwner, http.MethodPost, "/checkpoints", body, http.StatusCreated); err != nil {
		return err
	}
	return t.captureID("checkpoint_id")
}

func (t *testContext) userSentABuddyRequest(requester, receiver string) error {
	if _, ok := t.users[receiver]; !ok {
		if err := t.aUserExists(receiver); err != nil {
			return err
		}
	}
	body := fmt.Sprintf(`{"receiverId": %q}`, t.users[receiver].id)
	if err := t.as(requester, http.MethodPost, "/buddies", body, http.StatusCreated); err != nil {
		return err
	}
	return t.captureID("request_id")
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil, t.accessToken)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload, t.accessToken)
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	if injector == nil {
		return errors.New("server not started")
	}
	injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

// replacePlaceholders swaps {{name}} for stored ids, for example {{goal_id}}
// or {{user:bob}}, and {{access_token}} for the current token.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	for name, id := range t.ids {
		content = strings.ReplaceAll(content, "{{"+name+"}}", id.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte, token string) error {
	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}
	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = decoded
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContainItems(count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	items, ok := t.response.body.([]any)
	if !ok {
		return fmt.Errorf("response is not a JSON array: %v", t.response.body)
	}
	if len(items) != count {
		return fmt.Errorf("expected %d items, got %d: %v", count, len(items), items)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) redisShouldHoldRevokedTokens(count int) error {
	if keys := mock.RedisKeys(); len(keys) != count {
		return fmt.Errorf("expected %d revoked tokens, got %v", count, keys)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	field := object

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
