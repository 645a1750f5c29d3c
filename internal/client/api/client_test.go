package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/client/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, state session.State) (*Client, *session.Session) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess, err := session.New(session.NewMemoryStore(state))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	client, err := NewClient(Config{BaseURL: server.URL}, sess)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return client, sess
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNewClient_Validation(t *testing.T) {
	sess, _ := session.New(session.NewMemoryStore(session.State{}))
	if _, err := NewClient(Config{}, sess); err == nil {
		t.Error("expected error for missing base URL")
	}
	if _, err := NewClient(Config{BaseURL: "http://x"}, nil); err == nil {
		t.Error("expected error for missing session")
	}
}

func TestClient_BearerToken(t *testing.T) {
	userID := uuid.New()
	var gotAuth string
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		writeJSON(w, http.StatusOK, []model.Goal{{ID: uuid.New(), Title: "Read", Status: model.GoalActive}})
	}, session.State{Token: "abc", UserID: userID.String()})

	goals, err := client.Goals().ListByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotPath != "/goals/user/"+userID.String() {
		t.Errorf("unexpected path %q", gotPath)
	}
	if len(goals) != 1 || goals[0].Title != "Read" {
		t.Errorf("unexpected goals: %+v", goals)
	}
}

func TestClient_LoginStoresToken(t *testing.T) {
	userID := uuid.New()
	var loginAuth string
	client, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			loginAuth = r.Header.Get("Authorization")
			var body LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Password != "secret" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password", "message": "Invalid email or password"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "fresh",
				"user":  map[string]any{"id": userID, "username": "ana", "email": "ana@example.com"},
			})
		case "/users/logout":
			w.WriteHeader(http.StatusNoContent)
		}
	}, session.State{Token: "stale"})

	invalidated := 0
	sess.OnInvalidate(func() { invalidated++ })

	_, err := client.Users().Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "wrong"})
	if KindOf(err) != KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if loginAuth != "" {
		t.Errorf("login must not send a token, got %q", loginAuth)
	}
	if invalidated != 0 || sess.Token() != "stale" {
		t.Errorf("failed login must not invalidate the session")
	}

	resp, err := client.Users().Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.ID != userID || sess.Token() != "fresh" {
		t.Errorf("expected session to hold new token, got %q", sess.Token())
	}
	if got, ok := sess.UserID(); !ok || got != userID {
		t.Errorf("expected session user %s, got %s", userID, got)
	}

	if err := client.Users().Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sess.Authenticated() {
		t.Error("expected logout to clear the session")
	}
}

func TestClient_UnauthorizedInvalidatesOnce(t *testing.T) {
	var mu sync.Mutex
	var headers []string
	client, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Get("Authorization"))
		mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
	}, session.State{Token: "expired"})

	var boundary atomic.Int32
	sess.OnInvalidate(func() { boundary.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Checkpoints().List(context.Background(), uuid.Nil)
			if !IsUnauthorized(err) {
				t.Errorf("expected unauthorized, got %v", err)
			}
		}()
	}
	wg.Wait()

	if boundary.Load() != 1 {
		t.Errorf("expected one login-boundary call, got %d", boundary.Load())
	}
	if sess.Authenticated() {
		t.Error("expected token to be cleared")
	}

	mu.Lock()
	headers = nil
	mu.Unlock()
	_, _ = client.Buddies().List(context.Background())
	mu.Lock()
	defer mu.Unlock()
	if len(headers) != 1 || headers[0] != "" {
		t.Errorf("expected later request without token, got %q", headers)
	}
	if boundary.Load() != 1 {
		t.Errorf("expected no further boundary calls, got %d", boundary.Load())
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        any
		wantKind    Kind
		wantMessage string
	}{
		{"validation uses message", http.StatusBadRequest, map[string]string{"error": "bad", "message": "End date must not be before start date"}, KindValidation, "End date must not be before start date"},
		{"validation falls back to error", http.StatusConflict, map[string]string{"error": "Buddy request already exists"}, KindValidation, "Buddy request already exists"},
		{"not found", http.StatusNotFound, map[string]string{"message": "Goal not found"}, KindValidation, "Goal not found"},
		{"server without body", http.StatusInternalServerError, nil, KindServer, ""},
		{"bad gateway", http.StatusBadGateway, "upstream", KindServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			}, session.State{Token: "tok"})

			_, err := client.Goals().Complete(context.Background(), uuid.New())

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T %v", err, err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, apiErr.Kind)
			}
			if apiErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, apiErr.Message)
			}
		})
	}

	t.Run("not found helper", func(t *testing.T) {
		err := &Error{Kind: KindValidation, Status: http.StatusNotFound}
		if !IsNotFound(err) {
			t.Error("expected IsNotFound")
		}
	})
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	sess, _ := session.New(session.NewMemoryStore(session.State{Token: "tok"}))
	client, err := NewClient(Config{BaseURL: url}, sess)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	_, err = client.Buddies().List(context.Background())
	if KindOf(err) != KindTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !sess.Authenticated() {
		t.Error("transport errors must not clear the session")
	}
}

func TestClient_RequestShapes(t *testing.T) {
	goalID := uuid.New()
	receiverID := uuid.New()
	type captured struct {
		method string
		uri    string
		body   map[string]any
	}
	var calls []captured
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, captured{r.Method, r.URL.RequestURI(), body})
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/checkpoints" && r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, []any{})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"id": uuid.New()})
		}
	}, session.State{Token: "tok"})

	ctx := context.Background()
	status := model.GoalPaused
	if _, err := client.Goals().Update(ctx, goalID, GoalUpdate{Status: &status}); err != nil {
		t.Fatalf("update goal: %v", err)
	}
	if _, err := client.Checkpoints().List(ctx, goalID); err != nil {
		t.Fatalf("list checkpoints: %v", err)
	}
	if _, err := client.Buddies().Create(ctx, receiverID); err != nil {
		t.Fatalf("create buddy: %v", err)
	}
	if _, err := client.Buddies().Update(ctx, goalID, model.BuddyAccepted); err != nil {
		t.Fatalf("update buddy: %v", err)
	}
	if err := client.Goals().Delete(ctx, goalID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}

	if len(calls) != 5 {
		t.Fatalf("expected 5 calls, got %d", len(calls))
	}
	if calls[0].method != http.MethodPut || calls[0].uri != "/goals/"+goalID.String() {
		t.Errorf("unexpected update call %+v", calls[0])
	}
	if len(calls[0].body) != 1 || calls[0].body["status"] != "PAUSED" {
		t.Errorf("expected status-only body, got %v", calls[0].body)
	}
	if calls[1].uri != "/checkpoints?goalId="+goalID.String() {
		t.Errorf("unexpected list uri %q", calls[1].uri)
	}
	if calls[2].body["receiverId"] != receiverID.String() {
		t.Errorf("unexpected buddy body %v", calls[2].body)
	}
	if calls[3].method != http.MethodPut || calls[3].body["status"] != "ACCEPTED" {
		t.Errorf("unexpected buddy update %+v", calls[3])
	}
	if calls[4].method != http.MethodDelete {
		t.Errorf("unexpected delete call %+v", calls[4])
	}
}
