package root

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/client/api"
	"github.com/productivity-app/backend/internal/client/session"
	"github.com/productivity-app/backend/internal/infra/db"
	"github.com/productivity-app/backend/internal/infra/dependency"
	"github.com/productivity-app/backend/internal/integration/persistence/model"
)

// harness runs dashboard commands against an in-process server.
type harness struct {
	t           *testing.T
	serverURL   string
	sessionFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Database.URL = "sqlite:file::memory:"

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		t.Fatalf("database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), nil)
	if err != nil {
		t.Fatalf("injector: %v", err)
	}
	server := httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	t.Cleanup(server.Close)

	return &harness{
		t:           t,
		serverURL:   server.URL,
		sessionFile: filepath.Join(t.TempDir(), "session.yaml"),
	}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--api-url", h.serverURL, "--session-file", h.sessionFile}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	if err != nil {
		h.t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

// client opens an API client on the stored session.
func (h *harness) client() *api.Client {
	h.t.Helper()
	sess, err := session.New(session.NewFileStore(h.sessionFile))
	if err != nil {
		h.t.Fatalf("session: %v", err)
	}
	client, err := api.NewClient(api.Config{BaseURL: h.serverURL}, sess)
	if err != nil {
		h.t.Fatalf("client: %v", err)
	}
	return client
}

func (h *harness) signUp(username string) {
	h.t.Helper()
	h.mustRun("register", "--username", username, "--email", username+"@example.com", "--password", "password123")
	h.mustRun("login", "--email", username+"@example.com", "--password", "password123")
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestGoalLifecycle(t *testing.T) {
	h := newHarness(t)
	h.signUp("alice")

	out := h.mustRun("goals", "create", "Run a marathon", "--start", "2026-01-01", "--end", "2026-12-31")
	assertContains(t, out, "Goal created successfully")

	client := h.client()
	userID, _ := client.Session().UserID()
	goals, err := client.Goals().ListByUser(context.Background(), userID)
	if err != nil || len(goals) != 1 {
		t.Fatalf("expected one goal, got %v, %v", goals, err)
	}
	goalID := goals[0].ID.String()

	t.Run("list groups by status", func(t *testing.T) {
		out := h.mustRun("goals", "list")
		assertContains(t, out, "Goals (1)", "ACTIVE (1)", "Run a marathon")
	})

	t.Run("dashboard", func(t *testing.T) {
		out := h.mustRun("dashboard")
		assertContains(t, out, "Total goals: 1", "Active: 1", "Pending buddy requests: 0", "Run a marathon", "Active", "(100.00%)")
	})

	t.Run("checkpoints follow the goal", func(t *testing.T) {
		out := h.mustRun("checkpoints", "create", goalID, "Run 10k", "--due", "2026-03-01")
		assertContains(t, out, "Checkpoint created successfully")

		out = h.mustRun("checkpoints", "list", "--goal", goalID)
		assertContains(t, out, "Run 10k", "1 total, 1 pending, 0 completed")
	})

	t.Run("invalid period shows the server message", func(t *testing.T) {
		out, err := h.run("", "goals", "create", "Backwards", "--start", "2026-05-01", "--end", "2026-01-01")
		if !errors.Is(err, errReported) {
			t.Fatalf("expected reported failure, got %v", err)
		}
		assertContains(t, out, "end date must not precede start date")
	})

	t.Run("complete shows the refreshed goal", func(t *testing.T) {
		out := h.mustRun("goals", "complete", goalID)
		assertContains(t, out, "Goal completed successfully", "COMPLETED", "100%")
	})

	t.Run("status change", func(t *testing.T) {
		out := h.mustRun("goals", "status", goalID, "paused")
		assertContains(t, out, "Goal updated successfully", "PAUSED")

		if _, err := h.run("", "goals", "status", goalID, "DONE"); err == nil {
			t.Error("expected unknown status to be rejected")
		}
	})

	t.Run("declined delete keeps the goal", func(t *testing.T) {
		out := h.mustRun("goals", "delete", goalID)
		assertContains(t, out, "Are you sure you want to delete this goal?", "Cancelled.")

		out, err := h.run("n\n", "goals", "delete", goalID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertContains(t, out, "Cancelled.")
		assertContains(t, h.mustRun("goals", "list"), "Run a marathon")
	})

	t.Run("confirmed delete", func(t *testing.T) {
		out, err := h.run("y\n", "goals", "delete", goalID)
		if err != nil {
			t.Fatalf("unexpected error: %v\n%s", err, out)
		}
		assertContains(t, out, "Goal deleted successfully")
		assertContains(t, h.mustRun("goals", "list"), "Goals (0)")
	})
}

func TestBuddyRequests(t *testing.T) {
	h := newHarness(t)
	h.signUp("bob")
	bobID, _ := h.client().Session().UserID()
	h.mustRun("logout")

	h.signUp("carol")
	out := h.mustRun("buddies", "send", bobID.String())
	assertContains(t, out, "Buddy request sent")
	h.mustRun("logout")

	h.mustRun("login", "--email", "bob@example.com", "--password", "password123")
	requests, err := h.client().Buddies().List(context.Background())
	if err != nil || len(requests) != 1 {
		t.Fatalf("expected one request, got %v, %v", requests, err)
	}

	assertContains(t, h.mustRun("dashboard"), "Pending buddy requests: 1")

	out = h.mustRun("buddies", "accept", requests[0].ID.String())
	assertContains(t, out, "Buddy request accepted")

	out = h.mustRun("buddies", "list")
	assertContains(t, out, "Total buddies: 1", "ACCEPTED (1)", "from "+requests[0].RequesterID.String())
}

func TestSessionHandling(t *testing.T) {
	h := newHarness(t)

	t.Run("commands require a login", func(t *testing.T) {
		if _, err := h.run("", "goals", "list"); !errors.Is(err, errNotLoggedIn) {
			t.Errorf("expected errNotLoggedIn, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		out, err := h.run("", "login", "--email", "nobody@example.com", "--password", "password123")
		if !errors.Is(err, errReported) {
			t.Fatalf("expected reported failure, got %v", err)
		}
		if strings.TrimSpace(out) == "" {
			t.Error("expected an error toast")
		}
	})

	t.Run("rejected token clears the session", func(t *testing.T) {
		store := session.NewFileStore(h.sessionFile)
		if err := store.Save(session.State{Token: "not-a-jwt", UserID: uuid.NewString()}); err != nil {
			t.Fatalf("save: %v", err)
		}

		out, err := h.run("", "goals", "list")
		if !errors.Is(err, errReported) {
			t.Fatalf("expected reported failure, got %v", err)
		}
		assertContains(t, out, SessionExpiredMessage)

		state, err := store.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if state.Token != "" {
			t.Errorf("expected token to be cleared, got %q", state.Token)
		}
	})

	t.Run("verbose logs through the shared logger", func(t *testing.T) {
		store := session.NewFileStore(h.sessionFile)
		if err := store.Save(session.State{Token: "not-a-jwt", UserID: uuid.NewString()}); err != nil {
			t.Fatalf("save: %v", err)
		}

		out, _ := h.run("", "goals", "list", "--verbose")
		assertContains(t, out, "level=INFO", "Session expired, token cleared")

		if err := store.Save(session.State{Token: "not-a-jwt", UserID: uuid.NewString()}); err != nil {
			t.Fatalf("save: %v", err)
		}
		out, _ = h.run("", "goals", "list")
		if strings.Contains(out, "token cleared") {
			t.Errorf("info records should be hidden without --verbose:\n%s", out)
		}
	})

	t.Run("logout forgets the token", func(t *testing.T) {
		h.signUp("dave")
		assertContains(t, h.mustRun("logout"), "Signed out")

		if _, err := os.Stat(h.sessionFile); !os.IsNotExist(err) {
			t.Errorf("expected session file to be removed, got %v", err)
		}
	})
}
