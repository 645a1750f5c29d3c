//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/infra/dependency"
	"github.com/productivity-app/backend/internal/integration/persistence/model"
	"github.com/productivity-app/backend/test/integration/mock"
)

const (
	testJWTSecret    = "test-jwt-secret-key-for-testing-purposes"
	testUserPassword = "password123"
)

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time

	accessToken string
	users       map[string]*testUser
	ids         map[string]uuid.UUID
	goalOwner   string

	remote *mock.ApiMock
	app    *clientApp
}

type testUser struct {
	id    uuid.UUID
	email string
	token string
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var injector *dependency.Injector
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:      fmt.Sprintf("http://localhost:%d", testServerPort),
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: mock.NewTime(),
		redis:    mock.NewRedis(),
		db: mock.NewDb(map[string]any{
			"users":          &model.UserModel{},
			"goals":          &model.GoalModel{},
			"checkpoints":    &model.CheckpointModel{},
			"buddy_requests": &model.BuddyRequestModel{},
			"email_queue":    &model.EmailQueueModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.remote != nil {
			test.remote.Close()
		}
		return ctx, nil
	})

	registerServerSteps(ctx, test)
	registerClientSteps(ctx, test)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.users = make(map[string]*testUser)
	t.ids = make(map[string]uuid.UUID)
	t.goalOwner = ""
	t.remote = nil
	t.app = nil
	t.timeMock.SetCurrentTime(time.Now())

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return mock.ClearRedis(t.redis)
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.Email.ResendAPIKey = ""

		injector, startErr = dependency.NewInjector(cfg, t.db.DbConn, t.redis)
		if startErr != nil {
			return
		}
		engine := injector.Router.Setup(cfg.Server.Environment)

		go func() {
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}

	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become healthy on %s", t.uri)
}
