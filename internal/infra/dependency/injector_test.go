package dependency

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/integration/cache"
	"github.com/productivity-app/backend/internal/integration/persistence/model"
)

func TestNewInjector(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient, err := cache.NewClient("redis://"+mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	cfg := config.Load()
	cfg.Server.Environment = "test"

	injector, err := NewInjector(cfg, db, redisClient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if injector.EmailWorker == nil {
		t.Error("expected email worker to be wired")
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	t.Run("health reports both dependencies", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["database"] != "connected" || body["cache"] != "connected" {
			t.Errorf("unexpected health body: %v", body)
		}
	})

	t.Run("protected routes require a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/goals/user/00000000-0000-0000-0000-000000000001", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
