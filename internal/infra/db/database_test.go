package db

import (
	"testing"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/integration/persistence/model"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{URL: "sqlite:file::memory:"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer database.Close()

	if !database.HealthCheck() {
		t.Error("expected healthy connection")
	}

	if err := database.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !database.DB().Migrator().HasTable(&model.GoalModel{}) {
		t.Error("expected goals table to exist")
	}
}
