// Package testbackend starts the real backend against a throwaway in-memory
// database for tests of the handlers, the API client and the controllers.
package testbackend

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/StellaShiina/inventory-ui/auth"
	"github.com/StellaShiina/inventory-ui/config"
	"github.com/StellaShiina/inventory-ui/db"
	"github.com/StellaShiina/inventory-ui/handlers"
)

// New serves a fresh backend until the test ends. The database package is
// global, so tests using it must not run in parallel.
func New(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.LoadConfig()
	cfg.JWTSecret = "test-secret"
	cfg.TokenTTL = time.Hour
	cfg.DBDriver = "sqlite"
	cfg.DBPath = "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	auth.Configure(cfg)
	if err := db.Init(cfg); err != nil {
		t.Fatalf("init test database: %v", err)
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	// One connection keeps the shared in-memory database free of lock errors.
	sqlDB.SetMaxOpenConns(1)

	srv := httptest.NewServer(handlers.Router(zap.NewNop()))
	t.Cleanup(func() {
		srv.Close()
		sqlDB.Close()
	})
	return srv
}
