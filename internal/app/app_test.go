package app

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/screenpulse/config"
)

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	cfg := config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
	db, err := InitPostgres(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when DB cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	// Backup and override global config
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329,
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}

	a, cleanup, err := InitializeApp()
	if err == nil || a != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	// Override opener to return a sqlmock DB
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}

	// Startup restore finds no persisted snapshot
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, created_at FROM snapshot_log WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "created_at"}))
	// Readiness probe pings the DB
	mock.ExpectPing()

	old := postgresOpener
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	oldCfg := config.AppConfig
	config.AppConfig = config.Config{
		FMP:  config.FMPConfig{BaseURL: "https://example.invalid/api", APIKey: "k"},
		Auth: config.AuthConfig{AppPassword: "pw", JWTSecret: "s", TokenTTLHours: 1},
	}
	t.Cleanup(func() {
		postgresOpener = old
		config.AppConfig = oldCfg
		_ = db.Close()
	})

	a, cleanup, err := InitializeApp()
	if err != nil || a == nil || a.Router == nil || a.Pipeline == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err=%v app=%+v", err, a)
	}

	// Hit health endpoints
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	a.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	a.Router.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w2.Code)
	}

	// Unauthenticated API access is rejected through the full wired router
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
	a.Router.ServeHTTP(w3, req3)
	if w3.Code != http.StatusUnauthorized {
		t.Fatalf("fields without token status=%d", w3.Code)
	}

	// Call cleanup and ensure it doesn't panic
	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// TestInitializeApp_RestoresSnapshot covers the startup restore path.
func TestInitializeApp_RestoresSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, created_at FROM snapshot_log WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "created_at"}).
			AddRow(int64(4), time.Date(2025, 10, 1, 6, 0, 0, 0, time.UTC)))
	// Zero-row record set; full column round trip is exercised in the storage tests.
	mock.ExpectQuery("SELECT .* FROM screener_records ORDER BY ticker").
		WillReturnRows(sqlmock.NewRows([]string{"ticker"}))

	old := postgresOpener
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	oldCfg := config.AppConfig
	config.AppConfig = config.Config{FMP: config.FMPConfig{BaseURL: "https://example.invalid/api"}}
	t.Cleanup(func() {
		postgresOpener = old
		config.AppConfig = oldCfg
		_ = db.Close()
	})

	a, cleanup, err := InitializeApp()
	if err != nil || a == nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
