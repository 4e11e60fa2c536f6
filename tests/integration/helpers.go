package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/symphogen/mimer-admin/internal/app"
	"github.com/symphogen/mimer-admin/internal/config"
	"github.com/symphogen/mimer-admin/internal/identity"
)

const (
	testJWTSecret = "test-jwt-secret-for-integration-tests"
	testPort      = "18080"
)

// TestEnvironment holds every resource the integration tests need.
type TestEnvironment struct {
	PostgresContainer *postgres.PostgresContainer
	IdentityServer    *httptest.Server
	App               *app.App
	BaseURL           string
	DB                *pgxpool.Pool
	ctx               context.Context
}

// SetupTestEnvironment starts postgres, a fake identity API and the
// application, wired so the QA environment points at the container.
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("mimer_admin_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	applyMigrations(t, connStr)

	// Fake Graph-style identity API: every token belongs to an allowed
	// principal.
	identitySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"displayName": "Test Operator",
			"mail":        "test.operator@symphogen.com",
		})
	}))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: testPort,
			Host: "127.0.0.1",
		},
		Store: config.StoreConfig{
			QADSN: connStr,
		},
		Auth: config.AuthConfig{
			JWTSecret:       testJWTSecret,
			IdentityBaseURL: identitySrv.URL,
			AllowedDomains:  []string{"symphogen.com"},
		},
	}

	application, err := app.New(cfg)
	require.NoError(t, err, "failed to create application")

	err = application.Initialize(ctx)
	require.NoError(t, err, "failed to initialize application")

	go func() {
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	poolConfig, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	return &TestEnvironment{
		PostgresContainer: pgContainer,
		IdentityServer:    identitySrv,
		App:               application,
		BaseURL:           fmt.Sprintf("http://%s:%s", cfg.Server.Host, testPort),
		DB:                pool,
		ctx:               ctx,
	}
}

// Cleanup releases all test resources.
func (te *TestEnvironment) Cleanup(t *testing.T) {
	t.Helper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if te.App != nil {
		_ = te.App.Shutdown(shutdownCtx)
	}
	if te.IdentityServer != nil {
		te.IdentityServer.Close()
	}
	if te.DB != nil {
		te.DB.Close()
	}
	if te.PostgresContainer != nil {
		_ = te.PostgresContainer.Terminate(te.ctx)
	}
}

// applyMigrations runs the goose migrations against the container.
func applyMigrations(t *testing.T, connStr string) {
	t.Helper()

	db, err := sql.Open("pgx/v5", connStr)
	require.NoError(t, err, "failed to open database connection")
	defer db.Close()

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, filepath.Join("..", "..", "migrations")),
		"failed to apply migrations")
}

// SeedDocument inserts one JSON document into the emulated container.
func (te *TestEnvironment) SeedDocument(t *testing.T, databaseID, containerID, id string, doc any) {
	t.Helper()

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = te.DB.Exec(te.ctx, `
		INSERT INTO documents (database_id, container_id, id, doc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (database_id, container_id, id) DO UPDATE SET doc = EXCLUDED.doc
	`, databaseID, containerID, id, raw)
	require.NoError(t, err, "failed to seed document")
}

// SignToken mints a bearer token the gateway would issue.
func SignToken(t *testing.T, objectID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &identity.Claims{
		ObjectID: objectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// MakeRequest performs one HTTP request against the running application.
func (te *TestEnvironment) MakeRequest(t *testing.T, method, path string, body io.Reader, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, te.BaseURL+path, body)
	require.NoError(t, err, "failed to create request")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to make request")
	return resp
}

// WaitForHealthCheck blocks until the application answers /health.
func (te *TestEnvironment) WaitForHealthCheck(t *testing.T) {
	t.Helper()

	for i := 0; i < 30; i++ {
		resp, err := http.Get(te.BaseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatal("application did not become healthy in time")
}
