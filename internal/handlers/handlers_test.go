// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides shared fixtures for handler tests. Tests that
// need PostgreSQL are skipped when the database is unavailable.
package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/render"
	"portfolio/internal/store"
)

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New(true)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return r
}

func testConfig() *config.Config {
	return &config.Config{
		Env:        "testing",
		AdminEmail: "magomedow58426@gmail.com",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "postgres://" + envOr("POSTGRES_USER", "portfolio") + ":" +
		envOr("POSTGRES_PASSWORD", "changeme") + "@" +
		envOr("POSTGRES_HOST", "localhost") + ":" +
		envOr("POSTGRES_PORT", "5432") + "/" +
		envOr("POSTGRES_DB", "portfolio") + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testDeps bundles handler groups wired against a real database but
// without Valkey or object storage.
type testDeps struct {
	auth         *Auth
	studio       *Studio
	public       *Public
	userStore    *store.UserStore
	projectStore *store.ProjectStore
	suffix       string
}

func newTestDeps(t *testing.T, db *sql.DB) *testDeps {
	t.Helper()

	cfg := testConfig()
	renderer := testRenderer(t)
	userStore := store.NewUserStore(db)
	projectStore := store.NewProjectStore(db)
	uploadStore := store.NewUploadStore(db)

	return &testDeps{
		auth:         NewAuth(cfg, renderer, nil, userStore),
		studio:       NewStudio(cfg, renderer, projectStore, uploadStore, nil, nil),
		public:       NewPublic(renderer, projectStore, nil),
		userStore:    userStore,
		projectStore: projectStore,
		suffix:       uuid.NewString()[:8],
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// formRequest builds an urlencoded POST request.
func formRequest(path string, fields map[string]string) *http.Request {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}
