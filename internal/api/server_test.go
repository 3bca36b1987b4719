package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wjam/findbugs-sonar-rules-plugin/internal/model"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/security"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/storage"
)

func testServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.CreateSchema(); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return &Server{DB: db, UserStore: db, SessionDuration: time.Hour}, db
}

func seedRun(t *testing.T, db *storage.DB) {
	t.Helper()
	run := model.Run{
		ID:        "run-1",
		StartedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Encoding:  "UTF-8",
		Rules: []model.Rule{
			{Key: "Foo.BAR", Priority: "MINOR", Name: "Bad thing", Description: "desc"},
		},
	}
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("seed run: %v", err)
	}
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListRunsAndGetRun(t *testing.T) {
	s, db := testServer(t)
	seedRun(t, db)

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Items []storage.RunRow `json:"items"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ID != "run-1" {
		t.Fatalf("items = %+v", list.Items)
	}

	rec = httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/runs/run-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/runs/absent", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("absent status = %d", rec.Code)
	}
}

func TestRulesXML_ReEmitsStoredRun(t *testing.T) {
	s, db := testServer(t)
	seedRun(t, db)

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/runs/run-1/rules.xml", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/xml") {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("body = %q", body)
	}
	if !strings.Contains(body, `<rule key="Foo.BAR" priority="MINOR">`) {
		t.Fatalf("rule missing from %q", body)
	}
}

func TestLoginFlow(t *testing.T) {
	s, db := testServer(t)
	hash, err := security.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := db.CreateUser("alice", hash, "viewer"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Bad password
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	s.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", rec.Code)
	}

	// Good password
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"username":"alice","password":"s3cret"}`))
	s.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie set")
	}

	// Authenticated /me
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	s.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}

	// Unauthenticated /me
	rec = httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anon me status = %d", rec.Code)
	}
}
