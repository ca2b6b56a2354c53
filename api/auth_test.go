package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskify/intake/internal/config"
	"github.com/taskify/intake/pkg/models"
)

const adminPassword = "test-admin-password"

func withAdmin(t *testing.T) func(cfg *config.Config) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash: %v", err)
	}
	return func(cfg *config.Config) {
		cfg.AdminPasswordHash = string(hash)
	}
}

func login(t *testing.T, ts *testServer, password string) *http.Response {
	t.Helper()
	b, _ := json.Marshal(map[string]string{"password": password})
	res, err := http.Post(ts.srv.URL+"/api/admin/login", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return res
}

func TestAdminLogin_IssuesToken(t *testing.T) {
	ts, cleanup := setupServer(t, withAdmin(t))
	defer cleanup()

	res := login(t, ts, adminPassword)
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if body.Token == "" {
		t.Fatalf("expected a token")
	}
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	ts, cleanup := setupServer(t, withAdmin(t))
	defer cleanup()

	res := login(t, ts, "wrong")
	defer res.Body.Close()

	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestAdminLogin_DisabledWithoutHash(t *testing.T) {
	ts, cleanup := setupServer(t, nil)
	defer cleanup()

	res := login(t, ts, adminPassword)
	defer res.Body.Close()

	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 when admin login disabled, got %d", res.StatusCode)
	}
}

func TestExport_RequiresToken(t *testing.T) {
	ts, cleanup := setupServer(t, withAdmin(t))
	defer cleanup()

	res, err := http.Get(ts.srv.URL + "/api/export")
	if err != nil {
		t.Fatalf("get export: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}
}

func TestExport_CSVWithToken(t *testing.T) {
	ts, cleanup := setupServer(t, withAdmin(t))
	defer cleanup()

	seedApplicants(t, ts, models.SourceDirect, models.SourceBot)

	loginRes := login(t, ts, adminPassword)
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(loginRes.Body).Decode(&body); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	loginRes.Body.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.srv.URL+"/api/export", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get export: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %q", ct)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(res.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,first_name,last_name,email") {
		t.Fatalf("unexpected header %q", lines[0])
	}
}
