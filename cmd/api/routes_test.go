package main

import (
	"net/http"
	"testing"
)

func TestHealthcheck(t *testing.T) {
	app := newTestApplication(t)

	rr := do(t, app.routes(), http.MethodGet, "/v1/healthcheck", "")
	mustStatus(t, rr, http.StatusOK)

	var resp struct {
		Status     string `json:"status"`
		SystemInfo struct {
			Environment string `json:"environment"`
			Version     string `json:"version"`
		} `json:"system_info"`
	}
	decodeJSON(t, rr, &resp)

	if resp.Status != "available" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.SystemInfo.Environment != "development" {
		t.Errorf("environment = %q", resp.SystemInfo.Environment)
	}
	if resp.SystemInfo.Version != version {
		t.Errorf("version = %q, want %q", resp.SystemInfo.Version, version)
	}
}

func TestRoutingErrors(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodGet, "/movies/update/1", http.StatusMethodNotAllowed},
		{http.MethodPut, "/movies", http.StatusMethodNotAllowed},
		{http.MethodPost, "/actors", http.StatusMethodNotAllowed},
		{http.MethodGet, "/actors/1", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		rr := do(t, h, tt.method, tt.target, "")
		if rr.Code != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.target, rr.Code, tt.status)
			continue
		}

		var resp struct {
			Error string `json:"error"`
		}
		decodeJSON(t, rr, &resp)
		if resp.Error == "" {
			t.Errorf("%s %s: expected an error message", tt.method, tt.target)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	var cfg config
	cfg.env = "development"
	cfg.db.driver = "memory"
	cfg.limiter.rps = 2
	cfg.limiter.burst = 4

	if err := validateConfig(cfg); err != nil {
		t.Fatalf("memory config should be valid: %v", err)
	}

	cfg.db.driver = "postgres"
	if err := validateConfig(cfg); err == nil {
		t.Error("postgres without dsn should be invalid")
	}

	cfg.db.dsn = "postgres://movies@localhost/movies"
	if err := validateConfig(cfg); err != nil {
		t.Errorf("postgres with dsn should be valid: %v", err)
	}

	cfg.db.driver = "sqlite"
	if err := validateConfig(cfg); err == nil {
		t.Error("sqlite should be rejected")
	}
}
