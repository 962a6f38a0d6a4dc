package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(nil, env(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":3000" || cfg.Clock.Initial != 600 || cfg.Clock.Increment != 5 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Server.TickInterval != time.Second || cfg.Log.Development {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("origins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
server:
  addr: ":8080"
  allowed_origins: ["http://a.test", "http://b.test"]
  tick_interval: 500ms
clock:
  initial: 300
  increment: 2
log:
  development: true
`)

	tests := []struct {
		name          string
		args          []string
		vars          map[string]string
		wantAddr      string
		wantInitial   int
		wantIncrement int
	}{
		{name: "file", args: []string{"-config", path}, wantAddr: ":8080", wantInitial: 300, wantIncrement: 2},
		{name: "file from env", vars: map[string]string{"CHESS_CONFIG": path}, wantAddr: ":8080", wantInitial: 300, wantIncrement: 2},
		{
			name:          "env over file",
			args:          []string{"-config", path},
			vars:          map[string]string{"CHESS_ADDR": ":9000", "CHESS_CLOCK_INITIAL": "60"},
			wantAddr:      ":9000",
			wantInitial:   60,
			wantIncrement: 2,
		},
		{
			name:          "flags over env",
			args:          []string{"-config", path, "-addr", ":7000", "-clock-increment", "0"},
			vars:          map[string]string{"CHESS_ADDR": ":9000", "CHESS_CLOCK_INCREMENT": "9"},
			wantAddr:      ":7000",
			wantInitial:   300,
			wantIncrement: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Load(tt.args, env(tt.vars))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Server.Addr != tt.wantAddr || cfg.Clock.Initial != tt.wantInitial || cfg.Clock.Increment != tt.wantIncrement {
				t.Fatalf("cfg = %+v", cfg)
			}
			if cfg.Server.TickInterval != 500*time.Millisecond || !cfg.Log.Development || len(cfg.Server.AllowedOrigins) != 2 {
				t.Fatalf("file values lost: %+v", cfg)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	badYAML := writeConfig(t, "server: [\n")

	tests := []struct {
		name string
		args []string
		vars map[string]string
	}{
		{name: "missing file", args: []string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}},
		{name: "bad yaml", args: []string{"-config", badYAML}},
		{name: "bad env number", vars: map[string]string{"CHESS_CLOCK_INITIAL": "ten"}},
		{name: "bad env bool", vars: map[string]string{"CHESS_LOG_DEVELOPMENT": "maybe"}},
		{name: "zero initial", args: []string{"-clock-initial", "0"}},
		{name: "negative increment", vars: map[string]string{"CHESS_CLOCK_INCREMENT": "-1"}},
		{name: "unknown flag", args: []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Load(tt.args, env(tt.vars)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
