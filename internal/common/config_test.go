package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8380 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8380)
	}
	if cfg.Engine.DesiredYieldPct != 6 {
		t.Errorf("Engine.DesiredYieldPct default = %v, want 6", cfg.Engine.DesiredYieldPct)
	}
	if cfg.IsProduction() {
		t.Error("default config should not be production")
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("CARTEIRA_PORT", "9090")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_TokenEnvOverride(t *testing.T) {
	t.Setenv("CARTEIRA_BRAPI_TOKEN", "env-token")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.Brapi.Token != "env-token" {
		t.Errorf("Brapi.Token = %q after env override, want %q", cfg.Clients.Brapi.Token, "env-token")
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carteira.toml")
	content := `
environment = "production"

[server]
port = 9000

[engine]
desired_yield_pct = 8.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CARTEIRA_PORT", "9001")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("environment from file not applied")
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, env should win over file, want 9001", cfg.Server.Port)
	}
	if cfg.Engine.DesiredYieldPct != 8 {
		t.Errorf("Engine.DesiredYieldPct = %v, want 8", cfg.Engine.DesiredYieldPct)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 8380 {
		t.Errorf("Server.Port = %d, want default 8380", cfg.Server.Port)
	}
}

func TestLoadConfig_InvalidPortRejected(t *testing.T) {
	t.Setenv("CARTEIRA_PORT", "99999")
	if _, err := LoadConfig(""); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestBrapiConfig_GetTimeout(t *testing.T) {
	cfg := BrapiConfig{Timeout: "5s"}
	if got := cfg.GetTimeout(); got != 5*time.Second {
		t.Errorf("GetTimeout() = %v, want 5s", got)
	}

	cfg.Timeout = "bogus"
	if got := cfg.GetTimeout(); got != 30*time.Second {
		t.Errorf("GetTimeout() fallback = %v, want 30s", got)
	}
}

func TestEngineConfig_GetQuoteCacheTTL(t *testing.T) {
	cfg := EngineConfig{QuoteCacheTTL: "5m"}
	if got := cfg.GetQuoteCacheTTL(); got != 5*time.Minute {
		t.Errorf("GetQuoteCacheTTL() = %v, want 5m", got)
	}

	cfg.QuoteCacheTTL = ""
	if got := cfg.GetQuoteCacheTTL(); got != FreshnessQuote {
		t.Errorf("GetQuoteCacheTTL() fallback = %v, want %v", got, FreshnessQuote)
	}
}

func TestIsFresh(t *testing.T) {
	if IsFresh(time.Time{}, time.Hour) {
		t.Error("zero time should never be fresh")
	}
	if !IsFresh(time.Now().Add(-time.Minute), time.Hour) {
		t.Error("one minute old should be fresh within an hour")
	}
	if IsFresh(time.Now().Add(-2*time.Hour), time.Hour) {
		t.Error("two hours old should be stale within an hour")
	}
}
