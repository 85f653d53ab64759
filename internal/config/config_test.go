package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"StockBoard/internal/model"
)

var envKeys = []string{
	"STOCKS_API_BASE_URL", "STOCKS_API_TIMEOUT", "HTTPS_PROXY", "DEFAULT_TICKER",
	"DISPLAY_TZ", "BOARD_ADDR", "REFRESH_CRON", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api:
  base_url: "http://stocks.example"
  timeout: 5s
widget:
  default_ticker: "TSLA"
  default_range: "1y"
  timezone: "UTC"
server:
  addr: ":9000"
schedule:
  refresh_cron: "0 */5 * * * *"
logging:
  level: "debug"
  format: "json"
snapshot:
  selector: "#chart"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.API.BaseURL != "http://stocks.example" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "http://stocks.example")
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v, want %v", cfg.API.Timeout, 5*time.Second)
	}
	if cfg.API.StatsPath != "/api/stocks/getstockstatsdata" {
		t.Errorf("API.StatsPath = %q, want default", cfg.API.StatsPath)
	}
	if cfg.Widget.DefaultTicker != "TSLA" {
		t.Errorf("Widget.DefaultTicker = %q, want %q", cfg.Widget.DefaultTicker, "TSLA")
	}
	if cfg.Widget.DefaultRange != model.Range1y {
		t.Errorf("Widget.DefaultRange = %q, want %q", cfg.Widget.DefaultRange, model.Range1y)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9000")
	}
	if cfg.Schedule.RefreshCron != "0 */5 * * * *" {
		t.Errorf("Schedule.RefreshCron = %q", cfg.Schedule.RefreshCron)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Snapshot.URL != "http://localhost:9000/" {
		t.Errorf("Snapshot.URL = %q, want %q", cfg.Snapshot.URL, "http://localhost:9000/")
	}
	if cfg.Snapshot.Selector != "#chart" {
		t.Errorf("Snapshot.Selector = %q, want %q", cfg.Snapshot.Selector, "#chart")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() returned error: %v", err)
	}
}

func TestSnapshotURLFromAddr(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":9000", "http://localhost:9000/"},
		{"0.0.0.0:9000", "http://localhost:9000/"},
		{"127.0.0.1:8081", "http://localhost:8081/"},
		{"[::]:7000", "http://localhost:7000/"},
		{"board", "http://localhost:8080/"},
	}
	for _, tt := range tests {
		clearEnv(t)
		t.Setenv("BOARD_ADDR", tt.addr)
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("Load(%q) returned error: %v", tt.addr, err)
		}
		if cfg.Snapshot.URL != tt.want {
			t.Errorf("addr %q: Snapshot.URL = %q, want %q", tt.addr, cfg.Snapshot.URL, tt.want)
		}
	}
}

func TestLoadMissingFileDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Widget.DefaultTicker != "AAPL" {
		t.Errorf("Widget.DefaultTicker = %q, want AAPL", cfg.Widget.DefaultTicker)
	}
	if cfg.Widget.DefaultRange != model.Range1mo {
		t.Errorf("Widget.DefaultRange = %q, want 1mo", cfg.Widget.DefaultRange)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Schedule.RefreshCron != "" {
		t.Errorf("Schedule.RefreshCron = %q, want empty", cfg.Schedule.RefreshCron)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "base_url") {
		t.Errorf("Validate() = %v, want base_url error", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOCKS_API_BASE_URL", "http://env.example")
	t.Setenv("STOCKS_API_TIMEOUT", "2s")
	t.Setenv("DEFAULT_TICKER", "MSFT")
	t.Setenv("BOARD_ADDR", "127.0.0.1:8181")
	t.Setenv("LOG_LEVEL", "warn")

	path := writeConfig(t, `
api:
  base_url: "http://file.example"
widget:
  default_ticker: "TSLA"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.API.BaseURL != "http://env.example" {
		t.Errorf("API.BaseURL = %q, want env value", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 2*time.Second {
		t.Errorf("API.Timeout = %v, want 2s", cfg.API.Timeout)
	}
	if cfg.Widget.DefaultTicker != "MSFT" {
		t.Errorf("Widget.DefaultTicker = %q, want MSFT", cfg.Widget.DefaultTicker)
	}
	if cfg.Server.Addr != "127.0.0.1:8181" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeConfig(t, "api: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
	t.Setenv("STOCKS_API_TIMEOUT", "soon")
	if _, err := Load(writeConfig(t, "")); err == nil {
		t.Error("expected timeout parse error")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		mut  func(c *Config)
		want string
	}{
		{"ok", func(c *Config) {}, ""},
		{"range", func(c *Config) { c.Widget.DefaultRange = "2w" }, "default_range"},
		{"timezone", func(c *Config) { c.Widget.Timezone = "Mars/Olympus" }, "timezone"},
		{"timeout", func(c *Config) { c.API.Timeout = -time.Second }, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, `api: {base_url: "http://x"}`))
			if err != nil {
				t.Fatalf("Load() returned error: %v", err)
			}
			tt.mut(cfg)
			err = cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	if got := Path(); got != "configs/config.yaml" {
		t.Errorf("Path() = %q, want default", got)
	}
	t.Setenv("CONFIG_PATH", "/etc/board.yaml")
	if got := Path(); got != "/etc/board.yaml" {
		t.Errorf("Path() = %q, want /etc/board.yaml", got)
	}
}
