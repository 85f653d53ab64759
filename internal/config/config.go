package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockBoard/internal/model"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL      string        `yaml:"base_url"`
		StatsPath    string        `yaml:"stats_path"`
		ProfilesPath string        `yaml:"profiles_path"`
		SeriesPath   string        `yaml:"series_path"`
		Timeout      time.Duration `yaml:"timeout"`
		Proxy        string        `yaml:"proxy"`
	} `yaml:"api"`
	Widget struct {
		DefaultTicker string      `yaml:"default_ticker"`
		DefaultRange  model.Range `yaml:"default_range"`
		Timezone      string      `yaml:"timezone"`
	} `yaml:"widget"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Snapshot struct {
		URL      string        `yaml:"url"`
		// Selector limits the capture to one element; empty captures the page.
		Selector string        `yaml:"selector"`
		Output   string        `yaml:"output"`
		Width    int64         `yaml:"width"`
		Height   int64         `yaml:"height"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"snapshot"`
}

// Path returns the config file path from CONFIG_PATH, or the default.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// Load reads .env and the YAML file at path, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKS_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STOCKS_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse STOCKS_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.API.Proxy = v
	}
	if v := os.Getenv("DEFAULT_TICKER"); v != "" {
		cfg.Widget.DefaultTicker = v
	}
	if v := os.Getenv("DISPLAY_TZ"); v != "" {
		cfg.Widget.Timezone = v
	}
	if v := os.Getenv("BOARD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Defaults
	if cfg.API.StatsPath == "" {
		cfg.API.StatsPath = "/api/stocks/getstockstatsdata"
	}
	if cfg.API.ProfilesPath == "" {
		cfg.API.ProfilesPath = "/api/stocks/getstocksprofiledata"
	}
	if cfg.API.SeriesPath == "" {
		cfg.API.SeriesPath = "/api/stocks/getstocksdata"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Widget.DefaultTicker == "" {
		cfg.Widget.DefaultTicker = "AAPL"
	}
	if cfg.Widget.DefaultRange == "" {
		cfg.Widget.DefaultRange = model.DefaultRange
	}
	if cfg.Widget.Timezone == "" {
		cfg.Widget.Timezone = "UTC"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Snapshot.URL == "" {
		cfg.Snapshot.URL = localURL(cfg.Server.Addr)
	}
	if cfg.Snapshot.Output == "" {
		cfg.Snapshot.Output = "board.png"
	}
	if cfg.Snapshot.Width == 0 {
		cfg.Snapshot.Width = 1280
	}
	if cfg.Snapshot.Height == 0 {
		cfg.Snapshot.Height = 800
	}
	if cfg.Snapshot.Timeout == 0 {
		cfg.Snapshot.Timeout = 30 * time.Second
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if !c.Widget.DefaultRange.Valid() {
		return fmt.Errorf("widget.default_range %q is not a known range", c.Widget.DefaultRange)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location loads the display timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Widget.Timezone)
	if err != nil {
		return nil, fmt.Errorf("widget.timezone: %w", err)
	}
	return loc, nil
}

// localURL is the loopback address of a board listening on addr. Only the
// port is kept since the listen host may be a wildcard.
func localURL(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		port = "8080"
	}
	return "http://localhost:" + port + "/"
}
