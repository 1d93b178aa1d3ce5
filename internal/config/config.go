/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
    "errors"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/joho/godotenv"
    "github.com/spf13/viper"
)

const envFile = ".env"

type Config struct {
    App     AppConfig     `mapstructure:"app"`
    Log     LogConfig     `mapstructure:"log"`
    HTTP    HTTPConfig    `mapstructure:"http"`
    Tracker TrackerConfig `mapstructure:"tracker"`
    Report  ReportConfig  `mapstructure:"report"`
}

type AppConfig struct {
    Env     string `mapstructure:"env"`
    Name    string `mapstructure:"name"`
    Version string `mapstructure:"version"`
}

type LogConfig struct {
    Level string `mapstructure:"level"`
}

type HTTPConfig struct {
    Addr            string        `mapstructure:"addr"`
    ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// TrackerConfig describes access to the tracker API. Token is passed through as is.
type TrackerConfig struct {
    BaseURL      string        `mapstructure:"base_url"`
    WebURL       string        `mapstructure:"web_url"`
    Token        string        `mapstructure:"token"`
    OrgID        string        `mapstructure:"org_id"`
    OrgHeader    string        `mapstructure:"org_header"`
    Timeout      time.Duration `mapstructure:"timeout"`
    MaxRetries   int           `mapstructure:"max_retries"`
    RetryInitial time.Duration `mapstructure:"retry_initial"`
    Workers      int           `mapstructure:"workers"`
    PageSize     int           `mapstructure:"page_size"`
}

type ReportConfig struct {
    Projects  []string `mapstructure:"projects"`
    Timezone  string   `mapstructure:"timezone"`
    MaxDepth  int      `mapstructure:"max_depth"`
    Cron      string   `mapstructure:"cron"`
    OutputDir string   `mapstructure:"output_dir"`
}

// Load reads configuration from an optional .env file and the environment.
// Variables already set in the environment take precedence over the file.
func Load() (Config, error) {
    if envMap, err := godotenv.Read(envFile); err == nil {
        for k, val := range envMap {
            if _, exists := os.LookupEnv(k); !exists {
                _ = os.Setenv(k, val)
            }
        }
    }
    v := viper.New()
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()
    setDefaults(v)
    for _, k := range v.AllKeys() {
        _ = v.BindEnv(k)
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return Config{}, fmt.Errorf("unmarshal config: %w", err)
    }
    cfg.Report.Projects = cleanList(cfg.Report.Projects)
    if err := cfg.Validate(); err != nil {
        return Config{}, err
    }
    return cfg, nil
}

func setDefaults(v *viper.Viper) {
    v.SetDefault("app.env", "dev")
    v.SetDefault("app.name", "Tracker Report")
    v.SetDefault("app.version", "1.0.0")

    v.SetDefault("log.level", "info")

    v.SetDefault("http.addr", ":8000")
    v.SetDefault("http.shutdown_timeout", 5*time.Second)

    v.SetDefault("tracker.base_url", "https://api.tracker.yandex.net/v2")
    v.SetDefault("tracker.web_url", "https://tracker.yandex.ru")
    v.SetDefault("tracker.token", "")
    v.SetDefault("tracker.org_id", "")
    v.SetDefault("tracker.org_header", "X-Org-ID")
    v.SetDefault("tracker.timeout", 30*time.Second)
    v.SetDefault("tracker.max_retries", 3)
    v.SetDefault("tracker.retry_initial", time.Second)
    v.SetDefault("tracker.workers", 5)
    v.SetDefault("tracker.page_size", 100)

    v.SetDefault("report.projects", []string{})
    v.SetDefault("report.timezone", "UTC")
    v.SetDefault("report.max_depth", 32)
    v.SetDefault("report.cron", "")
    v.SetDefault("report.output_dir", "reports")
}

// cleanList trims entries and drops empty ones; env values arrive as a single CSV string.
func cleanList(in []string) []string {
    var out []string
    for _, s := range in {
        for _, p := range strings.Split(s, ",") {
            if p = strings.TrimSpace(p); p != "" {
                out = append(out, p)
            }
        }
    }
    return out
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
    if c.Tracker.BaseURL == "" {
        return errors.New("tracker.base_url is required")
    }
    if c.Tracker.Token == "" {
        return errors.New("tracker.token is required")
    }
    if c.Tracker.OrgID == "" {
        return errors.New("tracker.org_id is required")
    }
    if c.Tracker.MaxRetries < 1 {
        return errors.New("tracker.max_retries must be at least 1")
    }
    if c.Tracker.Workers < 1 {
        return errors.New("tracker.workers must be at least 1")
    }
    if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
        return fmt.Errorf("report.timezone: %w", err)
    }
    return nil
}

// Location is the time zone that defines reporting month boundaries.
func (c Config) Location() *time.Location {
    loc, err := time.LoadLocation(c.Report.Timezone)
    if err != nil {
        return time.UTC
    }
    return loc
}
