package config

import (
    "os"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
    chdir(t, t.TempDir())
    t.Setenv("TRACKER_TOKEN", "secret")
    t.Setenv("TRACKER_ORG_ID", "42")
    t.Setenv("TRACKER_WORKERS", "8")
    t.Setenv("REPORT_PROJECTS", "Plant A (Support), Plant B ,")
    t.Setenv("REPORT_TIMEZONE", "Europe/Moscow")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, "secret", cfg.Tracker.Token)
    assert.Equal(t, 8, cfg.Tracker.Workers)
    assert.Equal(t, 3, cfg.Tracker.MaxRetries)
    assert.Equal(t, 30*time.Second, cfg.Tracker.Timeout)
    assert.Equal(t, "X-Org-ID", cfg.Tracker.OrgHeader)
    assert.Equal(t, []string{"Plant A (Support)", "Plant B"}, cfg.Report.Projects)
    assert.Equal(t, "Europe/Moscow", cfg.Location().String())
}

func TestLoadRequiresCredentials(t *testing.T) {
    chdir(t, t.TempDir())
    t.Setenv("TRACKER_TOKEN", "")
    t.Setenv("TRACKER_ORG_ID", "")
    _, err := Load()
    assert.ErrorContains(t, err, "tracker.token")
}

func TestValidate(t *testing.T) {
    base := Config{Tracker: TrackerConfig{BaseURL: "u", Token: "t", OrgID: "o", MaxRetries: 3, Workers: 5}, Report: ReportConfig{Timezone: "UTC"}}
    require.NoError(t, base.Validate())

    bad := base
    bad.Tracker.Workers = 0
    assert.Error(t, bad.Validate())

    bad = base
    bad.Report.Timezone = "Mars/Olympus"
    assert.Error(t, bad.Validate())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
    t.Helper()
    old, err := os.Getwd()
    require.NoError(t, err)
    require.NoError(t, os.Chdir(dir))
    t.Cleanup(func() { _ = os.Chdir(old) })
}
