package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formguard/pkg/message"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "./data/variants.db", cfg.Variants.DSN)
	assert.Equal(t, []string{"2006-01-02", "02.01.2006"}, cfg.Validation.DateLayouts)
	assert.False(t, cfg.Validation.AllowPastDates)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Len(t, cfg.ValidationOptions(), 4)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formguard.yaml")
	content := `
log:
  level: debug
  format: json
layout:
  path: ./layouts
validation:
  date_layouts: ["02/01/2006"]
  allow_past_dates: true
  texts:
    required: Please fill in
theme:
  name: acme
  icons:
    error: stop
  variants:
    dark:
      error: stop-dark
visibility:
  extras:
    role: manager
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("FORMGUARD_SERVER_ADDR", ":9090")
	t.Setenv("FORMGUARD_VARIANTS_DSN", "/tmp/v.db")
	t.Setenv("FORMGUARD_LAYOUT_VALUE_HELP", "./valuehelp.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./layouts", cfg.Layout.Path)
	assert.Equal(t, []string{"02/01/2006"}, cfg.Validation.DateLayouts)
	assert.True(t, cfg.Validation.AllowPastDates)
	assert.Equal(t, "Please fill in", cfg.Validation.Texts.Required)
	assert.Equal(t, "./valuehelp.yaml", cfg.Layout.ValueHelp)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/tmp/v.db", cfg.Variants.DSN)
	assert.Equal(t, "stop", cfg.Theme.Icons.Error)
	assert.Equal(t, "stop-dark", cfg.Theme.Variants["dark"].Error)
	assert.Equal(t, "manager", cfg.Visibility.Extras["role"])
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestThemeSelector(t *testing.T) {
	cfg := &Config{Theme: ThemeConfig{
		Name:     "acme",
		Icons:    IconConfig{Error: "stop", Warning: " "},
		Variants: map[string]IconConfig{"dark": {Error: "stop-dark"}},
	}}
	selector := cfg.ThemeSelector()

	selection, err := selector.Select("", "")
	require.NoError(t, err)
	icons := message.IconsFromTheme(selection)
	assert.Equal(t, "stop", icons.Error)
	assert.Equal(t, message.DefaultIcons().Warning, icons.Warning)

	selection, err = selector.Select("acme", "dark")
	require.NoError(t, err)
	assert.Equal(t, "stop-dark", message.IconsFromTheme(selection).Error)

	_, err = selector.Select("other", "")
	assert.Error(t, err)
	_, err = selector.Select("acme", "light")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Log: LogConfig{Level: "warn", Format: "json"}}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "field", "start")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"field":"start"`)
}
