// Package config loads formguard configuration from defaults, an optional
// file and FORMGUARD_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-formguard/pkg/validation"
)

// Config holds all application configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Layout     LayoutConfig     `mapstructure:"layout"`
	Variants   VariantsConfig   `mapstructure:"variants"`
	Validation ValidationConfig `mapstructure:"validation"`
	Server     ServerConfig     `mapstructure:"server"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Report     ReportConfig     `mapstructure:"report"`
	Visibility VisibilityConfig `mapstructure:"visibility"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LayoutConfig points at scope definitions. An empty path uses the bundled
// layouts. ValueHelp names an optional file of master data rows.
type LayoutConfig struct {
	Path      string `mapstructure:"path"`
	ValueHelp string `mapstructure:"value_help"`
}

// VariantsConfig holds variant storage configuration.
type VariantsConfig struct {
	DSN string `mapstructure:"dsn"`
}

// ValidationConfig tunes the built-in rules.
type ValidationConfig struct {
	DateLayouts    []string    `mapstructure:"date_layouts"`
	TimeLayouts    []string    `mapstructure:"time_layouts"`
	AllowPastDates bool        `mapstructure:"allow_past_dates"`
	Texts          TextsConfig `mapstructure:"texts"`
}

// TextsConfig overrides the failure texts of the built-in rules. Blank
// entries keep the defaults.
type TextsConfig struct {
	Required  string `mapstructure:"required"`
	Invalid   string `mapstructure:"invalid"`
	PastDate  string `mapstructure:"past_date"`
	PairOrder string `mapstructure:"pair_order"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ThemeConfig describes the theme used to resolve summary icons.
type ThemeConfig struct {
	Name     string                `mapstructure:"name"`
	Variant  string                `mapstructure:"variant"`
	Icons    IconConfig            `mapstructure:"icons"`
	Variants map[string]IconConfig `mapstructure:"variants"`
}

// IconConfig names the icon shown per summary severity. Blank entries keep
// the defaults.
type IconConfig struct {
	Error       string `mapstructure:"error"`
	Warning     string `mapstructure:"warning"`
	Success     string `mapstructure:"success"`
	Information string `mapstructure:"information"`
}

// VisibilityConfig holds data exposed to visibleWhen rules under the extras
// prefix.
type VisibilityConfig struct {
	Extras map[string]any `mapstructure:"extras"`
}

// ReportConfig holds report template overrides.
type ReportConfig struct {
	TemplateDir string `mapstructure:"template_dir"`
}

// Load loads configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("layout.path", "")
	v.SetDefault("layout.value_help", "")
	v.SetDefault("variants.dsn", "./data/variants.db")
	v.SetDefault("validation.date_layouts", validation.DefaultDateLayouts)
	v.SetDefault("validation.time_layouts", validation.DefaultTimeLayouts)
	v.SetDefault("validation.allow_past_dates", false)
	v.SetDefault("validation.texts.required", "")
	v.SetDefault("validation.texts.invalid", "")
	v.SetDefault("validation.texts.past_date", "")
	v.SetDefault("validation.texts.pair_order", "")
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("theme.name", "default")
	v.SetDefault("theme.variant", "")
	v.SetDefault("report.template_dir", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("config: parse %s: %w", configPath, err)
			}
			// A missing file falls back to defaults.
		}
	}

	v.SetEnvPrefix("FORMGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// ValidationOptions converts the validation section into validator options.
func (c *Config) ValidationOptions() []validation.Option {
	if c == nil {
		return nil
	}
	var opts []validation.Option
	if layouts := nonBlank(c.Validation.DateLayouts); len(layouts) > 0 {
		opts = append(opts, validation.WithDateLayouts(layouts...))
	}
	if layouts := nonBlank(c.Validation.TimeLayouts); len(layouts) > 0 {
		opts = append(opts, validation.WithTimeLayouts(layouts...))
	}
	opts = append(opts, validation.WithPastDates(c.Validation.AllowPastDates))
	opts = append(opts, validation.WithTexts(validation.Texts{
		Required:  c.Validation.Texts.Required,
		Invalid:   c.Validation.Texts.Invalid,
		PastDate:  c.Validation.Texts.PastDate,
		PairOrder: c.Validation.Texts.PairOrder,
	}))
	return opts
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
