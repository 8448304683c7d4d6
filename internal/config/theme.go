package config

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formguard/pkg/message"
)

const themeVersion = "1.0.0"

// Manifest builds a go-theme manifest whose tokens carry the configured
// summary icons.
func (t ThemeConfig) Manifest() *theme.Manifest {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		name = "default"
	}
	manifest := &theme.Manifest{
		Name:     name,
		Version:  themeVersion,
		Tokens:   t.Icons.tokens(),
		Variants: make(map[string]theme.Variant, len(t.Variants)),
	}
	for variant, icons := range t.Variants {
		manifest.Variants[variant] = theme.Variant{Tokens: icons.tokens()}
	}
	return manifest
}

func (i IconConfig) tokens() map[string]string {
	tokens := make(map[string]string, 4)
	for key, value := range map[string]string{
		message.IconTokenError:       i.Error,
		message.IconTokenWarning:     i.Warning,
		message.IconTokenSuccess:     i.Success,
		message.IconTokenInformation: i.Information,
	} {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			tokens[key] = trimmed
		}
	}
	return tokens
}

// ThemeSelector returns a selector over the configured manifest.
func (c *Config) ThemeSelector() theme.ThemeSelector {
	if c == nil {
		return nil
	}
	return &manifestSelector{manifest: c.Theme.Manifest()}
}

// manifestSelector resolves selections against a single manifest.
type manifestSelector struct {
	manifest *theme.Manifest
}

func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = s.manifest.Name
	}
	if name != s.manifest.Name {
		return nil, fmt.Errorf("config: unknown theme %q", name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := s.manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("config: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: s.manifest}, nil
}
