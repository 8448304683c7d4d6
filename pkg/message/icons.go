package message

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys resolved by IconsFromTheme.
const (
	IconTokenError       = "icon.error"
	IconTokenWarning     = "icon.warning"
	IconTokenSuccess     = "icon.success"
	IconTokenInformation = "icon.information"
)

// IconSet names the icon identifier used for each summary severity.
type IconSet struct {
	Error       string `json:"error"`
	Warning     string `json:"warning"`
	Success     string `json:"success"`
	Information string `json:"information"`
}

// DefaultIcons returns the built-in icon identifiers.
func DefaultIcons() IconSet {
	return IconSet{
		Error:       "error",
		Warning:     "alert",
		Success:     "success",
		Information: "information",
	}
}

// IconsFromTheme resolves icon identifiers from a go-theme selection. Variant
// tokens override manifest tokens; missing tokens keep the defaults.
func IconsFromTheme(selection *theme.Selection) IconSet {
	icons := DefaultIcons()
	if selection == nil || selection.Manifest == nil {
		return icons
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}

	icons.Error = tokenOr(tokens, IconTokenError, icons.Error)
	icons.Warning = tokenOr(tokens, IconTokenWarning, icons.Warning)
	icons.Success = tokenOr(tokens, IconTokenSuccess, icons.Success)
	icons.Information = tokenOr(tokens, IconTokenInformation, icons.Information)
	return icons
}

func (i IconSet) normalised() IconSet {
	defaults := DefaultIcons()
	if strings.TrimSpace(i.Error) == "" {
		i.Error = defaults.Error
	}
	if strings.TrimSpace(i.Warning) == "" {
		i.Warning = defaults.Warning
	}
	if strings.TrimSpace(i.Success) == "" {
		i.Success = defaults.Success
	}
	if strings.TrimSpace(i.Information) == "" {
		i.Information = defaults.Information
	}
	return i
}

func (i IconSet) forSeverity(severity Severity) string {
	switch severity {
	case SeverityError:
		return i.Error
	case SeverityWarning:
		return i.Warning
	case SeveritySuccess:
		return i.Success
	default:
		return i.Information
	}
}

func tokenOr(tokens map[string]string, key, fallback string) string {
	if value := strings.TrimSpace(tokens[key]); value != "" {
		return value
	}
	return fallback
}
