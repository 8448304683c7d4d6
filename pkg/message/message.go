package message

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity orders message outcomes: None < Success < Warning < Error.
type Severity int

const (
	SeverityNone Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

var severityNames = map[Severity]string{
	SeverityNone:    "None",
	SeveritySuccess: "Success",
	SeverityWarning: "Warning",
	SeverityError:   "Error",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ParseSeverity resolves a severity name (case-insensitive).
func ParseSeverity(raw string) (Severity, error) {
	for severity, name := range severityNames {
		if strings.EqualFold(strings.TrimSpace(raw), name) {
			return severity, nil
		}
	}
	return SeverityNone, fmt.Errorf("message: unknown severity %q", raw)
}

// MarshalJSON encodes the severity name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("message: decode severity: %w", err)
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Message is a target-addressed validation outcome. Target is opaque to the
// store; the UI layer maps it back to a control.
type Message struct {
	ID             string   `json:"id"`
	Target         string   `json:"target"`
	Severity       Severity `json:"severity"`
	Text           string   `json:"text"`
	AdditionalText string   `json:"additionalText,omitempty"`
	RuleID         string   `json:"ruleId,omitempty"`
}
