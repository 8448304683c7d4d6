package report

import "strings"

// StatusState is the value state used to colour a leave request status.
type StatusState string

const (
	StateNone        StatusState = "None"
	StateInformation StatusState = "Information"
	StateSuccess     StatusState = "Success"
	StateError       StatusState = "Error"
)

type status struct {
	text  string
	state StatusState
}

var statuses = map[string]status{
	"01": {text: "New", state: StateInformation},
	"02": {text: "Approved", state: StateSuccess},
	"03": {text: "Rejected", state: StateError},
}

// StatusText maps a status key to its display text. Unknown keys are
// returned unchanged.
func StatusText(key string) string {
	if entry, ok := statuses[strings.TrimSpace(key)]; ok {
		return entry.text
	}
	return key
}

// StatusStateFor maps a status key to its value state. Unknown keys map to
// StateNone.
func StatusStateFor(key string) StatusState {
	if entry, ok := statuses[strings.TrimSpace(key)]; ok {
		return entry.state
	}
	return StateNone
}
