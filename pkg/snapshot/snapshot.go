package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/scope"
)

// Criterion is one captured filter value addressed by group and field name.
type Criterion struct {
	GroupName string      `json:"groupName" yaml:"groupName"`
	FieldName string      `json:"fieldName" yaml:"fieldName"`
	Value     model.Value `json:"value" yaml:"value"`
}

// UnmarshalJSON accepts the legacy "fieldData" key as an alias for "value".
func (c *Criterion) UnmarshalJSON(data []byte) error {
	var raw struct {
		GroupName string           `json:"groupName"`
		FieldName string           `json:"fieldName"`
		Value     *json.RawMessage `json:"value"`
		FieldData *json.RawMessage `json:"fieldData"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("snapshot: decode criterion: %w", err)
	}
	c.GroupName = raw.GroupName
	c.FieldName = raw.FieldName
	c.Value = model.Scalar("")

	payload := raw.Value
	if payload == nil {
		payload = raw.FieldData
	}
	if payload == nil {
		return nil
	}
	if err := json.Unmarshal(*payload, &c.Value); err != nil {
		return fmt.Errorf("snapshot: decode criterion %s/%s: %w", raw.GroupName, raw.FieldName, err)
	}
	return nil
}

// Snapshot is an ordered capture of a filter scope. Order follows the scope's
// enumeration order at capture time.
type Snapshot []Criterion

// Report describes the outcome of Restore.
type Report struct {
	Applied []string    `json:"applied"`
	Skipped []Criterion `json:"skipped,omitempty"`
}

// Complete reports whether every criterion found a field.
func (r Report) Complete() bool {
	return len(r.Skipped) == 0
}

// Capture reads every field of sc, across all groups, into a snapshot.
func Capture(sc *scope.Scope) Snapshot {
	fields := sc.Enumerate(scope.AnyGroup)
	snap := make(Snapshot, 0, len(fields))
	for _, field := range fields {
		var value model.Value
		if field.Kind.IsList() {
			value = model.List(field.List()...)
		} else {
			value = model.Scalar(field.Scalar())
		}
		snap = append(snap, Criterion{
			GroupName: field.GroupID,
			FieldName: field.Name,
			Value:     value,
		})
	}
	return snap
}

// Restore writes each criterion into the field matching its group and name.
// Criteria without a matching field are skipped and reported; fields not
// named by the snapshot keep their current value.
func Restore(snap Snapshot, sc *scope.Scope) Report {
	report := Report{Applied: make([]string, 0, len(snap))}
	for _, criterion := range snap {
		field, ok := sc.Lookup(criterion.GroupName, criterion.FieldName)
		if !ok {
			report.Skipped = append(report.Skipped, criterion)
			continue
		}
		if field.Kind.IsList() {
			field.SetList(criterion.Value.Strings())
		} else {
			field.SetScalar(criterion.Value.String())
		}
		report.Applied = append(report.Applied, field.ID)
	}
	return report
}

// Marshal encodes the snapshot in the wire format.
func Marshal(snap Snapshot) ([]byte, error) {
	if snap == nil {
		snap = Snapshot{}
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return raw, nil
}

// Unmarshal decodes a snapshot from the wire format. An empty payload decodes
// to an empty snapshot.
func Unmarshal(raw []byte) (Snapshot, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Snapshot{}, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// Equal reports whether two snapshots hold the same criteria in order.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for idx := range s {
		if s[idx].GroupName != other[idx].GroupName ||
			s[idx].FieldName != other[idx].FieldName ||
			!s[idx].Value.Equal(other[idx].Value) {
			return false
		}
	}
	return true
}

// Lookup returns the criterion for group and name.
func (s Snapshot) Lookup(groupName, fieldName string) (Criterion, bool) {
	groupName = strings.TrimSpace(groupName)
	fieldName = strings.TrimSpace(fieldName)
	for _, criterion := range s {
		if criterion.GroupName == groupName && criterion.FieldName == fieldName {
			return criterion, true
		}
	}
	return Criterion{}, false
}
