package model

import (
	"fmt"
	"strings"
)

// FieldKind enumerates the editable control kinds a scope can hold.
type FieldKind string

const (
	KindText         FieldKind = "text"
	KindTextArea     FieldKind = "textarea"
	KindMultiText    FieldKind = "multitext"
	KindDate         FieldKind = "date"
	KindTime         FieldKind = "time"
	KindMultiChoice  FieldKind = "multichoice"
	KindSingleChoice FieldKind = "singlechoice"
	KindBoolean      FieldKind = "boolean"
	KindTristate     FieldKind = "tristate"
)

// Kinds lists every supported kind in declaration order.
func Kinds() []FieldKind {
	return []FieldKind{
		KindText,
		KindTextArea,
		KindMultiText,
		KindDate,
		KindTime,
		KindMultiChoice,
		KindSingleChoice,
		KindBoolean,
		KindTristate,
	}
}

// kindAliases maps control names used by filter bar definitions onto the
// canonical kinds.
var kindAliases = map[string]FieldKind{
	"input":         KindText,
	"multiinput":    KindMultiText,
	"datepicker":    KindDate,
	"timepicker":    KindTime,
	"multicombobox": KindMultiChoice,
	"select":        KindSingleChoice,
	"combobox":      KindSingleChoice,
	"checkbox":      KindBoolean,
	"switch":        KindBoolean,
}

// ParseFieldKind resolves canonical names and control aliases. Matching is
// case-insensitive and ignores '-', '_' and spaces.
func ParseFieldKind(raw string) (FieldKind, error) {
	key := normaliseKindKey(raw)
	if key == "" {
		return "", fmt.Errorf("model: field kind is required")
	}
	for _, kind := range Kinds() {
		if string(kind) == key {
			return kind, nil
		}
	}
	if kind, ok := kindAliases[key]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("model: unknown field kind %q", raw)
}

// Valid reports whether k is one of the supported kinds.
func (k FieldKind) Valid() bool {
	for _, kind := range Kinds() {
		if kind == k {
			return true
		}
	}
	return false
}

// IsList reports whether values of this kind are ordered string lists.
func (k FieldKind) IsList() bool {
	return k == KindMultiText || k == KindMultiChoice
}

// IsChoice reports whether the kind selects among known option keys.
func (k FieldKind) IsChoice() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

func (k FieldKind) String() string {
	return string(k)
}

func normaliseKindKey(raw string) string {
	replacer := strings.NewReplacer("-", "", "_", "", " ", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(raw)))
}
