package formguard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formguard/pkg/session"
)

func TestNewSession_FromBundledLayouts(t *testing.T) {
	layouts, err := LoadLayouts("")
	if err != nil {
		t.Fatalf("load layouts: %v", err)
	}
	sess, err := NewSession(layouts, "leaveRequest")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if got := sess.Scope().ID(); got != "leaveRequest" {
		t.Fatalf("unexpected scope %q", got)
	}

	if _, err := NewSession(layouts, "missing"); !errors.Is(err, ErrUnknownScope) {
		t.Fatalf("expected ErrUnknownScope, got %v", err)
	}
}

func TestApplyValues(t *testing.T) {
	layouts, err := LoadLayouts("")
	if err != nil {
		t.Fatalf("load layouts: %v", err)
	}
	sc, err := BuildScope(layouts, "leaveFilters")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	err = ApplyValues(sc, Values{
		"requestId": "R-1",
		"Status":    []any{"01", "02"},
		"createdBy": "alice",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	status, _ := sc.Field("status")
	if diff := cmp.Diff([]string{"01", "02"}, status.List()); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
	createdBy, _ := sc.Field("createdBy")
	if diff := cmp.Diff([]string{"alice"}, createdBy.List()); diff != "" {
		t.Fatalf("scalar into list kind mismatch (-want +got):\n%s", diff)
	}

	if err := ApplyValues(sc, Values{"nope": "x"}); !errors.Is(err, session.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := ApplyValues(sc, Values{"requestId": map[string]any{}}); err == nil {
		t.Fatalf("expected unsupported value error")
	}
}

func TestDecodeValues(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Values
	}{
		{name: "empty", raw: "  ", want: Values{}},
		{name: "json", raw: `{"startDate":"2025-01-10","status":["01"]}`, want: Values{"startDate": "2025-01-10", "status": []any{"01"}}},
		{name: "yaml", raw: "startDate: \"2025-01-10\"\nstatus:\n  - \"01\"\n", want: Values{"startDate": "2025-01-10", "status": []any{"01"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeValues([]byte(tc.raw))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := DecodeValues([]byte("{broken")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestReadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte("reason: family\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadValues(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got["reason"] != "family" {
		t.Fatalf("unexpected values %v", got)
	}
	if got, err := ReadValues(""); err != nil || len(got) != 0 {
		t.Fatalf("empty path should yield no values, got %v %v", got, err)
	}
}

func TestSearchFieldOptions(t *testing.T) {
	layouts, err := LoadLayouts("")
	if err != nil {
		t.Fatalf("load layouts: %v", err)
	}
	path := filepath.Join(t.TempDir(), "valuehelp.yaml")
	rows := "- fieldName: Status\n  fieldKey: \"01\"\n  fieldValue: New\n- fieldName: Status\n  fieldKey: \"02\"\n  fieldValue: Approved\n"
	if err := os.WriteFile(path, []byte(rows), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadValueHelp(layouts, path); err != nil {
		t.Fatalf("load value help: %v", err)
	}

	got, err := SearchFieldOptions(layouts, "leaveFilters", "Status", "app", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Key != "02" {
		t.Fatalf("unexpected options %+v", got)
	}

	if _, err := SearchFieldOptions(layouts, "leaveFilters", "requestId", "", 0); !errors.Is(err, ErrNotChoice) {
		t.Fatalf("expected ErrNotChoice, got %v", err)
	}
	if _, err := SearchFieldOptions(layouts, "leaveFilters", "nope", "", 0); !errors.Is(err, session.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := LoadValueHelp(layouts, ""); err != nil {
		t.Fatalf("empty path should be a no-op: %v", err)
	}
}
