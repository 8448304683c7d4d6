package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formguard/pkg/message"
	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/snapshot"
	"github.com/goliatone/go-formguard/pkg/variant"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := New(opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderValidation(t *testing.T) {
	engine := newEngine(t)
	messages := []message.Message{
		{Target: "leave/start", Severity: message.SeverityError, Text: "Start date must be before end date", RuleID: "pair-order"},
		{Target: "leave/reason", Severity: message.SeverityError, Text: "Use < & > sparingly"},
	}

	var buf bytes.Buffer
	err := engine.RenderValidation(&buf, Validation{
		Scope:    "leave",
		Summary:  message.Summarize(messages, message.DefaultIcons()),
		Messages: messages,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, buf.String(),
		"leave: 2 Error [error]",
		"- Error leave/start: Start date must be before end date (pair-order)",
		"- Error leave/reason: Use < & > sparingly",
	)

	buf.Reset()
	if err := engine.RenderValidation(&buf, Validation{Scope: "leave", Valid: true}); err != nil {
		t.Fatalf("render valid: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "leave: valid" {
		t.Fatalf("unexpected valid output %q", got)
	}
}

func TestRenderFilters(t *testing.T) {
	engine := newEngine(t)
	var buf bytes.Buffer
	err := engine.RenderFilters(&buf, Filters{
		Scope:        "leaveFilters",
		Text:         "Filtered By (2): Leave Type, Status",
		ExpandedText: "2 filters active",
		Variant:      "Pending",
		Modified:     true,
		Criteria: snapshot.Snapshot{
			{GroupName: "basic", FieldName: "LeaveType", Value: model.Scalar("VAC")},
			{GroupName: "basic", FieldName: "RequestId", Value: model.Scalar("")},
			{GroupName: "state", FieldName: "Status", Value: model.List("01", "02")},
		},
		Skipped: []string{"basic/Removed"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	assertContains(t, out,
		"Filtered By (2): Leave Type, Status",
		"2 filters active",
		"Variant: Pending (modified)",
		"basic/LeaveType = VAC",
		"state/Status = 01, 02",
		"skipped: basic/Removed",
	)
	if strings.Contains(out, "RequestId") {
		t.Fatalf("empty criteria should be omitted:\n%s", out)
	}
}

func TestRenderVariants(t *testing.T) {
	engine := newEngine(t)
	var buf bytes.Buffer
	err := engine.RenderVariants(&buf, Variants{
		Key: "leave",
		Variants: []variant.Variant{
			{ID: "01A", Name: "Open", Default: true, Snapshot: snapshot.Snapshot{{FieldName: "Status", Value: model.List("01")}}},
			{ID: "01B", Name: "Closed"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, buf.String(), "Variants for leave:", "* 01A  Open (1 criteria)", "  01B  Closed (0 criteria)")

	buf.Reset()
	if err := engine.RenderVariants(&buf, Variants{Key: "empty"}); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	assertContains(t, buf.String(), "(none)")
}

func TestRender_InlineTemplateAndGlobals(t *testing.T) {
	engine := newEngine(t, WithGlobalData(map[string]any{"app": "formguard"}))
	got, err := engine.Render(`{{ app }}: {{ status|status_text }} / {{ status|status_state }}`, map[string]any{"status": "03"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "formguard: Rejected / Error" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRender_OverridesFromFSAndBaseDir(t *testing.T) {
	override := fstest.MapFS{
		"validation.tpl": {Data: []byte(`custom {{ scope }}`)},
	}
	engine := newEngine(t, WithFS(override))
	got, err := engine.Render(TemplateValidation, Validation{Scope: "leave"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "custom leave" {
		t.Fatalf("expected override, got %q", got)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "variants.tpl"), []byte(`disk {{ key }}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	engine = newEngine(t, WithBaseDir(dir))
	got, err = engine.Render(TemplateVariants, Variants{Key: "k"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "disk k" {
		t.Fatalf("expected disk override, got %q", got)
	}
	if _, err := engine.Render(TemplateFilters, Filters{Text: "fallback"}); err != nil {
		t.Fatalf("bundled templates should remain reachable: %v", err)
	}
}

func TestRender_MissingTemplate(t *testing.T) {
	if _, err := newEngine(t).Render("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestStatus(t *testing.T) {
	cases := []struct {
		key   string
		text  string
		state StatusState
	}{
		{key: "01", text: "New", state: StateInformation},
		{key: "02", text: "Approved", state: StateSuccess},
		{key: "03", text: "Rejected", state: StateError},
		{key: "99", text: "99", state: StateNone},
	}
	for _, tc := range cases {
		if got := StatusText(tc.key); got != tc.text {
			t.Fatalf("StatusText(%q) = %q, want %q", tc.key, got, tc.text)
		}
		if got := StatusStateFor(tc.key); got != tc.state {
			t.Fatalf("StatusStateFor(%q) = %q, want %q", tc.key, got, tc.state)
		}
	}
}
