package snapshot

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/scope"
)

func filterBar(t *testing.T) *scope.Scope {
	t.Helper()
	sc := scope.New("filters", scope.KindFilterBar)

	requester := model.NewField("requester", "requester", model.KindText)
	requester.GroupID = "basic"
	requester.Label = "Requester"

	leaveType := model.NewField("leaveType", "leaveType", model.KindSingleChoice)
	leaveType.GroupID = "basic"
	leaveType.Label = "Leave Type"

	status := model.NewField("status", "status", model.KindMultiChoice)
	status.GroupID = "state"
	status.Label = "Status"

	from := model.NewField("from", "from", model.KindDate)
	from.GroupID = "dates"
	from.Label = "From"

	for _, field := range []*model.Field{requester, leaveType, status, from} {
		if err := sc.Attach(field); err != nil {
			t.Fatalf("attach %s: %v", field.ID, err)
		}
	}
	return sc
}

func mustField(t *testing.T, sc *scope.Scope, id string) *model.Field {
	t.Helper()
	field, ok := sc.Field(id)
	if !ok {
		t.Fatalf("field %s not found", id)
	}
	return field
}

func TestCapture_OrderAndShape(t *testing.T) {
	sc := filterBar(t)
	mustField(t, sc, "leaveType").SetScalar("VAC")
	mustField(t, sc, "status").SetList([]string{"01", "02"})

	want := Snapshot{
		{GroupName: "basic", FieldName: "requester", Value: model.Scalar("")},
		{GroupName: "basic", FieldName: "leaveType", Value: model.Scalar("VAC")},
		{GroupName: "state", FieldName: "status", Value: model.List("01", "02")},
		{GroupName: "dates", FieldName: "from", Value: model.Scalar("")},
	}
	if diff := cmp.Diff(want, Capture(sc)); diff != "" {
		t.Fatalf("capture mismatch (-want +got):\n%s", diff)
	}
}

func TestRestoreCapture_IsNoOp(t *testing.T) {
	sc := filterBar(t)
	mustField(t, sc, "requester").SetScalar("ada")
	mustField(t, sc, "status").SetList([]string{"03"})
	mustField(t, sc, "from").SetScalar("2025-01-05")

	before := Capture(sc)
	report := Restore(before, sc)
	if !report.Complete() {
		t.Fatalf("expected complete restore, skipped=%v", report.Skipped)
	}
	if diff := cmp.Diff(before, Capture(sc)); diff != "" {
		t.Fatalf("restore changed values (-want +got):\n%s", diff)
	}
}

func TestRestoreCapture_UnnamedFields(t *testing.T) {
	sc := scope.New("filters", scope.KindFilterBar)
	for _, id := range []string{"a", "b"} {
		if err := sc.Attach(model.NewField(id, "", model.KindText)); err != nil {
			t.Fatalf("attach %s: %v", id, err)
		}
	}
	mustField(t, sc, "a").SetScalar("one")
	mustField(t, sc, "b").SetScalar("two")

	snap := Capture(sc)
	mustField(t, sc, "a").SetScalar("x")
	mustField(t, sc, "b").SetScalar("y")

	if report := Restore(snap, sc); !report.Complete() {
		t.Fatalf("expected complete restore, skipped=%v", report.Skipped)
	}
	got := map[string]string{
		"a": mustField(t, sc, "a").Scalar(),
		"b": mustField(t, sc, "b").Scalar(),
	}
	if diff := cmp.Diff(map[string]string{"a": "one", "b": "two"}, got); diff != "" {
		t.Fatalf("restored values mismatch (-want +got):\n%s", diff)
	}
}

func TestRestore_RoundTripIntoFreshScope(t *testing.T) {
	source := filterBar(t)
	mustField(t, source, "leaveType").SetScalar("SICK")
	mustField(t, source, "status").SetList([]string{"01", "03"})

	raw, err := Marshal(Capture(source))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	target := filterBar(t)
	Restore(decoded, target)
	if diff := cmp.Diff(Capture(source), Capture(target)); diff != "" {
		t.Fatalf("fresh scope mismatch (-want +got):\n%s", diff)
	}
}

func TestRestore_MissingFieldIsSkipped(t *testing.T) {
	sc := filterBar(t)
	mustField(t, sc, "requester").SetScalar("keep me")

	snap := Snapshot{
		{GroupName: "basic", FieldName: "removedField", Value: model.Scalar("x")},
		{GroupName: "basic", FieldName: "leaveType", Value: model.Scalar("VAC")},
	}
	report := Restore(snap, sc)

	if diff := cmp.Diff([]string{"leaveType"}, report.Applied); diff != "" {
		t.Fatalf("applied mismatch (-want +got):\n%s", diff)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].FieldName != "removedField" {
		t.Fatalf("expected removedField to be skipped, got %+v", report.Skipped)
	}
	if got := mustField(t, sc, "leaveType").Scalar(); got != "VAC" {
		t.Fatalf("remaining criteria must still apply, got %q", got)
	}
	if got := mustField(t, sc, "requester").Scalar(); got != "keep me" {
		t.Fatalf("fields absent from the snapshot keep their value, got %q", got)
	}
}

func TestRestore_CoercesShape(t *testing.T) {
	sc := filterBar(t)
	snap := Snapshot{
		{GroupName: "state", FieldName: "status", Value: model.Scalar("02")},
		{GroupName: "basic", FieldName: "leaveType", Value: model.List("VAC", "SICK")},
	}
	Restore(snap, sc)

	if diff := cmp.Diff([]string{"02"}, mustField(t, sc, "status").List()); diff != "" {
		t.Fatalf("scalar into list kind (-want +got):\n%s", diff)
	}
	if got := mustField(t, sc, "leaveType").Scalar(); got != "VAC" {
		t.Fatalf("list into scalar kind should keep first element, got %q", got)
	}
}

func TestUnmarshal_WireFormat(t *testing.T) {
	raw := []byte(`[
		{"groupName":"basic","fieldName":"requester","value":"ada"},
		{"groupName":"state","fieldName":"status","fieldData":["01","02"]},
		{"groupName":"dates","fieldName":"from","value":null}
	]`)
	got, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Snapshot{
		{GroupName: "basic", FieldName: "requester", Value: model.Scalar("ada")},
		{GroupName: "state", FieldName: "status", Value: model.List("01", "02")},
		{GroupName: "dates", FieldName: "from", Value: model.Scalar("")},
	}
	if !want.Equal(got) {
		t.Fatalf("wire decode mismatch: %s", cmp.Diff(want, got))
	}

	if empty, err := Unmarshal(nil); err != nil || len(empty) != 0 {
		t.Fatalf("empty payload should decode to empty snapshot, got %v, %v", empty, err)
	}
	if _, err := Unmarshal([]byte(`{"not":"a list"}`)); err == nil {
		t.Fatalf("expected error for non-list payload")
	}
}

func TestMarshal_Nil(t *testing.T) {
	raw, err := Marshal(nil)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty array, got %s", raw)
	}
}

func TestLabelsAndQuery(t *testing.T) {
	sc := filterBar(t)
	if got := Text(sc); got != "Filtered By: None" {
		t.Fatalf("unexpected empty label %q", got)
	}
	if got := ExpandedText(sc); got != "No filters active" {
		t.Fatalf("unexpected empty expanded label %q", got)
	}

	mustField(t, sc, "leaveType").SetScalar("VAC")
	if got := ExpandedText(sc); got != "1 filter active" {
		t.Fatalf("unexpected single expanded label %q", got)
	}

	mustField(t, sc, "status").SetList([]string{"01"})
	hidden := mustField(t, sc, "requester")
	hidden.SetScalar("ada")
	hidden.Visible = false

	if got := Text(sc); got != "Filtered By (2): Leave Type, Status" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := ExpandedText(sc); got != "2 filters active" {
		t.Fatalf("unexpected expanded label %q", got)
	}

	want := map[string]any{
		"leaveType": "VAC",
		"status":    []string{"01"},
	}
	if diff := cmp.Diff(want, Query(sc)); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
}
