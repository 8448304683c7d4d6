package scope

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formguard/pkg/model"
)

func field(id, group, name string, kind model.FieldKind) *model.Field {
	f := model.NewField(id, name, kind)
	f.GroupID = group
	return f
}

func ids(fields []*model.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.ID)
	}
	return out
}

func TestEnumerate_FiltersByGroupAndKind(t *testing.T) {
	sc := New("filters", KindFilterBar)
	sc.MustAttach(
		field("type", "basic", "LeaveType", model.KindMultiChoice),
		field("status", "basic", "Status", model.KindSingleChoice),
		field("from", "dates", "StartDate", model.KindDate),
		field("reason", "basic", "Reason", model.KindText),
		field("to", "dates", "EndDate", model.KindDate),
	)

	if diff := cmp.Diff([]string{"type", "status", "from", "reason", "to"}, ids(sc.Fields())); diff != "" {
		t.Fatalf("attachment order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"type", "status", "reason"}, ids(sc.Enumerate("basic"))); diff != "" {
		t.Fatalf("group filter mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"from", "to"}, ids(sc.Enumerate(AnyGroup, model.KindDate))); diff != "" {
		t.Fatalf("kind filter mismatch (-want +got):\n%s", diff)
	}
	if got := sc.Enumerate("basic", model.KindDate); len(got) != 0 {
		t.Fatalf("expected no fields, got %v", ids(got))
	}

	first := ids(sc.Fields())
	second := ids(sc.Fields())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("enumeration not stable (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"basic", "dates"}, sc.Groups()); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestAttach_Rejections(t *testing.T) {
	sc := New("form", KindForm)
	if err := sc.Attach(field("reason", "main", "Reason", model.KindText)); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if got := sc.Fields()[0].ScopeID; got != "form" {
		t.Fatalf("expected scope id stamped, got %q", got)
	}

	cases := []struct {
		name  string
		field *model.Field
		want  error
	}{
		{name: "nil", field: nil, want: ErrNilField},
		{name: "blank id", field: field(" ", "main", "Other", model.KindText), want: ErrFieldIDMissing},
		{name: "duplicate id", field: field("reason", "main", "Other", model.KindText), want: ErrDuplicateField},
		{name: "duplicate name", field: field("reason2", "main", "Reason", model.KindText), want: ErrDuplicateField},
		{name: "unknown kind", field: field("slider", "main", "Slider", model.FieldKind("slider")), want: ErrUnknownKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := sc.Attach(tc.field)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	if sc.Len() != 1 {
		t.Fatalf("rejected fields must not be attached, len=%d", sc.Len())
	}
}

func TestAttach_BlankNameDefaultsToID(t *testing.T) {
	sc := New("filters", KindFilterBar)
	sc.MustAttach(
		field("a", "g", "", model.KindText),
		field("b", "g", "  ", model.KindText),
	)

	if got, ok := sc.Lookup("g", "b"); !ok || got.ID != "b" || got.Name != "b" {
		t.Fatalf("expected unnamed field to be found by id, got %v %v", got, ok)
	}
	if err := sc.Attach(field("c", "g", "a", model.KindText)); !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected name clash with defaulted name, got %v", err)
	}
}

func TestDetachAndLookup(t *testing.T) {
	sc := New("filters", KindFilterBar)
	sc.MustAttach(
		field("a", "g", "A", model.KindText),
		field("b", "g", "B", model.KindText),
		field("c", "h", "C", model.KindText),
	)

	if got, ok := sc.Lookup("h", "C"); !ok || got.ID != "c" {
		t.Fatalf("lookup failed: %v %v", got, ok)
	}
	if _, ok := sc.Lookup("g", "C"); ok {
		t.Fatalf("lookup must honour the group")
	}

	if !sc.Detach("b") {
		t.Fatalf("expected detach to succeed")
	}
	if sc.Detach("b") {
		t.Fatalf("second detach must report false")
	}
	if diff := cmp.Diff([]string{"a", "c"}, ids(sc.Fields())); diff != "" {
		t.Fatalf("order after detach (-want +got):\n%s", diff)
	}
	if _, ok := sc.Field("b"); ok {
		t.Fatalf("detached field still resolvable")
	}
}

func TestParseKind(t *testing.T) {
	if kind, err := ParseKind("filter-bar"); err != nil || kind != KindFilterBar {
		t.Fatalf("parse filter-bar: %v %v", kind, err)
	}
	if kind, err := ParseKind(""); err != nil || kind != KindForm {
		t.Fatalf("empty kind should default to form: %v %v", kind, err)
	}
	if _, err := ParseKind("table"); err == nil {
		t.Fatalf("expected error for unknown scope kind")
	}
}
