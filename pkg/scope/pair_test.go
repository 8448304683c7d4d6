package scope

import (
	"testing"

	"github.com/goliatone/go-formguard/pkg/model"
)

func dateField(id, semantic string) *model.Field {
	f := model.NewField(id, id, model.KindDate)
	f.SemanticName = semantic
	return f
}

func TestFindCounterpart(t *testing.T) {
	start := dateField("startDate", "Start")
	end := dateField("endDate", "end")
	sc := New("leave", KindForm).MustAttach(start, end, dateField("createdAt", ""))

	got, ok := sc.FindCounterpart(start, start.SemanticName)
	if !ok || got != end {
		t.Fatalf("expected end counterpart, got %v (ok=%v)", got, ok)
	}
	got, ok = sc.FindCounterpart(end, end.SemanticName)
	if !ok || got != start {
		t.Fatalf("expected start counterpart, got %v (ok=%v)", got, ok)
	}

	if _, ok := sc.FindCounterpart(start, "created"); ok {
		t.Fatalf("unpaired semantic names must not resolve")
	}
}

func TestFindCounterpart_SingleDateForm(t *testing.T) {
	start := dateField("startDate", "start")
	sc := New("single", KindForm).MustAttach(start)
	if _, ok := sc.FindCounterpart(start, "start"); ok {
		t.Fatalf("single date form has no counterpart")
	}
}

func TestFindCounterpart_AmbiguousResolvesToNone(t *testing.T) {
	start := dateField("startDate", "start")
	sc := New("ambiguous", KindForm).MustAttach(start, dateField("end1", "end"), dateField("end2", "end"))
	if _, ok := sc.FindCounterpart(start, "start"); ok {
		t.Fatalf("ambiguous counterparts must not resolve")
	}
}

func TestPairRole(t *testing.T) {
	cases := map[string]Role{
		"start":      RoleStart,
		"End":        RoleEnd,
		"valid_from": RoleStart,
		"validTo":    RoleEnd,
		"to":         RoleEnd,
	}
	for name, want := range cases {
		got, ok := PairRole(name)
		if !ok || got != want {
			t.Fatalf("role %q: want %s, got %s (ok=%v)", name, want, got, ok)
		}
	}
	if _, ok := PairRole("reason"); ok {
		t.Fatalf("reason is not a paired name")
	}
}
