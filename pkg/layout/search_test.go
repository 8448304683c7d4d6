package layout_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formguard/pkg/layout"
	"github.com/goliatone/go-formguard/pkg/model"
)

func TestSearchOptions(t *testing.T) {
	options := []model.Option{
		{Key: "SICK", Text: "Sick leave"},
		{Key: "VAC", Text: "Vacation"},
		{Key: "UNP", Text: "Unpaid vacation"},
		{Key: "TRN", Text: "Training"},
	}

	cases := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{name: "empty query keeps order", query: "", limit: 2, want: []string{"SICK", "VAC"}},
		{name: "prefix first", query: "vac", want: []string{"VAC", "UNP"}},
		{name: "key match", query: "trn", want: []string{"TRN"}},
		{name: "text contains", query: "leave", want: []string{"SICK"}},
		{name: "limit", query: "a", limit: 2, want: []string{"SICK", "TRN"}},
		{name: "no match", query: "zzz", want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := []string{}
			for _, option := range layout.SearchOptions(options, tc.query, tc.limit) {
				got = append(got, option.Key)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
