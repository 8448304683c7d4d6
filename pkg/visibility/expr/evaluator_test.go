package expr

import (
	"testing"

	"github.com/goliatone/go-formguard/pkg/visibility"
)

func TestEvaluator_Rules(t *testing.T) {
	t.Parallel()

	ctx := visibility.Context{
		Values: map[string]any{
			"leaveType": "VAC",
			"status":    []string{"01", "03"},
			"halfDay":   "true",
			"days":      "3",
			"reason":    "",
			"createdBy": []string{},
		},
		Extras: map[string]any{
			"role": "manager",
			"user": map[string]any{"admin": true},
		},
	}

	cases := []struct {
		rule string
		want bool
	}{
		{rule: "", want: true},
		{rule: `leaveType == "VAC"`, want: true},
		{rule: `leaveType == VAC`, want: true},
		{rule: `leaveType != "VAC"`, want: false},
		{rule: `leaveType in ("SICK", "VAC")`, want: true},
		{rule: `leaveType in ("SICK")`, want: false},
		{rule: `status == "03"`, want: true},
		{rule: `status != "02"`, want: true},
		{rule: `halfDay == true`, want: true},
		{rule: `halfDay`, want: true},
		{rule: `!reason`, want: true},
		{rule: `reason == null`, want: true},
		{rule: `createdBy == null`, want: true},
		{rule: `missing == null`, want: true},
		{rule: `missing`, want: false},
		{rule: `days == 3`, want: true},
		{rule: `days == 4`, want: false},
		{rule: `extras.role == "manager"`, want: true},
		{rule: `extras.user.admin == true`, want: true},
		{rule: `leaveType == "SICK" || (halfDay && extras.role == manager)`, want: true},
		{rule: `leaveType == "VAC" && !halfDay`, want: false},
	}
	eval := New()
	for _, tc := range cases {
		got, err := eval.Eval("reason", tc.rule, ctx)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q) = %v, want %v", tc.rule, got, tc.want)
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	for _, rule := range []string{
		`leaveType = "VAC"`,
		`leaveType ==`,
		`leaveType & halfDay`,
		`(leaveType == "VAC"`,
		`leaveType in "VAC"`,
		`leaveType in ("VAC"`,
		`"VAC"`,
		`leaveType == "VAC" halfDay`,
		`leaveType == 'VAC'`,
	} {
		if _, err := Compile(rule); err == nil {
			t.Fatalf("Compile(%q) expected error", rule)
		}
	}
}

func TestEvaluator_CachesCompiledRules(t *testing.T) {
	t.Parallel()

	eval := New()
	ctx := visibility.Context{Values: map[string]any{"a": "x"}}
	for i := 0; i < 3; i++ {
		if ok, err := eval.Eval("b", ` a == "x" `, ctx); err != nil || !ok {
			t.Fatalf("Eval = %v, %v", ok, err)
		}
	}
	if len(eval.cache) != 1 {
		t.Fatalf("expected one cached rule, got %d", len(eval.cache))
	}
	if _, err := eval.Eval("b", "a ==", ctx); err == nil {
		t.Fatalf("expected compile error")
	}
}
