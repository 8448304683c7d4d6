package validation

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formguard/pkg/model"
)

// Built-in rule identifiers, reported in Outcome.RuleID and Message.RuleID.
const (
	RuleRequired     = "required"
	RuleFormat       = "format"
	RulePastDate     = "past-date"
	RulePairOrder    = "pair-order"
	RuleTypeMetadata = "type-metadata"
)

// Built-in rule priorities. Higher priority runs first; the first failing
// rule stops evaluation for the field.
const (
	PriorityRequired     = 500
	PriorityFormat       = 400
	PriorityPastDate     = 300
	PriorityPairOrder    = 200
	PriorityTypeMetadata = 100
)

// Input is the state a rule inspects. Counterpart is nil when the field has
// no resolvable pair partner.
type Input struct {
	Field       *model.Field
	Value       model.Value
	Counterpart *model.Field
}

// Check returns the failure text when the rule rejects the input.
type Check func(in Input) (text string, failed bool)

// Rule is one entry in the kind-dispatch table. Rules with no kinds apply to
// every kind.
type Rule struct {
	ID       string
	Priority int
	Kinds    []model.FieldKind
	Check    Check
}

type entry struct {
	rule  Rule
	order int
}

// ruleTable orders rules by priority, breaking ties by registration order.
type ruleTable struct {
	mu    sync.RWMutex
	rules []entry
}

func (t *ruleTable) register(rule Rule) {
	if t == nil || rule.Check == nil {
		return
	}
	rule.ID = strings.TrimSpace(rule.ID)
	if rule.ID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rules = append(t.rules, entry{rule: rule, order: len(t.rules)})
}

// forKind returns the rules that apply to kind in evaluation order.
func (t *ruleTable) forKind(kind model.FieldKind) []Rule {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	matched := make([]entry, 0, len(t.rules))
	for _, candidate := range t.rules {
		if appliesTo(candidate.rule, kind) {
			matched = append(matched, candidate)
		}
	}
	t.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].rule.Priority == matched[j].rule.Priority {
			return matched[i].order < matched[j].order
		}
		return matched[i].rule.Priority > matched[j].rule.Priority
	})

	rules := make([]Rule, len(matched))
	for idx, candidate := range matched {
		rules[idx] = candidate.rule
	}
	return rules
}

func appliesTo(rule Rule, kind model.FieldKind) bool {
	if len(rule.Kinds) == 0 {
		return true
	}
	for _, candidate := range rule.Kinds {
		if candidate == kind {
			return true
		}
	}
	return false
}
