// Package expr implements the visibleWhen rule language.
//
// Supported forms:
//   - truthiness: `timeSlot`, `!reason`
//   - comparisons: `leaveType == "VAC"`, `status != "03"`, `days == 3`
//   - membership: `leaveType in ("VAC", "SICK")`
//   - composition: `a == true && (b || !c)`
//
// Bare words on the right-hand side are read as strings, so
// `leaveType == VAC` is accepted. Comparisons against list values match when
// any element matches. `null` matches empty values.
package expr

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-formguard/pkg/visibility"
)

// Expr is a compiled rule.
type Expr interface {
	Match(ctx visibility.Context) bool
}

// Evaluator compiles rules once and caches them by source text.
type Evaluator struct {
	mu    sync.RWMutex
	cache map[string]Expr
}

// New returns an Evaluator with an empty rule cache.
func New() *Evaluator {
	return &Evaluator{cache: map[string]Expr{}}
}

// Eval compiles (or reuses) rule and matches it against ctx. An empty rule
// is always visible.
func (e *Evaluator) Eval(fieldID, rule string, ctx visibility.Context) (bool, error) {
	compiled, err := e.compile(rule)
	if err != nil {
		return false, fmt.Errorf("expr: field %s: %w", fieldID, err)
	}
	return compiled.Match(ctx), nil
}

func (e *Evaluator) compile(rule string) (Expr, error) {
	key := strings.TrimSpace(rule)
	e.mu.RLock()
	compiled, ok := e.cache[key]
	e.mu.RUnlock()
	if ok {
		return compiled, nil
	}

	compiled, err := Compile(key)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.cache[key] = compiled
	e.mu.Unlock()
	return compiled, nil
}

// Compile parses rule into an Expr.
func Compile(rule string) (Expr, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return always{}, nil
	}
	tokens, err := lex(rule)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	node, err := p.or()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q after expression", tok.text)
	}
	return node, nil
}

type always struct{}

func (always) Match(visibility.Context) bool { return true }

type anyOf struct {
	left, right Expr
}

func (n anyOf) Match(ctx visibility.Context) bool {
	return n.left.Match(ctx) || n.right.Match(ctx)
}

type allOf struct {
	left, right Expr
}

func (n allOf) Match(ctx visibility.Context) bool {
	return n.left.Match(ctx) && n.right.Match(ctx)
}

type not struct {
	inner Expr
}

func (n not) Match(ctx visibility.Context) bool {
	return !n.inner.Match(ctx)
}

type truthy struct {
	ident string
}

func (n truthy) Match(ctx visibility.Context) bool {
	for _, item := range lookup(ctx, n.ident) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if flag, err := strconv.ParseBool(item); err == nil && !flag {
			continue
		}
		return true
	}
	return false
}

type compare struct {
	ident  string
	negate bool
	lits   []literal
}

func (n compare) Match(ctx visibility.Context) bool {
	got := lookup(ctx, n.ident)
	matched := false
	for _, lit := range n.lits {
		if lit.matches(got) {
			matched = true
			break
		}
	}
	return matched != n.negate
}

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBool
	litNull
)

type literal struct {
	kind literalKind
	text string
	num  float64
	flag bool
}

func (l literal) matches(values []string) bool {
	if l.kind == litNull {
		for _, item := range values {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	}
	for _, item := range values {
		switch l.kind {
		case litBool:
			if flag, err := strconv.ParseBool(strings.TrimSpace(item)); err == nil && flag == l.flag {
				return true
			}
		case litNumber:
			if num, err := strconv.ParseFloat(strings.TrimSpace(item), 64); err == nil && num == l.num {
				return true
			}
		default:
			if item == l.text {
				return true
			}
		}
	}
	return false
}

// lookup resolves ident to the string form of its value. Field values are a
// string or a []string; extras may hold any plain data and nested maps.
func lookup(ctx visibility.Context, ident string) []string {
	ident = strings.TrimSpace(ident)
	if rest, ok := cutPrefixFold(ident, "extras."); ok {
		value, found := lookupPath(ctx.Extras, rest)
		if !found {
			return nil
		}
		return stringsOf(value)
	}
	value, ok := ctx.Values[ident]
	if !ok {
		return nil
	}
	return stringsOf(value)
}

func lookupPath(values map[string]any, path string) (any, bool) {
	if value, ok := values[path]; ok {
		return value, true
	}
	var current any = values
	for _, part := range strings.Split(path, ".") {
		typed, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = typed[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

func stringsOf(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		return []string{typed}
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, stringsOf(item)...)
		}
		return out
	case bool:
		return []string{strconv.FormatBool(typed)}
	default:
		return []string{fmt.Sprint(typed)}
	}
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
