package layout

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formguard/pkg/model"
)

const (
	// DefaultSearchLimit applies when a search passes no positive limit.
	DefaultSearchLimit = 50
	// MaxSearchLimit caps any requested limit.
	MaxSearchLimit = 200
)

// SearchOptions returns the options whose key or text contains query, case
// insensitively. Prefix matches sort first, then by text. An empty query
// returns the first options in declaration order.
func SearchOptions(options []model.Option, query string, limit int) []model.Option {
	limit = clampLimit(limit)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if len(options) > limit {
			options = options[:limit]
		}
		return append([]model.Option{}, options...)
	}

	matches := make([]matchedOption, 0, len(options))
	for _, option := range options {
		key := strings.ToLower(option.Key)
		text := strings.ToLower(option.Text)
		if !strings.Contains(key, query) && !strings.Contains(text, query) {
			continue
		}
		matches = append(matches, matchedOption{
			option:   option,
			isPrefix: strings.HasPrefix(key, query) || strings.HasPrefix(text, query),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].label() < matches[j].label()
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]model.Option, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.option)
	}
	return out
}

type matchedOption struct {
	option   model.Option
	isPrefix bool
}

func (m matchedOption) label() string {
	if m.option.Text != "" {
		return m.option.Text
	}
	return m.option.Key
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}
