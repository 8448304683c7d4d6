package message

import "strconv"

// Summary is the severity/count/icon triple shown by the single summary
// control.
type Summary struct {
	Severity  Severity `json:"severity"`
	Count     int      `json:"count"`
	CountText string   `json:"countText"`
	Icon      string   `json:"icon"`
}

// SummaryControl receives recomputed summaries. Exactly one control is
// driven per editing session.
type SummaryControl interface {
	SetSummary(Summary)
}

// SummaryControlFunc adapts a function into a SummaryControl.
type SummaryControlFunc func(Summary)

// SetSummary delegates to the underlying function.
func (fn SummaryControlFunc) SetSummary(summary Summary) {
	fn(summary)
}

// OverallSeverity returns the highest severity present in messages. Ties are
// resolved by severity order, never by recency.
func OverallSeverity(messages []Message) Severity {
	highest := SeverityNone
	for _, msg := range messages {
		if msg.Severity > highest {
			highest = msg.Severity
		}
	}
	return highest
}

// CountAtSeverity counts messages with exactly the given severity.
func CountAtSeverity(messages []Message, severity Severity) int {
	count := 0
	for _, msg := range messages {
		if msg.Severity == severity {
			count++
		}
	}
	return count
}

// CountText renders a badge count; zero renders as an empty string so the
// control shows no badge.
func CountText(count int) string {
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}

// IconFor picks the icon for the highest severity present, falling back to
// the information icon for an empty or severity-less set.
func IconFor(messages []Message, icons IconSet) string {
	return icons.normalised().forSeverity(OverallSeverity(messages))
}

// Summarize computes severity, count and icon in one scan of messages.
func Summarize(messages []Message, icons IconSet) Summary {
	highest := SeverityNone
	count := 0
	for _, msg := range messages {
		switch {
		case msg.Severity > highest:
			highest = msg.Severity
			count = 1
		case msg.Severity == highest:
			count++
		}
	}
	if highest == SeverityNone {
		count = 0
	}
	return Summary{
		Severity:  highest,
		Count:     count,
		CountText: CountText(count),
		Icon:      icons.normalised().forSeverity(highest),
	}
}
