// Package message stores target-addressed validation messages and reduces
// them to the severity/count/icon summary consumed by a single summary
// control. A Store keeps at most one message per target, so re-validating a
// field replaces its message instead of accumulating duplicates. Summaries are
// computed from one consistent snapshot of the store.
package message
