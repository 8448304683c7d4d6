// Package validation evaluates scope fields against a priority-ordered rule
// table keyed by field kind: required, format, past-date, pair-order and the
// converter attached to the field. Only the highest-priority failing rule
// produces a message, and the result replaces whatever the message store held
// for the field's target.
//
// Date fields that form a start/end pair are validated symmetrically:
// validating either member re-validates the other once.
package validation
