// Package model defines the editable field model shared by the scope
// registry, the validator and the filter snapshot codec. A Field carries its
// structural metadata (kind, group, semantic name, required/visible flags,
// choice options and an optional typed Converter) as exported fields while the
// current value is only reachable through accessors so list kinds (MultiText,
// MultiChoice) and scalar kinds always observe a value of the right shape.
// Value encodes to JSON as either a string or an array of strings, which is
// the wire shape used by saved filter variants.
package model
