// Package formguard validates form and filter scopes, keeps their messages in
// a per-session store, and snapshots filter values into named variants.
//
// The root package wires the layout, session and report packages together
// for the common flows: load layouts, build a scope, apply plain values and
// open a session over it.
package formguard
