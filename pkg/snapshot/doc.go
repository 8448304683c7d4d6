// Package snapshot captures the values of a filter scope as an ordered list of
// criteria and restores them by group and field name. Snapshots are the
// payload stored by named variants.
package snapshot
