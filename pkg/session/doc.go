// Package session drives one editing session over a form scope: field change
// events run the validator, the session-owned message store is summarised and
// pushed to a single summary control, and Submit re-checks validity right
// before calling the remote data access collaborator.
package session
