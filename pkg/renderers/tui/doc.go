// Package tui edits a form session from the terminal. Each visible field is
// prompted according to its kind through a PromptDriver (survey by default)
// and every answer is validated by the session before the next prompt.
package tui
