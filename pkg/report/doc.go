// Package report renders validation results, filter snapshots and variant
// lists as plain text through pongo2 templates. The bundled templates can be
// overridden per name with WithBaseDir or WithFS.
package report
