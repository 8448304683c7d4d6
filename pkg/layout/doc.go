// Package layout loads scope definitions from JSON/YAML layout files or from
// an OpenAPI component schema and builds them into scopes of attached fields.
// Master data rows can be installed as choice options with ApplyValueHelp.
package layout
