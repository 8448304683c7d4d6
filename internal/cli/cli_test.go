package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formguard/pkg/renderers/tui"
	"github.com/goliatone/go-formguard/pkg/variant"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScopes(t *testing.T) {
	out, err := run(t, "scopes")
	require.NoError(t, err)
	assert.Contains(t, out, "leaveRequest\tform\t6 fields")
	assert.Contains(t, out, "leaveFilters\tfilterbar\t6 fields")
}

func TestValidate_Invalid(t *testing.T) {
	out, err := run(t, "validate", "--scope", "leaveRequest")
	require.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, 2, ExitCode(err))
	assert.Contains(t, out, "leaveRequest: 4 Error [error]")
	assert.Contains(t, out, "leaveRequest/employeeId: Required")
}

func TestValidate_ValidJSON(t *testing.T) {
	values := writeFile(t, "values.yaml", `
employeeId: E1
leaveType: VAC
startDate: "2099-03-01"
endDate: "01.03.2099"
`)
	out, err := run(t, "validate", "--scope", "leaveRequest", "--values", values, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 0, ExitCode(err))

	var result validateResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)
	assert.Equal(t, "E1", result.Record["EmployeeId"])
}

func TestValidate_UnknownScopeAndFormat(t *testing.T) {
	_, err := run(t, "validate", "--scope", "nope")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	_, err = run(t, "scopes", "--format", "xml")
	require.Error(t, err)
}

func TestFilters(t *testing.T) {
	values := writeFile(t, "filters.json", `{"status": ["01", "03"], "requestId": "R-7"}`)
	out, err := run(t, "filters", "--scope", "leaveFilters", "--values", values)
	require.NoError(t, err)
	assert.Contains(t, out, "Filtered By (2): Request, Status")
	assert.Contains(t, out, "state/Status = 01, 03")
}

func TestVariantCommands(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "variants.db")
	values := writeFile(t, "filters.yaml", "status: [\"01\"]\nleaveType: VAC\n")

	out, err := run(t, "variant", "save", "Open", "--key", "leave", "--dsn", dsn,
		"--scope", "leaveFilters", "--values", values, "--default", "--format", "json")
	require.NoError(t, err)
	var saved variant.Variant
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.NotEmpty(t, saved.ID)
	assert.True(t, saved.Default)

	out, err = run(t, "variant", "list", "--key", "leave", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "Variants for leave:")
	assert.Contains(t, out, "* "+saved.ID+"  Open (6 criteria)")

	out, err = run(t, "variant", "apply", "--key", "leave", "--dsn", dsn, "--scope", "leaveFilters")
	require.NoError(t, err)
	assert.Contains(t, out, "Filtered By (2): Leave Type, Status")
	assert.Contains(t, out, "Variant: Open")
	assert.NotContains(t, out, "(modified)")

	out, err = run(t, "variant", "default", "--key", "leave", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "default cleared")

	_, err = run(t, "variant", "apply", "--key", "leave", "--dsn", dsn, "--scope", "leaveFilters")
	require.Error(t, err)
	assert.True(t, variant.IsNotFound(err))

	out, err = run(t, "variant", "delete", saved.ID, "--key", "leave", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+saved.ID)

	out, err = run(t, "variant", "list", "--key", "leave", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
}

func TestLayoutFromOpenAPI(t *testing.T) {
	doc := writeFile(t, "openapi.yaml", `
openapi: 3.0.3
info:
  title: Leave Requests
  version: 1.0.0
paths: {}
components:
  schemas:
    LeaveRequest:
      type: object
      required: [LeaveType]
      properties:
        LeaveType:
          type: string
          enum: [VAC, SICK]
        Reason:
          type: string
          maxLength: 255
`)
	out, err := run(t, "layout", "from-openapi", doc, "--schema", "LeaveRequest", "--scope", "leave")
	require.NoError(t, err)
	assert.Contains(t, out, "id: leave")
	assert.Contains(t, out, "kind: singlechoice")
	assert.Contains(t, out, "maxLength: 255")

	layoutPath := writeFile(t, "leave.yaml", out)
	out, err = run(t, "scopes", "--layout", layoutPath)
	require.NoError(t, err)
	assert.Contains(t, out, "leave\tform\t2 fields")
}

type scriptedDriver struct {
	inputs []string
	pos    int
	infos  []string
}

func (d *scriptedDriver) next() (string, error) {
	if d.pos >= len(d.inputs) {
		return "", errors.New("no input scripted")
	}
	val := d.inputs[d.pos]
	d.pos++
	return val, nil
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	return d.next()
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	val, err := d.next()
	return val == "yes", err
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return 0, errors.New("select not scripted")
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, errors.New("multiselect not scripted")
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return d.next()
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestRunEdit(t *testing.T) {
	a := &app{format: formatText}
	require.NoError(t, a.load(io.Discard))

	// leaveType and timeSlot are selects without options, so they prompt as
	// plain inputs.
	driver := &scriptedDriver{inputs: []string{
		"E1", "VAC", "2099-03-01", "2099-03-05", "AM", "family",
	}}
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	err := a.runEdit(cmd, "leaveRequest", "", driver, 2)
	require.NoError(t, err, "infos: %v", driver.infos)

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "VAC", record["LeaveType"])
	assert.Equal(t, "family", record["Reason"])
	assert.True(t, strings.HasPrefix(driver.infos[len(driver.infos)-1], "i "))
}

func TestOptions(t *testing.T) {
	rows := writeFile(t, "valuehelp.yaml", `
- fieldName: LeaveType
  fieldKey: VAC
  fieldValue: Vacation
- fieldName: LeaveType
  fieldKey: SICK
  fieldValue: Sick leave
`)
	t.Setenv("FORMGUARD_LAYOUT_VALUE_HELP", rows)

	out, err := run(t, "options", "leaveType", "--scope", "leaveRequest", "--query", "sick")
	require.NoError(t, err)
	assert.Equal(t, "SICK\tSick leave\n", out)

	_, err = run(t, "options", "reason", "--scope", "leaveRequest")
	require.Error(t, err)
}

func TestValidate_VisibilityExtrasFromConfig(t *testing.T) {
	layoutPath := writeFile(t, "approval.yaml", `
scopes:
  - id: approval
    kind: form
    fields:
      - id: comment
        name: Comment
        kind: text
      - id: approver
        name: Approver
        kind: text
        required: true
        visibleWhen: extras.role == manager
`)
	cfgPath := writeFile(t, "formguard.yaml", "visibility:\n  extras:\n    role: manager\n")

	out, err := run(t, "validate", "--scope", "approval", "--layout", layoutPath)
	require.NoError(t, err, out)

	out, err = run(t, "validate", "--scope", "approval", "--layout", layoutPath, "--config", cfgPath)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, out, "approval/approver: Required")
}
