package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
)

func runReportCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUDIT_DB_ENABLED", "false")

	var out bytes.Buffer
	cmd := reportCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportCommandCSV(t *testing.T) {
	out, err := runReportCmd(t, "inventory", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "totalValue,406600")
	assert.Contains(t, out, "prd_002,Ofis Sandalyesi")
}

func TestReportCommandJSON(t *testing.T) {
	out, err := runReportCmd(t, "expenses", "--from", "2024-01-15", "--to", "2024-01-31")
	require.NoError(t, err)

	var rep service.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, service.ReportExpenses, rep.Kind)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "exp_001", rep.Rows[0][0])
}

func TestReportCommandRejectsBadInput(t *testing.T) {
	_, err := runReportCmd(t, "payroll")
	assert.Error(t, err)

	_, err = runReportCmd(t, "inventory", "--format", "xml")
	assert.Error(t, err)

	_, err = runReportCmd(t, "appointments", "--date", "tomorrow")
	assert.Error(t, err)
}
