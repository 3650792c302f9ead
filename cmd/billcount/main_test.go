package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

func testdata(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "internal", "application", "service", "testdata", name))
	require.NoError(t, err)
	return path
}

// run executes the CLI in a scratch directory with reports written under it.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr, _, err := runApp(t, "", args...)
	return stdout, stderr, err
}

// runApp is run with an explicit output directory that also returns the app.
func runApp(t *testing.T, outputDir string, args ...string) (string, string, *app, error) {
	t.Helper()
	dir := t.TempDir()
	if outputDir == "" {
		outputDir = filepath.Join(dir, "reports")
	}
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("report:\n  output_dir: "+outputDir+"\nlogger:\n  level: error\n"), 0o644))
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	a := newApp()
	a.root.SetOut(&stdout)
	a.root.SetErr(&stderr)
	a.root.SetArgs(append([]string{"--config", cfg}, args...))

	err := a.execute(context.Background())
	return stdout.String(), stderr.String(), a, err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Bill Counting Tool")
	assert.Contains(t, out, "Version:    dev")
}

func TestAnalyze_Text(t *testing.T) {
	out, stderr, err := run(t, "analyze",
		testdata(t, "compilation_sheet.xml"),
		testdata(t, "authorization_register.xml"),
		"--tokens", "--table", "--report",
		"--returned", "cddo-normal=1")
	require.NoError(t, err)

	assert.Contains(t, out, "NCDDO Analysis (Lucknow)")
	assert.Contains(t, out, "CDDO Analysis (Outer)")
	assert.Contains(t, out, "Gem(Outer)")
	assert.Contains(t, out, "33.33%")
	assert.Contains(t, out, "Token numbers")
	assert.Contains(t, out, "Type of Bills")
	assert.Contains(t, stderr, "Daily_Status_Report_05-03-2025.pdf")
	assert.FileExists(t, filepath.Join("reports", "Daily_Status_Report_05-03-2025.pdf"))
}

func TestAnalyze_JSON(t *testing.T) {
	out, _, err := run(t, "-o", "json", "analyze",
		testdata(t, "authorization_register.xml"),
		testdata(t, "compilation_sheet.xml"))
	require.NoError(t, err)

	var doc summary.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.NotNil(t, doc.View)
	assert.Equal(t, "05/03/2025", doc.View.ReportDate)
	assert.Equal(t, "33.33%", doc.View.Percentage)
	assert.Len(t, doc.View.Cards, 2)
	assert.Nil(t, doc.Table)
}

func TestAnalyze_JSONWithTable(t *testing.T) {
	out, _, err := run(t, "-o", "json", "analyze",
		testdata(t, "authorization_register.xml"),
		testdata(t, "compilation_sheet.xml"),
		"--table", "--passed", "ncddo-normal=3")
	require.NoError(t, err)

	var doc summary.Document
	dec := json.NewDecoder(strings.NewReader(out))
	require.NoError(t, dec.Decode(&doc))
	assert.False(t, dec.More(), "stdout holds a single JSON document")

	require.NotNil(t, doc.View)
	require.NotNil(t, doc.Table)
	assert.Equal(t, "33.33%", doc.View.Percentage)
	assert.Equal(t, 3, doc.Table.Rows[2].Passed)
	assert.Equal(t, "20.00%", doc.Table.Percentage)
}

func TestAnalyze_ClosesContainerOnFailure(t *testing.T) {
	_, _, a, err := runApp(t, "", "analyze",
		testdata(t, "authorization_register.xml"),
		testdata(t, "authorization_register.xml"))
	require.Error(t, err)

	require.NotNil(t, a.container)
	assert.False(t, a.container.Ready())
	assert.ErrorContains(t, a.container.Start(context.Background()), "closed")
}

func TestDoctor(t *testing.T) {
	out, _, _, err := runApp(t, "", "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "events")
	assert.Contains(t, out, "session")
	assert.Contains(t, out, "storage")
	assert.NotContains(t, out, "FAIL")

	blocked := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	out, _, a, err := runApp(t, blocked, "-o", "json", "doctor")
	assert.ErrorIs(t, err, errUnhealthy)

	var health struct {
		Overall    bool `json:"overall"`
		Components map[string]struct {
			Healthy bool `json:"healthy"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &health))
	assert.False(t, health.Overall)
	assert.False(t, health.Components["storage"].Healthy)
	assert.True(t, health.Components["session"].Healthy)
	assert.False(t, a.container.Ready())
}

func TestAnalyze_Errors(t *testing.T) {
	_, _, err := run(t, "analyze", "a.txt", "b.xml")
	assert.Error(t, err)

	_, _, err = run(t, "analyze", testdata(t, "authorization_register.xml"))
	assert.Error(t, err)

	_, _, err = run(t, "-o", "csv", "analyze",
		testdata(t, "authorization_register.xml"),
		testdata(t, "compilation_sheet.xml"))
	assert.Error(t, err)
}

func TestCount_OfficeFilter(t *testing.T) {
	out, _, err := run(t, "-o", "yaml", "count", testdata(t, "sanction_detail.xml"), "--office", "C400")
	require.NoError(t, err)

	assert.Contains(t, out, "percentage: 0.00%")
	assert.Contains(t, out, "CDDO Analysis (Outer)")
	assert.NotContains(t, out, "NCDDO Analysis")
}

func TestCount_UnknownBucketKey(t *testing.T) {
	_, _, err := run(t, "count", testdata(t, "sanction_detail.xml"), "--table", "--passed", "ncddo=3")
	assert.ErrorContains(t, err, "unknown bucket")
}

func TestManual(t *testing.T) {
	out, stderr, err := run(t, "manual",
		"--date", "05/03/2025",
		"--percentage", "75",
		"--passed", "ncddo-ebill=3,ncddo-normal=1",
		"--remarks", "ncddo-normal=Gpf- 1 Bill")
	require.NoError(t, err)

	assert.Contains(t, out, "Date: 05/03/2025")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "Gpf- 1 Bill")
	assert.Contains(t, stderr, "Report saved:")
	assert.FileExists(t, filepath.Join("reports", "Daily_Status_Report_05-03-2025.pdf"))
}

func TestManualInput(t *testing.T) {
	in, err := manualInput("", "", map[string]string{"cddo-normal": "4"}, map[string]string{"CDDO-EBILL": "2"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "4", in.Rows[3].Passed)
	assert.Equal(t, "2", in.Rows[1].Returned)
	assert.Empty(t, in.Rows[0].Passed)

	_, err = manualInput("", "", nil, nil, map[string]string{"all": "x"})
	assert.Error(t, err)
}
