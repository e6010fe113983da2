package check

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marqlang/marq/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, c *Checker, id string) *Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		result, ok := c.Get(id)
		if ok && (result.Status == StatusCompleted || result.Status == StatusFailed) {
			return result
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("check %s did not finish", id)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckSourceClean(t *testing.T) {
	assert.Nil(t, CheckSource("div class=\"x\"\n  span -- hi\n"))
}

func TestCheckSourceReportsLocation(t *testing.T) {
	diags := CheckSource("div\n</span>\n")
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, scan.ErrExtraClosingTag, d.Code)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, 1, d.Column)
}

func TestCheckSourceHTMLMode(t *testing.T) {
	assert.Nil(t, CheckSource("<div>${x}</div>", scan.WithHTMLMode()))
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.marq", "div -- ok\n")
	bad := writeFile(t, dir, "bad.marq", "div\n  span\n </div>\n")

	c := New()
	id := c.Submit(Request{Files: []string{good, bad}})
	result := waitFor(t, c, id)

	require.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, 2, result.Progress)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 100, result.ProgressPercent())
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, bad, result.Diagnostics[0].File)
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.marq", "div -- a\n")
	writeFile(t, dir, "b.html", "<div>")
	writeFile(t, dir, "notes.txt", "not a template")

	c := New()
	id := c.Submit(Request{Path: dir})
	result := waitFor(t, c, id)

	require.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, 2, result.Total, "txt files are skipped")
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, scan.ErrMissingEndTag, result.Diagnostics[0].Code)
}

func TestCheckMissingFileFails(t *testing.T) {
	c := New()
	id := c.Submit(Request{Files: []string{"/does/not/exist.marq"}})
	result := waitFor(t, c, id)

	require.Equal(t, StatusFailed, result.Status)
	assert.NotEmpty(t, result.Error)
}

func TestCheckEmptyRequestFails(t *testing.T) {
	c := New()
	result := waitFor(t, c, c.Submit(Request{}))
	assert.Equal(t, StatusFailed, result.Status)
}

func TestAllDiagnostics(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.marq", "</div>\n")
	second := writeFile(t, dir, "b.marq", "div\n</span>\n")

	c := New()
	waitFor(t, c, c.Submit(Request{Files: []string{second}}))
	waitFor(t, c, c.Submit(Request{Files: []string{first}}))

	all := c.AllDiagnostics()
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0].File, "sorted by file")
	assert.Equal(t, second, all[1].File)
}

func TestCheckFilesSync(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "a.marq", "</div>\n")
	good := writeFile(t, dir, "b.marq", "div -- ok\n")

	diags, errs := CheckFiles([]string{good, bad}, 2)
	require.Empty(t, errs)
	require.Len(t, diags, 1)
	assert.Equal(t, bad, diags[0].File)
}

func TestCheckDirectorySync(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.marq", "div\n</span>\n")
	writeFile(t, dir, "a.marq", "</div>\n")
	writeFile(t, dir, "skip.go", "package skip")

	diags, errs := CheckFiles(nil, 1)
	assert.Empty(t, diags)
	assert.Empty(t, errs)

	diags, errs = CheckDirectory(dir, 4)
	require.Empty(t, errs)
	require.Len(t, diags, 2)
	assert.True(t, diags[0].File < diags[1].File, "sorted by file: %v", diags)
}

func TestGetReturnsSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.marq", "div -- x\n")

	c := New()
	id := c.Submit(Request{Files: []string{path}})
	result := waitFor(t, c, id)
	result.Status = "tampered"

	again, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, again.Status)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{File: "x.marq", Line: 3, Column: 7, Code: "BAD_INDENTATION", Message: "inconsistent indentation"}
	assert.Equal(t, "x.marq:3:7: BAD_INDENTATION: inconsistent indentation", d.String())
}

func TestList(t *testing.T) {
	c := New()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.marq", "div -- x\n")
	waitFor(t, c, c.Submit(Request{Files: []string{path}}))
	waitFor(t, c, c.Submit(Request{Files: []string{path}}))
	assert.Len(t, c.List(), 2)
}
