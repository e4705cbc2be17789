package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/diagfmt"
	"cocomig/internal/driver"
)

const legacy = "import cocotb\n\n\n@cocotb.coroutine\ndef run(dut):\n    yield Timer(1)\n    cocotb.fork(clk(dut))\n"

const migrated = "import cocotb\n\n\nasync def run(dut):\n    await Timer(1)\n    cocotb.start_soon(clk(dut))\n"

// resetFlags restores every flag of the command tree; cobra keeps values
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--color", "off", "--ui", "off"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	code := execute(context.Background())
	return out.String() + errOut.String(), code
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCheckReportsFindings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tb.py", legacy)

	out, code := run(t, "check", dir)
	assert.Equal(t, driver.ExitFindings, code)
	assert.Contains(t, out, "MIG")
	assert.Contains(t, out, "1 file(s) would be migrated")
	assert.Contains(t, out, "Run again with apply")
	assert.NoFileExists(t, filepath.Join(dir, "tb.migrated.py"))
}

func TestCheckCleanTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.py", "async def f():\n    await g()\n")

	out, code := run(t, "check", dir)
	assert.Equal(t, driver.ExitOK, code)
	assert.Contains(t, out, "nothing to migrate")
}

func TestCheckDiff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tb.py", legacy)

	out, code := run(t, "--quiet", "check", "--diff", dir)
	assert.Equal(t, driver.ExitFindings, code)
	assert.Contains(t, out, "-    yield Timer(1)\n")
	assert.Contains(t, out, "+    await Timer(1)\n")
	assert.NotContains(t, out, "would be migrated")
}

func TestCheckJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tb.py", legacy)

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--ui", "off", "check", "--format", "json", dir})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })
	code := execute(context.Background())
	assert.Equal(t, driver.ExitFindings, code)

	var doc diagfmt.ReportJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "check", doc.Mode)
	assert.Equal(t, driver.ExitFindings, doc.ExitCode)
	require.Len(t, doc.Files, 1)
	assert.Len(t, doc.Files[0].Findings, 3)
	assert.Equal(t, 1, doc.Summary.Changed)
}

func TestCheckJSONLocatesParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.py", "def f(:\n")

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--ui", "off", "check", "--format", "json", dir})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })
	code := execute(context.Background())
	assert.Equal(t, driver.ExitFailure, code)

	var doc diagfmt.ReportJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Files, 1)
	f := doc.Files[0]
	assert.NotEmpty(t, f.Error)
	require.NotEmpty(t, f.Diagnostics)
	assert.Equal(t, "error", f.Diagnostics[0].Severity)
	assert.Equal(t, uint32(1), f.Diagnostics[0].Location.StartLine)
}

func TestApplyWritesSibling(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tb.py", legacy)

	out, code := run(t, "apply", dir)
	assert.Equal(t, driver.ExitOK, code)
	assert.Contains(t, out, "tb.migrated.py")
	assert.Contains(t, out, "1 file(s) rewritten, 3 rewrite(s)")

	got, err := os.ReadFile(filepath.Join(dir, "tb.migrated.py"))
	require.NoError(t, err)
	assert.Equal(t, migrated, string(got))
}

func TestApplyInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tb.py", legacy)

	_, code := run(t, "apply", "--inplace", path)
	assert.Equal(t, driver.ExitOK, code)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, migrated, string(got))
}

func TestApplyRejectsConflictingFlags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tb.py", legacy)

	out, code := run(t, "apply", "--inplace", "--suffix", ".v2.py", dir)
	assert.Equal(t, driver.ExitFailure, code)
	assert.Contains(t, out, "mutually exclusive")

	out, code = run(t, "apply", "--suffix", "v2", dir)
	assert.Equal(t, driver.ExitFailure, code)
	assert.Contains(t, out, "--suffix")

	_, code = run(t, "apply", "--format", "sarif", dir)
	assert.Equal(t, driver.ExitFailure, code)
}

func TestParseErrorExitStatus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.py", "def f(:\n")
	writeFile(t, dir, "tb.py", legacy)

	out, code := run(t, "apply", dir)
	assert.Equal(t, driver.ExitFailure, code)
	assert.Contains(t, out, "skipped")
	assert.FileExists(t, filepath.Join(dir, "tb.migrated.py"))
}

func TestNoFiles(t *testing.T) {
	out, code := run(t, "check", t.TempDir())
	assert.Equal(t, driver.ExitFailure, code)
	assert.Contains(t, out, driver.ErrNoFiles.Error())
}

func TestConfigFromFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "custom.toml", "[markers]\nmodule = \"ctb\"\n")
	writeFile(t, dir, "tb.py", "import ctb\n\n@ctb.coroutine\ndef f():\n    yield g()\n")

	out, code := run(t, "--config", cfg, "check", filepath.Join(dir, "tb.py"))
	assert.Equal(t, driver.ExitFindings, code, out)

	bad := writeFile(t, dir, "bad.toml", "[markers]\nmodule = \"not ok\"\n")
	_, code = run(t, "--config", bad, "check", filepath.Join(dir, "tb.py"))
	assert.Equal(t, driver.ExitFailure, code)
}

func TestCacheFlag(t *testing.T) {
	dir := t.TempDir()
	cacheDir := t.TempDir()
	writeFile(t, dir, "tb.py", legacy)

	first, code := run(t, "--cache", "--cache-dir", cacheDir, "check", dir)
	assert.Equal(t, driver.ExitFindings, code)
	second, code := run(t, "--cache", "--cache-dir", cacheDir, "check", dir)
	assert.Equal(t, driver.ExitFindings, code)
	assert.Equal(t, first, second)

	out, code := run(t, "--cache-dir", cacheDir, "cache", "clean")
	assert.Equal(t, driver.ExitOK, code)
	assert.Contains(t, out, cacheDir)
}

func TestTokenizeAndParseCommands(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tb.py", "x = 1  # one\n")

	out, code := run(t, "tokenize", path)
	assert.Equal(t, driver.ExitOK, code)
	assert.Contains(t, out, "# one")

	out, code = run(t, "parse", path)
	assert.Equal(t, driver.ExitOK, code)
	assert.NotEmpty(t, out)

	out, code = run(t, "parse", "--format", "json", path)
	assert.Equal(t, driver.ExitOK, code)
	assert.True(t, json.Valid([]byte(out)), out)

	bad := writeFile(t, dir, "bad.py", "def f(:\n")
	_, code = run(t, "parse", bad)
	assert.Equal(t, driver.ExitFailure, code)
}

func TestVersionCommand(t *testing.T) {
	out, code := run(t, "version", "--format", "json")
	assert.Equal(t, driver.ExitOK, code)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}

func TestTimingsGoToStderr(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tb.py", legacy)
	out, _ := run(t, "--timings", "check", dir)
	assert.Contains(t, out, "timings:")
	assert.Contains(t, out, "parse")
}

func TestReadModes(t *testing.T) {
	for _, v := range []string{"", "auto", "ON", " off "} {
		_, err := readColorMode(v)
		assert.NoError(t, err, v)
		_, err = readUIMode(v)
		assert.NoError(t, err, v)
	}
	_, err := readColorMode("always")
	assert.Error(t, err)
	_, err = readUIMode("maybe")
	assert.Error(t, err)

	assert.False(t, shouldUseTUI(uiModeOff, 10))
	assert.True(t, shouldUseTUI(uiModeOn, 1))
	assert.False(t, colorOff.enabled(os.Stdout))
	assert.True(t, colorOn.enabled(os.Stdout))
}

// Ошибки команд создаются через tozd errors: со стеком и с обёрнутой причиной.
func TestCommandErrorsCarryStack(t *testing.T) {
	type stackTracer interface{ StackTrace() []uintptr }

	_, uiErr := readUIMode("maybe")
	_, flagErr := readMigrateFlags(&cobra.Command{Use: "bare"}, driver.ModeCheck)
	for name, err := range map[string]error{"ui mode": uiErr, "missing flag": flagErr} {
		require.Error(t, err, name)
		var st stackTracer
		assert.True(t, errors.As(err, &st), name)
	}
	assert.NotNil(t, errors.Unwrap(flagErr), "flag lookup cause must stay wrapped")
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tb.py", legacy)
	cpu := filepath.Join(t.TempDir(), "cpu.pprof")

	_, code := run(t, "--cpu-profile", cpu, "check", dir)
	assert.Equal(t, driver.ExitFindings, code)
	assert.FileExists(t, cpu)
}

func TestCheckShortFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tb.py", "def f():\n    ReturnValue(1)\n")

	out, code := run(t, "check", "--format", "short", dir)
	assert.Equal(t, driver.ExitFindings, code)
	assert.Contains(t, out, "error MIG")
	assert.Contains(t, out, "tb.py:2:5")
	assert.Contains(t, out, "\nnote MIG")
}
