package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test data constants
const (
	testTemplateContent = `<html><head></head><body><p th:text="${user}">x</p></body></html>`
	testDataJSON        = `{"user": "Alice"}`
	testDataYAML        = "user: Yuki\n"
	testExpectedOutput  = `<p>Alice</p>`
	testBrokenContent   = `<html><head></head><body><p th:remove="sideways">x</p></body></html>`
)

// setupTestData creates test files in a temp directory
func setupTestData(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	files := map[string]string{
		"template.html": testTemplateContent,
		"data.json":     testDataJSON,
		"data.yaml":     testDataYAML,
		"broken.html":   testBrokenContent,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(content), FilePermissions))
	}
	return tmpDir
}

// execute runs the CLI and returns exit code, stdout and stderr
func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	code, stdout, _ := execute(t, "")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, CmdNameRender)
	assert.Contains(t, stdout, CmdNameVersion)
}

func TestRun_HelpCommand(t *testing.T) {
	code, stdout, _ := execute(t, "", "help", CmdNameRender)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, RenderShort)
	assert.Contains(t, stdout, "--"+FlagDataFile)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := execute(t, "", "unknown")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, "unknown command")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, stderr := execute(t, "", CmdNameRender, "--bogus")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, "bogus")
}

// ==================== Version command tests ====================

func TestVersion_Text(t *testing.T) {
	code, stdout, _ := execute(t, "", CmdNameVersion)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "go-thymeleaf version")
	assert.Contains(t, stdout, runtime.Version())
}

func TestVersion_JSON(t *testing.T) {
	code, stdout, _ := execute(t, "", CmdNameVersion, "-F", OutputFormatJSON)
	require.Equal(t, ExitCodeSuccess, code)

	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.Commit)
}

func TestVersion_InvalidFormat(t *testing.T) {
	code, _, stderr := execute(t, "", CmdNameVersion, "--format", "xml")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, ErrMsgInvalidFormat)
}

// ==================== Render command tests ====================

func TestRender_FromFile(t *testing.T) {
	dir := setupTestData(t)

	code, stdout, stderr := execute(t, "", CmdNameRender,
		"-t", filepath.Join(dir, "template.html"),
		"-d", testDataJSON,
	)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, testExpectedOutput)
	assert.NotContains(t, stdout, "th:text")
}

func TestRender_FromStdin(t *testing.T) {
	code, stdout, stderr := execute(t, testTemplateContent, CmdNameRender,
		"--template", InputSourceStdin,
		"--data", `{"user": "Bob"}`,
	)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, `<p>Bob</p>`)
}

func TestRender_DataFiles(t *testing.T) {
	dir := setupTestData(t)
	templatePath := filepath.Join(dir, "template.html")

	tests := []struct {
		name string
		file string
		want string
	}{
		{"json", "data.json", `<p>Alice</p>`},
		{"yaml", "data.yaml", `<p>Yuki</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(t, "", CmdNameRender,
				"-t", templatePath,
				"-f", filepath.Join(dir, tt.file),
			)
			require.Equal(t, ExitCodeSuccess, code, stderr)
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestRender_NoData(t *testing.T) {
	code, stdout, stderr := execute(t, testTemplateContent, CmdNameRender, "-t", InputSourceStdin)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, `<p></p>`)
}

func TestRender_OutputFile(t *testing.T) {
	dir := setupTestData(t)
	outputPath := filepath.Join(dir, "out.html")

	code, stdout, stderr := execute(t, "", CmdNameRender,
		"-t", filepath.Join(dir, "template.html"),
		"-f", filepath.Join(dir, "data.json"),
		"-o", outputPath,
	)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Empty(t, stdout)

	written, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), testExpectedOutput)
}

func TestRender_EnvironmentData(t *testing.T) {
	t.Setenv(EnvPrefix+"_DATA", `{"user": "Env"}`)

	code, stdout, stderr := execute(t, testTemplateContent, CmdNameRender, "-t", InputSourceStdin)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, `<p>Env</p>`)
}

func TestRender_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv(EnvPrefix+"_DATA", `{"user": "Env"}`)

	code, stdout, stderr := execute(t, testTemplateContent, CmdNameRender, "-t", InputSourceStdin, "-d", testDataJSON)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, testExpectedOutput)
}

func TestRender_ConfigAndName(t *testing.T) {
	dir := t.TempDir()
	views := filepath.Join(dir, "views")
	require.NoError(t, os.MkdirAll(views, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(views, "home.html"),
		[]byte(`<html xmlns:app="urn:app"><head></head><body><p app:text="${user}">x</p></body></html>`), FilePermissions))

	configPath := filepath.Join(dir, "thymeleaf.yaml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("prefix: app\ntemplate_root: "+views+"\ncache_ttl: 30s\n"), FilePermissions))

	code, stdout, stderr := execute(t, "", CmdNameRender,
		"-c", configPath,
		"-n", "home",
		"-d", testDataJSON,
	)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, testExpectedOutput)
	assert.NotContains(t, stdout, "xmlns:app")
}

func TestRender_TemplateRootFromEnvironment(t *testing.T) {
	views := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(views, "home.html"), []byte(testTemplateContent), FilePermissions))
	t.Setenv(EnvPrefix+"_TEMPLATE_ROOT", views)

	code, stdout, stderr := execute(t, "", CmdNameRender, "-n", "home", "-d", testDataJSON)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, testExpectedOutput)
}

func TestRender_Verbose(t *testing.T) {
	code, _, stderr := execute(t, testTemplateContent, CmdNameRender, "-t", InputSourceStdin, "-v")

	require.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stderr, "DEBUG")
}

func TestRender_Errors(t *testing.T) {
	dir := setupTestData(t)
	templatePath := filepath.Join(dir, "template.html")

	badConfig := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badConfig, []byte("cache_ttl: -1s\n"), FilePermissions))

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{"missing template", nil, ExitCodeUsageError, ErrMsgMissingTemplate},
		{"conflicting source", []string{"-t", templatePath, "-n", "home"}, ExitCodeUsageError, ErrMsgConflictingSource},
		{"positional argument", []string{"extra"}, ExitCodeUsageError, "unknown command"},
		{"invalid json", []string{"-t", templatePath, "-d", "{nope"}, ExitCodeInputError, ErrMsgInvalidData},
		{"missing data file", []string{"-t", templatePath, "-f", filepath.Join(dir, "none.json")}, ExitCodeInputError, ErrMsgInvalidData},
		{"missing template file", []string{"-t", filepath.Join(dir, "none.html")}, ExitCodeInputError, ErrMsgReadFileFailed},
		{"missing config file", []string{"-t", templatePath, "-c", filepath.Join(dir, "none.yaml")}, ExitCodeConfigError, ErrMsgConfigFailed},
		{"invalid config", []string{"-t", templatePath, "-c", badConfig}, ExitCodeConfigError, ErrMsgConfigFailed},
		{"name without root", []string{"-n", "home"}, ExitCodeError, ErrMsgRenderFailed},
		{"processor failure", []string{"-t", filepath.Join(dir, "broken.html")}, ExitCodeError, ErrMsgRenderFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{CmdNameRender}, tt.args...)
			code, _, stderr := execute(t, "", args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr, tt.wantMsg)
		})
	}
}

// ==================== Input helper tests ====================

func TestLoadData(t *testing.T) {
	dir := setupTestData(t)

	t.Run("file wins over inline", func(t *testing.T) {
		data, err := loadData(`{"user": "inline"}`, filepath.Join(dir, "data.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "Yuki", data["user"])
	})

	t.Run("empty", func(t *testing.T) {
		data, err := loadData("", "")
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("null", func(t *testing.T) {
		data, err := loadData("null", "")
		require.NoError(t, err)
		assert.NotNil(t, data)
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitCodeInputError, exitCode(newCLIError(ExitCodeInputError, ErrMsgInvalidData, nil)))
	assert.Equal(t, ExitCodeUsageError, exitCode(assert.AnError))
}
