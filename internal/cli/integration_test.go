package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the program with args and stdin, returning stdout, stderr and
// whether it exited successfully
func runCLI(t *testing.T, stdin string, args ...string) (string, string, bool) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr, "CLI did not start: %s", stderr.String())
	}
	return stdout.String(), stderr.String(), err == nil
}

// TestCLI_FileInput tests the CLI with a file argument
func TestCLI_FileInput(t *testing.T) {
	tempDir := t.TempDir()
	inputFile := filepath.Join(tempDir, "input.json")
	err := os.WriteFile(inputFile, []byte(`{"name":"John \"JD\" Doe","age":30,"address":{"zip":"12345"}}`+"\n"), 0644)
	require.NoError(t, err)

	stdout, stderr, ok := runCLI(t, "", inputFile)
	require.True(t, ok, "CLI command failed: %s", stderr)
	assert.Equal(t, `{"name":"John \"JD\" Doe","age":30,"address":{"zip":"12345"}}`+"\n", stdout)
}

// TestCLI_Stdin tests the CLI reading from stdin via -
func TestCLI_Stdin(t *testing.T) {
	stdout, stderr, ok := runCLI(t, `-17`, "-")
	require.True(t, ok, "CLI command failed: %s", stderr)
	assert.Equal(t, "-17\n", stdout)
}

// TestCLI_Failures tests exit status and diagnostics for malformed input
func TestCLI_Failures(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantStdout string
	}{
		{name: "value failure", input: `{"a":}`, wantStdout: "unexpected token '}'\n"},
		{name: "key failure", input: `{:1}`, wantStdout: ""},
		{name: "end of input", input: `"open`, wantStdout: "unexpected end of input\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, ok := runCLI(t, tt.input, "-")
			assert.False(t, ok)
			assert.Equal(t, tt.wantStdout, stdout)
		})
	}
}

// TestCLI_RequiresOneArgument tests that a missing input argument is rejected
func TestCLI_RequiresOneArgument(t *testing.T) {
	_, stderr, ok := runCLI(t, "")
	assert.False(t, ok)
	assert.Contains(t, stderr, "expected")

	_, _, ok = runCLI(t, "", "a.json", "b.json")
	assert.False(t, ok)
}

// TestCLI_Flags tests key case rewriting and trailing data handling
func TestCLI_Flags(t *testing.T) {
	stdout, stderr, ok := runCLI(t, `{"first_name":"x"} tail`, "--allow-trailing", "--key-case", "lower_camel", "-")
	require.True(t, ok, "CLI command failed: %s", stderr)
	assert.Equal(t, "{\"firstName\":\"x\"}\n", stdout)

	_, _, ok = runCLI(t, `{"first_name":"x"} tail`, "-")
	assert.False(t, ok)
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	stdout, _, ok := runCLI(t, "", "--version")
	require.True(t, ok)
	assert.Contains(t, stdout, "0.1.0")
}
