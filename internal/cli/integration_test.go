package cli_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	// Create a temporary directory for test files
	tempDir := t.TempDir()

	// Create a test JSON file
	jsonContent := `{
		"name": "John Doe",
		"age": 30,
		"email": "john.doe@example.com",
		"address": {
			"street": "123 Main St",
			"city": "Anytown",
			"zip": "12345"
		},
		"phones": [
			{"type": "home", "number": "555-1234"},
			{"type": "work", "number": "555-5678", "ext": 12}
		],
		"active": true
	}`
	jsonFile := filepath.Join(tempDir, "test.json")
	err := os.WriteFile(jsonFile, []byte(jsonContent), 0644)
	require.NoError(t, err)

	// Run the CLI command
	cmd := exec.Command("go", "run", "../../main.go", "propType", "-n", "person", "-i", jsonFile, "-o", tempDir)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	// Read the generated output file
	generated, err := os.ReadFile(filepath.Join(tempDir, "person.js"))
	require.NoError(t, err)

	expected := `import PropType from 'prop-types'

const person = PropType.shape({
  name: PropType.string,
  age: PropType.number,
  email: PropType.string,
  address: PropType.shape({
    street: PropType.string,
    city: PropType.string,
    zip: PropType.string,
  }),
  phones: PropType.arrayOf(
    PropType.shape({
      type: PropType.string,
      number: PropType.string,
      ext: PropType.number,
    })
  ),
  active: PropType.bool,
})

export default person
`
	assert.Equal(t, expected, string(generated))
	assert.Contains(t, string(output), "Generated "+filepath.Join(tempDir, "person.js"))
}

// TestCLI_StdinStdout tests the CLI with stdin input and stdout output
func TestCLI_StdinStdout(t *testing.T) {
	jsonContent := `{"name": "Jane Smith", "age": 25, "active": true}`

	cmd := exec.Command("go", "run", "../../main.go", "propType", "--name", "user", "--input", "-", "--stdout")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	output := stdout.String()
	assert.True(t, strings.HasPrefix(output, "import PropType from 'prop-types'\n"))
	assert.Contains(t, output, "const user = PropType.shape({")
	assert.Contains(t, output, "  name: PropType.string,\n  age: PropType.number,\n  active: PropType.bool,\n")
	assert.True(t, strings.HasSuffix(output, "export default user\n"))
}

// TestCLI_Interactive answers the prompts the way a user would
func TestCLI_Interactive(t *testing.T) {
	tempDir := t.TempDir()

	cmd := exec.Command("go", "run", "../../main.go", "propType", "-o", tempDir)
	cmd.Stdin = strings.NewReader("scores\nJSON\n[1, \"x\", 2]\n")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	assert.Contains(t, string(output), "? Name of the file:")
	assert.Contains(t, string(output), "1) URL")
	assert.Contains(t, string(output), "2) JSON")

	generated, err := os.ReadFile(filepath.Join(tempDir, "scores.js"))
	require.NoError(t, err)
	assert.Contains(t, string(generated), `const scores = PropType.arrayOf(
  PropType.oneOfType([
    PropType.number,
    PropType.string
  ])
)`)
}

// TestCLI_URLSource fetches the example JSON from a local server
func TestCLI_URLSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"tags": [1]}, {"tags": ["x"]}]`))
	}))
	defer server.Close()

	cmd := exec.Command("go", "run", "../../main.go", "propType", "-n", "posts", "--url", server.URL, "--stdout")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())
	assert.Contains(t, stdout.String(), `tags: PropType.arrayOf(
      PropType.oneOfType([
        PropType.number,
        PropType.string
      ])
    ),`)
}

// TestCLI_JSONSchemaFormat tests the JSON Schema output
func TestCLI_JSONSchemaFormat(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "propType", "-n", "user", "--data", `{"id": 1, "tags": []}`, "-f", "jsonschema", "--stdout")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())
	assert.JSONEq(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title": "user",
		"type": "object",
		"properties": {
			"id": {"type": "number"},
			"tags": {"type": "array"}
		}
	}`, stdout.String())
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	tempDir := t.TempDir()

	cmd := exec.Command("go", "run", "../../main.go", "propType", "-n", "broken", "--data", `{"name": "Invalid JSON, "age": 30}`, "-o", tempDir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with invalid JSON")
	assert.Contains(t, stderr.String(), "JSON parsing error")

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file is written on failure")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "propType", "-n", "empty", "-i", "-", "--stdout")
	cmd.Stdin = strings.NewReader("")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr.String(), "empty")
}

// TestCLI_Version tests the version command
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "version")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "proptyper version")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "propType", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "-n, --name")
	assert.Contains(t, helpOutput, "-s, --source")
	assert.Contains(t, helpOutput, "-u, --url")
	assert.Contains(t, helpOutput, "-i, --input")
	assert.Contains(t, helpOutput, "-f, --format")
	assert.Contains(t, helpOutput, "-o, --out-dir")
	assert.Contains(t, helpOutput, "-c, --config")
	assert.Contains(t, helpOutput, "-d, --debug")
}
