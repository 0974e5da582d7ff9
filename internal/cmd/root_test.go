package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_ConvertDirectory(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "engine")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "engine.h"),
		[]byte("class Engine {\n};\nclass Car {\n  Engine engine;\n};\n"), 0644))
	out := filepath.Join(root, "out")

	_, stderr, err := execute(t, "--output-dir", out, "--dedupe-distance=-1", src)
	require.NoError(t, err)
	assert.Contains(t, stderr, "2 classes")

	got, err := os.ReadFile(filepath.Join(out, "engine_class_diagram_all.pu"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "Engine *-- Car : composition\n")
	assert.True(t, bytes.HasPrefix(got, []byte("@startuml\n")))
	assert.True(t, bytes.HasSuffix(got, []byte("@enduml\n")))
}

func TestRootCmd_Args(t *testing.T) {
	_, _, err := execute(t)
	assert.Error(t, err)

	_, _, err = execute(t, filepath.Join(t.TempDir(), "missing.h"))
	assert.Error(t, err)
}

func TestModelCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.hpp")
	require.NoError(t, os.WriteFile(path,
		[]byte("class Shape {\n};\nclass Circle : public Shape {\n  double r;\n};\n"), 0644))

	stdout, _, err := execute(t, "model", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "known:")
	assert.Contains(t, stdout, "name: Circle")
	assert.Contains(t, stdout, "Shape <|-- Circle : derived")
	assert.NotContains(t, stdout, "double *-- Circle")
}

func TestModelCmd_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.h")
	require.NoError(t, os.WriteFile(path, []byte("struct Point {\n  int x;\n};\n"), 0644))

	stdout, _, err := execute(t, "model", "--format", "toml", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "[[classes]]")
	assert.Contains(t, stdout, "Point")

	_, _, err = execute(t, "model", "--format", "xml", path)
	assert.Error(t, err)

	_, _, err = execute(t, "model", "--format", "yaml", path)
	assert.NoError(t, err)
}
