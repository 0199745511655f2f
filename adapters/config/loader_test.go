package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bobmake/bob/adapters/config"
	"github.com/bobmake/bob/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBobfile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DeclaresTargets(t *testing.T) {
	path := writeBobfile(t, `
version: "1"
targets:
  build/app:
    cmd: [gcc, -o, build/app, src/main.c]
    deps: [src/main.c]
  clean:
    phony: true
    shell: rm -rf build
`)

	session, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, session.Len())

	app := session.Find("build/app")
	require.NotNil(t, app)
	assert.False(t, app.Phony())
	assert.Equal(t, domain.KindCommand, app.Recipe().Kind())
	assert.Equal(t, []string{"gcc", "-o", "build/app", "src/main.c"}, app.Recipe().Argv())
	require.Len(t, app.Dependencies(), 1)

	clean := session.Find("clean")
	require.NotNil(t, clean)
	assert.True(t, clean.Phony())
	assert.Equal(t, domain.KindShell, clean.Recipe().Kind())
	assert.Equal(t, "rm -rf build", clean.Recipe().Shell())
}

func TestLoad_DefaultTargetIsSortedFirst(t *testing.T) {
	path := writeBobfile(t, `
targets:
  zeta:
    shell: echo z
  alpha:
    shell: echo a
`)

	session, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, session.First().Outputs())
}

func TestLoad_ExplicitOutputsOverrideName(t *testing.T) {
	path := writeBobfile(t, `
targets:
  app:
    outputs: [build/app, build/app.map]
    shell: gcc -o build/app main.c
`)

	session, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"build/app", "build/app.map"}, session.First().Outputs())
	// The map key is only a label once outputs are declared explicitly.
	assert.Nil(t, session.Find("app"))
	assert.NotNil(t, session.Find("build/app.map"))
}

func TestLoad_CmdAndShellAreExclusive(t *testing.T) {
	path := writeBobfile(t, `
targets:
  broken:
    cmd: [echo, hi]
    shell: echo hi
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoad_PhonyCannotDeclareOutputs(t *testing.T) {
	path := writeBobfile(t, `
targets:
  clean:
    phony: true
    outputs: [build]
    shell: rm -rf build
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phony targets cannot declare outputs")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read declaration file")
}

func TestFileLoader_DefaultFilename(t *testing.T) {
	path := writeBobfile(t, `
targets:
  hello:
    phony: true
    shell: echo hello
`)

	loader := &config.FileLoader{}
	session, err := loader.Load(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, 1, session.Len())
}
