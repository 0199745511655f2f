package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bobmake/bob/adapters/fs"
	"github.com/bobmake/bob/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestShouldBuild_PhonyAlwaysStale(t *testing.T) {
	session := domain.NewSession()
	clean, err := session.NewPhonyTarget("clean", nil)
	require.NoError(t, err)

	assert.True(t, fs.NewOracle().ShouldBuild(clean))
}

func TestShouldBuild_MissingOutput(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	existing := writeFile(t, dir, "present", now)

	session := domain.NewSession()
	target, err := session.NewTarget([]string{existing, filepath.Join(dir, "absent")}, nil)
	require.NoError(t, err)

	assert.True(t, fs.NewOracle().ShouldBuild(target))
}

func TestShouldBuild_OutputNewerThanDeps(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	src := writeFile(t, dir, "main.c", now.Add(-time.Hour))
	out := writeFile(t, dir, "main.o", now)

	session := domain.NewSession()
	target, err := session.NewTarget([]string{out}, nil, domain.PathDep(src))
	require.NoError(t, err)

	assert.False(t, fs.NewOracle().ShouldBuild(target))
}

func TestShouldBuild_DepNewerThanOutput(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	out := writeFile(t, dir, "main.o", now.Add(-time.Hour))
	src := writeFile(t, dir, "main.c", now)

	session := domain.NewSession()
	target, err := session.NewTarget([]string{out}, nil, domain.PathDep(src))
	require.NoError(t, err)

	assert.True(t, fs.NewOracle().ShouldBuild(target))
}

func TestShouldBuild_EqualTimestampsRebuild(t *testing.T) {
	dir := t.TempDir()
	stamp := time.Now().Truncate(time.Second)
	out := writeFile(t, dir, "main.o", stamp)
	src := writeFile(t, dir, "main.c", stamp)

	session := domain.NewSession()
	target, err := session.NewTarget([]string{out}, nil, domain.PathDep(src))
	require.NoError(t, err)

	assert.True(t, fs.NewOracle().ShouldBuild(target))
}

func TestShouldBuild_PhonyDependencyForcesRebuild(t *testing.T) {
	dir := t.TempDir()
	out := writeFile(t, dir, "main.o", time.Now())

	session := domain.NewSession()
	phony, err := session.NewPhonyTarget("generate", nil)
	require.NoError(t, err)
	target, err := session.NewTarget([]string{out}, nil, domain.TargetDep(phony))
	require.NoError(t, err)

	assert.True(t, fs.NewOracle().ShouldBuild(target))
}

func TestShouldBuild_DirectoryOutputNeverStale(t *testing.T) {
	dir := t.TempDir()

	session := domain.NewSession()
	target, err := session.NewTarget([]string{dir}, nil, domain.PathDep(filepath.Join(dir, "whatever")))
	require.NoError(t, err)

	assert.False(t, fs.NewOracle().ShouldBuild(target))
}

func TestShouldBuild_NoExistingDependencyFiles(t *testing.T) {
	dir := t.TempDir()
	out := writeFile(t, dir, "main.o", time.Now())

	session := domain.NewSession()
	target, err := session.NewTarget([]string{out}, nil, domain.PathDep(filepath.Join(dir, "gone.c")))
	require.NoError(t, err)

	assert.False(t, fs.NewOracle().ShouldBuild(target))
}

func TestShouldBuild_DepTimestampsSkipMissingFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	out := writeFile(t, dir, "main.o", now)
	old := writeFile(t, dir, "old.c", now.Add(-time.Hour))

	session := domain.NewSession()
	target, err := session.NewTarget([]string{out}, nil,
		domain.PathDep(old),
		domain.PathDep(filepath.Join(dir, "gone.c")),
	)
	require.NoError(t, err)

	assert.False(t, fs.NewOracle().ShouldBuild(target))
}
