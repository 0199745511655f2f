package bob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentLogger struct {
	warns []string
}

func (l *silentLogger) Debug(string) {}
func (l *silentLogger) Info(string)  {}
func (l *silentLogger) Warn(msg string) {
	l.warns = append(l.warns, msg)
}
func (l *silentLogger) Error(error)    {}
func (l *silentLogger) Command(string) {}
func (l *silentLogger) SetDebug(bool)  {}

func TestWithFlags_Defaults(t *testing.T) {
	opts := Options{Jobs: 3, Silent: true, Argv: []string{}}

	effective, err := opts.withFlags()
	require.NoError(t, err)

	assert.Equal(t, 3, effective.Jobs)
	assert.True(t, effective.Silent)
	assert.False(t, effective.AlwaysMake)
	assert.Empty(t, effective.Targets)
}

func TestWithFlags_Overrides(t *testing.T) {
	opts := Options{Targets: []string{"default"}, Argv: []string{"-B", "-j", "4", "-k", "build/app", "clean"}}

	effective, err := opts.withFlags()
	require.NoError(t, err)

	assert.True(t, effective.AlwaysMake)
	assert.Equal(t, 4, effective.Jobs)
	assert.True(t, effective.KeepGoing)
	assert.Equal(t, []string{"build/app", "clean"}, effective.Targets)
}

func TestWithFlags_PositionalsOnlyOverrideWhenPresent(t *testing.T) {
	opts := Options{Targets: []string{"default"}, Argv: []string{"-s"}}

	effective, err := opts.withFlags()
	require.NoError(t, err)

	assert.True(t, effective.Silent)
	assert.Equal(t, []string{"default"}, effective.Targets)
}

func TestWithFlags_UnknownFlag(t *testing.T) {
	opts := Options{Argv: []string{"--bogus"}}

	_, err := opts.withFlags()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse build flags")
}

func TestNormalize_JobsFloor(t *testing.T) {
	log := &silentLogger{}

	opts := Options{Jobs: 0}.normalize(log)
	assert.Equal(t, 1, opts.Jobs)

	opts = Options{Jobs: -2}.normalize(log)
	assert.Equal(t, 1, opts.Jobs)
}

func TestNormalize_DryRunDisablesSilent(t *testing.T) {
	log := &silentLogger{}

	opts := Options{DryRun: true, Silent: true}.normalize(log)

	assert.False(t, opts.Silent)
	assert.True(t, opts.DryRun)
	require.Len(t, log.warns, 1)
}
