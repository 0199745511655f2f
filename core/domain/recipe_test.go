package domain_test

import (
	"errors"
	"testing"

	"github.com/bobmake/bob/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRecipe_BuilderChain(t *testing.T) {
	r := domain.NewCommandRecipe("gcc").AddOutput("main").Add("main.c")

	require.NoError(t, r.Err())
	assert.Equal(t, []string{"gcc", "-omain", "main.c"}, r.Argv())
	assert.Equal(t, "gcc -omain main.c", r.String())
}

func TestCommandRecipe_PrefixedBuilders(t *testing.T) {
	r := domain.NewCommandRecipe("gcc").
		AddInclude("include", "vendor/include").
		AddLibInclude("lib").
		AddLink("m", "pthread").
		AddOutput("app").
		Add("main.c")

	require.NoError(t, r.Err())
	assert.Equal(t, []string{
		"gcc",
		"-Iinclude", "-Ivendor/include",
		"-Llib",
		"-lm", "-lpthread",
		"-oapp",
		"main.c",
	}, r.Argv())
}

func TestRecipe_BuilderRejectedOnImmutableKinds(t *testing.T) {
	shell := domain.NewShellRecipe("echo hi").Add("nope")
	require.Error(t, shell.Err())
	assert.True(t, errors.Is(shell.Err(), domain.ErrRecipeNotMutable))

	action := domain.NewActionRecipe(func() error { return nil }).AddInclude("inc")
	require.Error(t, action.Err())
	assert.True(t, errors.Is(action.Err(), domain.ErrRecipeNotMutable))
}

func TestRecipe_Clone(t *testing.T) {
	orig := domain.NewCommandRecipe("gcc", "main.c").InDir("src")
	clone := orig.Clone()

	clone.Add("-Wall")

	assert.Equal(t, []string{"gcc", "main.c"}, orig.Argv())
	assert.Equal(t, []string{"gcc", "main.c", "-Wall"}, clone.Argv())
	assert.Equal(t, "src", clone.Dir())
	assert.Equal(t, domain.KindCommand, clone.Kind())
}

func TestRecipe_String(t *testing.T) {
	assert.Equal(t, "rm -rf build", domain.NewShellRecipe("rm -rf build").String())
	assert.Equal(t, "<action>", domain.NewActionRecipe(func() error { return nil }).String())

	quoted := domain.NewCommandRecipe("echo", "hello world")
	assert.Equal(t, "echo 'hello world'", quoted.String())
}

func TestRecipe_ConstructionValidation(t *testing.T) {
	assert.Error(t, domain.NewCommandRecipe("").Err())
	assert.Error(t, domain.NewShellRecipe("   ").Err())
	assert.Error(t, domain.NewActionRecipe(nil).Err())
}
