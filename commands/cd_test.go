package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(orig) })

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	t.Setenv("PWD", dir)
	t.Setenv("OLDPWD", "")
	return dir
}

func TestCdRoundTrip(t *testing.T) {
	dir := chdirTemp(t)
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	env, out := testEnv("cd", "sub")
	assert.Equal(t, 0, Cd(env))
	assert.Empty(t, out.String())

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, sub, wd)
	assert.Equal(t, sub, os.Getenv("PWD"))
	assert.Equal(t, dir, os.Getenv("OLDPWD"))

	// No argument goes up a level.
	env, _ = testEnv("cd")
	assert.Equal(t, 0, Cd(env))

	wd, err = os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, dir, wd)
	assert.Equal(t, dir, os.Getenv("PWD"))
	assert.Equal(t, sub, os.Getenv("OLDPWD"))
}

func TestCdMissing(t *testing.T) {
	dir := chdirTemp(t)

	env, out := testEnv("cd", "does-not-exist")
	assert.Equal(t, 1, Cd(env))
	assert.Equal(t, "cd: does-not-exist: no such file or directory\n", out.String())

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, dir, wd)
	assert.Equal(t, "", os.Getenv("OLDPWD"))
}
