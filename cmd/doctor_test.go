package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"repoyear/internal/config"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDoctorCommand() (string, error) {
	out, _, err := execute(&cobra.Command{Use: "doctor", RunE: runDoctor})
	return out, err
}

func TestDoctor_AllOK(t *testing.T) {
	home := withTempHome(t)
	code := filepath.Join(home, "code")
	createRepoWithCommits(t, filepath.Join(code, "a"), 2, time.Now().Add(-time.Hour))
	writeConfig(t, home, config.WithTree(code, config.StringPtr("me:")))

	out, err := runDoctorCommand()
	require.NoError(t, err)
	assert.Contains(t, out, "Running diagnostics...")
	assert.Contains(t, out, "✅ Config: OK")
	assert.Contains(t, out, "✅ Tree roots: 1/1 readable")
	assert.Contains(t, out, "✅ Discovery: 1 repositories")
	assert.Contains(t, out, "✅ Default branch: OK")
	assert.Contains(t, out, "✅ Performance: OK")
	assert.NotContains(t, out, "Hosted remotes")
}

func TestDoctor_NoTrees(t *testing.T) {
	home := withTempHome(t)
	writeConfig(t, home, config.Config{})

	out, err := runDoctorCommand()
	require.NoError(t, err, "warnings only")
	assert.Contains(t, out, "⚠️  Config:")
	assert.Contains(t, out, "no repository trees configured")
	assert.Contains(t, out, "⚠️  Tree roots: skipped")
	assert.Contains(t, out, "⚠️  Default branch: skipped")
}

func TestDoctor_EmptyRepositoryIsAnError(t *testing.T) {
	home := withTempHome(t)
	code := filepath.Join(home, "code")
	require.NoError(t, os.MkdirAll(filepath.Join(code, "empty"), 0o755))
	_, err := git.PlainInit(filepath.Join(code, "empty"), false)
	require.NoError(t, err)
	writeConfig(t, home, config.WithTree(code, config.StringPtr("me:")))

	out, err := runDoctorCommand()
	require.Error(t, err)
	assert.Contains(t, out, "❌ Default branch: 1 issue(s)")
	assert.Contains(t, out, "me:empty")
}

func TestDoctor_HostedRemoteIsAWarning(t *testing.T) {
	home := withTempHome(t)
	code := filepath.Join(home, "code")
	createRepoWithCommits(t, filepath.Join(code, "a"), 1, time.Now())
	addRemote(t, filepath.Join(code, "a"), "origin", "https://github.com/me/a")
	writeConfig(t, home, config.WithTree(code, config.StringPtr("me:")))

	out, err := runDoctorCommand()
	require.NoError(t, err)
	assert.Contains(t, out, "⚠️  Hosted remotes: 1 repositories skipped")
	assert.Contains(t, out, "me:a (origin = https://github.com/me/a)")
}

func TestDoctor_MissingRoot(t *testing.T) {
	home := withTempHome(t)
	writeConfig(t, home, config.WithTree(filepath.Join(home, "missing"), nil))

	out, err := runDoctorCommand()
	require.Error(t, err)
	assert.Contains(t, out, "❌ Tree roots: 0/1 readable")
	assert.Contains(t, out, "❌ Discovery: 0 repositories, 1 issue(s)")
}

func TestDoctor_ManyRepositoriesWarn(t *testing.T) {
	home := withTempHome(t)
	code := filepath.Join(home, "code")
	for i := 0; i < 51; i++ {
		path := filepath.Join(code, fmt.Sprintf("repo%02d", i))
		require.NoError(t, os.MkdirAll(path, 0o755))
		_, err := git.PlainInit(path, true)
		require.NoError(t, err)
	}
	writeConfig(t, home, config.WithTree(code, nil))

	out, err := runDoctorCommand()
	require.Error(t, err, "bare repositories without commits have no default branch")
	assert.Contains(t, out, "✅ Discovery: 51 repositories")
	assert.Contains(t, out, "⚠️  Performance: 1 warning(s)")
	assert.Contains(t, out, "large number of repos (51)")
}
