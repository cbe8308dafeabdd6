package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TwoTrees(t *testing.T) {
	cfg, err := Parse(`
[[repos]]
root = "/srv/git"
replace_root = "oxidized.org:git"

[[repos]]
root = "/home/daniel/special-repo"
`)
	require.NoError(t, err)

	want := Config{Repos: []TreeConfig{
		{Root: "/srv/git", ReplaceRoot: StringPtr("oxidized.org:git")},
		{Root: "/home/daniel/special-repo"},
	}}
	assert.Equal(t, want, cfg)
}

func TestParse_EmptyRepos(t *testing.T) {
	cfg, err := Parse("repos = []\n")
	require.NoError(t, err)
	assert.Empty(t, cfg.Repos)
}

func TestParse_UnknownFieldFails(t *testing.T) {
	_, err := Parse(`
[[repos]]
root = "/srv/git"
prefix = "nope"
`)
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestParse_MalformedFails(t *testing.T) {
	_, err := Parse("[[repos]\nroot = ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse toml")
}

func TestLoad_MissingDefaultFileIsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Repos)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Path, "missing.toml")
}

func TestLoad_UnknownFieldFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[[repos]]
root = "/srv/git"
prefix = "nope"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "decode config")

	_, err = Parse(content)
	require.Error(t, err, "Parse and Load agree on unknown fields")
}

func TestLoad_NormalizesRoots(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.toml")
	content := `
[[repos]]
root = "~/git/"
replace_root = "X:"

[[repos]]
root = "/srv//mirror/./repos"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Repos, 2)

	assert.Equal(t, filepath.Join(home, "git"), cfg.Repos[0].Root)
	require.NotNil(t, cfg.Repos[0].ReplaceRoot)
	assert.Equal(t, "X:", *cfg.Repos[0].ReplaceRoot)
	assert.Equal(t, "/srv/mirror/repos", cfg.Repos[1].Root)
	assert.Nil(t, cfg.Repos[1].ReplaceRoot)
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Config{}
	cfg.AddTree(TreeConfig{Root: filepath.Join(home, "a"), ReplaceRoot: StringPtr("host:")})
	cfg.AddTree(TreeConfig{Root: filepath.Join(home, "b")})

	require.NoError(t, Save("", cfg))

	path, err := File()
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "replace_root")
	assert.Equal(t, 1, strings.Count(string(content), "replace_root"), "nil replace_root is omitted")

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty path", "", true},
		{"whitespace only", "   ", true},
		{"relative path", ".", false},
		{"absolute path", "/tmp", false},
		{"tilde expansion", "~", false},
		{"tilde with subpath", "~/test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizePath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(result), "should return absolute path")
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		issues := Validate(Config{})
		require.NotEmpty(t, issues)
		assert.Contains(t, strings.Join(issues, "\n"), "no repository trees configured")
	})

	t.Run("duplicate and relative roots", func(t *testing.T) {
		issues := Validate(Config{Repos: []TreeConfig{
			{Root: "/srv/git"},
			{Root: "/srv/git/"},
			{Root: "relative"},
		}})
		joined := strings.Join(issues, "\n")
		assert.Contains(t, joined, "duplicate root /srv/git")
		assert.Contains(t, joined, "relative is not absolute")
	})

	t.Run("valid config", func(t *testing.T) {
		assert.Empty(t, Validate(WithTree("/srv/git", StringPtr("host:"))))
	})
}

func TestAddAndRemoveTree(t *testing.T) {
	cfg := Config{}

	assert.True(t, cfg.AddTree(TreeConfig{Root: "/srv/git/"}))
	assert.False(t, cfg.AddTree(TreeConfig{Root: "/srv/git", ReplaceRoot: StringPtr("X:")}), "re-adding updates in place")
	require.Len(t, cfg.Repos, 1)
	assert.Equal(t, "/srv/git", cfg.Repos[0].Root)
	require.NotNil(t, cfg.Repos[0].ReplaceRoot)

	assert.True(t, cfg.AddTree(TreeConfig{Root: "/home/me/src"}))
	assert.Equal(t, []string{"/srv/git", "/home/me/src"}, cfg.Roots())

	assert.True(t, cfg.RemoveTree("/srv/git"))
	assert.False(t, cfg.RemoveTree("/srv/git"))
	assert.Equal(t, []string{"/home/me/src"}, cfg.Roots())
}
