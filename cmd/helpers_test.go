package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"repoyear/internal/config"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func withTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

// setViper 临时覆盖一个 viper 键，测试结束后恢复。
func setViper(t *testing.T, key string, value any) {
	t.Helper()

	old := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, old) })
}

// writeConfig 把 cfg 写到 home 下的配置文件，并让命令使用它。
func writeConfig(t *testing.T, home string, cfg config.Config) string {
	t.Helper()

	path := filepath.Join(home, "repoyear.toml")
	require.NoError(t, config.Save(path, cfg))
	setViper(t, "config", path)
	return path
}

// createRepoWithCommits 在 path 创建工作区仓库并提交 commits 次，返回从新到旧的作者时间。
func createRepoWithCommits(t *testing.T, path string, commits int, when time.Time) []int64 {
	t.Helper()

	require.NoError(t, os.MkdirAll(path, 0o755))

	r, err := git.PlainInit(path, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	times := make([]int64, 0, commits)
	for i := 0; i < commits; i++ {
		fileName := filepath.Join(path, "file.txt")
		content := []byte(fmt.Sprintf("commit %d\n", i))
		require.NoError(t, os.WriteFile(fileName, content, 0o644))

		_, err := wt.Add("file.txt")
		require.NoError(t, err)

		sig := &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  when.Add(time.Duration(i) * time.Minute),
		}

		_, err = wt.Commit("test commit", &git.CommitOptions{
			Author:    sig,
			Committer: sig,
		})
		require.NoError(t, err)
		times = append([]int64{sig.When.Unix()}, times...)
	}
	return times
}

func addRemote(t *testing.T, path, name, url string) {
	t.Helper()

	r, err := git.PlainOpen(path)
	require.NoError(t, err)
	_, err = r.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(t, err)
}

// execute 运行一个独立构造的命令，返回 stdout 和 stderr。
func execute(c *cobra.Command, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetArgs(args)
	c.SilenceUsage = true
	c.SilenceErrors = true
	err := c.Execute()
	return out.String(), errOut.String(), err
}
