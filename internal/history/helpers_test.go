package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// isolateGitConfig 让全局 git 配置指向空的临时目录。
func isolateGitConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func newRepoAt(t *testing.T, path string, bare bool, head plumbing.ReferenceName) *git.Repository {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
	r, err := git.PlainInitWithOptions(path, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: head},
		Bare:        bare,
	})
	require.NoError(t, err)
	return r
}

func newRepo(t *testing.T) *git.Repository {
	t.Helper()
	return newRepoAt(t, filepath.Join(t.TempDir(), "repo"), false, plumbing.Main)
}

// commit 直接写入对象库，创建一个空树提交，不移动任何引用。
func commit(t *testing.T, r *git.Repository, when int64, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()

	treeObj := r.Storer.NewEncodedObject()
	require.NoError(t, (&object.Tree{}).Encode(treeObj))
	treeHash, err := r.Storer.SetEncodedObject(treeObj)
	require.NoError(t, err)

	sig := object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Unix(when, 0).UTC()}
	c := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      "commit\n",
		TreeHash:     treeHash,
		ParentHashes: parents,
	}
	obj := r.Storer.NewEncodedObject()
	require.NoError(t, c.Encode(obj))
	h, err := r.Storer.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

// commitWithAuthor 与 commit 相同，但作者时间与提交者时间不同。
func commitWithAuthor(t *testing.T, r *git.Repository, authored, committed int64, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()

	treeObj := r.Storer.NewEncodedObject()
	require.NoError(t, (&object.Tree{}).Encode(treeObj))
	treeHash, err := r.Storer.SetEncodedObject(treeObj)
	require.NoError(t, err)

	c := &object.Commit{
		Author:       object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Unix(authored, 0).UTC()},
		Committer:    object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Unix(committed, 0).UTC()},
		Message:      "commit\n",
		TreeHash:     treeHash,
		ParentHashes: parents,
	}
	obj := r.Storer.NewEncodedObject()
	require.NoError(t, c.Encode(obj))
	h, err := r.Storer.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

func setBranch(t *testing.T, r *git.Repository, branch string, h plumbing.Hash) {
	t.Helper()
	require.NoError(t, r.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), h)))
}

func setSymbolic(t *testing.T, r *git.Repository, name, target string) {
	t.Helper()
	ref := plumbing.NewSymbolicReference(plumbing.ReferenceName(name), plumbing.ReferenceName(target))
	require.NoError(t, r.Storer.SetReference(ref))
}

// linearHistory 在 main 上依次创建给定时间的提交，返回最后一个提交。
func linearHistory(t *testing.T, r *git.Repository, times ...int64) plumbing.Hash {
	t.Helper()
	var tip plumbing.Hash
	for i, when := range times {
		if i == 0 {
			tip = commit(t, r, when)
		} else {
			tip = commit(t, r, when, tip)
		}
	}
	setBranch(t, r, "main", tip)
	return tip
}

// testRepo 保存测试中用到的几个提交。
type testRepo struct {
	*git.Repository
	main  plumbing.Hash
	other plumbing.Hash
}

func setRemote(t *testing.T, r *git.Repository, name, url string) {
	t.Helper()
	_, err := r.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(t, err)
}
