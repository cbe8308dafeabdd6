package history

import (
	"strings"

	"repoyear/internal/repo"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// hostedPrefixes 是托管平台远程地址的前缀，这类仓库的贡献由平台自己统计。
var hostedPrefixes = []string{
	"git@github.com:",
	"https://github.com/",
}

// IsHostedRemote 判断远程 URL 是否指向托管平台。
func IsHostedRemote(url string) bool {
	for _, prefix := range hostedPrefixes {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}

// HostedRemote 返回第一个指向托管平台的远程名称和 URL。
func HostedRemote(r *git.Repository) (name, url string, ok bool, err error) {
	remotes, err := r.Remotes()
	if err != nil {
		return "", "", false, errors.Wrap(err, "list remotes")
	}
	for _, remote := range remotes {
		cfg := remote.Config()
		for _, u := range cfg.URLs {
			if IsHostedRemote(u) {
				return cfg.Name, u, true, nil
			}
		}
	}
	return "", "", false, nil
}

// Scan 返回默认分支上所有祖先提交（含分支顶端）的作者时间，单位为 Unix 秒。
//
// 结果按提交者时间从新到旧排列。
// 存在托管平台远程的仓库直接返回空切片（非 nil），不读取任何历史。
func Scan(r *git.Repository) ([]int64, error) {
	_, _, hosted, err := HostedRemote(r)
	if err != nil {
		return nil, err
	}
	if hosted {
		return []int64{}, nil
	}

	tip, err := DefaultBranch(r)
	if err != nil {
		return nil, err
	}

	commits, err := r.Log(&git.LogOptions{From: tip, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, errors.Wrapf(err, "log from %s", tip)
	}
	defer commits.Close()

	times := make([]int64, 0)
	err = commits.ForEach(func(c *object.Commit) error {
		times = append(times, c.Author.When.Unix())
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walk history")
	}
	return times, nil
}

// ScanPath 打开 path 处的仓库并执行 Scan。
func ScanPath(path string) ([]int64, error) {
	r, err := repo.Open(path)
	if err != nil {
		return nil, err
	}
	return Scan(r)
}
