package repo

import (
	"io/fs"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
)

// Open 把 path 当作仓库打开。path 可以是：
//   - 包含 .git 的工作区目录
//   - .git 目录本身
//   - 裸仓库目录
//
// 不会向上查找父目录。失败时返回 *OpenError，
// Kind 为 NotRepository 表示该目录不是仓库。
// 无权限读取的目录也视为 NotRepository，由遍历阶段报告。
func Open(path string) (*git.Repository, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) || errors.Is(err, fs.ErrPermission) {
			return nil, NewOpenError(path, NotRepository, err)
		}
		return nil, NewOpenError(path, OpenFailed, err)
	}
	return r, nil
}
