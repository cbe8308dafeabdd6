package repo

import (
	"iter"
	"path/filepath"

	"repoyear/internal/config"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/karrick/godirwalk"
)

// errStopWalk 在调用方提前结束迭代时中止遍历。
var errStopWalk = errors.New("stop walk")

// Discovered 是遍历中发现的一个仓库。
type Discovered struct {
	Name string
	Path string
	Repo *git.Repository
}

// TreeRepos 返回 tree 下所有仓库的惰性序列。
//
// 遍历为深度优先，跟随符号链接，子目录按名称排序。
// 一旦某个目录被识别为仓库，就不再进入它的子目录，因此嵌套仓库不会被发现。
// 通过符号链接发现的仓库使用链接自身的路径。
// 单个目录的错误作为 *DiscoveryError 产出，遍历继续。
//
// 每次 range 都会从头重新遍历文件系统，不保留任何状态。
func TreeRepos(tree config.TreeConfig) iter.Seq2[Discovered, error] {
	return func(yield func(Discovered, error) bool) {
		root := filepath.Clean(tree.Root)
		stopped := false
		emit := func(d Discovered, err error) bool {
			if !yield(d, err) {
				stopped = true
			}
			return !stopped
		}

		err := godirwalk.Walk(root, &godirwalk.Options{
			FollowSymbolicLinks: true,
			Callback: func(path string, de *godirwalk.Dirent) error {
				isDir, err := de.IsDirOrSymlinkToDir()
				if err != nil {
					return err
				}
				if !isDir {
					return nil
				}

				r, err := Open(path)
				switch {
				case err == nil:
					if !emit(Discovered{Name: Name(tree, path), Path: path, Repo: r}, nil) {
						return errStopWalk
					}
					// 仓库是叶子节点
					return godirwalk.SkipThis
				case IsNotRepository(err):
					return nil
				default:
					if !emit(Discovered{}, NewDiscoveryError(tree.Root, path, StageOpen, err)) {
						return errStopWalk
					}
					return nil
				}
			},
			ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
				// godirwalk 会把回调返回的错误转换成新的错误值，这里只能依赖 stopped
				if stopped {
					return godirwalk.Halt
				}
				if !emit(Discovered{}, NewDiscoveryError(tree.Root, path, StageWalk, err)) {
					return godirwalk.Halt
				}
				return godirwalk.SkipNode
			},
		})
		if err != nil && !stopped {
			emit(Discovered{}, NewDiscoveryError(tree.Root, root, StageWalk, err))
		}
	}
}

// ConfigRepos 按配置顺序串联每棵目录树的 TreeRepos，前一棵树遍历完才开始下一棵。
// 返回的序列不能被并发消费。
func ConfigRepos(cfg config.Config) iter.Seq2[Discovered, error] {
	return func(yield func(Discovered, error) bool) {
		for _, tree := range cfg.Repos {
			for d, err := range TreeRepos(tree) {
				if !yield(d, err) {
					return
				}
			}
		}
	}
}
