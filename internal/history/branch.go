package history

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoDefaultBranch 表示所有判定规则都没有命中。
var ErrNoDefaultBranch = errors.New("no default branch found")

// Resolution 是默认分支的判定结果。
type Resolution struct {
	Rule     string // 命中的规则，如 "origin/HEAD"
	Revision string // 实际解析的修订名，如 "dev"
	Hash     plumbing.Hash
}

// rule 是判定链中的一步。
// 返回 (结果, true, nil) 表示命中；(_, false, nil) 表示未命中，继续下一步；
// 非 nil 的 error 会终止整个判定。
type rule func(r *git.Repository) (Resolution, bool, error)

// defaultBranchRules 按优先级排列：
//  1. refs/remotes/origin/HEAD 指向的分支
//  2. refs/remotes/upstream/HEAD 指向的分支
//  3. init.defaultBranch 配置
//  4. refs/heads/main
//  5. refs/heads/master
//  6. HEAD
var defaultBranchRules = []rule{
	remoteHead("origin"),
	remoteHead("upstream"),
	initDefaultBranch,
	revision("refs/heads/main"),
	revision("refs/heads/master"),
	revision("HEAD"),
}

// DefaultBranch 返回仓库默认分支的提交哈希。
func DefaultBranch(r *git.Repository) (plumbing.Hash, error) {
	res, err := ResolveDefaultBranch(r)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return res.Hash, nil
}

// ResolveDefaultBranch 依次尝试 defaultBranchRules，返回第一个命中的结果。
// "找不到"不是错误，只会落到下一条规则；其他仓库错误立即返回。
func ResolveDefaultBranch(r *git.Repository) (Resolution, error) {
	for _, try := range defaultBranchRules {
		res, ok, err := try(r)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			return res, nil
		}
	}
	return Resolution{}, ErrNoDefaultBranch
}

// remoteHead 读取 refs/remotes/<remote>/HEAD 的符号目标。
// 目标形如 refs/remotes/<remote>/<branch> 时，把 <branch> 当作修订解析。
// 引用不存在、不是符号引用或目标形状不符时都视为未命中。
func remoteHead(remote string) rule {
	ruleName := remote + "/HEAD"
	return func(r *git.Repository) (Resolution, bool, error) {
		ref, err := r.Reference(plumbing.NewRemoteHEADReferenceName(remote), false)
		if err != nil {
			if isNotFound(err) {
				return Resolution{}, false, nil
			}
			return Resolution{}, false, errors.Wrapf(err, "read %s", ruleName)
		}
		if ref.Type() != plumbing.SymbolicReference {
			return Resolution{}, false, nil
		}

		branch, ok := remoteBranch(ref.Target().String())
		if !ok {
			return Resolution{}, false, nil
		}
		return resolve(r, ruleName, branch)
	}
}

// remoteBranch 从 refs/remotes/<remote>/<branch> 中取出 <branch>，<branch> 可以包含 "/"。
func remoteBranch(target string) (string, bool) {
	parts := strings.SplitN(target, "/", 4)
	if len(parts) != 4 || parts[0] != "refs" || parts[1] != "remotes" || parts[3] == "" {
		return "", false
	}
	return parts[3], true
}

// initDefaultBranch 读取仓库配置（合并全局配置）中的 init.defaultBranch。
func initDefaultBranch(r *git.Repository) (Resolution, bool, error) {
	cfg, err := r.ConfigScoped(config.GlobalScope)
	if err != nil {
		return Resolution{}, false, errors.Wrap(err, "read git config")
	}
	branch := strings.TrimSpace(cfg.Init.DefaultBranch)
	if branch == "" {
		return Resolution{}, false, nil
	}
	return resolve(r, "init.defaultBranch", branch)
}

func revision(rev string) rule {
	return func(r *git.Repository) (Resolution, bool, error) {
		return resolve(r, rev, rev)
	}
}

func resolve(r *git.Repository, ruleName, rev string) (Resolution, bool, error) {
	h, err := r.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		if isNotFound(err) {
			return Resolution{}, false, nil
		}
		return Resolution{}, false, errors.Wrapf(err, "resolve %q", rev)
	}
	return Resolution{Rule: ruleName, Revision: rev, Hash: *h}, true, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, plumbing.ErrReferenceNotFound) || errors.Is(err, plumbing.ErrObjectNotFound)
}
