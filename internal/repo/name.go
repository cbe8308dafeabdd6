package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"repoyear/internal/config"
)

// Name 计算在 tree 下发现于 path 的仓库名。
//
// 未设置 ReplaceRoot 时直接返回 path。
// 设置时去掉 path 的 Root 前缀，并把 ReplaceRoot 与剩余部分直接拼接（不插入分隔符）。
// path 不以 Root 为前缀属于程序错误，会 panic。
func Name(tree config.TreeConfig, path string) string {
	if tree.ReplaceRoot == nil {
		return path
	}

	suffix, ok := stripRoot(filepath.Clean(tree.Root), path)
	if !ok {
		panic(fmt.Sprintf("%q found under %q, but does not have it as a prefix", path, tree.Root))
	}
	return *tree.ReplaceRoot + suffix
}

// stripRoot 按路径分量去掉前缀，/a 不会匹配 /ab。
func stripRoot(root, path string) (string, bool) {
	if path == root {
		return "", true
	}
	sep := string(os.PathSeparator)
	prefix := root
	if !strings.HasSuffix(prefix, sep) {
		prefix += sep
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	return path[len(prefix):], true
}
