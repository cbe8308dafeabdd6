package config

import "path/filepath"

// AddTree 追加一棵目录树。Root 已存在时更新其 ReplaceRoot 并返回 false。
func (c *Config) AddTree(tree TreeConfig) bool {
	root := filepath.Clean(tree.Root)
	for i := range c.Repos {
		if filepath.Clean(c.Repos[i].Root) == root {
			c.Repos[i].ReplaceRoot = tree.ReplaceRoot
			return false
		}
	}
	tree.Root = root
	c.Repos = append(c.Repos, tree)
	return true
}

// RemoveTree 移除指定 root 的目录树，不存在时返回 false。
func (c *Config) RemoveTree(root string) bool {
	root = filepath.Clean(root)
	kept := c.Repos[:0]
	removed := false
	for _, tree := range c.Repos {
		if filepath.Clean(tree.Root) == root {
			removed = true
			continue
		}
		kept = append(kept, tree)
	}
	c.Repos = kept
	return removed
}

// Roots 返回所有配置的 root，保持配置顺序。
func (c Config) Roots() []string {
	roots := make([]string, 0, len(c.Repos))
	for _, tree := range c.Repos {
		roots = append(roots, tree.Root)
	}
	return roots
}
