// Package config 提供 repoyear 的配置管理功能。
//
// 配置文件默认存储在 ~/.config/repoyear/config.toml，使用 TOML 格式。
// 每个 [[repos]] 表描述一棵待扫描的目录树：
//
//	[[repos]]
//	root = "/srv/git"
//	replace_root = "example.org:git"
//
// replace_root 可选，设置后仓库名中的 root 前缀会被替换。
package config
