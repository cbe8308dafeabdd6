package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	appName        = "repoyear"
	configFileName = "config.toml"

	// EnvPrefix 是环境变量前缀，例如 REPOYEAR_BIND。
	EnvPrefix = "REPOYEAR"
)

// TreeConfig 描述一棵需要搜索仓库的目录树。
type TreeConfig struct {
	// Root 是搜索的起始目录。
	Root string `toml:"root" mapstructure:"root"`
	// ReplaceRoot 用于替换仓库路径中的 Root 前缀，nil 表示使用原始路径作为仓库名。
	ReplaceRoot *string `toml:"replace_root,omitempty" mapstructure:"replace_root"`
}

// Config 是完整配置，Repos 的顺序决定扫描顺序。
type Config struct {
	Repos []TreeConfig `toml:"repos" mapstructure:"repos"`
}

// WithTree 创建只包含一棵目录树的配置。
func WithTree(root string, replaceRoot *string) Config {
	return Config{Repos: []TreeConfig{{Root: root, ReplaceRoot: replaceRoot}}}
}

// StringPtr 返回 s 的指针，方便构造 ReplaceRoot。
func StringPtr(s string) *string {
	return &s
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Parse 严格解析 TOML 配置文本，未知字段视为错误。
func Parse(input string) (Config, error) {
	var cfg Config
	dec := toml.NewDecoder(strings.NewReader(input))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, NewConfigErrorWithCause("", "parse toml", err)
	}
	return cfg, nil
}

// Load 读取配置文件。
// path 为空时使用默认路径，默认文件不存在时返回空配置；
// 显式指定的文件不存在则返回错误。
// 与 Parse 一致，未知字段视为错误。
// 返回的 Root 已展开 ~ 并转换为干净的绝对路径。
func Load(path string) (Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		defaultPath, err := File()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if missing && !explicit {
			return Config{}, nil
		}
		return Config{}, NewConfigErrorWithCause(path, "read config", err)
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, NewConfigErrorWithCause(path, "decode config", err)
	}

	for i := range cfg.Repos {
		root, err := NormalizePath(cfg.Repos[i].Root)
		if err != nil {
			return Config{}, NewConfigErrorWithCause(path, "invalid root", err)
		}
		cfg.Repos[i].Root = root
	}
	return cfg, nil
}

// Save 将配置写入 path（为空时使用默认路径）。
// 写入使用 tmp + rename 的原子策略。
func Save(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		defaultPath, err := File()
		if err != nil {
			return err
		}
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "encode config")
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// NormalizePath 标准化路径：
// 1. 去除首尾空白
// 2. 展开 ~ 为用户主目录
// 3. 转换为绝对路径并清理
func NormalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("empty path")
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// Validate 检查配置中的常见问题，返回可读的问题列表。
func Validate(cfg Config) []string {
	var issues []string
	if len(cfg.Repos) == 0 {
		issues = append(issues, "no repository trees configured")
	}

	seen := make(map[string]struct{}, len(cfg.Repos))
	for i, tree := range cfg.Repos {
		root := strings.TrimSpace(tree.Root)
		if root == "" {
			issues = append(issues, fmt.Sprintf("repos[%d]: root is empty", i))
			continue
		}
		if !filepath.IsAbs(root) {
			issues = append(issues, fmt.Sprintf("repos[%d]: root %s is not absolute", i, root))
		}
		if tree.ReplaceRoot != nil && *tree.ReplaceRoot == "" {
			issues = append(issues, fmt.Sprintf("repos[%d]: replace_root is empty, names will be bare suffixes", i))
		}
		clean := filepath.Clean(root)
		if _, ok := seen[clean]; ok {
			issues = append(issues, fmt.Sprintf("repos[%d]: duplicate root %s", i, clean))
		}
		seen[clean] = struct{}{}
	}
	return issues
}
