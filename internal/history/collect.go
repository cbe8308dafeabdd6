package history

import (
	"repoyear/internal/config"
	"repoyear/internal/repo"

	"go.uber.org/zap"
)

// Result 是仓库显示名到提交时间列表的映射。
type Result map[string][]int64

// Collector 汇总配置中所有仓库的提交时间。
//
// 单个仓库的发现或扫描失败只记录一条 warn 日志，不会中断整体扫描。
type Collector struct {
	Logger *zap.Logger
	// OnRepo 在每个仓库处理完成后调用（无论成功与否），可为 nil
	OnRepo func(name string)
}

// NewCollector 创建 Collector，logger 为 nil 时不输出日志。
func NewCollector(logger *zap.Logger) *Collector {
	return &Collector{Logger: logger}
}

// Collect 遍历 cfg 中的所有目录树并扫描每个仓库。
// 同名仓库后出现的覆盖先出现的。结果永不为 nil。
func (c *Collector) Collect(cfg config.Config) Result {
	out := make(Result)
	for d, err := range repo.ConfigRepos(cfg) {
		if err != nil {
			c.logger().Warn("skipping directory", zap.Error(err))
			continue
		}

		times, err := Scan(d.Repo)
		c.done(d.Name)
		if err != nil {
			c.logger().Warn("scan failed",
				zap.String("repo", d.Name),
				zap.String("path", d.Path),
				zap.Error(err),
			)
			continue
		}
		c.store(out, d.Name, times)
	}
	return out
}

// CollectPaths 扫描显式给出的仓库路径，以路径本身作为名称。
func (c *Collector) CollectPaths(paths []string) Result {
	out := make(Result, len(paths))
	for _, p := range paths {
		times, err := ScanPath(p)
		c.done(p)
		if err != nil {
			c.logger().Warn("scan failed", zap.String("path", p), zap.Error(err))
			continue
		}
		c.store(out, p, times)
	}
	return out
}

func (c *Collector) store(out Result, name string, times []int64) {
	if _, dup := out[name]; dup {
		c.logger().Debug("duplicate repository name, replacing earlier result", zap.String("repo", name))
	}
	out[name] = times
}

func (c *Collector) done(name string) {
	if c.OnRepo != nil {
		c.OnRepo(name)
	}
}

func (c *Collector) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
