package cmd

import (
	"fmt"
	"io"

	"repoyear/internal/config"
	"repoyear/internal/history"
	"repoyear/internal/repo"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// doctorCmd 一站式诊断配置和仓库问题。
// 有错误时返回非零退出码，仅警告时返回 0。
// 用法: repoyear doctor
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and repository issues",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor 按顺序执行诊断：
//  1. 配置文件能否读取，内容是否合理
//  2. 每棵目录树的根目录是否存在且可读
//  3. 遍历目录树时是否有目录打不开
//  4. 每个仓库能否判定出默认分支
//  5. 有多少仓库因托管平台远程而被跳过
//  6. 性能预警（仓库数量 >50 或 .git 体积 >1GB）
//
// 输出使用 ✅/⚠️/❌ 分类显示，有错误时返回 error。
func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Running diagnostics...")

	hasError := false

	// 1. 配置
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(out, "❌ Config: %v\n", err)
		return errors.New("doctor found issues")
	}
	if issues := config.Validate(cfg); len(issues) == 0 {
		fmt.Fprintln(out, "✅ Config: OK")
	} else {
		fmt.Fprintf(out, "⚠️  Config: %d issue(s)\n", len(issues))
		printLines(out, issues)
	}

	// 2. 根目录
	rootErrors := make([]string, 0)
	for _, tree := range cfg.Repos {
		if err := repo.CheckRoot(tree.Root); err != nil {
			rootErrors = append(rootErrors, fmt.Sprintf("%s: %v", tree.Root, err))
		}
	}
	switch {
	case len(cfg.Repos) == 0:
		fmt.Fprintln(out, "⚠️  Tree roots: skipped (no trees configured)")
	case len(rootErrors) == 0:
		fmt.Fprintf(out, "✅ Tree roots: %d/%d readable\n", len(cfg.Repos), len(cfg.Repos))
	default:
		hasError = true
		fmt.Fprintf(out, "❌ Tree roots: %d/%d readable\n", len(cfg.Repos)-len(rootErrors), len(cfg.Repos))
		printLines(out, rootErrors)
	}

	// 3. 仓库发现
	found := make([]repo.Discovered, 0)
	discoveryErrors := make([]string, 0)
	for d, err := range repo.ConfigRepos(cfg) {
		if err != nil {
			discoveryErrors = append(discoveryErrors, err.Error())
			continue
		}
		found = append(found, d)
	}
	if len(discoveryErrors) == 0 {
		fmt.Fprintf(out, "✅ Discovery: %d repositories\n", len(found))
	} else {
		hasError = true
		fmt.Fprintf(out, "❌ Discovery: %d repositories, %d issue(s)\n", len(found), len(discoveryErrors))
		printLines(out, discoveryErrors)
	}

	// 4 & 5. 默认分支和托管平台远程
	hosted := make([]string, 0)
	branchErrors := make([]string, 0)
	for _, d := range found {
		name, url, isHosted, err := history.HostedRemote(d.Repo)
		if err != nil {
			branchErrors = append(branchErrors, fmt.Sprintf("%s: %v", d.Name, err))
			continue
		}
		if isHosted {
			hosted = append(hosted, fmt.Sprintf("%s (%s = %s)", d.Name, name, url))
			continue
		}
		if _, err := history.DefaultBranch(d.Repo); err != nil {
			branchErrors = append(branchErrors, fmt.Sprintf("%s: %v", d.Name, err))
		}
	}
	switch {
	case len(found) == 0:
		fmt.Fprintln(out, "⚠️  Default branch: skipped (no repositories)")
	case len(branchErrors) == 0:
		fmt.Fprintln(out, "✅ Default branch: OK")
	default:
		hasError = true
		fmt.Fprintf(out, "❌ Default branch: %d issue(s)\n", len(branchErrors))
		printLines(out, branchErrors)
	}
	if len(hosted) > 0 {
		fmt.Fprintf(out, "⚠️  Hosted remotes: %d repositories skipped\n", len(hosted))
		printLines(out, hosted)
	}

	// 6. 性能
	if warnings := repo.CheckPerformance(found); len(warnings) == 0 {
		fmt.Fprintln(out, "✅ Performance: OK")
	} else {
		fmt.Fprintf(out, "⚠️  Performance: %d warning(s)\n", len(warnings))
		printLines(out, warnings)
	}

	if hasError {
		return errors.New("doctor found issues")
	}
	return nil
}

// printLines 以缩进列表形式输出，每行前加 "   - "。
func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(out, "   - %s\n", line)
	}
}
