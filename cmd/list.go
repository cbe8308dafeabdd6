package cmd

import (
	"fmt"

	"repoyear/internal/history"
	"repoyear/internal/repo"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// listBranches 控制是否同时显示判定出的默认分支。
var listBranches bool

// listCmd 列出配置中能发现的所有仓库，不读取历史。
// 用法: repoyear list [--branches]
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered repositories",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listBranches, "branches", "b", false, "Show the resolved default branch")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(cfg.Repos) == 0 {
		fmt.Fprintln(out, "no repository trees configured")
		return nil
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	found := 0
	for d, err := range repo.ConfigRepos(cfg) {
		if err != nil {
			logger.Warn("skipping directory", zap.Error(err))
			continue
		}
		found++

		line := d.Name
		if d.Name != d.Path {
			line += "\t" + d.Path
		}
		if listBranches {
			line += "\t" + describeBranch(d)
		}
		fmt.Fprintln(out, line)
	}

	if found == 0 {
		fmt.Fprintln(out, "no repositories found")
	}
	return nil
}

// describeBranch 返回仓库默认分支的简短描述。
func describeBranch(d repo.Discovered) string {
	if _, url, hosted, err := history.HostedRemote(d.Repo); err == nil && hosted {
		return "(hosted: " + url + ")"
	}
	res, err := history.ResolveDefaultBranch(d.Repo)
	if err != nil {
		return "(" + err.Error() + ")"
	}
	return fmt.Sprintf("%s@%s", res.Revision, res.Hash.String()[:7])
}
