package cmd

import (
	"fmt"

	"repoyear/internal/config"
	"repoyear/internal/repo"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var treeReplaceRoot string

// treeCmd 管理配置文件中的目录树。
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Manage the directory trees searched for repositories",
}

var treeAddCmd = &cobra.Command{
	Use:   "add <root>",
	Short: "Add a directory tree (or update its replace-root)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTreeAdd,
}

var treeRemoveCmd = &cobra.Command{
	Use:   "remove <root>",
	Short: "Remove a directory tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runTreeRemove,
}

var treeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured directory trees",
	Args:  cobra.NoArgs,
	RunE:  runTreeList,
}

func init() {
	treeAddCmd.Flags().StringVar(&treeReplaceRoot, "replace-root", "", "Replace the root prefix in repository names with this string")

	treeCmd.AddCommand(treeAddCmd, treeRemoveCmd, treeListCmd)
	rootCmd.AddCommand(treeCmd)
}

func runTreeAdd(cmd *cobra.Command, args []string) error {
	root, err := config.NormalizePath(args[0])
	if err != nil {
		return err
	}
	if err := repo.CheckRoot(root); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tree := config.TreeConfig{Root: root}
	if cmd.Flags().Changed("replace-root") {
		tree.ReplaceRoot = config.StringPtr(treeReplaceRoot)
	}
	added := cfg.AddTree(tree)
	if err := saveConfig(cfg); err != nil {
		return err
	}

	if added {
		fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", root)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", root)
	}
	return nil
}

func runTreeRemove(cmd *cobra.Command, args []string) error {
	root, err := config.NormalizePath(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.RemoveTree(root) {
		return errors.Newf("tree not configured: %s", root)
	}
	if err := saveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", root)
	return nil
}

func runTreeList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(cfg.Repos) == 0 {
		fmt.Fprintln(out, "no repository trees configured")
		return nil
	}
	for _, tree := range cfg.Repos {
		if tree.ReplaceRoot == nil {
			fmt.Fprintln(out, tree.Root)
			continue
		}
		fmt.Fprintf(out, "%s\t(as %q)\n", tree.Root, *tree.ReplaceRoot)
	}
	return nil
}
