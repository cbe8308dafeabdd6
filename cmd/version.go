package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version 在构建时通过 -ldflags "-X repoyear/cmd.Version=..." 注入。
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "repoyear %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
