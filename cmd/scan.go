package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"repoyear/internal/history"

	"github.com/cockroachdb/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultMonths = 12

var (
	scanFormat string
	scanMonths int
)

// scanCmd 扫描仓库并输出提交时间。
// 不带参数时扫描配置中的所有目录树，带参数时把每个参数当作单个仓库路径。
var scanCmd = &cobra.Command{
	Use:   "scan [path...]",
	Short: "Scan repositories and print commit times",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", string(formatJSON), "Output format: json/heatmap/summary")
	scanCmd.Flags().IntVarP(&scanMonths, "months", "m", defaultMonths, "Months shown by the heatmap")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(scanFormat)
	if err != nil {
		return err
	}
	if scanMonths <= 0 {
		return errors.Newf("months must be > 0, got %d", scanMonths)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	collector := history.NewCollector(logger)
	bar := newScanSpinner(cmd.ErrOrStderr())
	if bar != nil {
		collector.OnRepo = func(name string) {
			bar.Describe(name)
			_ = bar.Add(1)
		}
	}

	var result history.Result
	if len(args) > 0 {
		result = collector.CollectPaths(args)
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.Repos) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "no repository trees configured; add one with `repoyear tree add <root>`")
		}
		result = collector.Collect(cfg)
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return writeResult(cmd.OutOrStdout(), result, format, scanMonths, time.Now())
}

// newScanSpinner 仅在 w 是终端时创建进度指示器，仓库总数事先未知，因此使用 spinner。
func newScanSpinner(w io.Writer) *progressbar.ProgressBar {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}

	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(f),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}
