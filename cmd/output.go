package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"repoyear/internal/heatmap"
	"repoyear/internal/history"

	"github.com/cockroachdb/errors"
)

type outputFormat string

const (
	formatJSON    outputFormat = "json"
	formatHeatmap outputFormat = "heatmap"
	formatSummary outputFormat = "summary"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatJSON, formatHeatmap, formatSummary:
		return f, nil
	default:
		return "", errors.Newf("invalid format %q (expected json, heatmap or summary)", s)
	}
}

// writeResult 按格式输出扫描结果。json 输出单行，键按名称排序。
func writeResult(w io.Writer, result history.Result, format outputFormat, months int, now time.Time) error {
	switch format {
	case formatHeatmap:
		counts := heatmap.DailyCounts(result, now.Location())
		_, err := io.WriteString(w, heatmap.Render(counts, months, now)+heatmap.Summarize(counts, now).String())
		return err
	case formatSummary:
		counts := heatmap.DailyCounts(result, now.Location())
		_, err := fmt.Fprintf(w, "%s\n%s", heatmap.RankTable(heatmap.Rank(result)), heatmap.Summarize(counts, now))
		return err
	default:
		data, err := json.Marshal(result)
		if err != nil {
			return errors.Wrap(err, "encode result")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
