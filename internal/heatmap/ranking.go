package heatmap

import (
	"fmt"
	"sort"
	"strings"

	"repoyear/internal/history"
)

// RepoTotal 是单个仓库的提交数及其占比。
type RepoTotal struct {
	Repository string  `json:"repository"`
	Commits    int     `json:"commits"`
	Percent    float64 `json:"percent"`
}

// Rank 按提交数倒序列出仓库，提交数相同按名称升序。
// Percent 保留一位小数，总提交数大于零时各行之和恰为 100.0。
func Rank(result history.Result) []RepoTotal {
	rows := make([]RepoTotal, 0, len(result))
	total := 0
	for name, times := range result {
		rows = append(rows, RepoTotal{Repository: name, Commits: len(times)})
		total += len(times)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Commits != rows[j].Commits {
			return rows[i].Commits > rows[j].Commits
		}
		return rows[i].Repository < rows[j].Repository
	})
	if total == 0 {
		return rows
	}

	// 以 0.1% 为单位做最大余数分配，1000 个单位即 100.0%
	const units = 1000
	share := make([]int, len(rows))
	order := make([]int, len(rows))
	assigned := 0
	for i, r := range rows {
		share[i] = r.Commits * units / total
		assigned += share[i]
		order[i] = i
	}
	remainder := func(i int) int { return rows[i].Commits * units % total }
	sort.SliceStable(order, func(a, b int) bool { return remainder(order[a]) > remainder(order[b]) })
	for k := 0; k < units-assigned && k < len(order); k++ {
		share[order[k]]++
	}

	for i := range rows {
		rows[i].Percent = float64(share[i]) / 10
	}
	return rows
}

// RankTable 把 Rank 的结果渲染为对齐的纯文本表格。
func RankTable(rows []RepoTotal) string {
	width := len("Repository")
	for _, r := range rows {
		if len(r.Repository) > width {
			width = len(r.Repository)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %7s  %6s\n", width, "Repository", "Commits", "Share")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s  %7d  %5.1f%%\n", width, r.Repository, r.Commits, r.Percent)
	}
	return b.String()
}
