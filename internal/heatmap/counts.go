// Package heatmap 把扫描结果渲染成终端里的贡献热力图。
package heatmap

import (
	"time"

	"repoyear/internal/history"
)

// Counts 是按自然日聚合的提交数，键为 loc 时区下当天零点。
type Counts map[time.Time]int

// DailyCounts 把所有仓库的提交时间折叠到 loc 时区的自然日上。
func DailyCounts(result history.Result, loc *time.Location) Counts {
	out := make(Counts)
	for _, times := range result {
		for _, ts := range times {
			out[Day(time.Unix(ts, 0), loc)]++
		}
	}
	return out
}

// Total 返回所有日期的提交总数。
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		if n > 0 {
			total += n
		}
	}
	return total
}

// Day 返回 t 在 loc 时区下当天的零点。
func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// windowStart 从 now 向前推 months 个月，再退到最近的周日，热力图的每一列从周日开始。
func windowStart(now time.Time, months int) time.Time {
	start := Day(now.AddDate(0, -months, 0), now.Location())
	for start.Weekday() != time.Sunday {
		start = start.AddDate(0, 0, -1)
	}
	return start
}
