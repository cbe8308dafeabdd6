package heatmap

import (
	"strings"
	"time"
)

const reset = "\033[0m"

// level 是一档颜色及其下限（含）。
type level struct {
	min   int
	color string
	label string
}

// levels 从低到高排列，第一档表示没有提交。
var levels = []level{
	{min: 0, color: "\033[38;5;240m", label: "0"},
	{min: 1, color: "\033[38;5;120m", label: "1-4"},
	{min: 5, color: "\033[38;5;76m", label: "5-9"},
	{min: 10, color: "\033[38;5;34m", label: "10+"},
}

const todayColor = "\033[38;5;199m"

const (
	emptyBlock = "░░"
	fullBlock  = "██"
	cellGap    = "  "
	blankCell  = "    "
)

// Render 绘制截至 now 的最近 months 个月的周视图热力图，末尾附带图例。
// 列为周（周日开始），行为星期几；今天用单独的颜色标出。
func Render(counts Counts, months int, now time.Time) string {
	if months <= 0 {
		return ""
	}

	loc := now.Location()
	start := windowStart(now, months)
	end := Day(now, loc)

	var weeks []time.Time
	for w := start; !w.After(end); w = w.AddDate(0, 0, 7) {
		weeks = append(weeks, w)
	}

	var b strings.Builder
	writeMonths(&b, weeks)

	for row := 0; row < 7; row++ {
		b.WriteString(rowLabel(time.Weekday(row)))
		for _, w := range weeks {
			day := w.AddDate(0, 0, row)
			if day.After(end) {
				b.WriteString(blankCell)
				continue
			}
			b.WriteString(cell(counts[day], day.Equal(end)))
		}
		b.WriteByte('\n')
	}

	b.WriteString(Legend())
	return b.String()
}

// Legend 返回两行图例：色块和对应的提交数区间。
func Legend() string {
	var b strings.Builder
	b.WriteString("Less ")
	for i, lv := range levels {
		block := fullBlock
		if i == 0 {
			block = emptyBlock
		}
		b.WriteString(lv.color + block + reset + " ")
	}
	b.WriteString("More\n")

	b.WriteString("     ")
	for _, lv := range levels {
		b.WriteString(padRight(lv.label, 3) + " ")
	}
	return strings.TrimRight(b.String(), " ") + "\n"
}

// writeMonths 在每个月第一次出现的列上写月份缩写。
func writeMonths(b *strings.Builder, weeks []time.Time) {
	b.WriteString(blankCell)
	var last time.Month
	for _, w := range weeks {
		if m := w.Month(); m != last {
			b.WriteString(padRight(m.String()[:3], 3) + " ")
			last = m
			continue
		}
		b.WriteString(blankCell)
	}
	b.WriteByte('\n')
}

func rowLabel(wd time.Weekday) string {
	switch wd {
	case time.Monday, time.Wednesday, time.Friday:
		return wd.String()[:3] + " "
	default:
		return blankCell
	}
}

func cell(count int, today bool) string {
	color := colorFor(count)
	if today {
		color = todayColor
	}
	block := fullBlock
	if count <= 0 {
		block = emptyBlock
	}
	return color + block + reset + cellGap
}

func colorFor(count int) string {
	color := levels[0].color
	for _, lv := range levels {
		if count >= lv.min {
			color = lv.color
		}
	}
	return color
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
