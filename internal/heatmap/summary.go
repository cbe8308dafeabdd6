package heatmap

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Streak 是一段连续有提交的日期。
type Streak struct {
	Days  int
	Start time.Time
	End   time.Time
}

// DayCount 是某一天的提交数。
type DayCount struct {
	Date    time.Time
	Commits int
}

// Summary 是热力图下方的统计摘要。
type Summary struct {
	TotalCommits   int
	ActiveDays     int
	CurrentStreak  int
	LongestStreak  Streak
	BusiestDay     DayCount
	BusiestWeekday time.Weekday
	WeekdayCommits int
}

// Summarize 计算 counts 的摘要。当前连续天数以 now 所在的自然日为终点。
// 提交数相同时，较晚的日期和较晚的连续区间优先。
func Summarize(counts Counts, now time.Time) Summary {
	var s Summary
	var perWeekday [7]int
	days := make([]time.Time, 0, len(counts))

	for day, n := range counts {
		if n <= 0 {
			continue
		}
		s.TotalCommits += n
		s.ActiveDays++
		perWeekday[day.Weekday()] += n
		if n > s.BusiestDay.Commits || (n == s.BusiestDay.Commits && day.After(s.BusiestDay.Date)) {
			s.BusiestDay = DayCount{Date: day, Commits: n}
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return s
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if perWeekday[wd] > s.WeekdayCommits {
			s.BusiestWeekday = wd
			s.WeekdayCommits = perWeekday[wd]
		}
	}

	for d := Day(now, now.Location()); counts[d] > 0; d = d.AddDate(0, 0, -1) {
		s.CurrentStreak++
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	run := Streak{Days: 1, Start: days[0], End: days[0]}
	s.LongestStreak = run
	for _, day := range days[1:] {
		if run.End.AddDate(0, 0, 1).Equal(day) {
			run.Days++
			run.End = day
		} else {
			run = Streak{Days: 1, Start: day, End: day}
		}
		if run.Days >= s.LongestStreak.Days {
			s.LongestStreak = run
		}
	}
	return s
}

const ruleWidth = 36

// String 渲染为多行纯文本。
func (s Summary) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("─", ruleWidth))
	b.WriteByte('\n')

	fmt.Fprintf(&b, "Total: %d %s │ Active days: %d │ Current streak: %d %s\n",
		s.TotalCommits, plural(s.TotalCommits, "commit"),
		s.ActiveDays,
		s.CurrentStreak, plural(s.CurrentStreak, "day"),
	)

	if s.LongestStreak.Days == 0 {
		b.WriteString("Longest streak: 0 days\n")
	} else {
		fmt.Fprintf(&b, "Longest streak: %d %s (%s - %s)\n",
			s.LongestStreak.Days, plural(s.LongestStreak.Days, "day"),
			shortDate(s.LongestStreak.Start), shortDate(s.LongestStreak.End),
		)
	}

	weekday, busiest := "-", "-"
	if s.WeekdayCommits > 0 {
		weekday = s.BusiestWeekday.String()[:3]
	}
	if s.BusiestDay.Commits > 0 {
		busiest = shortDate(s.BusiestDay.Date)
	}
	fmt.Fprintf(&b, "Most active: %s (%d %s) │ Busiest day: %s (%d %s)\n",
		weekday, s.WeekdayCommits, plural(s.WeekdayCommits, "commit"),
		busiest, s.BusiestDay.Commits, plural(s.BusiestDay.Commits, "commit"),
	)
	return b.String()
}

func shortDate(t time.Time) string {
	return t.Format("Jan 02 2006")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
