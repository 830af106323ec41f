package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"dailyfocus/local-app/src/pkg/calendar"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/session"
	"dailyfocus/local-app/src/pkg/stats"
	"dailyfocus/local-app/src/pkg/task"
	"dailyfocus/local-app/src/pkg/topic"
)

const (
	colorYellow    = "\033[33m"
	colorOrange    = "\033[38;5;208m"
	colorDarkBrown = "\033[38;5;94m"
	colorGreen     = "\033[32m"
	colorDefault   = "\033[0m"
)

// Renderer writes command results as text. Colors are optional so output
// stays readable when piped.
type Renderer struct {
	w     io.Writer
	color bool
}

func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

func (r *Renderer) paint(color, s string) string {
	if !r.color {
		return s
	}
	return color + s + colorDefault
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.w, s)
}

// Render prints any result returned by a session command.
func (r *Renderer) Render(result interface{}) {
	switch v := result.(type) {
	case nil:
	case session.Message:
		r.println(string(v))
	case session.TaskListResult:
		r.TaskList(v)
	case session.TopicListResult:
		r.TopicList(v)
	case session.HistoryResult:
		r.History(v.Entries)
	case model.HistoryEntry:
		r.HistoryEntry(v)
	case session.WeeksResult:
		r.Weeks(v.Weeks)
	case model.WeeklyLearningEntry:
		r.Week(v)
	case stats.Summary:
		r.Summary(v)
	case model.LearningStatistics:
		r.LearningStatistics(v)
	case session.SettingsResult:
		r.Settings(v)
	case session.RolloverResult:
		r.Rollover(v)
	default:
		r.println(fmt.Sprintf("%v", v))
	}
}

func listTitle(list model.TaskList) string {
	if list == model.MustDoList {
		return "Must-Do"
	}
	return "Today"
}

func (r *Renderer) TaskList(res session.TaskListResult) {
	r.println(fmt.Sprintf("%s  %d/%d done (%d%%)", r.paint(colorYellow, listTitle(res.List)), res.Root.Completed, res.Root.Total, res.Root.Rate()))
	if len(res.Tasks) == 0 {
		r.println("  No tasks")
		return
	}
	r.tasks(res.Tasks, "", "", false)
}

// tasks draws a forest. Collapsed subtrees are hidden unless all is set.
func (r *Renderer) tasks(forest []model.Task, prefix, path string, all bool) {
	for i, t := range forest {
		index := fmt.Sprintf("%d", i+1)
		if path != "" {
			index = path + "." + index
		}
		last := i == len(forest)-1

		var line strings.Builder
		line.WriteString(prefix)
		childPrefix := prefix
		if path != "" {
			if last {
				line.WriteString(r.paint(colorDarkBrown, "└── "))
				childPrefix += r.paint(colorDarkBrown, "    ")
			} else {
				line.WriteString(r.paint(colorDarkBrown, "├── "))
				childPrefix += r.paint(colorDarkBrown, "│   ")
			}
		}
		line.WriteString(r.paint(colorYellow, index))
		if t.Completed {
			line.WriteString(" " + r.paint(colorGreen, "[x]") + " ")
		} else {
			line.WriteString(" [ ] ")
		}
		line.WriteString(t.Text)
		if d, ok := task.Duration(t); ok && t.Completed {
			line.WriteString(" " + r.paint(colorOrange, "("+formatDuration(d)+")"))
		}
		expanded := all || t.Expanded
		if t.HasSubtasks() {
			c := task.CountDirectChildren(t)
			line.WriteString(fmt.Sprintf(" %d/%d", c.Completed, c.Total))
			if !expanded {
				line.WriteString(" [+]")
			}
		}
		r.println(line.String())

		if t.HasSubtasks() && expanded {
			r.tasks(t.Subtasks, childPrefix, index, all)
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return "<1m"
	}
	s := d.Round(time.Minute).String()
	return strings.TrimSuffix(s, "0s")
}

func (r *Renderer) TopicList(res session.TopicListResult) {
	r.println(r.paint(colorYellow, calendar.WeekDisplayString(res.WeekID)) +
		fmt.Sprintf("  %d topics, %d blog posts", topic.CountAll(res.Topics), topic.CountBlogPosts(res.Topics)))
	if len(res.Topics) == 0 {
		r.println("  No topics")
		return
	}
	r.topics(res.Topics, "", "", false)
}

func (r *Renderer) topics(forest []model.LearningTopic, prefix, path string, all bool) {
	for i, t := range forest {
		index := fmt.Sprintf("%d", i+1)
		if path != "" {
			index = path + "." + index
		}
		last := i == len(forest)-1

		var line strings.Builder
		line.WriteString(prefix)
		childPrefix := prefix
		if path != "" {
			if last {
				line.WriteString(r.paint(colorDarkBrown, "└── "))
				childPrefix += r.paint(colorDarkBrown, "    ")
			} else {
				line.WriteString(r.paint(colorDarkBrown, "├── "))
				childPrefix += r.paint(colorDarkBrown, "│   ")
			}
		}
		line.WriteString(r.paint(colorYellow, index) + " " + t.Title)
		if t.BlogPost.Written {
			blog := "[blog]"
			if t.BlogPost.URL != "" {
				blog = "[blog: " + t.BlogPost.URL + "]"
			}
			line.WriteString(" " + r.paint(colorGreen, blog))
		}
		expanded := all || t.Expanded
		if t.HasSubtopics() && !expanded {
			line.WriteString(" [+]")
		}
		r.println(line.String())

		detail := childPrefix + "    "
		if path == "" {
			detail = childPrefix + "  "
		}
		if t.Notes != "" {
			r.println(detail + r.paint(colorOrange, "notes: ") + t.Notes)
		}
		for n, l := range t.ReferenceLinks {
			r.println(detail + r.paint(colorOrange, fmt.Sprintf("link %d: ", n+1)) + l.URL)
		}

		if t.HasSubtopics() && expanded {
			r.topics(t.Subtopics, childPrefix, index, all)
		}
	}
}

func (r *Renderer) History(entries []model.HistoryEntry) {
	if len(entries) == 0 {
		r.println("No history yet")
		return
	}
	for _, e := range entries {
		c := task.Counts{Completed: e.Completed, Total: e.Total}
		r.println(fmt.Sprintf("%s  %s  %d/%d (%d%%)", r.paint(colorYellow, e.Date), calendar.FormatHeading(e.Date), e.Completed, e.Total, c.Rate()))
	}
}

func (r *Renderer) HistoryEntry(e model.HistoryEntry) {
	r.println(r.paint(colorYellow, calendar.FormatHeading(e.Date)) + fmt.Sprintf("  %d/%d done", e.Completed, e.Total))
	r.tasks(e.Tasks, "", "", true)
}

func (r *Renderer) Weeks(weeks []model.WeeklyLearningEntry) {
	if len(weeks) == 0 {
		r.println("No archived weeks yet")
		return
	}
	for _, w := range weeks {
		r.println(fmt.Sprintf("%s  %s  %d topics", r.paint(colorYellow, w.WeekID), calendar.WeekDisplayString(w.WeekID), w.Total))
	}
}

func (r *Renderer) Week(w model.WeeklyLearningEntry) {
	r.println(r.paint(colorYellow, calendar.WeekDisplayString(w.WeekID)) + fmt.Sprintf("  %d topics", w.Total))
	r.topics(w.Topics, "", "", true)
}

// Summary prints the totals followed by one bar per day.
func (r *Renderer) Summary(s stats.Summary) {
	window := "all time"
	if s.Days > 0 {
		window = fmt.Sprintf("last %d days", s.Days)
	}
	r.println(r.paint(colorYellow, "Task statistics") + " (" + window + ")")
	r.println(fmt.Sprintf("  Completed: %d/%d (%d%%)", s.Completed, s.Total, s.Rate))
	r.println(fmt.Sprintf("  Current streak: %d days", s.Streaks.Current))
	r.println(fmt.Sprintf("  Longest streak: %d days", s.Streaks.Longest))
	for _, p := range s.Series {
		bar := strings.Repeat("█", p.Completed) + strings.Repeat("░", p.Incomplete)
		r.println(fmt.Sprintf("  %s %s %d/%d", p.Date, r.paint(colorGreen, bar), p.Completed, p.Completed+p.Incomplete))
	}
}

func (r *Renderer) LearningStatistics(st model.LearningStatistics) {
	r.println(r.paint(colorYellow, "Learning statistics"))
	r.println(fmt.Sprintf("  Topics: %d", st.TotalTopics))
	r.println(fmt.Sprintf("  Blog posts: %d", st.TotalBlogPosts))
	r.println(fmt.Sprintf("  Archived weeks: %d", st.TotalWeeks))
	r.println(fmt.Sprintf("  Current streak: %d weeks", st.CurrentWeekStreak))
	r.println(fmt.Sprintf("  Longest streak: %d weeks", st.LongestWeekStreak))

	months := make([]string, 0, len(st.TopicsByMonth))
	for m := range st.TopicsByMonth {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	for _, m := range months {
		c := st.TopicsByMonth[m]
		r.println(fmt.Sprintf("  %s  %d topics, %d written", m, c.Total, c.Completed))
	}
}

func (r *Renderer) Settings(s session.SettingsResult) {
	r.println(r.paint(colorYellow, "Settings"))
	r.println(fmt.Sprintf("  autoCarryOver: %t", s.Settings.AutoCarryOver))
	r.println(fmt.Sprintf("  notifyInterval: %d", s.Settings.NotifyInterval))
	r.println(fmt.Sprintf("  darkMode: %t", s.Settings.DarkMode))
	r.println(fmt.Sprintf("  autoStart: %t", s.Settings.AutoStart))
	r.println(fmt.Sprintf("  autoCreateNewWeek: %t", s.LearningSettings.AutoCreateNewWeek))
	r.println(fmt.Sprintf("  weekStartDay: %d", s.LearningSettings.WeekStartDay))
}

func (r *Renderer) Rollover(res session.RolloverResult) {
	switch {
	case res.DayArchived:
		r.println("Day rolled over, yesterday archived")
	case res.DayDue:
		r.println("Day rolled over")
	default:
		r.println("Day unchanged")
	}
	switch {
	case res.WeekArchived:
		r.println("Week rolled over, last week archived")
	case res.WeekDue:
		r.println("Week rolled over")
	default:
		r.println("Week unchanged")
	}
}
