// Package export renders task history as a markdown report.
package export

import (
	"sort"
	"strings"
	"time"

	"dailyfocus/local-app/src/pkg/calendar"
	"dailyfocus/local-app/src/pkg/model"
)

const (
	header      = "# Task History Export\n\n"
	placeholder = "_No tasks found for the selected criteria._\n"
)

// Markdown renders the archived tasks plus the live Today list, grouped by
// day, most recent first. Dates are taken in now's location.
func Markdown(history model.TaskHistory, today []model.Task, opts model.ExportOptions, now time.Time) string {
	todayKey := calendar.DateKey(now)
	groups := map[string][]model.Task{}

	keys := make([]string, 0, len(history))
	for key := range history {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if key == todayKey {
			continue
		}
		for _, t := range history[key].Tasks {
			if !matches(t, opts.Status) {
				continue
			}
			d := groupDate(t, now.Location())
			groups[d] = append(groups[d], t)
		}
	}

	// The live list is shown under today as it is, regardless of task dates.
	var live []model.Task
	for _, t := range today {
		if matches(t, opts.Status) {
			live = append(live, t)
		}
	}
	if len(live) > 0 {
		groups[todayKey] = live
	}

	dates := make([]string, 0, len(groups))
	cutoff := ""
	if opts.DateRange > 0 {
		cutoff = calendar.DaysAgo(now, opts.DateRange-1)
	}
	for d := range groups {
		if d >= cutoff {
			dates = append(dates, d)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var b strings.Builder
	b.WriteString(header)
	if len(dates) == 0 {
		b.WriteString(placeholder)
		return b.String()
	}
	for _, d := range dates {
		b.WriteString("## ")
		b.WriteString(calendar.FormatHeading(d))
		b.WriteString("\n\n")
		for _, t := range groups[d] {
			writeTask(&b, t, 0, opts.IncludeSubtasks)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// groupDate is the day a completed task was finished, or the day any other
// task was created.
func groupDate(t model.Task, loc *time.Location) string {
	if t.Completed && t.FinishedAt != nil {
		return calendar.DateKey(t.FinishedAt.In(loc))
	}
	return calendar.DateKey(t.CreatedAt.In(loc))
}

func matches(t model.Task, status model.ExportStatus) bool {
	switch status {
	case model.ExportCompleted:
		return t.Completed
	case model.ExportIncomplete:
		return !t.Completed
	default:
		return true
	}
}

func writeTask(b *strings.Builder, t model.Task, depth int, includeSubtasks bool) {
	b.WriteString(strings.Repeat("  ", depth))
	if depth == 0 {
		b.WriteString("- ")
	} else {
		b.WriteString("* ")
	}
	b.WriteString(t.Text)
	b.WriteString("\n")
	if !includeSubtasks {
		return
	}
	for _, sub := range t.Subtasks {
		writeTask(b, sub, depth+1, includeSubtasks)
	}
}
