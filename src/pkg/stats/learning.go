package stats

import (
	"sort"
	"time"

	"dailyfocus/local-app/src/pkg/calendar"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/topic"
)

// Learning computes the learning statistics over the archived weeks and the
// live topics of currentWeekID. When the current week is already archived its
// live topics are not counted twice.
func Learning(history model.LearningHistory, current []model.LearningTopic, currentWeekID string) model.LearningStatistics {
	st := model.DefaultLearningStatistics()
	st.TotalWeeks = len(history)

	weeks := make(map[string][]model.LearningTopic, len(history)+1)
	for id, entry := range history {
		if entry.WeekID != "" {
			id = entry.WeekID
		}
		weeks[id] = entry.Topics
	}
	if _, archived := weeks[currentWeekID]; !archived && currentWeekID != "" {
		weeks[currentWeekID] = current
	}

	active := make([]string, 0, len(weeks))
	for id, topics := range weeks {
		total := topic.CountAll(topics)
		written := topic.CountBlogPosts(topics)
		st.TotalTopics += total
		st.TotalBlogPosts += written
		if total == 0 {
			continue
		}
		active = append(active, id)
		st.TopicsByWeek[id] = model.WeekTopicCount{
			Total:     total,
			Completed: written,
			BlogPosts: countBlogURLs(topics),
		}
		countByMonth(topics, st.TopicsByMonth)
	}

	st.CurrentWeekStreak, st.LongestWeekStreak = weekStreaks(active, currentWeekID)
	return st
}

// countByMonth buckets every topic by the month it was created in.
func countByMonth(topics []model.LearningTopic, into map[string]model.MonthTopicCount) {
	for _, t := range topics {
		key := calendar.MonthKey(t.CreatedAt.In(time.UTC))
		c := into[key]
		c.Total++
		if t.BlogPost.Written {
			c.Completed++
		}
		into[key] = c
		countByMonth(t.Subtopics, into)
	}
}

func countBlogURLs(topics []model.LearningTopic) int {
	n := 0
	for _, t := range topics {
		if t.BlogPost.Written && t.BlogPost.URL != "" {
			n++
		}
		n += countBlogURLs(t.Subtopics)
	}
	return n
}

// weekStreaks returns the run of consecutive active weeks that ends at the
// current or the previous week, and the longest run anywhere.
func weekStreaks(active []string, currentWeekID string) (current, longest int) {
	if len(active) == 0 {
		return 0, 0
	}
	sort.Strings(active)

	run := 0
	prev := ""
	for _, id := range active {
		if next, err := calendar.NextWeek(prev); prev != "" && err == nil && next == id {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = id
	}

	last := active[len(active)-1]
	previous, _ := calendar.PreviousWeek(currentWeekID)
	if last == currentWeekID || last == previous {
		current = run
	}
	return current, longest
}
