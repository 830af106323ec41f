package data

import (
	"context"
	"sort"

	"dailyfocus/local-app/src/pkg/calendar"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/stats"
	"dailyfocus/local-app/src/pkg/topic"
)

// DefaultRecentWeeks is how many weeks RecentWeeks returns for a non-positive limit.
const DefaultRecentWeeks = 10

// HistoryManager reads the archived days and weeks
type HistoryManager struct {
	managerBase
}

// Entries returns every archived day, most recent first.
func (hm *HistoryManager) Entries() []model.HistoryEntry {
	hm.mu.Lock()
	history := hm.gateway.TaskHistory()
	hm.mu.Unlock()
	return stats.Entries(history)
}

// Recent returns at most limit archived days, most recent first.
func (hm *HistoryManager) Recent(limit int) []model.HistoryEntry {
	entries := hm.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Entry returns the archived day with the date key date.
func (hm *HistoryManager) Entry(date string) (model.HistoryEntry, bool) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	e, ok := hm.gateway.TaskHistory()[date]
	if ok && e.Date == "" {
		e.Date = date
	}
	return e, ok
}

// Weeks returns every archived week, most recent first.
func (hm *HistoryManager) Weeks() []model.WeeklyLearningEntry {
	hm.mu.Lock()
	history := hm.gateway.LearningHistory()
	hm.mu.Unlock()

	out := make([]model.WeeklyLearningEntry, 0, len(history))
	for id, e := range history {
		if e.WeekID == "" {
			e.WeekID = id
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekID > out[j].WeekID })
	return out
}

// RecentWeeks returns at most limit archived weeks, DefaultRecentWeeks when limit is not positive.
func (hm *HistoryManager) RecentWeeks(limit int) []model.WeeklyLearningEntry {
	if limit <= 0 {
		limit = DefaultRecentWeeks
	}
	weeks := hm.Weeks()
	if len(weeks) > limit {
		weeks = weeks[:limit]
	}
	return weeks
}

// WeeksInRange returns the archived weeks from start to end, both included.
func (hm *HistoryManager) WeeksInRange(start, end string) []model.WeeklyLearningEntry {
	var out []model.WeeklyLearningEntry
	for _, w := range hm.Weeks() {
		if w.WeekID >= start && w.WeekID <= end {
			out = append(out, w)
		}
	}
	return out
}

// Week returns one archived week.
func (hm *HistoryManager) Week(id string) (model.WeeklyLearningEntry, bool) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	e, ok := hm.gateway.LearningHistory()[id]
	if ok && e.WeekID == "" {
		e.WeekID = id
	}
	return e, ok
}

func (hm *HistoryManager) TotalWeeks() int {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return len(hm.gateway.LearningHistory())
}

// WeeksWithActivity returns the archived weeks holding at least one topic.
func (hm *HistoryManager) WeeksWithActivity() []model.WeeklyLearningEntry {
	var out []model.WeeklyLearningEntry
	for _, w := range hm.Weeks() {
		if len(w.Topics) > 0 {
			out = append(out, w)
		}
	}
	return out
}

// UpdateWeek replaces the topics of an archived week and recomputes its total.
func (hm *HistoryManager) UpdateWeek(id string, topics []model.LearningTopic) error {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	history := hm.gateway.LearningHistory()
	entry, ok := history[id]
	if !ok {
		return ErrWeekNotFound
	}
	entry.Topics = topic.Clone(topics)
	entry.Total = topic.CountAll(topics)
	history[id] = entry
	hm.gateway.SetLearningHistory(history)

	hm.logger.Info(context.Background(), "Updated archived week", log.Fields{"week": id, "total": entry.Total})
	return nil
}

// TaskStats summarises the archived days of the last days days, 0 meaning all.
func (hm *HistoryManager) TaskStats(days int) stats.Summary {
	hm.mu.Lock()
	history := hm.gateway.TaskHistory()
	hm.mu.Unlock()
	return stats.Summarize(history, hm.clock.Now(), days)
}

// LearningStats recomputes the learning statistics and stores them.
func (hm *HistoryManager) LearningStats() model.LearningStatistics {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	st := stats.Learning(hm.gateway.LearningHistory(), hm.gateway.CurrentWeekTopics(), calendar.WeekID(hm.clock.Now()))
	hm.gateway.SetLearningStatistics(st)
	return st
}
