package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dailyfocus/local-app/src/pkg/model"
)

func learningTopic(title string, created time.Time, written bool, subs ...model.LearningTopic) model.LearningTopic {
	if subs == nil {
		subs = []model.LearningTopic{}
	}
	return model.LearningTopic{
		Title:          title,
		ReferenceLinks: []model.ReferenceLink{},
		Subtopics:      subs,
		BlogPost:       model.BlogPost{Written: written},
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func week(id string, topics ...model.LearningTopic) model.WeeklyLearningEntry {
	return model.WeeklyLearningEntry{WeekID: id, Topics: topics}
}

func TestLearning(t *testing.T) {
	sep := time.Date(2025, 9, 30, 10, 0, 0, 0, time.UTC)
	oct := time.Date(2025, 10, 7, 10, 0, 0, 0, time.UTC)

	h := model.LearningHistory{
		"2025-W40": week("2025-W40", learningTopic("a", sep, true, learningTopic("a1", sep, false))),
		"2025-W41": week("2025-W41", learningTopic("b", oct, false)),
		"2025-W38": week("2025-W38", learningTopic("c", sep, true)),
	}
	current := []model.LearningTopic{learningTopic("d", oct.AddDate(0, 0, 7), false)}

	st := Learning(h, current, "2025-W42")

	assert.Equal(t, 3, st.TotalWeeks)
	assert.Equal(t, 5, st.TotalTopics)
	assert.Equal(t, 2, st.TotalBlogPosts)
	assert.Equal(t, 3, st.CurrentWeekStreak)
	assert.Equal(t, 3, st.LongestWeekStreak)
	assert.Equal(t, model.MonthTopicCount{Total: 3, Completed: 2}, st.TopicsByMonth["2025-09"])
	assert.Equal(t, model.MonthTopicCount{Total: 2, Completed: 0}, st.TopicsByMonth["2025-10"])
	assert.Equal(t, model.WeekTopicCount{Total: 2, Completed: 1}, st.TopicsByWeek["2025-W40"])
}

func TestLearning_StaleStreakAndNoDoubleCount(t *testing.T) {
	at := time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)
	h := model.LearningHistory{
		"2025-W01": week("2025-W01", learningTopic("x", at, false)),
		"2025-W02": week("2025-W02", learningTopic("y", at, false)),
	}

	st := Learning(h, []model.LearningTopic{learningTopic("y", at, false)}, "2025-W02")
	assert.Equal(t, 2, st.TotalTopics)
	assert.Equal(t, 2, st.CurrentWeekStreak)

	st = Learning(h, []model.LearningTopic{}, "2025-W10")
	assert.Equal(t, 0, st.CurrentWeekStreak)
	assert.Equal(t, 2, st.LongestWeekStreak)
}

func TestLearning_Empty(t *testing.T) {
	st := Learning(model.LearningHistory{}, nil, "2025-W01")
	assert.Zero(t, st.TotalTopics)
	assert.NotNil(t, st.TopicsByMonth)
	assert.NotNil(t, st.TopicsByWeek)
}
