package validate

import (
	"strings"
	"time"
)

func taskFields() []field {
	return []field{
		{name: "id", kind: KindNumber},
		{name: "text", kind: KindString},
		{name: "completed", kind: KindBoolean},
		{name: "subtasks", kind: KindArray, each: validateTask},
		{name: "expanded", kind: KindBoolean},
		{name: "created_at", kind: KindString, optional: true, each: timestamp},
		{name: "finished_at", kind: KindString, optional: true, each: timestamp},
	}
}

func validateTask(w *walker, path string, v interface{}) {
	w.object(path, v, taskFields())
	if obj, ok := v.(map[string]interface{}); ok {
		if text, ok := obj["text"].(string); ok && strings.TrimSpace(text) == "" {
			w.add(join(path, "text"), KindString, "must not be blank")
		}
	}
}

func validateHistoryEntry(w *walker, path string, key string, v interface{}) {
	w.object(path, v, []field{
		{name: "date", kind: KindString},
		{name: "tasks", kind: KindArray, each: validateTask},
		{name: "completed", kind: KindNumber},
		{name: "total", kind: KindNumber},
	})
}

func validateSettings(w *walker, path string, v interface{}) {
	w.object(path, v, []field{
		{name: "autoCarryOver", kind: KindBoolean},
		{name: "notifyInterval", kind: KindNumber},
		{name: "darkMode", kind: KindBoolean},
		{name: "autoStart", kind: KindBoolean},
	})
}

func validateTopic(w *walker, path string, v interface{}) {
	w.object(path, v, []field{
		{name: "id", kind: KindNumber},
		{name: "title", kind: KindString},
		{name: "notes", kind: KindString},
		{name: "referenceLinks", kind: KindArray, each: validateLink},
		{name: "subtopics", kind: KindArray, each: validateTopic},
		{name: "expanded", kind: KindBoolean},
		{name: "blogPost", kind: KindObject, each: validateBlogPost},
		{name: "createdAt", kind: KindString, each: timestamp},
		{name: "updatedAt", kind: KindString, each: timestamp},
	})
}

func validateLink(w *walker, path string, v interface{}) {
	w.object(path, v, []field{
		{name: "id", kind: KindNumber},
		{name: "url", kind: KindString},
	})
}

func validateBlogPost(w *walker, path string, v interface{}) {
	w.object(path, v, []field{
		{name: "written", kind: KindBoolean},
		{name: "url", kind: KindString, optional: true},
	})
}

func validateWeekEntry(w *walker, path string, key string, v interface{}) {
	w.object(path, v, []field{
		{name: "weekId", kind: KindString},
		{name: "weekStart", kind: KindString},
		{name: "weekEnd", kind: KindString},
		{name: "topics", kind: KindArray, each: validateTopic},
		{name: "total", kind: KindNumber},
	})
}

func validateLearningSettings(w *walker, path string, v interface{}) {
	w.object(path, v, []field{
		{name: "autoCreateNewWeek", kind: KindBoolean},
		{name: "weekStartDay", kind: KindNumber},
	})
}

func validateLearningStatistics(w *walker, path string, v interface{}) {
	w.object(path, v, []field{
		{name: "totalTopics", kind: KindNumber, optional: true},
		{name: "totalBlogPosts", kind: KindNumber, optional: true},
		{name: "totalWeeks", kind: KindNumber, optional: true},
		{name: "currentWeekStreak", kind: KindNumber, optional: true},
		{name: "longestWeekStreak", kind: KindNumber, optional: true},
		{name: "topicsByMonth", kind: KindObject, optional: true},
		{name: "topicsByWeek", kind: KindObject, optional: true},
	})
}

func timestamp(w *walker, path string, v interface{}) {
	s, _ := v.(string)
	if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
		w.add(path, KindString, "invalid timestamp %q", s)
	}
}
