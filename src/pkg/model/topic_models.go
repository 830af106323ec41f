package model

import "time"

// ReferenceLink is a URL attached to a learning topic.
type ReferenceLink struct {
	ID  float64 `json:"id" yaml:"id"`
	URL string  `json:"url" yaml:"url"`
}

// BlogPost tracks whether a write-up exists for a topic.
type BlogPost struct {
	Written bool   `json:"written" yaml:"written"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
}

// LearningTopic is a node of a learning topic tree.
type LearningTopic struct {
	ID             float64         `json:"id" yaml:"id"`
	Title          string          `json:"title" yaml:"title"`
	Notes          string          `json:"notes" yaml:"notes"`
	ReferenceLinks []ReferenceLink `json:"referenceLinks" yaml:"referenceLinks"`
	Subtopics      []LearningTopic `json:"subtopics" yaml:"subtopics"`
	Expanded       bool            `json:"expanded" yaml:"expanded"`
	BlogPost       BlogPost        `json:"blogPost" yaml:"blogPost"`
	CreatedAt      time.Time       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt" yaml:"updatedAt"`
}

// HasSubtopics reports whether the topic is not a leaf.
func (t LearningTopic) HasSubtopics() bool {
	return len(t.Subtopics) > 0
}

// WeeklyLearningEntry is the archived topic list of one ISO week.
type WeeklyLearningEntry struct {
	WeekID    string          `json:"weekId" yaml:"weekId"`
	WeekStart string          `json:"weekStart" yaml:"weekStart"`
	WeekEnd   string          `json:"weekEnd" yaml:"weekEnd"`
	Topics    []LearningTopic `json:"topics" yaml:"topics"`
	Total     int             `json:"total" yaml:"total"`
}

// LearningHistory maps a week id to its archived entry.
type LearningHistory map[string]WeeklyLearningEntry

// LearningSettings are the preferences of the learning tracker.
type LearningSettings struct {
	AutoCreateNewWeek bool `json:"autoCreateNewWeek" yaml:"autoCreateNewWeek"`
	WeekStartDay      int  `json:"weekStartDay" yaml:"weekStartDay" validate:"eq=1"`
}

// DefaultLearningSettings returns the learning settings used when nothing is stored yet.
func DefaultLearningSettings() LearningSettings {
	return LearningSettings{AutoCreateNewWeek: true, WeekStartDay: 1}
}

// MonthTopicCount is the per-month bucket of LearningStatistics.
type MonthTopicCount struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
}

// WeekTopicCount is the per-week bucket of LearningStatistics.
type WeekTopicCount struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	BlogPosts int `json:"blogPosts" yaml:"blogPosts"`
}

// LearningStatistics summarises the learning tracker across all weeks.
type LearningStatistics struct {
	TotalTopics       int                        `json:"totalTopics" yaml:"totalTopics"`
	TotalBlogPosts    int                        `json:"totalBlogPosts" yaml:"totalBlogPosts"`
	TotalWeeks        int                        `json:"totalWeeks" yaml:"totalWeeks"`
	CurrentWeekStreak int                        `json:"currentWeekStreak" yaml:"currentWeekStreak"`
	LongestWeekStreak int                        `json:"longestWeekStreak" yaml:"longestWeekStreak"`
	TopicsByMonth     map[string]MonthTopicCount `json:"topicsByMonth" yaml:"topicsByMonth"`
	TopicsByWeek      map[string]WeekTopicCount  `json:"topicsByWeek" yaml:"topicsByWeek"`
}

// DefaultLearningStatistics returns empty statistics with non-nil maps.
func DefaultLearningStatistics() LearningStatistics {
	return LearningStatistics{
		TopicsByMonth: map[string]MonthTopicCount{},
		TopicsByWeek:  map[string]WeekTopicCount{},
	}
}

// LearningData is the complete learning-side state, as imported or exported in one piece.
type LearningData struct {
	CurrentWeekTopics  []LearningTopic    `json:"currentWeekTopics" yaml:"currentWeekTopics"`
	LearningHistory    LearningHistory    `json:"learningHistory" yaml:"learningHistory"`
	LastWeekID         string             `json:"lastWeekId" yaml:"lastWeekId"`
	LearningSettings   LearningSettings   `json:"learningSettings" yaml:"learningSettings"`
	LearningStatistics LearningStatistics `json:"learningStatistics" yaml:"learningStatistics"`
}
