package storage

// Key addresses one value of the persisted store.
type Key string

const (
	KeyTodayTasks         Key = "todayTasks"
	KeyMustDoTasks        Key = "mustDoTasks"
	KeyTaskHistory        Key = "taskHistory"
	KeyLastDate           Key = "lastDate"
	KeySettings           Key = "settings"
	KeyCurrentWeekTopics  Key = "currentWeekTopics"
	KeyLearningHistory    Key = "learningHistory"
	KeyLastWeekID         Key = "lastWeekId"
	KeyLearningSettings   Key = "learningSettings"
	KeyLearningStatistics Key = "learningStatistics"

	// keyLegacyTodayTasks held the Today list before it was renamed.
	keyLegacyTodayTasks Key = "dailyTasks"
)

// AppDataKeys lists the keys replaced by Gateway.SetAll.
func AppDataKeys() []Key {
	return []Key{KeyTodayTasks, KeyMustDoTasks, KeyTaskHistory, KeyLastDate, KeySettings}
}

// LearningDataKeys lists the keys replaced by Gateway.SetAllLearningData.
func LearningDataKeys() []Key {
	return []Key{KeyCurrentWeekTopics, KeyLearningHistory, KeyLastWeekID, KeyLearningSettings, KeyLearningStatistics}
}
