package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfocus/local-app/src/pkg/model"
)

const validAppData = `{
	"todayTasks": [
		{"id": 1.5, "text": "write", "completed": false, "expanded": true, "created_at": "2024-01-01T10:00:00Z",
		 "subtasks": [{"id": 2, "text": "outline", "completed": true, "expanded": false, "subtasks": [],
		               "created_at": "2024-01-01T10:00:00Z", "finished_at": "2024-01-01T11:00:00.123Z"}]}
	],
	"mustDoTasks": [],
	"taskHistory": {"2024-01-01": {"date": "2024-01-01", "tasks": [], "completed": 0, "total": 0}},
	"lastDate": "2024-01-02",
	"settings": {"autoCarryOver": true, "notifyInterval": 3, "darkMode": false, "autoStart": false}
}`

func TestAppData_Valid(t *testing.T) {
	assert.Empty(t, AppData([]byte(validAppData)))
	assert.True(t, HasAppData([]byte(validAppData)))
	assert.False(t, HasLearningData([]byte(validAppData)))
}

func TestAppData_ReportsEveryProblem(t *testing.T) {
	raw := `{
		"todayTasks": [{"id": "x", "text": " ", "completed": false, "expanded": false,
		                "subtasks": [{"id": 2, "completed": "no", "expanded": false, "subtasks": []}]}],
		"taskHistory": {"yesterday": {"date": "x", "tasks": {}, "completed": 0, "total": 0}},
		"lastDate": 5,
		"settings": {"autoCarryOver": true, "notifyInterval": 3, "darkMode": false}
	}`

	vs := AppData([]byte(raw))

	paths := map[string]Kind{}
	for _, v := range vs {
		paths[v.Path] = v.Expected
	}
	assert.Equal(t, KindNumber, paths["todayTasks[0].id"])
	assert.Equal(t, KindString, paths["todayTasks[0].text"])
	assert.Equal(t, KindString, paths["todayTasks[0].subtasks[0].text"])
	assert.Equal(t, KindBoolean, paths["todayTasks[0].subtasks[0].completed"])
	assert.Equal(t, KindArray, paths["mustDoTasks"])
	assert.Contains(t, paths, "taskHistory.yesterday")
	assert.Equal(t, KindArray, paths["taskHistory.yesterday.tasks"])
	assert.Equal(t, KindString, paths["lastDate"])
	assert.Equal(t, KindBoolean, paths["settings.autoStart"])
	require.Error(t, vs.Err())
	assert.Contains(t, vs.Error(), "validation error(s)")
}

func TestAppData_NotAnObject(t *testing.T) {
	vs := AppData([]byte(`[1,2]`))
	require.Len(t, vs, 1)
	assert.Equal(t, "$", vs[0].Path)

	vs = AppData([]byte(`{`))
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "invalid JSON")
}

func TestLearningData(t *testing.T) {
	valid := `{
		"currentWeekTopics": [{"id": 1, "title": "Go", "notes": "", "referenceLinks": [{"id": 2, "url": "https://go.dev"}],
			"subtopics": [], "expanded": false, "blogPost": {"written": false},
			"createdAt": "2025-10-13T09:00:00Z", "updatedAt": "2025-10-13T09:00:00Z"}],
		"learningHistory": {"2025-W41": {"weekId": "2025-W41", "weekStart": "2025-10-06", "weekEnd": "2025-10-12", "topics": [], "total": 0}},
		"lastWeekId": "2025-W42",
		"learningSettings": {"autoCreateNewWeek": true, "weekStartDay": 1}
	}`
	assert.Empty(t, LearningData([]byte(valid)))
	assert.True(t, HasLearningData([]byte(valid)))

	invalid := `{
		"currentWeekTopics": [{"id": 1, "title": "Go", "notes": "", "referenceLinks": [{"id": 2}],
			"subtopics": [], "expanded": false, "blogPost": {"written": false, "url": 3},
			"createdAt": "yesterday", "updatedAt": "2025-10-13T09:00:00Z"}],
		"learningHistory": {"week 41": {"weekId": "2025-W41", "weekStart": "2025-10-06", "weekEnd": "2025-10-12", "topics": [], "total": 0}},
		"lastWeekId": "2025-42",
		"learningSettings": {"autoCreateNewWeek": true, "weekStartDay": 1}
	}`
	paths := map[string]bool{}
	for _, v := range LearningData([]byte(invalid)) {
		paths[v.Path] = true
	}
	assert.True(t, paths["currentWeekTopics[0].referenceLinks[0].url"])
	assert.True(t, paths["currentWeekTopics[0].blogPost.url"])
	assert.True(t, paths["currentWeekTopics[0].createdAt"])
	assert.True(t, paths["learningHistory.week 41"])
	assert.True(t, paths["lastWeekId"])
}

func TestSettingsRules(t *testing.T) {
	assert.Empty(t, Settings(model.DefaultSettings()))

	s := model.DefaultSettings()
	s.NotifyInterval = 30
	vs := Settings(s)
	require.Len(t, vs, 1)
	assert.Equal(t, "settings.notifyInterval", vs[0].Path)

	ls := model.DefaultLearningSettings()
	ls.WeekStartDay = 0
	vs = LearningSettings(ls)
	require.Len(t, vs, 1)
	assert.Equal(t, "learningSettings.weekStartDay", vs[0].Path)
}
