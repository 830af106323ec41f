package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfocus/local-app/src/pkg/event"
	"dailyfocus/local-app/src/pkg/model"
)

func TestSettingsManager_ClampsInterval(t *testing.T) {
	m, _ := newTestManager(t)
	sm := m.SettingsManager

	s := sm.Update(model.Settings{NotifyInterval: 99})
	assert.Equal(t, 24, s.NotifyInterval)
	assert.Equal(t, 24, sm.Settings().NotifyInterval)

	require.NoError(t, sm.Set("notifyInterval", "0"))
	assert.Equal(t, 1, sm.Settings().NotifyInterval)
}

func TestSettingsManager_Set(t *testing.T) {
	m, _ := newTestManager(t)
	sm := m.SettingsManager

	var changed int
	m.EventManager.Subscribe(event.SettingsChanged, func(event.Event) { changed++ })

	require.NoError(t, sm.Set("autoCarryOver", "false"))
	m.EventManager.Wait()
	require.NoError(t, sm.Set("darkMode", "true"))
	m.EventManager.Wait()
	require.NoError(t, sm.Set("autoCreateNewWeek", "false"))
	m.EventManager.Wait()

	assert.False(t, sm.Settings().AutoCarryOver)
	assert.True(t, sm.Settings().DarkMode)
	assert.False(t, sm.LearningSettings().AutoCreateNewWeek)
	assert.Equal(t, 1, sm.LearningSettings().WeekStartDay)
	assert.Equal(t, 3, changed)

	assert.Error(t, sm.Set("darkMode", "maybe"))
	assert.Error(t, sm.Set("fontSize", "12"))
}

func TestClampNotifyInterval(t *testing.T) {
	assert.Equal(t, 1, ClampNotifyInterval(-3))
	assert.Equal(t, 7, ClampNotifyInterval(7))
	assert.Equal(t, 24, ClampNotifyInterval(25))
}
