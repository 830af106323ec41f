package data

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"dailyfocus/local-app/src/pkg/event"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

const (
	MinNotifyInterval = 1
	MaxNotifyInterval = 24
)

// SettingsManager handles the task and learning preferences
type SettingsManager struct {
	managerBase
}

func (sm *SettingsManager) Settings() model.Settings {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.gateway.Settings()
}

func (sm *SettingsManager) LearningSettings() model.LearningSettings {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.gateway.LearningSettings()
}

// Update stores s with notifyInterval clamped into 1..24 and returns what was stored.
func (sm *SettingsManager) Update(s model.Settings) model.Settings {
	s.NotifyInterval = ClampNotifyInterval(s.NotifyInterval)

	sm.mu.Lock()
	sm.gateway.SetSettings(s)
	sm.mu.Unlock()

	sm.logger.Info(context.Background(), "Settings updated", log.Fields{"settings": s})
	sm.events.Publish(event.Event{Type: event.SettingsChanged, Data: s})
	return s
}

func (sm *SettingsManager) UpdateLearning(s model.LearningSettings) model.LearningSettings {
	// Weeks always start on Monday.
	s.WeekStartDay = 1

	sm.mu.Lock()
	sm.gateway.SetLearningSettings(s)
	sm.mu.Unlock()

	sm.logger.Info(context.Background(), "Learning settings updated", log.Fields{"settings": s})
	sm.events.Publish(event.Event{Type: event.SettingsChanged, Data: s})
	return s
}

// Set changes one setting by name, as typed on the command line.
func (sm *SettingsManager) Set(name, value string) error {
	switch strings.ToLower(name) {
	case "autocarryover", "autocreatenewweek", "darkmode", "autostart":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		return sm.setBool(strings.ToLower(name), b)
	case "notifyinterval":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		s := sm.Settings()
		s.NotifyInterval = n
		sm.Update(s)
		return nil
	default:
		return fmt.Errorf("unknown setting: %s", name)
	}
}

func (sm *SettingsManager) setBool(name string, b bool) error {
	if name == "autocreatenewweek" {
		ls := sm.LearningSettings()
		ls.AutoCreateNewWeek = b
		sm.UpdateLearning(ls)
		return nil
	}
	s := sm.Settings()
	switch name {
	case "autocarryover":
		s.AutoCarryOver = b
	case "darkmode":
		s.DarkMode = b
	case "autostart":
		s.AutoStart = b
	}
	sm.Update(s)
	return nil
}

// ClampNotifyInterval keeps hours within 1..24.
func ClampNotifyInterval(hours int) int {
	if hours < MinNotifyInterval {
		return MinNotifyInterval
	}
	if hours > MaxNotifyInterval {
		return MaxNotifyInterval
	}
	return hours
}
