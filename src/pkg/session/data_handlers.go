package session

import (
	"context"
	"errors"
	"fmt"

	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/storage"
)

// parseExportOptions reads the optional status, range and subtasks arguments in any order.
func parseExportOptions(args []string) (model.ExportOptions, error) {
	opts := model.DefaultExportOptions()
	for _, arg := range args {
		switch arg {
		case "subtasks":
			opts.IncludeSubtasks = true
			continue
		case "nosubtasks":
			opts.IncludeSubtasks = false
			continue
		}
		if status, err := model.ParseExportStatus(arg); err == nil {
			opts.Status = status
			continue
		}
		days, err := model.ParseDateRange(arg)
		if err != nil {
			return opts, fmt.Errorf("invalid export option %q", arg)
		}
		opts.DateRange = days
	}
	return opts, nil
}

func formatArg(cmd model.Command) string {
	if len(cmd.Args) > 1 {
		return cmd.Args[1]
	}
	return storage.FormatFromPath(cmd.Args[0])
}

func handleExportMarkdown(s *Session, cmd model.Command) (interface{}, error) {
	opts, err := parseExportOptions(cmd.Args)
	if err != nil {
		return nil, err
	}
	dir := "."
	if cfg := s.DataManager.Config; cfg != nil && cfg.ExportDir != "" {
		dir = cfg.ExportDir
	}
	path, err := s.DataManager.ExportMarkdownFile(dir, opts)
	if err != nil {
		return nil, err
	}
	return Message(fmt.Sprintf("Exported to %s", path)), nil
}

func handleExportData(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DataManager.DataExport(cmd.Args[0], formatArg(cmd)); err != nil {
		return nil, err
	}
	return Message(fmt.Sprintf("Data exported to %s", cmd.Args[0])), nil
}

func handleImportData(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DataManager.DataImport(cmd.Args[0], formatArg(cmd)); err != nil {
		return nil, err
	}
	return Message(fmt.Sprintf("Data imported from %s", cmd.Args[0])), nil
}

func handleSettingsShow(s *Session, cmd model.Command) (interface{}, error) {
	sm := s.DataManager.SettingsManager
	return SettingsResult{Settings: sm.Settings(), LearningSettings: sm.LearningSettings()}, nil
}

func handleSettingsSet(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DataManager.SettingsManager.Set(cmd.Args[0], cmd.Args[1]); err != nil {
		return nil, err
	}
	return Message(fmt.Sprintf("%s updated", cmd.Args[0])), nil
}

func handleSystemRollover(s *Session, cmd model.Command) (interface{}, error) {
	now := s.DataManager.Now()
	day := s.DataManager.CheckDay(now)
	week := s.DataManager.CheckWeek(now)
	s.logger.Info(context.Background(), "Manual rollover check", log.Fields{"day": day.Due, "week": week.Due})
	return RolloverResult{
		DayDue:       day.Due,
		DayArchived:  day.Archived,
		WeekDue:      week.Due,
		WeekArchived: week.Archived,
	}, nil
}

func handleSystemExit(s *Session, cmd model.Command) (interface{}, error) {
	return nil, ErrExitRequested
}

// IsExit reports whether err asks the client to stop.
func IsExit(err error) bool {
	return errors.Is(err, ErrExitRequested)
}
