package session

import (
	"fmt"
	"strconv"

	"dailyfocus/local-app/src/pkg/model"
)

func optionalLimit(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid limit %q", args[0])
	}
	return n, nil
}

func handleHistoryList(s *Session, cmd model.Command) (interface{}, error) {
	limit, err := optionalLimit(cmd.Args)
	if err != nil {
		return nil, err
	}
	return HistoryResult{Entries: s.DataManager.HistoryManager.Recent(limit)}, nil
}

func handleHistoryShow(s *Session, cmd model.Command) (interface{}, error) {
	e, ok := s.DataManager.HistoryManager.Entry(cmd.Args[0])
	if !ok {
		return nil, fmt.Errorf("no history for %s", cmd.Args[0])
	}
	return e, nil
}

func handleHistoryWeeks(s *Session, cmd model.Command) (interface{}, error) {
	limit, err := optionalLimit(cmd.Args)
	if err != nil {
		return nil, err
	}
	return WeeksResult{Weeks: s.DataManager.HistoryManager.RecentWeeks(limit)}, nil
}

func handleHistoryWeek(s *Session, cmd model.Command) (interface{}, error) {
	w, ok := s.DataManager.HistoryManager.Week(cmd.Args[0])
	if !ok {
		return nil, fmt.Errorf("no archived week %s", cmd.Args[0])
	}
	return w, nil
}

// handleStatsTasks defaults to the last 7 days.
func handleStatsTasks(s *Session, cmd model.Command) (interface{}, error) {
	days := 7
	if len(cmd.Args) > 0 {
		n, err := model.ParseDateRange(cmd.Args[0])
		if err != nil {
			return nil, err
		}
		days = n
	}
	return s.DataManager.HistoryManager.TaskStats(days), nil
}

func handleStatsLearning(s *Session, cmd model.Command) (interface{}, error) {
	return s.DataManager.HistoryManager.LearningStats(), nil
}
