package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"dailyfocus/local-app/src/pkg/clock"
	"dailyfocus/local-app/src/pkg/config"
	"dailyfocus/local-app/src/pkg/data"
	"dailyfocus/local-app/src/pkg/event"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/metrics"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/notify"
	"dailyfocus/local-app/src/pkg/rollover"
	"dailyfocus/local-app/src/pkg/storage"
)

// app holds every long-lived component of a running instance.
type app struct {
	cfg       *model.Config
	logger    *log.Logger
	data      *data.DataManager
	recorder  *metrics.Recorder
	scheduler *rollover.Scheduler
	reminder  *notify.Reminder
	cancel    context.CancelFunc
}

// bootstrap loads the configuration and opens storage. With background set
// it also starts the rollover scheduler and the Must-Do reminder, writing
// reminders to out.
func bootstrap(configPath string, background bool, out io.Writer) (*app, error) {
	if err := config.ConfigLoad(configPath); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()

	logger, err := log.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger, logging disabled: %v\n", err)
		logger = log.NewNopLogger()
	}
	ctx := context.Background()
	logger.Info(ctx, "Application started", log.Fields{"config": cfg})

	gateway, err := storage.Open(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage", log.Fields{"error": err})
		logger.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info(ctx, "Storage initialized", nil)

	dataManager, err := data.NewDataManager(gateway, clock.RealClock{}, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize data manager", log.Fields{"error": err})
		gateway.Close()
		logger.Close()
		return nil, fmt.Errorf("failed to initialize data manager: %w", err)
	}
	logger.Info(ctx, "Data manager initialized", nil)

	a := &app{cfg: cfg, logger: logger, data: dataManager}
	a.recorder = metrics.NewRecorder(logger)
	a.recorder.Subscribe(dataManager.EventManager)
	for _, list := range []model.TaskList{model.TodayList, model.MustDoList} {
		if tasks, err := dataManager.TaskManager.Tasks(list); err == nil {
			a.recorder.ObserveTasks(list, tasks)
		}
	}
	a.recorder.ObserveTopics(dataManager.TopicManager.Topics())

	if background {
		if err := a.startBackground(out); err != nil {
			a.close()
			return nil, err
		}
	}
	return a, nil
}

func (a *app) startBackground(out io.Writer) error {
	daily, weekly, err := config.CheckIntervals(a.cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	dm := a.data
	a.scheduler = rollover.NewScheduler(clock.RealClock{}, daily, weekly,
		func(now time.Time) { dm.CheckDay(now) },
		func(now time.Time) { dm.CheckWeek(now) },
		a.logger)
	a.scheduler.Start(ctx)

	mustDo := func() []model.Task {
		tasks, err := dm.TaskManager.Tasks(model.MustDoList)
		if err != nil {
			return nil
		}
		return tasks
	}
	notifier := notify.Multi{notify.NewWriterNotifier(out), notify.NewLogNotifier(a.logger)}
	a.reminder = notify.NewReminder(notifier, mustDo, dm.SettingsManager.Settings().NotifyInterval,
		a.cfg.NotificationsEnabled, dm.EventManager, a.logger)
	dm.EventManager.Subscribe(event.SettingsChanged, func(e event.Event) {
		if s, ok := e.Data.(model.Settings); ok {
			a.reminder.SetInterval(s.NotifyInterval)
		}
	})
	a.reminder.Start(ctx)

	a.logger.Info(ctx, "Background workers started", nil)
	return nil
}

// close stops the workers, flushes metrics and closes storage and logs.
func (a *app) close() {
	ctx := context.Background()
	if a.cancel != nil {
		a.cancel()
	}
	if a.reminder != nil {
		a.reminder.Stop()
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if err := a.data.Close(); err != nil {
		a.logger.Error(ctx, "Failed to close storage", log.Fields{"error": err})
	}
	if a.cfg.MetricsFile != "" {
		if err := a.recorder.WriteFile(a.cfg.MetricsFile); err != nil {
			a.logger.Error(ctx, "Failed to write metrics", log.Fields{"error": err})
		}
	}
	a.logger.Info(ctx, "Application shutting down", nil)
	if err := a.logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close logger: %v\n", err)
	}
}
