package rollover

import (
	"context"
	"sync"
	"time"

	"dailyfocus/local-app/src/pkg/clock"
	"dailyfocus/local-app/src/pkg/log"
)

// CheckFunc performs one rollover check at now.
type CheckFunc func(now time.Time)

// Scheduler polls the daily and weekly checks on their own tickers.
type Scheduler struct {
	clock       clock.Clock
	daily       time.Duration
	weekly      time.Duration
	checkDaily  CheckFunc
	checkWeekly CheckFunc
	logger      *log.Logger
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
}

// NewScheduler returns a stopped scheduler.
func NewScheduler(c clock.Clock, daily, weekly time.Duration, checkDaily, checkWeekly CheckFunc, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Scheduler{
		clock:       c,
		daily:       daily,
		weekly:      weekly,
		checkDaily:  checkDaily,
		checkWeekly: checkWeekly,
		logger:      logger,
	}
}

// Start runs both checks once, synchronously, then keeps polling until ctx
// is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.logger.Info(ctx, "Starting rollover scheduler", log.Fields{"daily": s.daily.String(), "weekly": s.weekly.String()})
	s.checkDaily(s.clock.Now())
	s.checkWeekly(s.clock.Now())

	s.wg.Add(2)
	go s.loop(ctx, s.daily, s.checkDaily)
	go s.loop(ctx, s.weekly, s.checkWeekly)
}

func (s *Scheduler) loop(ctx context.Context, every time.Duration, check CheckFunc) {
	defer s.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			check(s.clock.Now())
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends polling and waits for a running check to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.logger.Info(context.Background(), "Rollover scheduler stopped", nil)
}
