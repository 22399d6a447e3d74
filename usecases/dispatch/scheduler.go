package dispatch

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/aaroniusdersiebte/DBM/logstream"
	"github.com/aaroniusdersiebte/DBM/middleware"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/services"
)

// Scheduler drives time_based triggers from their cron expressions. The
// trigger set is captured when the bot session starts; editing a cron
// expression takes effect on the next session start (the trigger body is
// still re-read on every tick).
type Scheduler struct {
	cron             *cron.Cron
	botConfigService services.BotConfigService
	dispatchUseCase  *DispatchUseCase
	alerts           *middleware.ErrorAlertMiddleware
	logs             *logstream.Stream
}

func NewScheduler(
	botConfigService services.BotConfigService,
	dispatchUseCase *DispatchUseCase,
	alerts *middleware.ErrorAlertMiddleware,
	logs *logstream.Stream,
) *Scheduler {
	return &Scheduler{
		botConfigService: botConfigService,
		dispatchUseCase:  dispatchUseCase,
		alerts:           alerts,
		logs:             logs,
	}
}

// Start registers every time_based trigger and begins ticking. A trigger
// with an invalid cron expression is logged and skipped.
func (s *Scheduler) Start(ctx context.Context) {
	s.Stop()
	s.cron = cron.New()

	config := s.botConfigService.LoadConfig()
	registered := 0
	for _, trigger := range config.Triggers {
		if trigger.Type != models.TriggerTypeTimeBased || trigger.CronExpression == "" {
			continue
		}

		triggerID := trigger.ID
		tick := s.alerts.WrapBackgroundTask(fmt.Sprintf("time trigger %s", trigger.Name), func() error {
			return s.dispatchUseCase.ProcessTimeTrigger(ctx, triggerID)
		})
		_, err := s.cron.AddFunc(trigger.CronExpression, func() {
			_ = tick()
		})
		if err != nil {
			s.logs.Error(
				fmt.Sprintf("Invalid cron expression for trigger %s: %s", trigger.Name, trigger.CronExpression),
				err.Error(),
			)
			continue
		}
		registered++
	}

	if registered > 0 {
		s.logs.Info(fmt.Sprintf("Scheduler started with %d time-based triggers", registered), nil)
	}
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}
