package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaroniusdersiebte/DBM/clients/discord"
	"github.com/aaroniusdersiebte/DBM/logstream"
	"github.com/aaroniusdersiebte/DBM/middleware"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/services"
)

func newSchedulerFixture() (*Scheduler, *services.MockBotConfigService, *logstream.Stream) {
	botConfigService := &services.MockBotConfigService{}
	logs := logstream.New()
	useCase := NewDispatchUseCase(
		botConfigService, &discord.MockDiscordClient{}, nil, nil, nil, logs)
	scheduler := NewScheduler(
		botConfigService, useCase, middleware.NewErrorAlertMiddleware(logs), logs)
	return scheduler, botConfigService, logs
}

func TestSchedulerStart_RegistersOnlyValidTimeTriggers(t *testing.T) {
	scheduler, botConfigService, _ := newSchedulerFixture()

	botConfigService.On("LoadConfig").Return(&models.BotConfig{
		Triggers: []models.Trigger{
			{ID: "trg_1", Type: models.TriggerTypeTimeBased, Name: "hourly", CronExpression: "0 * * * *"},
			{ID: "trg_2", Type: models.TriggerTypeTimeBased, Name: "broken", CronExpression: "not a cron"},
			{ID: "trg_3", Type: models.TriggerTypeMessagePattern, Name: "greeting", Pattern: "hallo"},
			{ID: "trg_4", Type: models.TriggerTypeTimeBased, Name: "no schedule"},
		},
	})

	scheduler.Start(context.Background())
	defer scheduler.Stop()

	assert.Len(t, scheduler.cron.Entries(), 1)
}

func TestSchedulerTick_FiresTimeTrigger(t *testing.T) {
	scheduler, botConfigService, logs := newSchedulerFixture()

	botConfigService.On("LoadConfig").Return(&models.BotConfig{
		Triggers: []models.Trigger{
			{ID: "trg_1", Type: models.TriggerTypeTimeBased, Name: "announce", CronExpression: "@hourly"},
		},
	})

	scheduler.Start(context.Background())
	defer scheduler.Stop()

	entries := scheduler.cron.Entries()
	require.Len(t, entries, 1)
	entries[0].Job.Run()

	fired := false
	for _, entry := range logs.Entries() {
		if entry.Message == "Time trigger fired: announce" {
			fired = true
		}
	}
	assert.True(t, fired)
}
