// Package session manages the lifecycle of one bot run: the Discord
// gateway connection, the trigger scheduler, and the OBS / Streamer.bot
// control connections that live exactly as long as the run does.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/aaroniusdersiebte/DBM/clients"
	"github.com/aaroniusdersiebte/DBM/clients/discord"
	"github.com/aaroniusdersiebte/DBM/handlers"
	"github.com/aaroniusdersiebte/DBM/logstream"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/services"
	"github.com/aaroniusdersiebte/DBM/usecases/bingo"
	"github.com/aaroniusdersiebte/DBM/usecases/dispatch"
)

// Manager serializes start/stop transitions. Start while running first
// tears down the previous run, so the panel's start button doubles as a
// restart.
type Manager struct {
	mu sync.Mutex

	botConfigService services.BotConfigService
	bingoService     services.BingoDataService
	discordClient    *discord.Client
	dispatchUseCase  *dispatch.DispatchUseCase
	bingoUseCase     *bingo.BingoUseCase
	scheduler        *dispatch.Scheduler
	obsClient        clients.OBSClient
	streamerbot      clients.StreamerbotClient
	logs             *logstream.Stream

	events *handlers.DiscordEventsHandler
	cancel context.CancelFunc
}

func NewManager(
	botConfigService services.BotConfigService,
	bingoService services.BingoDataService,
	discordClient *discord.Client,
	dispatchUseCase *dispatch.DispatchUseCase,
	bingoUseCase *bingo.BingoUseCase,
	scheduler *dispatch.Scheduler,
	obsClient clients.OBSClient,
	streamerbot clients.StreamerbotClient,
	logs *logstream.Stream,
) *Manager {
	return &Manager{
		botConfigService: botConfigService,
		bingoService:     bingoService,
		discordClient:    discordClient,
		dispatchUseCase:  dispatchUseCase,
		bingoUseCase:     bingoUseCase,
		scheduler:        scheduler,
		obsClient:        obsClient,
		streamerbot:      streamerbot,
		logs:             logs,
	}
}

// Start brings up a bot run from the current persisted configuration.
// The OBS and Streamer.bot connections are best effort; the run comes up
// without them and their actions fail per-dispatch instead.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	config := m.botConfigService.LoadConfig()
	if config.Token == "" {
		m.logs.Error("Cannot start bot: no token configured", nil)
		return fmt.Errorf("no bot token configured")
	}

	events, err := handlers.NewDiscordEventsHandler(
		config.Token,
		m.discordClient,
		m.dispatchUseCase,
		m.bingoUseCase,
		m.bingoService,
		m.botConfigService,
		m.logs,
	)
	if err != nil {
		m.logs.Error("Failed to create Discord session", err.Error())
		return err
	}

	m.discordClient.Bind(events.Session())
	if err := events.StartBot(); err != nil {
		m.discordClient.Unbind()
		m.logs.Error("Failed to connect to Discord", err.Error())
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	m.events = events
	m.cancel = cancel

	m.scheduler.Start(runCtx)
	m.connectControlClients(runCtx, config)

	m.logs.Success("Bot started", nil)
	return nil
}

// Stop tears down the current run. Stopping an already stopped manager
// is a no-op.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	if m.events == nil {
		return
	}

	m.scheduler.Stop()
	m.obsClient.Close()
	m.streamerbot.Close()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.events.StopBot()
	m.discordClient.Unbind()
	m.events = nil

	m.logs.Info("Bot stopped", nil)
}

// Status reports the current run state for the operator panel.
func (m *Manager) Status() models.BotStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := models.BotStatus{}
	if m.events == nil {
		return status
	}
	status.Connected = true
	status.Ready = m.events.IsReady()

	if user, err := m.discordClient.GetBotUser(); err == nil {
		status.User = user.Username
	}
	return status
}

func (m *Manager) connectControlClients(ctx context.Context, config *models.BotConfig) {
	if config.OBSWebSocketURL != "" {
		if err := m.obsClient.Connect(ctx, config.OBSWebSocketURL); err != nil {
			log.Printf("⚠️ OBS connection failed: %v", err)
			m.logs.Warn("OBS WebSocket not reachable", err.Error())
		} else {
			m.logs.Info("Connected to OBS WebSocket", nil)
		}
	}
	if config.StreamerbotURL != "" {
		if err := m.streamerbot.Connect(ctx, config.StreamerbotURL); err != nil {
			log.Printf("⚠️ Streamer.bot connection failed: %v", err)
			m.logs.Warn("Streamer.bot WebSocket not reachable", err.Error())
		} else {
			m.logs.Info("Connected to Streamer.bot WebSocket", nil)
		}
	}
}
