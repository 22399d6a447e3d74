package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/aaroniusdersiebte/DBM/logstream"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/services"
	"github.com/aaroniusdersiebte/DBM/store"
	"github.com/aaroniusdersiebte/DBM/usecases/bingo"
)

// SessionController is the narrow slice of the session manager the
// dashboard needs; *session.Manager satisfies it. Holding the interface
// here keeps handlers free of a session import (session imports
// handlers for DiscordEventsHandler).
type SessionController interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context)
	Status() models.BotStatus
}

// DashboardAPIHandler is the operation layer behind the control panel
// HTTP surface. It stitches the session manager, the config services and
// the bingo engine together for the panel.
type DashboardAPIHandler struct {
	sessionManager   SessionController
	botConfigService services.BotConfigService
	bingoService     services.BingoDataService
	bingoUseCase     *bingo.BingoUseCase
	appSettingsRepo  *store.AppSettingsRepository
	logs             *logstream.Stream
}

func NewDashboardAPIHandler(
	sessionManager SessionController,
	botConfigService services.BotConfigService,
	bingoService services.BingoDataService,
	bingoUseCase *bingo.BingoUseCase,
	appSettingsRepo *store.AppSettingsRepository,
	logs *logstream.Stream,
) *DashboardAPIHandler {
	return &DashboardAPIHandler{
		sessionManager:   sessionManager,
		botConfigService: botConfigService,
		bingoService:     bingoService,
		bingoUseCase:     bingoUseCase,
		appSettingsRepo:  appSettingsRepo,
		logs:             logs,
	}
}

// StartBot brings the bot up from the persisted configuration.
func (h *DashboardAPIHandler) StartBot(ctx context.Context) (models.BotStatus, error) {
	log.Printf("🚀 Bot start requested")
	if err := h.sessionManager.Start(ctx); err != nil {
		return models.BotStatus{}, fmt.Errorf("failed to start bot: %w", err)
	}
	return h.sessionManager.Status(), nil
}

// StopBot tears the current bot run down.
func (h *DashboardAPIHandler) StopBot(ctx context.Context) models.BotStatus {
	log.Printf("🛑 Bot stop requested")
	h.sessionManager.Stop(ctx)
	return h.sessionManager.Status()
}

func (h *DashboardAPIHandler) BotStatus() models.BotStatus {
	return h.sessionManager.Status()
}

// GetBotConfig returns the persisted bot configuration with the token
// decrypted, for the local operator panel only.
func (h *DashboardAPIHandler) GetBotConfig() *models.BotConfig {
	return h.botConfigService.LoadConfig()
}

// SaveBotConfig replaces the persisted bot configuration wholesale. An
// empty token in the request keeps the stored one so the panel never has
// to echo the secret back.
func (h *DashboardAPIHandler) SaveBotConfig(config *models.BotConfig) error {
	if config.Token == "" {
		config.Token = h.botConfigService.LoadConfig().Token
	}
	if err := h.botConfigService.SaveConfig(config); err != nil {
		return fmt.Errorf("failed to save bot config: %w", err)
	}
	h.logs.Info("Bot configuration saved", nil)
	return nil
}

func (h *DashboardAPIHandler) GetAppSettings() *models.AppSettings {
	return h.appSettingsRepo.Load()
}

func (h *DashboardAPIHandler) SaveAppSettings(settings *models.AppSettings) error {
	if err := h.appSettingsRepo.Save(settings); err != nil {
		return fmt.Errorf("failed to save app settings: %w", err)
	}
	h.logs.Info("App settings saved", nil)
	return nil
}

func (h *DashboardAPIHandler) ListTriggers() []models.Trigger {
	return h.botConfigService.LoadConfig().Triggers
}

func (h *DashboardAPIHandler) CreateTrigger(trigger models.Trigger) (*models.Trigger, error) {
	created, err := h.botConfigService.AddTrigger(trigger)
	if err != nil {
		return nil, err
	}
	h.logs.Success(fmt.Sprintf("Trigger created: %s", created.Name), nil)
	return created, nil
}

func (h *DashboardAPIHandler) UpdateTrigger(id string, trigger models.Trigger) (*models.Trigger, error) {
	updated, err := h.botConfigService.UpdateTrigger(id, trigger)
	if err != nil {
		return nil, err
	}
	h.logs.Info(fmt.Sprintf("Trigger updated: %s", updated.Name), nil)
	return updated, nil
}

func (h *DashboardAPIHandler) DeleteTrigger(id string) error {
	if err := h.botConfigService.DeleteTrigger(id); err != nil {
		return err
	}
	h.logs.Info(fmt.Sprintf("Trigger deleted: %s", id), nil)
	return nil
}

func (h *DashboardAPIHandler) ListActions() []models.Action {
	return h.botConfigService.LoadConfig().Actions
}

func (h *DashboardAPIHandler) CreateAction(action models.Action) (*models.Action, error) {
	created, err := h.botConfigService.AddAction(action)
	if err != nil {
		return nil, err
	}
	h.logs.Success(fmt.Sprintf("Action created: %s", created.Name), nil)
	return created, nil
}

func (h *DashboardAPIHandler) UpdateAction(id string, action models.Action) (*models.Action, error) {
	updated, err := h.botConfigService.UpdateAction(id, action)
	if err != nil {
		return nil, err
	}
	h.logs.Info(fmt.Sprintf("Action updated: %s", updated.Name), nil)
	return updated, nil
}

func (h *DashboardAPIHandler) DeleteAction(id string) error {
	if err := h.botConfigService.DeleteAction(id); err != nil {
		return err
	}
	h.logs.Info(fmt.Sprintf("Action deleted: %s", id), nil)
	return nil
}

func (h *DashboardAPIHandler) GetBingoConfig() *models.BingoConfig {
	return h.bingoService.LoadConfig()
}

func (h *DashboardAPIHandler) SaveBingoConfig(config *models.BingoConfig) error {
	if err := h.bingoService.SaveConfig(config); err != nil {
		return fmt.Errorf("failed to save bingo config: %w", err)
	}
	h.logs.Info("Bingo configuration saved", nil)
	return nil
}

// GetBingoGameData returns the live operator view: pending event
// notifications, active games and unvalidated win claims.
func (h *DashboardAPIHandler) GetBingoGameData() *models.BingoGameData {
	return h.bingoService.GameData()
}

func (h *DashboardAPIHandler) ConfirmBingoEvent(ctx context.Context, notificationID string) error {
	return h.bingoUseCase.ConfirmEvent(ctx, notificationID)
}

func (h *DashboardAPIHandler) DismissBingoEvent(ctx context.Context, notificationID string) error {
	return h.bingoUseCase.DismissEvent(ctx, notificationID)
}

func (h *DashboardAPIHandler) ValidateBingoWin(ctx context.Context, winID string) (*bingo.ValidationResult, error) {
	return h.bingoUseCase.ValidateWin(ctx, winID)
}

func (h *DashboardAPIHandler) DismissBingoWin(ctx context.Context, winID string) error {
	return h.bingoUseCase.DismissWin(ctx, winID)
}

func (h *DashboardAPIHandler) ClearBingoGames(ctx context.Context) error {
	return h.bingoUseCase.ClearAllGames(ctx)
}

func (h *DashboardAPIHandler) GetLogs() []logstream.Entry {
	return h.logs.Entries()
}

// SubscribeLogs opens a live feed of new log entries. The cancel func
// releases the subscription and closes the channel.
func (h *DashboardAPIHandler) SubscribeLogs() (<-chan logstream.Entry, func()) {
	return h.logs.Subscribe()
}

func (h *DashboardAPIHandler) ClearLogs() {
	h.logs.Clear()
	log.Printf("📋 Log history cleared")
}
