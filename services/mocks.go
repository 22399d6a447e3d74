package services

import (
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"github.com/aaroniusdersiebte/DBM/models"
)

type MockBotConfigService struct {
	mock.Mock
}

func (m *MockBotConfigService) LoadConfig() *models.BotConfig {
	args := m.Called()
	return args.Get(0).(*models.BotConfig)
}

func (m *MockBotConfigService) SaveConfig(config *models.BotConfig) error {
	args := m.Called(config)
	return args.Error(0)
}

func (m *MockBotConfigService) AddTrigger(trigger models.Trigger) (*models.Trigger, error) {
	args := m.Called(trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trigger), args.Error(1)
}

func (m *MockBotConfigService) UpdateTrigger(id string, trigger models.Trigger) (*models.Trigger, error) {
	args := m.Called(id, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trigger), args.Error(1)
}

func (m *MockBotConfigService) DeleteTrigger(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBotConfigService) AddAction(action models.Action) (*models.Action, error) {
	args := m.Called(action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Action), args.Error(1)
}

func (m *MockBotConfigService) UpdateAction(id string, action models.Action) (*models.Action, error) {
	args := m.Called(id, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Action), args.Error(1)
}

func (m *MockBotConfigService) DeleteAction(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockBingoDataService struct {
	mock.Mock
}

func (m *MockBingoDataService) LoadConfig() *models.BingoConfig {
	args := m.Called()
	return args.Get(0).(*models.BingoConfig)
}

func (m *MockBingoDataService) SaveConfig(config *models.BingoConfig) error {
	args := m.Called(config)
	return args.Error(0)
}

func (m *MockBingoDataService) AddDeck(name string, eventTexts []string) (*models.BingoDeck, error) {
	args := m.Called(name, eventTexts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BingoDeck), args.Error(1)
}

func (m *MockBingoDataService) DeleteDeck(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBingoDataService) SetActiveDeck(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBingoDataService) ActiveDeck() mo.Option[models.BingoDeck] {
	args := m.Called()
	return args.Get(0).(mo.Option[models.BingoDeck])
}

func (m *MockBingoDataService) CreateGame(game models.BingoGame) (*models.BingoGame, error) {
	args := m.Called(game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BingoGame), args.Error(1)
}

func (m *MockBingoDataService) ListGames() []models.BingoGame {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.BingoGame)
}

func (m *MockBingoDataService) GamesForUser(userID string) []models.BingoGame {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.BingoGame)
}

func (m *MockBingoDataService) UpdateGame(game models.BingoGame) error {
	args := m.Called(game)
	return args.Error(0)
}

func (m *MockBingoDataService) RecordWin(win models.BingoWin) (*models.BingoWin, error) {
	args := m.Called(win)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BingoWin), args.Error(1)
}

func (m *MockBingoDataService) ListWins() []models.BingoWin {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.BingoWin)
}

func (m *MockBingoDataService) GetWin(id string) mo.Option[models.BingoWin] {
	args := m.Called(id)
	return args.Get(0).(mo.Option[models.BingoWin])
}

func (m *MockBingoDataService) RemoveWin(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBingoDataService) UpsertNotification(
	eventText, eventPosition, messageID, channelID string,
	user models.NotificationUser,
) (*models.EventNotification, error) {
	args := m.Called(eventText, eventPosition, messageID, channelID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventNotification), args.Error(1)
}

func (m *MockBingoDataService) ListNotifications() []models.EventNotification {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.EventNotification)
}

func (m *MockBingoDataService) GetNotification(id string) mo.Option[models.EventNotification] {
	args := m.Called(id)
	return args.Get(0).(mo.Option[models.EventNotification])
}

func (m *MockBingoDataService) RemoveNotification(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBingoDataService) TrackGameMessages(messages []models.GameMessage) error {
	args := m.Called(messages)
	return args.Error(0)
}

func (m *MockBingoDataService) FindGameMessage(messageID string) mo.Option[models.GameMessage] {
	args := m.Called(messageID)
	return args.Get(0).(mo.Option[models.GameMessage])
}

func (m *MockBingoDataService) GameData() *models.BingoGameData {
	args := m.Called()
	return args.Get(0).(*models.BingoGameData)
}

func (m *MockBingoDataService) ClearAllGames() error {
	args := m.Called()
	return args.Error(0)
}
