// Package services defines the persistence-facing service interfaces
// consumed by the usecases and handlers.
package services

import (
	"github.com/samber/mo"

	"github.com/aaroniusdersiebte/DBM/models"
)

// BotConfigService owns the bot configuration document: token, guild,
// triggers, actions and legacy commands. Reads always hit the underlying
// file so config edits take effect on the next event.
type BotConfigService interface {
	LoadConfig() *models.BotConfig
	SaveConfig(config *models.BotConfig) error

	AddTrigger(trigger models.Trigger) (*models.Trigger, error)
	UpdateTrigger(id string, trigger models.Trigger) (*models.Trigger, error)
	DeleteTrigger(id string) error

	AddAction(action models.Action) (*models.Action, error)
	UpdateAction(id string, action models.Action) (*models.Action, error)
	DeleteAction(id string) error
}

// BingoDataService owns the bingo configuration and the four game-data
// collections.
type BingoDataService interface {
	LoadConfig() *models.BingoConfig
	SaveConfig(config *models.BingoConfig) error

	AddDeck(name string, eventTexts []string) (*models.BingoDeck, error)
	DeleteDeck(id string) error
	SetActiveDeck(id string) error
	// ActiveDeck returns the deck referenced by activeDeckId, if any.
	ActiveDeck() mo.Option[models.BingoDeck]

	CreateGame(game models.BingoGame) (*models.BingoGame, error)
	ListGames() []models.BingoGame
	GamesForUser(userID string) []models.BingoGame
	UpdateGame(game models.BingoGame) error

	RecordWin(win models.BingoWin) (*models.BingoWin, error)
	ListWins() []models.BingoWin
	GetWin(id string) mo.Option[models.BingoWin]
	RemoveWin(id string) error

	// UpsertNotification records a user's reaction claim. Notifications
	// are deduplicated by (eventText, eventPosition): an existing one
	// gains the user, a new one is created otherwise.
	UpsertNotification(
		eventText, eventPosition, messageID, channelID string,
		user models.NotificationUser,
	) (*models.EventNotification, error)
	ListNotifications() []models.EventNotification
	GetNotification(id string) mo.Option[models.EventNotification]
	RemoveNotification(id string) error

	TrackGameMessages(messages []models.GameMessage) error
	// FindGameMessage resolves an inbound reaction's message id to the
	// bingo card cell it belongs to, if any.
	FindGameMessage(messageID string) mo.Option[models.GameMessage]

	GameData() *models.BingoGameData
	ClearAllGames() error
}
