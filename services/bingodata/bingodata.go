package bingodata

import (
	"fmt"
	"log"
	"time"

	"github.com/samber/mo"

	"github.com/aaroniusdersiebte/DBM/core"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/store"
)

type BingoDataService struct {
	configRepo        *store.BingoConfigRepository
	gamesRepo         *store.GamesRepository
	winsRepo          *store.WinsRepository
	notificationsRepo *store.NotificationsRepository
	messagesRepo      *store.GameMessagesRepository
}

func NewBingoDataService(
	configRepo *store.BingoConfigRepository,
	gamesRepo *store.GamesRepository,
	winsRepo *store.WinsRepository,
	notificationsRepo *store.NotificationsRepository,
	messagesRepo *store.GameMessagesRepository,
) *BingoDataService {
	return &BingoDataService{
		configRepo:        configRepo,
		gamesRepo:         gamesRepo,
		winsRepo:          winsRepo,
		notificationsRepo: notificationsRepo,
		messagesRepo:      messagesRepo,
	}
}

func (s *BingoDataService) LoadConfig() *models.BingoConfig {
	return s.configRepo.Load()
}

func (s *BingoDataService) SaveConfig(config *models.BingoConfig) error {
	if err := s.configRepo.Save(config); err != nil {
		return fmt.Errorf("failed to save bingo config: %w", err)
	}
	log.Printf("✅ Bingo configuration saved (enabled=%t, decks=%d)", config.Enabled, len(config.Decks))
	return nil
}

func (s *BingoDataService) AddDeck(name string, eventTexts []string) (*models.BingoDeck, error) {
	config := s.configRepo.Load()

	deck := models.BingoDeck{
		ID:        core.NewID(core.IDPrefixDeck),
		Name:      name,
		Events:    make([]models.BingoEvent, 0, len(eventTexts)),
		CreatedAt: time.Now(),
	}
	for _, text := range eventTexts {
		deck.Events = append(deck.Events, models.BingoEvent{
			ID:   core.NewID(core.IDPrefixEvent),
			Text: text,
		})
	}
	config.Decks = append(config.Decks, deck)

	if err := s.configRepo.Save(config); err != nil {
		return nil, fmt.Errorf("failed to add deck: %w", err)
	}
	log.Printf("✅ Bingo deck created: %s (%d events)", deck.Name, len(deck.Events))
	return &deck, nil
}

func (s *BingoDataService) DeleteDeck(id string) error {
	config := s.configRepo.Load()

	for i := range config.Decks {
		if config.Decks[i].ID == id {
			config.Decks = append(config.Decks[:i], config.Decks[i+1:]...)
			if config.ActiveDeckID == id {
				config.ActiveDeckID = ""
			}
			if err := s.configRepo.Save(config); err != nil {
				return fmt.Errorf("failed to delete deck: %w", err)
			}
			log.Printf("✅ Bingo deck deleted: %s", id)
			return nil
		}
	}
	return fmt.Errorf("deck %s: %w", id, core.ErrNotFound)
}

func (s *BingoDataService) SetActiveDeck(id string) error {
	config := s.configRepo.Load()

	for _, deck := range config.Decks {
		if deck.ID == id {
			config.ActiveDeckID = id
			if err := s.configRepo.Save(config); err != nil {
				return fmt.Errorf("failed to set active deck: %w", err)
			}
			log.Printf("✅ Active bingo deck set: %s", deck.Name)
			return nil
		}
	}
	return fmt.Errorf("deck %s: %w", id, core.ErrNotFound)
}

func (s *BingoDataService) ActiveDeck() mo.Option[models.BingoDeck] {
	config := s.configRepo.Load()
	if config.ActiveDeckID == "" {
		return mo.None[models.BingoDeck]()
	}
	for _, deck := range config.Decks {
		if deck.ID == config.ActiveDeckID {
			return mo.Some(deck)
		}
	}
	// activeDeckId pointing at a deleted deck is a tolerated dangling
	// reference.
	return mo.None[models.BingoDeck]()
}

func (s *BingoDataService) CreateGame(game models.BingoGame) (*models.BingoGame, error) {
	game.ID = core.NewID(core.IDPrefixGame)
	game.StartedAt = time.Now()
	if game.ConfirmedEvents == nil {
		game.ConfirmedEvents = []string{}
	}

	if err := s.gamesRepo.Append(game); err != nil {
		return nil, fmt.Errorf("failed to persist game: %w", err)
	}
	log.Printf("✅ Bingo game created: %s for %s (deck %s)", game.ID, game.Username, game.DeckName)
	return &game, nil
}

func (s *BingoDataService) ListGames() []models.BingoGame {
	return s.gamesRepo.List()
}

func (s *BingoDataService) GamesForUser(userID string) []models.BingoGame {
	var games []models.BingoGame
	for _, game := range s.gamesRepo.List() {
		if game.UserID == userID {
			games = append(games, game)
		}
	}
	return games
}

func (s *BingoDataService) UpdateGame(game models.BingoGame) error {
	found, err := s.gamesRepo.Update(game)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if !found {
		return fmt.Errorf("game %s: %w", game.ID, core.ErrNotFound)
	}
	return nil
}

func (s *BingoDataService) RecordWin(win models.BingoWin) (*models.BingoWin, error) {
	win.ID = core.NewID(core.IDPrefixWin)
	win.Timestamp = time.Now()

	if err := s.winsRepo.Append(win); err != nil {
		return nil, fmt.Errorf("failed to record win: %w", err)
	}
	log.Printf("🏆 Bingo win recorded: %s by %s (%d/%d events)",
		win.ID, win.Username, win.ConfirmedEventsCount, win.TotalEventsCount)
	return &win, nil
}

func (s *BingoDataService) ListWins() []models.BingoWin {
	return s.winsRepo.List()
}

func (s *BingoDataService) GetWin(id string) mo.Option[models.BingoWin] {
	for _, win := range s.winsRepo.List() {
		if win.ID == id {
			return mo.Some(win)
		}
	}
	return mo.None[models.BingoWin]()
}

func (s *BingoDataService) RemoveWin(id string) error {
	found, err := s.winsRepo.Remove(id)
	if err != nil {
		return fmt.Errorf("failed to remove win: %w", err)
	}
	if !found {
		return fmt.Errorf("win %s: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *BingoDataService) UpsertNotification(
	eventText, eventPosition, messageID, channelID string,
	user models.NotificationUser,
) (*models.EventNotification, error) {
	notifications := s.notificationsRepo.List()

	for i := range notifications {
		if notifications[i].EventText == eventText && notifications[i].EventPosition == eventPosition {
			for _, existing := range notifications[i].Users {
				if existing.ID == user.ID {
					// Same user reacting twice is a no-op.
					return &notifications[i], nil
				}
			}
			notifications[i].Users = append(notifications[i].Users, user)
			if err := s.notificationsRepo.SaveAll(notifications); err != nil {
				return nil, fmt.Errorf("failed to update notification: %w", err)
			}
			log.Printf("📋 Event notification updated: %q (%s) now has %d users",
				eventText, eventPosition, len(notifications[i].Users))
			return &notifications[i], nil
		}
	}

	notification := models.EventNotification{
		ID:            core.NewID(core.IDPrefixNotification),
		EventText:     eventText,
		EventPosition: eventPosition,
		MessageID:     messageID,
		ChannelID:     channelID,
		Users:         []models.NotificationUser{user},
		Timestamp:     time.Now(),
	}
	notifications = append(notifications, notification)
	if err := s.notificationsRepo.SaveAll(notifications); err != nil {
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}
	log.Printf("📋 Event notification queued: %q (%s) by %s", eventText, eventPosition, user.Username)
	return &notification, nil
}

func (s *BingoDataService) ListNotifications() []models.EventNotification {
	return s.notificationsRepo.List()
}

func (s *BingoDataService) GetNotification(id string) mo.Option[models.EventNotification] {
	for _, notification := range s.notificationsRepo.List() {
		if notification.ID == id {
			return mo.Some(notification)
		}
	}
	return mo.None[models.EventNotification]()
}

func (s *BingoDataService) RemoveNotification(id string) error {
	found, err := s.notificationsRepo.Remove(id)
	if err != nil {
		return fmt.Errorf("failed to remove notification: %w", err)
	}
	if !found {
		return fmt.Errorf("notification %s: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *BingoDataService) TrackGameMessages(messages []models.GameMessage) error {
	if err := s.messagesRepo.AppendAll(messages); err != nil {
		return fmt.Errorf("failed to track game messages: %w", err)
	}
	return nil
}

func (s *BingoDataService) FindGameMessage(messageID string) mo.Option[models.GameMessage] {
	for _, message := range s.messagesRepo.List() {
		if message.MessageID == messageID {
			return mo.Some(message)
		}
	}
	return mo.None[models.GameMessage]()
}

func (s *BingoDataService) GameData() *models.BingoGameData {
	return &models.BingoGameData{
		EventNotifications: s.notificationsRepo.List(),
		ActiveGames:        s.gamesRepo.List(),
		BingoWins:          s.winsRepo.List(),
	}
}

func (s *BingoDataService) ClearAllGames() error {
	if err := s.gamesRepo.Clear(); err != nil {
		return err
	}
	if err := s.winsRepo.Clear(); err != nil {
		return err
	}
	if err := s.notificationsRepo.Clear(); err != nil {
		return err
	}
	if err := s.messagesRepo.Clear(); err != nil {
		return err
	}
	log.Printf("✅ All bingo games cleared")
	return nil
}
