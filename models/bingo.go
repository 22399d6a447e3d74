package models

import "time"

// BingoEvent is one entry of a deck, drawn onto player cards.
type BingoEvent struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type BingoDeck struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Events    []BingoEvent `json:"events"`
	CreatedAt time.Time    `json:"createdAt,omitempty"`
}

type CardSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BingoConfig is the persisted bingo settings document. At most one deck
// is active at a time; only the active deck is usable for new games.
type BingoConfig struct {
	Enabled                  bool        `json:"enabled"`
	SlashCommand             string      `json:"slashCommand"`
	BingoCommand             string      `json:"bingoCommand"`
	CardSize                 CardSize    `json:"cardSize"`
	ReactionEmoji            string      `json:"reactionEmoji"`
	BingoValidationChannelID string      `json:"bingoValidationChannelId,omitempty"`
	BingoConfirmationMessage string      `json:"bingoConfirmationMessage,omitempty"`
	Decks                    []BingoDeck `json:"decks"`
	ActiveDeckID             string      `json:"activeDeckId,omitempty"`
}

// BingoGame is one user's issued card and its confirmation state. There is
// deliberately no one-game-per-user uniqueness constraint: re-issuing the
// start command creates a second independent game.
type BingoGame struct {
	ID              string       `json:"id"`
	UserID          string       `json:"userId"`
	Username        string       `json:"username"`
	DeckID          string       `json:"deckId"`
	DeckName        string       `json:"deckName"`
	CardData        []BingoEvent `json:"cardData"`
	CardSize        CardSize     `json:"cardSize"`
	ConfirmedEvents []string     `json:"confirmedEvents"`
	StartedAt       time.Time    `json:"startedAt"`
}

// NotificationUser records one player who reacted to a card cell.
type NotificationUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// EventNotification is a pending, operator-unconfirmed claim that a card
// cell's event occurred. One notification exists per distinct
// (eventText, eventPosition) pair; every reacting player is appended to
// Users until the operator confirms or dismisses it.
type EventNotification struct {
	ID            string             `json:"id"`
	EventText     string             `json:"eventText"`
	EventPosition string             `json:"eventPosition"`
	MessageID     string             `json:"messageId"`
	ChannelID     string             `json:"channelId"`
	Users         []NotificationUser `json:"users"`
	Timestamp     time.Time          `json:"timestamp"`
}

// BingoWin is an append-only win claim snapshot. Validation is manual:
// the engine records the claim but never checks line geometry.
type BingoWin struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	Username             string    `json:"username"`
	GameID               string    `json:"gameId"`
	DeckName             string    `json:"deckName"`
	ConfirmedEventsCount int       `json:"confirmedEventsCount"`
	TotalEventsCount     int       `json:"totalEventsCount"`
	Timestamp            time.Time `json:"timestamp"`
}

// GameMessage maps one outbound card-cell message to its game and cell,
// so inbound reactions can be recognized as bingo confirmations.
type GameMessage struct {
	GameID    string `json:"gameId"`
	UserID    string `json:"userId"`
	MessageID string `json:"messageId"`
	ChannelID string `json:"channelId"`
	EventText string `json:"eventText"`
	// Position is the row.column coordinate of the cell, e.g. "2.4".
	Position string `json:"position"`
}

// BingoGameData bundles the three operator-facing collections.
type BingoGameData struct {
	EventNotifications []EventNotification `json:"eventNotifications"`
	ActiveGames        []BingoGame         `json:"activeGames"`
	BingoWins          []BingoWin          `json:"bingoWins"`
}
