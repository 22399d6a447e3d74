// Package bingo implements the streaming-bingo game engine: card
// issuance, reaction-driven event claims, and operator-validated wins.
package bingo

import (
	"context"
	"fmt"

	"github.com/aaroniusdersiebte/DBM/clients"
	"github.com/aaroniusdersiebte/DBM/core"
	"github.com/aaroniusdersiebte/DBM/logstream"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/services"
	"github.com/aaroniusdersiebte/DBM/usecases/dispatch"
	"github.com/aaroniusdersiebte/DBM/utils"
)

type BingoUseCase struct {
	bingoService  services.BingoDataService
	discordClient clients.DiscordClient
	logs          *logstream.Stream
}

func NewBingoUseCase(
	bingoService services.BingoDataService,
	discordClient clients.DiscordClient,
	logs *logstream.Stream,
) *BingoUseCase {
	return &BingoUseCase{
		bingoService:  bingoService,
		discordClient: discordClient,
		logs:          logs,
	}
}

// ValidationResult is returned to the operator panel when a win claim is
// validated. Line-geometry checking is deliberately not automatic; the
// result reports the recorded counts and any advisory findings.
type ValidationResult struct {
	Valid    bool   `json:"isValid"`
	Username string `json:"username"`
	Reason   string `json:"reason,omitempty"`
}

// StartGame issues a new bingo card for the invoking user. Precondition
// failures are replied directly to the user; a game already in progress
// is not one of them - a second start creates a second independent game.
func (b *BingoUseCase) StartGame(ctx context.Context, ec *models.EventContext) error {
	utils.AssertInvariant(ec != nil && ec.User != nil, "bingo start requires a user")

	config := b.bingoService.LoadConfig()
	if !config.Enabled {
		return b.replyFailure(ec, "Bingo ist derzeit deaktiviert.")
	}

	maybeDeck := b.bingoService.ActiveDeck()
	if !maybeDeck.IsPresent() {
		b.logs.Warn("Bingo start rejected: no active deck", nil)
		return b.replyFailure(ec, "Kein aktives Bingo-Deck vorhanden.")
	}
	deck := maybeDeck.MustGet()

	needed := config.CardSize.Width * config.CardSize.Height
	if len(deck.Events) < needed {
		b.logs.Warn(fmt.Sprintf("Bingo start rejected: deck %s has %d events, %d required",
			deck.Name, len(deck.Events), needed), nil)
		return b.replyFailure(ec, fmt.Sprintf(
			"Das aktive Deck hat nur %d Events, benötigt werden %d.", len(deck.Events), needed))
	}

	card, err := GenerateCard(deck, config.CardSize)
	if err != nil {
		return b.replyFailure(ec, "Karte konnte nicht erstellt werden.")
	}

	game, err := b.bingoService.CreateGame(models.BingoGame{
		UserID:          ec.User.ID,
		Username:        ec.User.Username,
		DeckID:          deck.ID,
		DeckName:        deck.Name,
		CardData:        card,
		CardSize:        config.CardSize,
		ConfirmedEvents: []string{},
	})
	if err != nil {
		b.logs.Error("Failed to persist bingo game", err.Error())
		return b.replyFailure(ec, "Spiel konnte nicht gespeichert werden.")
	}

	b.issueCardMessages(game, config, ec)

	b.logs.Success(fmt.Sprintf("Bingo game started for %s with deck %s", ec.User.Username, deck.Name), nil)
	if ec.Interaction != nil {
		if err := b.discordClient.ReplyToInteraction(ec.Interaction,
			"🎲 Deine Bingo-Karte wurde erstellt! Schau in deine Nachrichten."); err != nil {
			b.logs.Warn("Failed to confirm bingo start to user", err.Error())
		}
	}
	return nil
}

// issueCardMessages sends one message per card cell, pre-seeded with the
// confirmation emoji, plus a grid overview. Cells go to the user's DMs
// when possible and fall back to the public channel otherwise.
func (b *BingoUseCase) issueCardMessages(
	game *models.BingoGame,
	config *models.BingoConfig,
	ec *models.EventContext,
) {
	useDM := true
	var gameMessages []models.GameMessage

	for index, event := range game.CardData {
		position := PositionFor(index, game.CardSize.Width)
		content := fmt.Sprintf("`[%s]` %s", position, event.Text)

		var channelID, messageID string
		var err error
		if useDM {
			channelID, messageID, err = b.discordClient.SendDirectMessage(game.UserID, content)
			if err != nil {
				// DMs refused; post the rest publicly.
				b.logs.Warn(fmt.Sprintf("DM to %s refused, falling back to channel", game.Username), err.Error())
				useDM = false
			}
		}
		if !useDM {
			if ec.Channel == nil {
				b.logs.Error("No channel available for bingo card fallback", nil)
				return
			}
			channelID = ec.Channel.ID
			messageID, err = b.discordClient.SendChannelMessage(channelID, content)
			if err != nil {
				b.logs.Error(fmt.Sprintf("Failed to post card cell %s", position), err.Error())
				continue
			}
		}

		if err := b.discordClient.AddReaction(channelID, messageID, config.ReactionEmoji); err != nil {
			b.logs.Warn(fmt.Sprintf("Failed to pre-seed reaction on cell %s", position), err.Error())
		}

		gameMessages = append(gameMessages, models.GameMessage{
			GameID:    game.ID,
			UserID:    game.UserID,
			MessageID: messageID,
			ChannelID: channelID,
			EventText: event.Text,
			Position:  position,
		})
	}

	grid := RenderGrid(game.CardData, game.CardSize)
	if useDM {
		if _, _, err := b.discordClient.SendDirectMessage(game.UserID, grid); err != nil {
			b.logs.Warn("Failed to send grid overview via DM", err.Error())
		}
	} else if ec.Channel != nil {
		if _, err := b.discordClient.SendChannelMessage(ec.Channel.ID, grid); err != nil {
			b.logs.Warn("Failed to send grid overview", err.Error())
		}
	}

	if err := b.bingoService.TrackGameMessages(gameMessages); err != nil {
		b.logs.Error("Failed to track bingo card messages", err.Error())
	}
}

// HandleReaction processes a reaction that may be a bingo event claim.
// Returns true when the reaction belonged to a tracked bingo message and
// was consumed, false when the dispatcher should treat it as a regular
// reaction trigger.
func (b *BingoUseCase) HandleReaction(ctx context.Context, ec *models.EventContext) (bool, error) {
	if ec.Reaction == nil || ec.User == nil {
		return false, nil
	}

	maybeMessage := b.bingoService.FindGameMessage(ec.Reaction.MessageID)
	if !maybeMessage.IsPresent() {
		return false, nil
	}
	gameMessage := maybeMessage.MustGet()

	config := b.bingoService.LoadConfig()
	if !dispatch.MatchesReaction(ec.Reaction.EmojiName, ec.Reaction.EmojiID, config.ReactionEmoji) {
		return false, nil
	}

	if gameMessage.UserID != ec.User.ID {
		// Reactions on someone else's card cell are ignored but the
		// event is still consumed as bingo traffic.
		b.logs.Info(fmt.Sprintf("Ignoring reaction by %s on foreign bingo card", ec.User.Username), nil)
		return true, nil
	}

	_, err := b.bingoService.UpsertNotification(
		gameMessage.EventText,
		gameMessage.Position,
		gameMessage.MessageID,
		gameMessage.ChannelID,
		models.NotificationUser{ID: ec.User.ID, Username: ec.User.Username},
	)
	if err != nil {
		b.logs.Error("Failed to queue event notification", err.Error())
		return true, err
	}

	b.logs.Info(fmt.Sprintf("Event claim queued: %q (%s) by %s",
		gameMessage.EventText, gameMessage.Position, ec.User.Username), nil)
	return true, nil
}

// ClaimWin records a win claim for the invoking user's active game. The
// claim snapshots current confirmed/total counts; whether a line is
// actually complete is validated manually by the operator.
func (b *BingoUseCase) ClaimWin(ctx context.Context, ec *models.EventContext) error {
	utils.AssertInvariant(ec != nil && ec.User != nil, "bingo win requires a user")

	games := b.bingoService.GamesForUser(ec.User.ID)
	if len(games) == 0 {
		b.logs.Warn(fmt.Sprintf("Win claim rejected: no active game for %s", ec.User.Username), nil)
		return b.replyFailure(ec, "Du hast kein aktives Bingo-Spiel.")
	}

	// Multiple concurrent games are possible; the claim goes against the
	// most recently started one.
	game := games[len(games)-1]

	win, err := b.bingoService.RecordWin(models.BingoWin{
		UserID:               game.UserID,
		Username:             game.Username,
		GameID:               game.ID,
		DeckName:             game.DeckName,
		ConfirmedEventsCount: len(game.ConfirmedEvents),
		TotalEventsCount:     len(game.CardData),
	})
	if err != nil {
		b.logs.Error("Failed to record win claim", err.Error())
		return b.replyFailure(ec, "Dein Bingo konnte nicht gespeichert werden.")
	}

	config := b.bingoService.LoadConfig()
	if config.BingoValidationChannelID != "" {
		announcement := fmt.Sprintf("🏆 **BINGO!** %s meldet ein Bingo (%d/%d Events bestätigt). Bitte prüfen!",
			win.Username, win.ConfirmedEventsCount, win.TotalEventsCount)
		if _, err := b.discordClient.SendChannelMessage(config.BingoValidationChannelID, announcement); err != nil {
			b.logs.Warn("Failed to announce win claim in validation channel", err.Error())
		}
	}

	if ec.Interaction != nil {
		if err := b.discordClient.ReplyToInteraction(ec.Interaction,
			"🏆 Dein Bingo wurde gemeldet und wartet auf Bestätigung!"); err != nil {
			b.logs.Warn("Failed to confirm win claim to user", err.Error())
		}
	}
	return nil
}

// ConfirmEvent promotes a queued notification into the confirmed-events
// set of every listed user's matching game. This is the manual operator
// checkpoint: reactions alone never confirm a cell.
func (b *BingoUseCase) ConfirmEvent(ctx context.Context, notificationID string) error {
	maybeNotification := b.bingoService.GetNotification(notificationID)
	if !maybeNotification.IsPresent() {
		return fmt.Errorf("notification %s: %w", notificationID, core.ErrNotFound)
	}
	notification := maybeNotification.MustGet()

	confirmed := 0
	for _, user := range notification.Users {
		for _, game := range b.bingoService.GamesForUser(user.ID) {
			index := IndexFor(notification.EventPosition, game.CardSize)
			if index < 0 || index >= len(game.CardData) {
				continue
			}
			if game.CardData[index].Text != notification.EventText {
				continue
			}
			if containsString(game.ConfirmedEvents, notification.EventPosition) {
				continue
			}
			game.ConfirmedEvents = append(game.ConfirmedEvents, notification.EventPosition)
			if err := b.bingoService.UpdateGame(game); err != nil {
				b.logs.Error(fmt.Sprintf("Failed to confirm event for game %s", game.ID), err.Error())
				continue
			}
			confirmed++
		}
	}

	if err := b.bingoService.RemoveNotification(notificationID); err != nil {
		return err
	}

	config := b.bingoService.LoadConfig()
	if config.BingoConfirmationMessage != "" && notification.ChannelID != "" {
		if _, err := b.discordClient.SendChannelMessage(notification.ChannelID, config.BingoConfirmationMessage); err != nil {
			b.logs.Warn("Failed to announce event confirmation", err.Error())
		}
	}

	b.logs.Success(fmt.Sprintf("Event confirmed: %q (%s) for %d game(s)",
		notification.EventText, notification.EventPosition, confirmed), nil)
	return nil
}

// DismissEvent drops a queued notification without confirming it.
func (b *BingoUseCase) DismissEvent(ctx context.Context, notificationID string) error {
	if err := b.bingoService.RemoveNotification(notificationID); err != nil {
		return err
	}
	b.logs.Info(fmt.Sprintf("Event notification dismissed: %s", notificationID), nil)
	return nil
}

// ValidateWin reports a win claim back to the operator. The gameId
// reference is advisory: a missing game is reported, not fatal.
func (b *BingoUseCase) ValidateWin(ctx context.Context, winID string) (*ValidationResult, error) {
	maybeWin := b.bingoService.GetWin(winID)
	if !maybeWin.IsPresent() {
		return nil, fmt.Errorf("win %s: %w", winID, core.ErrNotFound)
	}
	win := maybeWin.MustGet()

	result := &ValidationResult{Valid: true, Username: win.Username}
	if !gameExists(b.bingoService.ListGames(), win.GameID) {
		result.Reason = "game no longer exists"
	}

	b.logs.Success(fmt.Sprintf("Bingo validated for %s (win %s)", win.Username, win.ID), nil)
	return result, nil
}

// DismissWin rejects a win claim and removes its record.
func (b *BingoUseCase) DismissWin(ctx context.Context, winID string) error {
	if err := b.bingoService.RemoveWin(winID); err != nil {
		return err
	}
	b.logs.Info(fmt.Sprintf("Bingo win dismissed: %s", winID), nil)
	return nil
}

// ClearAllGames wipes every bingo collection.
func (b *BingoUseCase) ClearAllGames(ctx context.Context) error {
	if err := b.bingoService.ClearAllGames(); err != nil {
		return err
	}
	b.logs.Success("All bingo games cleared", nil)
	return nil
}

// replyFailure surfaces a precondition failure directly to the invoking
// user. Bingo commands are the only place where users see failures.
func (b *BingoUseCase) replyFailure(ec *models.EventContext, message string) error {
	if ec.Interaction != nil {
		return b.discordClient.ReplyToInteraction(ec.Interaction, "❌ "+message)
	}
	if ec.Channel != nil {
		_, err := b.discordClient.SendChannelMessage(ec.Channel.ID, "❌ "+message)
		return err
	}
	return nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func gameExists(games []models.BingoGame, gameID string) bool {
	for _, game := range games {
		if game.ID == gameID {
			return true
		}
	}
	return false
}
