package bingo

import (
	"context"
	"fmt"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bwmarrin/discordgo"

	"github.com/aaroniusdersiebte/DBM/clients/discord"
	"github.com/aaroniusdersiebte/DBM/logstream"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/services"
)

type bingoFixture struct {
	useCase       *BingoUseCase
	bingoService  *services.MockBingoDataService
	discordClient *discord.MockDiscordClient
}

func newBingoFixture() *bingoFixture {
	f := &bingoFixture{
		bingoService:  &services.MockBingoDataService{},
		discordClient: &discord.MockDiscordClient{},
	}
	f.useCase = NewBingoUseCase(f.bingoService, f.discordClient, logstream.New())
	return f
}

func enabledConfig() *models.BingoConfig {
	return &models.BingoConfig{
		Enabled:                  true,
		SlashCommand:             "/bingo",
		BingoCommand:             "/bingowin",
		CardSize:                 models.CardSize{Width: 2, Height: 2},
		ReactionEmoji:            "✅",
		BingoConfirmationMessage: "Event bestätigt! Aktualisiere Bingo-Karten...",
	}
}

func deckWithEvents(count int) models.BingoDeck {
	deck := models.BingoDeck{ID: "deck_active", Name: "Stream-Events"}
	for i := 0; i < count; i++ {
		deck.Events = append(deck.Events, models.BingoEvent{
			ID:   fmt.Sprintf("evt_%d", i),
			Text: fmt.Sprintf("Event %d", i),
		})
	}
	return deck
}

func interactionContext() *models.EventContext {
	return &models.EventContext{
		User:        &models.EventUser{ID: "user-1", Username: "ada"},
		Channel:     &models.EventChannel{ID: "chan-1", Name: "bingo"},
		Interaction: &discordgo.Interaction{ID: "int-1"},
	}
}

func TestStartGame_DeckTooSmallPersistsNothing(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("LoadConfig").Return(enabledConfig())
	f.bingoService.On("ActiveDeck").Return(mo.Some(deckWithEvents(3)))
	f.discordClient.On("ReplyToInteraction", mock.Anything, mock.MatchedBy(func(content string) bool {
		return content != ""
	})).Return(nil)

	err := f.useCase.StartGame(context.Background(), interactionContext())

	assert.NoError(t, err)
	f.bingoService.AssertNotCalled(t, "CreateGame", mock.Anything)
	f.bingoService.AssertNotCalled(t, "TrackGameMessages", mock.Anything)
}

func TestStartGame_DisabledRepliesFailure(t *testing.T) {
	f := newBingoFixture()

	config := enabledConfig()
	config.Enabled = false
	f.bingoService.On("LoadConfig").Return(config)
	f.discordClient.On("ReplyToInteraction", mock.Anything, mock.Anything).Return(nil)

	err := f.useCase.StartGame(context.Background(), interactionContext())

	assert.NoError(t, err)
	f.bingoService.AssertNotCalled(t, "ActiveDeck")
}

func TestStartGame_NoActiveDeckRepliesFailure(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("LoadConfig").Return(enabledConfig())
	f.bingoService.On("ActiveDeck").Return(mo.None[models.BingoDeck]())
	f.discordClient.On("ReplyToInteraction", mock.Anything, mock.Anything).Return(nil)

	err := f.useCase.StartGame(context.Background(), interactionContext())

	assert.NoError(t, err)
	f.bingoService.AssertNotCalled(t, "CreateGame", mock.Anything)
}

func TestStartGame_IssuesCardCellsAndTracksMessages(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("LoadConfig").Return(enabledConfig())
	f.bingoService.On("ActiveDeck").Return(mo.Some(deckWithEvents(4)))
	f.bingoService.On("CreateGame", mock.Anything).Return(&models.BingoGame{
		ID:       "game_1",
		UserID:   "user-1",
		Username: "ada",
		DeckID:   "deck_active",
		DeckName: "Stream-Events",
		CardData: deckWithEvents(4).Events,
		CardSize: models.CardSize{Width: 2, Height: 2},
	}, nil)

	messageCounter := 0
	f.discordClient.On("SendDirectMessage", "user-1", mock.Anything).
		Return("dm-chan", "dm-msg", nil).
		Run(func(args mock.Arguments) { messageCounter++ })
	f.discordClient.On("AddReaction", "dm-chan", "dm-msg", "✅").Return(nil)
	f.bingoService.On("TrackGameMessages", mock.MatchedBy(func(messages []models.GameMessage) bool {
		return len(messages) == 4 &&
			messages[0].Position == "1.1" &&
			messages[3].Position == "2.2" &&
			messages[0].GameID == "game_1"
	})).Return(nil)
	f.discordClient.On("ReplyToInteraction", mock.Anything, mock.Anything).Return(nil)

	err := f.useCase.StartGame(context.Background(), interactionContext())

	require.NoError(t, err)
	// 4 card cells plus the grid overview.
	assert.Equal(t, 5, messageCounter)
	f.bingoService.AssertExpectations(t)
}

func TestStartGame_SecondGameForSameUserIsAllowed(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("LoadConfig").Return(enabledConfig())
	f.bingoService.On("ActiveDeck").Return(mo.Some(deckWithEvents(4)))
	f.bingoService.On("CreateGame", mock.Anything).Return(&models.BingoGame{
		ID:       "game_2",
		UserID:   "user-1",
		CardData: deckWithEvents(4).Events,
		CardSize: models.CardSize{Width: 2, Height: 2},
	}, nil)
	f.discordClient.On("SendDirectMessage", "user-1", mock.Anything).Return("dm", "m", nil)
	f.discordClient.On("AddReaction", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.bingoService.On("TrackGameMessages", mock.Anything).Return(nil)
	f.discordClient.On("ReplyToInteraction", mock.Anything, mock.Anything).Return(nil)

	// No GamesForUser lookup happens: an existing game never blocks a new one.
	err := f.useCase.StartGame(context.Background(), interactionContext())

	assert.NoError(t, err)
	f.bingoService.AssertNotCalled(t, "GamesForUser", mock.Anything)
}

func TestHandleReaction_UntrackedMessageIsNotConsumed(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("FindGameMessage", "msg-x").Return(mo.None[models.GameMessage]())

	ec := &models.EventContext{
		User:     &models.EventUser{ID: "user-1", Username: "ada"},
		Reaction: &models.EventReaction{EmojiName: "✅", MessageID: "msg-x"},
	}

	handled, err := f.useCase.HandleReaction(context.Background(), ec)

	assert.NoError(t, err)
	assert.False(t, handled)
}

func TestHandleReaction_WrongEmojiIsNotConsumed(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("FindGameMessage", "msg-1").Return(mo.Some(models.GameMessage{
		GameID:    "game_1",
		UserID:    "user-1",
		MessageID: "msg-1",
		EventText: "Event 0",
		Position:  "1.1",
	}))
	f.bingoService.On("LoadConfig").Return(enabledConfig())

	ec := &models.EventContext{
		User:     &models.EventUser{ID: "user-1", Username: "ada"},
		Reaction: &models.EventReaction{EmojiName: "🎉", MessageID: "msg-1"},
	}

	handled, err := f.useCase.HandleReaction(context.Background(), ec)

	assert.NoError(t, err)
	assert.False(t, handled)
	f.bingoService.AssertNotCalled(t, "UpsertNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleReaction_OwnCardCellQueuesNotification(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("FindGameMessage", "msg-1").Return(mo.Some(models.GameMessage{
		GameID:    "game_1",
		UserID:    "user-1",
		MessageID: "msg-1",
		ChannelID: "chan-1",
		EventText: "Event 0",
		Position:  "1.1",
	}))
	f.bingoService.On("LoadConfig").Return(enabledConfig())
	f.bingoService.On("UpsertNotification", "Event 0", "1.1", "msg-1", "chan-1",
		models.NotificationUser{ID: "user-1", Username: "ada"}).
		Return(&models.EventNotification{ID: "ntf_1"}, nil)

	ec := &models.EventContext{
		User:     &models.EventUser{ID: "user-1", Username: "ada"},
		Reaction: &models.EventReaction{EmojiName: "✅", MessageID: "msg-1"},
	}

	handled, err := f.useCase.HandleReaction(context.Background(), ec)

	assert.NoError(t, err)
	assert.True(t, handled)
	f.bingoService.AssertExpectations(t)
}

func TestHandleReaction_ForeignCardCellIsConsumedButIgnored(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("FindGameMessage", "msg-1").Return(mo.Some(models.GameMessage{
		GameID:    "game_1",
		UserID:    "card-owner",
		MessageID: "msg-1",
		EventText: "Event 0",
		Position:  "1.1",
	}))
	f.bingoService.On("LoadConfig").Return(enabledConfig())

	ec := &models.EventContext{
		User:     &models.EventUser{ID: "someone-else", Username: "bob"},
		Reaction: &models.EventReaction{EmojiName: "✅", MessageID: "msg-1"},
	}

	handled, err := f.useCase.HandleReaction(context.Background(), ec)

	assert.NoError(t, err)
	assert.True(t, handled)
	f.bingoService.AssertNotCalled(t, "UpsertNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimWin_NoActiveGameRepliesFailure(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("GamesForUser", "user-1").Return([]models.BingoGame{})
	f.discordClient.On("ReplyToInteraction", mock.Anything, mock.Anything).Return(nil)

	err := f.useCase.ClaimWin(context.Background(), interactionContext())

	assert.NoError(t, err)
	f.bingoService.AssertNotCalled(t, "RecordWin", mock.Anything)
}

func TestClaimWin_RecordsSnapshotOfLatestGame(t *testing.T) {
	f := newBingoFixture()

	games := []models.BingoGame{
		{ID: "game_old", UserID: "user-1", Username: "ada", DeckName: "Alt",
			CardData: deckWithEvents(4).Events},
		{ID: "game_new", UserID: "user-1", Username: "ada", DeckName: "Stream-Events",
			CardData:        deckWithEvents(4).Events,
			ConfirmedEvents: []string{"1.1", "2.2"}},
	}
	f.bingoService.On("GamesForUser", "user-1").Return(games)
	f.bingoService.On("RecordWin", mock.MatchedBy(func(win models.BingoWin) bool {
		return win.GameID == "game_new" &&
			win.ConfirmedEventsCount == 2 &&
			win.TotalEventsCount == 4
	})).Return(&models.BingoWin{ID: "win_1", Username: "ada",
		ConfirmedEventsCount: 2, TotalEventsCount: 4}, nil)
	f.bingoService.On("LoadConfig").Return(enabledConfig())
	f.discordClient.On("ReplyToInteraction", mock.Anything, mock.Anything).Return(nil)

	err := f.useCase.ClaimWin(context.Background(), interactionContext())

	assert.NoError(t, err)
	f.bingoService.AssertExpectations(t)
}

func TestConfirmEvent_PromotesMatchingGamesAndRemovesNotification(t *testing.T) {
	f := newBingoFixture()

	notification := models.EventNotification{
		ID:            "ntf_1",
		EventText:     "Event 0",
		EventPosition: "1.1",
		ChannelID:     "chan-1",
		Users: []models.NotificationUser{
			{ID: "user-1", Username: "ada"},
			{ID: "user-2", Username: "bob"},
		},
	}
	f.bingoService.On("GetNotification", "ntf_1").Return(mo.Some(notification))

	adaGame := models.BingoGame{
		ID: "game_ada", UserID: "user-1",
		CardData: deckWithEvents(4).Events,
		CardSize: models.CardSize{Width: 2, Height: 2},
	}
	// Bob's card has a different event at 1.1, so his game is untouched.
	bobEvents := deckWithEvents(4).Events
	bobEvents[0].Text = "Something else"
	bobGame := models.BingoGame{
		ID: "game_bob", UserID: "user-2",
		CardData: bobEvents,
		CardSize: models.CardSize{Width: 2, Height: 2},
	}

	f.bingoService.On("GamesForUser", "user-1").Return([]models.BingoGame{adaGame})
	f.bingoService.On("GamesForUser", "user-2").Return([]models.BingoGame{bobGame})
	f.bingoService.On("UpdateGame", mock.MatchedBy(func(game models.BingoGame) bool {
		return game.ID == "game_ada" &&
			len(game.ConfirmedEvents) == 1 &&
			game.ConfirmedEvents[0] == "1.1"
	})).Return(nil)
	f.bingoService.On("RemoveNotification", "ntf_1").Return(nil)
	f.bingoService.On("LoadConfig").Return(enabledConfig())
	f.discordClient.On("SendChannelMessage", "chan-1",
		"Event bestätigt! Aktualisiere Bingo-Karten...").Return("m", nil)

	err := f.useCase.ConfirmEvent(context.Background(), "ntf_1")

	require.NoError(t, err)
	f.bingoService.AssertExpectations(t)
	f.bingoService.AssertNumberOfCalls(t, "UpdateGame", 1)
}

func TestConfirmEvent_AlreadyConfirmedPositionIsNotDuplicated(t *testing.T) {
	f := newBingoFixture()

	notification := models.EventNotification{
		ID:            "ntf_1",
		EventText:     "Event 0",
		EventPosition: "1.1",
		Users:         []models.NotificationUser{{ID: "user-1", Username: "ada"}},
	}
	f.bingoService.On("GetNotification", "ntf_1").Return(mo.Some(notification))
	f.bingoService.On("GamesForUser", "user-1").Return([]models.BingoGame{
		{
			ID: "game_1", UserID: "user-1",
			CardData:        deckWithEvents(4).Events,
			CardSize:        models.CardSize{Width: 2, Height: 2},
			ConfirmedEvents: []string{"1.1"},
		},
	})
	f.bingoService.On("RemoveNotification", "ntf_1").Return(nil)
	f.bingoService.On("LoadConfig").Return(enabledConfig())

	err := f.useCase.ConfirmEvent(context.Background(), "ntf_1")

	assert.NoError(t, err)
	f.bingoService.AssertNotCalled(t, "UpdateGame", mock.Anything)
}

func TestConfirmEvent_UnknownNotification(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("GetNotification", "ntf_gone").Return(mo.None[models.EventNotification]())

	err := f.useCase.ConfirmEvent(context.Background(), "ntf_gone")

	assert.Error(t, err)
}

func TestValidateWin_MissingGameIsAdvisory(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("GetWin", "win_1").Return(mo.Some(models.BingoWin{
		ID: "win_1", Username: "ada", GameID: "game_gone",
	}))
	f.bingoService.On("ListGames").Return([]models.BingoGame{})

	result, err := f.useCase.ValidateWin(context.Background(), "win_1")

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "ada", result.Username)
	assert.NotEmpty(t, result.Reason)
}

func TestDismissWin_RemovesRecord(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("RemoveWin", "win_1").Return(nil)

	err := f.useCase.DismissWin(context.Background(), "win_1")

	assert.NoError(t, err)
	f.bingoService.AssertExpectations(t)
}

func TestClearAllGames(t *testing.T) {
	f := newBingoFixture()

	f.bingoService.On("ClearAllGames").Return(nil)

	err := f.useCase.ClearAllGames(context.Background())

	assert.NoError(t, err)
	f.bingoService.AssertExpectations(t)
}
